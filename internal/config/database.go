package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// DBConfig describes the optional postgres resume store.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

var (
	dbConfig *DBConfig
	dbOnce   sync.Once
)

func LoadDBConfig() *DBConfig {
	dbOnce.Do(func() {
		dbConfig = newDBConfig(LoadAppConfig().IsProduction())
	})
	return dbConfig
}

// newDBConfig reads the DB_* variables. Pool sizes default to a small pool
// outside production.
func newDBConfig(production bool) *DBConfig {
	cfg := &DBConfig{
		Host:            os.Getenv("DB_HOST"),
		Port:            getEnv("DB_PORT", "5432"),
		User:            os.Getenv("DB_USER"),
		Password:        os.Getenv("DB_PASSWORD"),
		Name:            getEnv("DB_NAME", "veen"),
		SSLMode:         getEnv("DB_SSLMODE", "disable"),
		TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	}
	if production {
		cfg.MaxOpenConns = 200
		cfg.MaxIdleConns = 20
		cfg.ConnMaxLifetime = time.Hour
	}
	if n, err := strconv.Atoi(os.Getenv("DB_MAX_OPEN_CONNS")); err == nil && n > 0 {
		cfg.MaxOpenConns = n
		if cfg.MaxIdleConns > n {
			cfg.MaxIdleConns = n
		}
	}
	return cfg
}

// Enabled reports whether a postgres host is configured. Without one the
// resume store stays in memory.
func (c *DBConfig) Enabled() bool {
	return c.Host != ""
}

// DSN is the key=value connection string the gorm postgres driver expects.
func (c *DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone)
}
