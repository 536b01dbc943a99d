package config

import (
	"log"
	"os"
	"strings"
	"sync"
)

type AppConfig struct {
	Name         string
	Env          string
	Port         string
	AllowOrigins string
	UploadDir    string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		port := os.Getenv("APP_PORT")
		if port == "" {
			port = ":5000"
		}
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		origins := os.Getenv("CORS_ALLOW_ORIGINS")
		if origins == "" {
			origins = "http://localhost:5173,http://localhost:3000"
		}
		uploadDir := os.Getenv("UPLOAD_DIR")
		if uploadDir == "" {
			uploadDir = "./uploads"
		}
		appConfig = &AppConfig{
			Name:         getEnv("APP_NAME", "Veen Backend"),
			Env:          env,
			Port:         port,
			AllowOrigins: origins,
			UploadDir:    uploadDir,
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}
