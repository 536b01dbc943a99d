package main

import (
	"context"
	"errors"
	"log"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/veen-app/veen-api/internal/config"
	"github.com/veen-app/veen-api/internal/domain/fiber/handler"
	"github.com/veen-app/veen-api/internal/middleware"
	"github.com/veen-app/veen-api/internal/model"
	"github.com/veen-app/veen-api/internal/repository"
	"github.com/veen-app/veen-api/internal/service"
	"github.com/veen-app/veen-api/internal/usecase"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"success": false, "message": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: appConfig.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	store := NewResumeStore()
	providers := service.ConfiguredProviders(ctx, config.LoadGeminiConfig(), config.LoadOpenAIConfig())
	pdf := service.NewPDFService(service.NewChromedpRenderer(config.LoadRendererConfig()))

	tailorUC := usecase.NewTailorUsecase(providers, service.DefaultRetryPolicy(), store)
	resumeUC := usecase.NewResumeUsecase(store, pdf)
	handler := handler.NewResumeHandler(tailorUC, resumeUC, appConfig.UploadDir)

	handler.RegisterRoutes(app)

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.Printf("Active goroutines: %d", runtime.NumGoroutine())
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

// NewResumeStore returns the postgres store when DB_HOST is set and the
// in-memory store otherwise.
func NewResumeStore() repository.ResumeStore {
	if !config.LoadDBConfig().Enabled() {
		log.Println("DB_HOST not set, resumes are kept in memory")
		return repository.NewMemoryResumeRepository()
	}
	return repository.NewResumeRepository(ConnectDB())
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	pgDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	pgDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	pgDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	if err := db.AutoMigrate(&model.StoredResume{}); err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
