package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"class-quest-system/handlers"
	"class-quest-system/models"
	"class-quest-system/services"
	"class-quest-system/utils"
	"class-quest-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // 50MB, proof photos and scans
	})

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("⚠️  ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	origins := strings.Split(allowedOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-User-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Class{},
		&models.User{},
		&models.Character{},
		&models.Mission{},
		&models.BonusCard{},
		&models.Level{},
		&models.StudentUpload{},
		&models.XPTransaction{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	// Missing R2 credentials disable uploads but never block startup.
	storage, err := utils.NewR2Storage(utils.LoadR2ConfigFromEnv())
	if err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}
	if !storage.Enabled() {
		log.Println("⚠️  R2 not configured — proof uploads disabled, catalog images fall back to local disk")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	userService := services.NewUserService(db)
	catalogService := services.NewCatalogService(db)
	progressionService := services.NewProgressionService(db)
	onboardingService := services.NewOnboardingService(db, rng)
	uploadService := services.NewUploadService(db, storage)

	if err := userService.EnsureAdmin(os.Getenv("ADMIN_NAME"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		log.Fatal("failed to seed admin account:", err)
	}

	retentionDays, _ := strconv.Atoi(os.Getenv("XP_LOG_RETENTION_DAYS"))
	retention := workers.NewRetentionWorker(db, retentionDays)
	if err := retention.Start(); err != nil {
		log.Fatal("failed to start retention worker:", err)
	}
	defer retention.Stop()

	handlers.SetupAuthRoutes(app, userService)
	handlers.SetupStudentRoutes(app, db, onboardingService, progressionService, uploadService, catalogService)
	handlers.SetupAdminRoutes(app, db, userService, catalogService, progressionService, uploadService)

	app.Static("/uploads", "./uploads")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Printf("✅ CORS configured for origins: %s", strings.Join(origins, ","))

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
