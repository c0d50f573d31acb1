package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fittrack/docs"
	"fittrack/internal/auth"
	"fittrack/internal/cache"
	"fittrack/internal/config"
	"fittrack/internal/crypto"
	"fittrack/internal/db"
	"fittrack/internal/handler"
	"fittrack/internal/model"
	"fittrack/internal/protect"
	"fittrack/internal/repository"
	"fittrack/internal/router"
	"fittrack/internal/service"
)

// @title FitTrack API
// @version 1.0
// @description Fitness tracking API with session authentication and field-level encryption of sensitive data.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	// .env is both startup configuration and the key manager's durable
	// store. A missing file is fine on first start.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	// The encryption key must be in place before anything can touch
	// sensitive fields. LoadOrCreate persists a generated key before
	// returning it.
	keyManager := crypto.NewKeyManager(cfg.EnvFile)
	key, err := keyManager.LoadOrCreate()
	if err != nil {
		log.Fatalf("encryption key init: %v", err)
	}
	cipher, err := crypto.NewCipher(key)
	if err != nil {
		log.Fatalf("cipher init: %v", err)
	}
	protector := protect.NewFieldProtector(cipher)

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.ProgressEntry{},
			&model.NutritionPlan{},
			&model.WorkoutPlan{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.WorkoutPlan{},
		&model.NutritionPlan{},
		&model.ProgressEntry{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Sessions live in Redis when configured so processes can share them;
	// the in-memory store is the volatile fallback.
	var sessions auth.SessionStore
	if cfg.RedisAddr != "" {
		sessions = auth.NewRedisStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	} else {
		sessions = auth.NewMemoryStore()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	workoutRepo := repository.NewWorkoutPlanRepository(gormDB)
	nutritionRepo := repository.NewNutritionPlanRepository(gormDB)
	progressRepo := repository.NewProgressRepository(gormDB)

	// Initialize services
	hasher := crypto.NewBcryptHasher()
	authService := service.NewAuthService(userRepo, hasher, protector, sessions, cfg.PersistTimeout)
	userService := service.NewUserService(userRepo, protector, cacheClient, cfg.PersistTimeout)
	workoutService := service.NewWorkoutPlanService(workoutRepo, protector, cfg.PersistTimeout)
	nutritionService := service.NewNutritionPlanService(nutritionRepo, protector, cfg.PersistTimeout)
	progressService := service.NewProgressService(progressRepo, protector, cfg.PersistTimeout)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	workoutHandler := handler.NewWorkoutPlanHandler(workoutService)
	nutritionHandler := handler.NewNutritionPlanHandler(nutritionService)
	progressHandler := handler.NewProgressHandler(progressService)

	// Register routes
	router.Register(
		e,
		authHandler,
		userHandler,
		workoutHandler,
		nutritionHandler,
		progressHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
