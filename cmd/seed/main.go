package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"fittrack/internal/auth"
	"fittrack/internal/config"
	"fittrack/internal/crypto"
	"fittrack/internal/db"
	"fittrack/internal/model"
	"fittrack/internal/protect"
	"fittrack/internal/repository"
	"fittrack/internal/service"
)

func strPtr(s string) *string { return &s }

// seedUser describes one demo account with its plans and progress.
type seedUser struct {
	register  service.RegisterInput
	workout   *service.WorkoutPlanInput
	nutrition *service.NutritionPlanInput
	progress  *service.ProgressInput
}

func main() {
	log.Println("starting seed...")

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}
	cfg := config.Load()

	key, err := crypto.NewKeyManager(cfg.EnvFile).LoadOrCreate()
	if err != nil {
		log.Fatalf("encryption key init: %v", err)
	}
	cipher, err := crypto.NewCipher(key)
	if err != nil {
		log.Fatalf("cipher init: %v", err)
	}
	protector := protect.NewFieldProtector(cipher)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.WorkoutPlan{},
		&model.NutritionPlan{},
		&model.ProgressEntry{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// Seeding goes through the services so hashing and field protection
	// apply exactly as they do for live requests.
	userRepo := repository.NewUserRepository(gormDB)
	hasher := crypto.NewBcryptHasher()
	authService := service.NewAuthService(userRepo, hasher, protector, auth.NewMemoryStore(), cfg.PersistTimeout)
	workoutService := service.NewWorkoutPlanService(repository.NewWorkoutPlanRepository(gormDB), protector, cfg.PersistTimeout)
	nutritionService := service.NewNutritionPlanService(repository.NewNutritionPlanRepository(gormDB), protector, cfg.PersistTimeout)
	progressService := service.NewProgressService(repository.NewProgressRepository(gormDB), protector, cfg.PersistTimeout)

	today := time.Now().Truncate(24 * time.Hour)

	users := []seedUser{
		{
			register: service.RegisterInput{
				Username:    "john_doe",
				Email:       "john@example.com",
				Password:    "john123",
				Age:         28,
				Nationality: strPtr("American"),
				Description: strPtr("Fitness enthusiast"),
				Hobbies:     strPtr("Running, Hiking"),
			},
			workout: &service.WorkoutPlanInput{
				Title:       "Beginner Cardio",
				Description: strPtr("A beginner-friendly cardio workout plan."),
				Duration:    30,
				StartDate:   today,
				EndDate:     today.AddDate(0, 0, 30),
			},
			nutrition: &service.NutritionPlanInput{
				Title:       "Weight Loss Plan",
				Description: strPtr("Low-calorie diet to aid weight loss."),
				StartDate:   today,
				EndDate:     today.AddDate(0, 0, 30),
			},
			progress: &service.ProgressInput{
				Weight:       decimal.NewFromFloat(75.5),
				Measurements: strPtr("Chest: 90 cm, Waist: 80 cm"),
				Date:         today,
			},
		},
		{
			register: service.RegisterInput{
				Username:    "jane_smith",
				Email:       "jane@example.com",
				Password:    "jane123",
				Age:         32,
				Nationality: strPtr("Canadian"),
				Description: strPtr("Nutrition expert"),
				Hobbies:     strPtr("Cooking, Yoga"),
			},
			workout: &service.WorkoutPlanInput{
				Title:       "Strength Training",
				Description: strPtr("An advanced strength training program."),
				Duration:    60,
				StartDate:   today,
				EndDate:     today.AddDate(0, 0, 60),
			},
			nutrition: &service.NutritionPlanInput{
				Title:       "Muscle Gain Plan",
				Description: strPtr("High-protein diet for muscle building."),
				StartDate:   today,
				EndDate:     today.AddDate(0, 0, 45),
			},
			progress: &service.ProgressInput{
				Weight:       decimal.NewFromFloat(68.0),
				Measurements: strPtr("Chest: 85 cm, Waist: 70 cm"),
				Date:         today,
			},
		},
	}

	ctx := context.Background()
	for _, su := range users {
		user, err := authService.Register(ctx, su.register)
		if err != nil {
			log.Fatalf("seed user %s: %v", su.register.Username, err)
		}
		log.Printf("created user %s (%s)", user.Username, user.ID)

		su.workout.UserID = user.ID
		if _, err := workoutService.Create(ctx, *su.workout); err != nil {
			log.Fatalf("seed workout plan for %s: %v", user.Username, err)
		}
		su.nutrition.UserID = user.ID
		if _, err := nutritionService.Create(ctx, *su.nutrition); err != nil {
			log.Fatalf("seed nutrition plan for %s: %v", user.Username, err)
		}
		su.progress.UserID = user.ID
		if _, err := progressService.Create(ctx, *su.progress); err != nil {
			log.Fatalf("seed progress entry for %s: %v", user.Username, err)
		}
	}

	log.Println("database seeded successfully")
}
