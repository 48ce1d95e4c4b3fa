package config

import (
	"fmt"
	"os"

	"github.com/dream2405/healthy-meal-backend/logger"
	"github.com/dream2405/healthy-meal-backend/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	log := logger.L()
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system env")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		mustEnv("DB_HOST"),
		mustEnv("DB_USER"),
		mustEnv("DB_PASSWORD"),
		mustEnv("DB_NAME"),
		mustEnv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Food{},
		&models.MealInfo{},
		&models.MealInfoFood{},
		&models.DailyIntake{},
		&models.NutriWeight{},
		&models.DietCriterion{},
		&models.DietScoringCriterion{},
	); err != nil {
		log.Fatal("AutoMigrate failed", zap.Error(err))
	}
}

func mustEnv(key string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	logger.L().Fatal("Required environment variable not set", zap.String("key", key))
	return ""
}
