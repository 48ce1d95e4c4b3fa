package main

import (
	"log"
	"os"

	"github.com/dream2405/healthy-meal-backend/config"
	"github.com/dream2405/healthy-meal-backend/controllers"
	"github.com/dream2405/healthy-meal-backend/logger"
	"github.com/dream2405/healthy-meal-backend/routes"
	"github.com/dream2405/healthy-meal-backend/services"
	"github.com/dream2405/healthy-meal-backend/utils"

	"go.uber.org/zap"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.L().Sync()

	config.InitDB()
	utils.InitS3()

	oracle, err := services.NewOpenAIService()
	if err != nil {
		logger.L().Fatal("Failed to initialize vision oracle", zap.Error(err))
	}

	hub := services.NewRealtimeHub()
	controllers.Init(oracle, hub)

	scheduler := services.StartScoreScheduler(controllers.ScoreService())
	defer scheduler.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter()
	logger.L().Info("Server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.L().Fatal("Server stopped", zap.Error(err))
	}
}
