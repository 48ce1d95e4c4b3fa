package controllers

import (
	"errors"
	"net/http"

	"github.com/dream2405/healthy-meal-backend/services"

	"github.com/gin-gonic/gin"
)

// Shared service instances, wired once at startup.
var (
	userSvc    *services.UserService
	foodSvc    *services.FoodService
	mealSvc    *services.MealService
	intakeSvc  *services.IntakeService
	scoreSvc   *services.ScoreService
	analyzeSvc *services.AnalyzeService
	hub        *services.RealtimeHub
)

func Init(oracle services.Oracle, h *services.RealtimeHub) {
	userSvc = services.NewUserService()
	foodSvc = services.NewFoodService()
	intakeSvc = services.NewIntakeService()
	mealSvc = services.NewMealService(intakeSvc)
	scoreSvc = services.NewScoreService(userSvc)
	analyzeSvc = services.NewAnalyzeService(foodSvc, oracle)
	hub = h
}

// ScoreService exposes the wired scorer for the scheduler.
func ScoreService() *services.ScoreService {
	return scoreSvc
}

// errStatus maps service errors onto HTTP responses.
func errStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyConfirmed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDataIntegrity):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrClassifyIncomplete):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// pathUser enforces that the authenticated user matches the :userId path
// segment. Returns "" after writing the response when they differ.
func pathUser(c *gin.Context) string {
	userID := c.Param("userId")
	if userID != c.GetString("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your record"})
		return ""
	}
	return userID
}
