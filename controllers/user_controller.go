package controllers

import (
	"net/http"

	"github.com/dream2405/healthy-meal-backend/models"

	"github.com/gin-gonic/gin"
)

func GetUser(c *gin.Context) {
	userID := pathUser(c)
	if userID == "" {
		return
	}
	user, err := userSvc.Get(userID)
	if err != nil {
		errStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func DeleteUser(c *gin.Context) {
	userID := pathUser(c)
	if userID == "" {
		return
	}
	if err := userSvc.Delete(userID); err != nil {
		errStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func GetCriterionWeight(c *gin.Context) {
	userID := pathUser(c)
	if userID == "" {
		return
	}
	user, err := userSvc.Get(userID)
	if err != nil {
		errStatus(c, err)
		return
	}
	weights, err := userSvc.CriterionWeights(user)
	if err != nil {
		errStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weights": weights})
}

func PutCriterionWeight(c *gin.Context) {
	userID := pathUser(c)
	if userID == "" {
		return
	}
	var body struct {
		Weights [models.NutrientCount]int `json:"weights" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := userSvc.SetCriterionWeights(userID, body.Weights); err != nil {
		errStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weights": body.Weights})
}
