package controllers

import (
	"net/http"
	"time"

	"github.com/dream2405/healthy-meal-backend/config"
	"github.com/dream2405/healthy-meal-backend/models"
	"github.com/dream2405/healthy-meal-backend/utils"

	"github.com/gin-gonic/gin"
)

type signupRequest struct {
	ID       string    `json:"id" binding:"required"`
	Password string    `json:"password" binding:"required"`
	Birthday time.Time `json:"birthday"`
	Gender   string    `json:"gender" binding:"required,oneof=M F"`
}

func Signup(c *gin.Context) {
	var body signupRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	if err := config.DB.First(&existing, "id = ?", body.ID).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "user id already taken"})
		return
	}

	hashed, err := utils.HashPassword(body.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user := models.User{
		ID:             body.ID,
		HashedPassword: hashed,
		Birthday:       body.Birthday,
		Gender:         body.Gender,
		CritWeight:     models.DefaultCritWeight,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func Login(c *gin.Context) {
	var body struct {
		ID       string `json:"id" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", body.ID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	if !utils.CheckPasswordHash(body.Password, user.HashedPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect password"})
		return
	}

	token, err := utils.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
