package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/dream2405/healthy-meal-backend/services"
	"github.com/dream2405/healthy-meal-backend/utils"

	"github.com/gin-gonic/gin"
)

// maxMealImageBytes caps uploads before they hit S3.
const maxMealImageBytes = 10 << 20

// UploadMeal accepts a multipart meal photo, stores it, and creates an
// unconfirmed meal record pointing at the stored key.
func UploadMeal(c *gin.Context) {
	userID := pathUser(c)
	if userID == "" {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxMealImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds 10MB"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}

	key, err := utils.UploadMealImage(data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	meal, err := mealSvc.Create(userID, key)
	if err != nil {
		errStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// AnalyzeMeal runs the food-identification cascade over the meal's stored
// photo and returns candidate catalog entries for the user to confirm.
func AnalyzeMeal(c *gin.Context) {
	userID := pathUser(c)
	if userID == "" {
		return
	}
	mealID, ok := pathMealID(c)
	if !ok {
		return
	}

	meal, err := mealSvc.Get(userID, mealID)
	if err != nil {
		errStatus(c, err)
		return
	}

	base64Image, err := utils.GetMealImageBase64(meal.ImgPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meal image"})
		return
	}

	result, err := analyzeSvc.IdentifyFoods(c.Request.Context(), base64Image)
	if err != nil {
		errStatus(c, err)
		return
	}

	names := make([]string, 0, len(result.Foods))
	for _, food := range result.Foods {
		names = append(names, food.Name)
	}
	if len(names) == 0 {
		names = []string{services.UnidentifiedLabel}
	}

	hub.BroadcastEvent(userID, "meal_analyzed", gin.H{
		"meal_info_id": meal.ID,
		"food_names":   names,
	})
	c.JSON(http.StatusOK, gin.H{
		"food_names": names,
		"foods":      result.Foods,
		"incomplete": result.Incomplete,
	})
}

// ConfirmMealFoods attaches the user-chosen foods to the meal and updates
// the day's nutrient totals.
func ConfirmMealFoods(c *gin.Context) {
	userID := pathUser(c)
	if userID == "" {
		return
	}
	mealID, ok := pathMealID(c)
	if !ok {
		return
	}

	var body struct {
		Foods []services.FoodConfirmation `json:"foods" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := mealSvc.ConfirmFoods(userID, mealID, body.Foods)
	if err != nil {
		errStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func ListMeals(c *gin.Context) {
	userID := pathUser(c)
	if userID == "" {
		return
	}
	meals, err := mealSvc.List(userID)
	if err != nil {
		errStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func GetMeal(c *gin.Context) {
	userID := pathUser(c)
	if userID == "" {
		return
	}
	mealID, ok := pathMealID(c)
	if !ok {
		return
	}
	meal, err := mealSvc.Get(userID, mealID)
	if err != nil {
		errStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func UpdateMeal(c *gin.Context) {
	userID := pathUser(c)
	if userID == "" {
		return
	}
	mealID, ok := pathMealID(c)
	if !ok {
		return
	}

	var body struct {
		IntakeAmount *float64 `json:"intake_amount"`
		Diary        *string  `json:"diary"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := mealSvc.Update(userID, mealID, body.IntakeAmount, body.Diary)
	if err != nil {
		errStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func DeleteMeal(c *gin.Context) {
	userID := pathUser(c)
	if userID == "" {
		return
	}
	mealID, ok := pathMealID(c)
	if !ok {
		return
	}

	imgPath, err := mealSvc.Delete(userID, mealID)
	if err != nil {
		errStatus(c, err)
		return
	}
	if imgPath != "" {
		_ = utils.DeleteMealImage(imgPath)
	}
	c.Status(http.StatusNoContent)
}

func pathMealID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("mealId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return 0, false
	}
	return uint(id), true
}
