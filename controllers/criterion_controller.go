package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetDietCriterion looks up the recommended daily amounts for an age and
// gender bracket.
func GetDietCriterion(c *gin.Context) {
	age, err := strconv.Atoi(c.Query("age"))
	if err != nil || age < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "age must be a non-negative integer"})
		return
	}
	gender := c.Query("gender")
	if gender != "M" && gender != "F" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gender must be M or F"})
		return
	}

	criterion, err := userSvc.FindCriterion(age, gender)
	if err != nil {
		errStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, criterion)
}
