package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultFoodSearchLimit = 50

// SearchFoods filters the catalog by partial name and/or major category.
func SearchFoods(c *gin.Context) {
	limit := defaultFoodSearchLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	foods, err := foodSvc.Search(c.Query("name"), c.Query("major"), limit)
	if err != nil {
		errStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

func GetFood(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("foodId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}
	food, err := foodSvc.GetByID(uint(id))
	if err != nil {
		errStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}
