package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

func ListDailyIntakes(c *gin.Context) {
	userID := pathUser(c)
	if userID == "" {
		return
	}
	intakes, err := intakeSvc.List(userID)
	if err != nil {
		errStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, intakes)
}

func GetDailyIntake(c *gin.Context) {
	userID := pathUser(c)
	if userID == "" {
		return
	}
	id, ok := pathIntakeID(c)
	if !ok {
		return
	}
	intake, err := intakeSvc.Get(userID, id)
	if err != nil {
		errStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, intake)
}

// UpdateDailyScore recomputes and persists the dietary score for one day.
// Defaults to today when no date is given.
func UpdateDailyScore(c *gin.Context) {
	userID := pathUser(c)
	if userID == "" {
		return
	}

	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	intake, err := scoreSvc.UpdateScore(userID, day)
	if err != nil {
		errStatus(c, err)
		return
	}

	hub.BroadcastEvent(userID, "score_updated", gin.H{
		"daily_intake_id": intake.ID,
		"day":             intake.Day.Format("2006-01-02"),
		"score":           intake.Score,
	})
	c.JSON(http.StatusOK, intake)
}

func DeleteDailyIntake(c *gin.Context) {
	userID := pathUser(c)
	if userID == "" {
		return
	}
	id, ok := pathIntakeID(c)
	if !ok {
		return
	}
	if err := intakeSvc.Delete(userID, id); err != nil {
		errStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathIntakeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("intakeId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid daily intake id"})
		return 0, false
	}
	return uint(id), true
}
