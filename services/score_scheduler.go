package services

import (
	"time"

	"github.com/dream2405/healthy-meal-backend/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartScoreScheduler recomputes yesterday's scores for all users every
// midnight. Per-user rows are independent, so the job needs no locking
// beyond what the score service already does.
func StartScoreScheduler(scores *ScoreService) *cron.Cron {
	log := logger.L()
	c := cron.New()
	_, err := c.AddFunc("0 0 * * *", func() {
		yesterday := time.Now().AddDate(0, 0, -1)
		log.Info("Nightly score recompute started",
			zap.String("day", DateOf(yesterday).Format("2006-01-02")))
		scores.RecomputeDay(yesterday)
	})
	if err != nil {
		log.Fatal("Failed to schedule nightly score job", zap.Error(err))
	}
	c.Start()
	return c
}
