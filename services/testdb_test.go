package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dream2405/healthy-meal-backend/config"
	"github.com/dream2405/healthy-meal-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB points config.DB at a fresh in-memory database migrated with the
// full schema. Each call gets its own database so tests stay independent.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Food{},
		&models.MealInfo{},
		&models.MealInfoFood{},
		&models.DailyIntake{},
		&models.NutriWeight{},
		&models.DietCriterion{},
		&models.DietScoringCriterion{},
	))

	config.DB = db
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string) *models.User {
	t.Helper()
	user := &models.User{
		ID:             id,
		HashedPassword: "x",
		Birthday:       time.Date(1990, 3, 14, 0, 0, 0, 0, time.Local),
		Gender:         "M",
		CritWeight:     models.DefaultCritWeight,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func f64(v float64) *float64 { return &v }
