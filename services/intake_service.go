package services

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/dream2405/healthy-meal-backend/config"
	"github.com/dream2405/healthy-meal-backend/logger"
	"github.com/dream2405/healthy-meal-backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IntakeService maintains the per-(user, day) running nutrient totals.
// Every mutation locks the day's row inside a transaction so two meals
// confirmed concurrently for the same day cannot lose updates.
type IntakeService struct{}

func NewIntakeService() *IntakeService {
	return &IntakeService{}
}

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// parseServingWeight reads the numeric part of the catalog's free-text
// weight field ("300g" -> 300). Units are ignored, which the catalog
// inherited; a value with no digits at all is a data-integrity error, never
// a silent zero.
func parseServingWeight(weight string) (float64, error) {
	stripped := nonNumeric.ReplaceAllString(weight, "")
	if stripped == "" {
		return 0, fmt.Errorf("%w: serving weight %q has no numeric part", ErrDataIntegrity, weight)
	}
	v, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: serving weight %q: %v", ErrDataIntegrity, weight, err)
	}
	return v, nil
}

// foodContribution scales a food's per-100g nutrients by its serving weight
// and the confirmed intake amount. Each food contributes independently;
// nothing is averaged across the meal.
func foodContribution(food *models.Food, intakeAmount float64) (models.NutrientVector, error) {
	weight, err := parseServingWeight(food.Weight)
	if err != nil {
		return models.NutrientVector{}, err
	}
	effectiveRatio := weight / 100 * intakeAmount
	return food.Nutrients().Scale(effectiveRatio), nil
}

// ApplyInsert adds every confirmed food link of the meal to the owner's
// totals for the given day, creating the row on first use.
func (s *IntakeService) ApplyInsert(meal *models.MealInfo, userID string, day time.Time) error {
	day = DateOf(day)
	log := logger.L()

	return config.DB.Transaction(func(tx *gorm.DB) error {
		intake, err := lockedDailyIntake(tx, userID, day, true)
		if err != nil {
			return err
		}

		for _, link := range meal.Foods {
			contribution, err := foodContribution(&link.Food, link.IntakeAmount)
			if err != nil {
				return fmt.Errorf("food %q: %w", link.Food.Name, err)
			}
			intake.Add(contribution)
			log.Debug("Applied food contribution",
				zap.String("food", link.Food.Name),
				zap.Float64("intakeAmount", link.IntakeAmount),
				zap.Float64("energyKcal", contribution[models.Energy]))
		}

		return tx.Save(intake).Error
	})
}

// ApplyDelete subtracts exactly what ApplyInsert added for the meal,
// clamped at zero per nutrient, so delete-after-insert restores the
// pre-insert totals and a double delete cannot go negative.
func (s *IntakeService) ApplyDelete(meal *models.MealInfo, userID string, day time.Time) error {
	day = DateOf(day)

	return config.DB.Transaction(func(tx *gorm.DB) error {
		intake, err := lockedDailyIntake(tx, userID, day, false)
		if err != nil {
			return err
		}

		for _, link := range meal.Foods {
			contribution, err := foodContribution(&link.Food, link.IntakeAmount)
			if err != nil {
				return fmt.Errorf("food %q: %w", link.Food.Name, err)
			}
			intake.Subtract(contribution)
		}

		return tx.Save(intake).Error
	})
}

// lockedDailyIntake fetches the (user, day) row under FOR UPDATE, optionally
// creating it when absent.
func lockedDailyIntake(tx *gorm.DB, userID string, day time.Time, create bool) (*models.DailyIntake, error) {
	var intake models.DailyIntake
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND day = ?", userID, day).
		First(&intake).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if !create {
			return nil, fmt.Errorf("daily intake for %s on %s: %w", userID, day.Format("2006-01-02"), ErrNotFound)
		}
		intake = models.DailyIntake{UserID: userID, Day: day}
		if err := tx.Create(&intake).Error; err != nil {
			return nil, err
		}
		return &intake, nil
	}
	if err != nil {
		return nil, err
	}
	return &intake, nil
}

func (s *IntakeService) List(userID string) ([]models.DailyIntake, error) {
	var intakes []models.DailyIntake
	err := config.DB.Where("user_id = ?", userID).Order("day DESC").Find(&intakes).Error
	return intakes, err
}

func (s *IntakeService) Get(userID string, id uint) (*models.DailyIntake, error) {
	var intake models.DailyIntake
	if err := config.DB.First(&intake, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("daily intake %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if intake.UserID != userID {
		return nil, fmt.Errorf("daily intake %d: %w", id, ErrForbidden)
	}
	return &intake, nil
}

func (s *IntakeService) Delete(userID string, id uint) error {
	intake, err := s.Get(userID, id)
	if err != nil {
		return err
	}
	return config.DB.Delete(intake).Error
}

// DateOf truncates a timestamp to its calendar day in local time.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
