package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dream2405/healthy-meal-backend/config"
	"github.com/dream2405/healthy-meal-backend/models"

	"gorm.io/gorm"
)

type UserService struct{}

func NewUserService() *UserService {
	return &UserService{}
}

func (s *UserService) Get(userID string) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Delete(userID string) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}
	return config.DB.Delete(user).Error
}

// CriterionWeights parses the user's eight-percent vector. An empty field
// reads as the neutral default; a malformed one is a data-integrity error.
func (s *UserService) CriterionWeights(user *models.User) ([models.NutrientCount]int, error) {
	var out [models.NutrientCount]int

	raw := user.CritWeight
	if strings.TrimSpace(raw) == "" {
		raw = models.DefaultCritWeight
	}
	fields := strings.Fields(raw)
	if len(fields) != models.NutrientCount {
		return out, fmt.Errorf("%w: criterion weight %q has %d fields, want %d",
			ErrDataIntegrity, user.CritWeight, len(fields), models.NutrientCount)
	}
	for i, field := range fields {
		pct, err := strconv.Atoi(field)
		if err != nil {
			return out, fmt.Errorf("%w: criterion weight %q: %v", ErrDataIntegrity, user.CritWeight, err)
		}
		out[i] = pct
	}
	return out, nil
}

func (s *UserService) SetCriterionWeights(userID string, percents [models.NutrientCount]int) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}
	fields := make([]string, models.NutrientCount)
	for i, pct := range percents {
		fields[i] = strconv.Itoa(pct)
	}
	user.CritWeight = strings.Join(fields, " ")
	return config.DB.Save(user).Error
}

// WeightedCriterion resolves the user's age/gender criterion and rescales
// each target by the user's percent vector. Returns nil when no bracket
// covers the user, letting the scorer fall through to the next tier.
func (s *UserService) WeightedCriterion(user *models.User) (*models.DietCriterion, error) {
	criterion, err := s.FindCriterion(Age(user.Birthday), user.Gender)
	if err != nil || criterion == nil {
		return nil, err
	}

	percents, err := s.CriterionWeights(user)
	if err != nil {
		return nil, err
	}

	targets := criterion.Amounts()
	for i := range targets {
		targets[i] *= float64(percents[i]) / 100
	}
	criterion.SetAmounts(targets)
	return criterion, nil
}

// FindCriterion returns the bracket covering (age, gender), or nil.
func (s *UserService) FindCriterion(age int, gender string) (*models.DietCriterion, error) {
	var criterion models.DietCriterion
	err := config.DB.
		Where("start_age <= ? AND end_age >= ? AND gender = ?", age, age, gender).
		First(&criterion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &criterion, nil
}

// Age in whole years as of today.
func Age(birthday time.Time) int {
	now := time.Now()
	years := now.Year() - birthday.Year()
	if now.YearDay() < birthday.YearDay() {
		years--
	}
	return years
}
