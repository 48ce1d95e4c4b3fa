package services

import (
	"errors"
	"fmt"

	"github.com/dream2405/healthy-meal-backend/config"
	"github.com/dream2405/healthy-meal-backend/models"

	"gorm.io/gorm"
)

// MealService owns the MealInfo lifecycle: created empty on photo upload,
// food links attached only by the explicit confirmation step, totals
// reversed on delete.
type MealService struct {
	intake *IntakeService
}

func NewMealService(intake *IntakeService) *MealService {
	return &MealService{intake: intake}
}

// FoodConfirmation is one user-confirmed food with its intake multiplier.
type FoodConfirmation struct {
	FoodID       uint    `json:"food_id"`
	IntakeAmount float64 `json:"intake_amount"`
}

func (s *MealService) Create(userID, imgPath string) (*models.MealInfo, error) {
	meal := &models.MealInfo{UserID: userID, ImgPath: imgPath}
	if err := config.DB.Create(meal).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

func (s *MealService) Get(userID string, mealID uint) (*models.MealInfo, error) {
	var meal models.MealInfo
	err := config.DB.Preload("Foods.Food").First(&meal, mealID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("meal info %d: %w", mealID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if meal.UserID != userID {
		return nil, fmt.Errorf("meal info %d: %w", mealID, ErrForbidden)
	}
	return &meal, nil
}

func (s *MealService) List(userID string) ([]models.MealInfo, error) {
	var meals []models.MealInfo
	err := config.DB.Preload("Foods.Food").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&meals).Error
	return meals, err
}

// ConfirmFoods attaches the user-chosen foods to the meal and feeds the
// day's running totals. A meal is confirmed at most once; re-running the
// confirmation cannot double-count.
func (s *MealService) ConfirmFoods(userID string, mealID uint, items []FoodConfirmation) (*models.MealInfo, error) {
	meal, err := s.Get(userID, mealID)
	if err != nil {
		return nil, err
	}
	if len(meal.Foods) > 0 {
		return nil, fmt.Errorf("meal info %d: %w", mealID, ErrAlreadyConfirmed)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: confirmation requires at least one food", ErrDataIntegrity)
	}

	// Validate every food and its serving weight up front so a bad item
	// aborts the whole confirmation instead of leaving partial links.
	for _, item := range items {
		var food models.Food
		if err := config.DB.First(&food, item.FoodID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: food %d not in catalog", ErrDataIntegrity, item.FoodID)
			}
			return nil, err
		}
		if _, err := parseServingWeight(food.Weight); err != nil {
			return nil, fmt.Errorf("food %q: %w", food.Name, err)
		}
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			link := models.MealInfoFood{
				MealInfoID:   meal.ID,
				FoodID:       item.FoodID,
				IntakeAmount: item.IntakeAmount,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	meal, err = s.Get(userID, mealID)
	if err != nil {
		return nil, err
	}
	if err := s.intake.ApplyInsert(meal, userID, meal.CreatedAt); err != nil {
		return nil, err
	}
	return meal, nil
}

// Update patches the meal-level amount and/or diary note.
func (s *MealService) Update(userID string, mealID uint, amount *float64, diary *string) (*models.MealInfo, error) {
	meal, err := s.Get(userID, mealID)
	if err != nil {
		return nil, err
	}
	if amount == nil && diary == nil {
		return meal, nil
	}
	if amount != nil {
		meal.IntakeAmount = *amount
	}
	if diary != nil {
		meal.Diary = *diary
	}
	if err := config.DB.Save(meal).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

// Delete reverses the meal's contribution to its day's totals, removes the
// link rows and the meal, and hands back the image key for storage cleanup.
func (s *MealService) Delete(userID string, mealID uint) (string, error) {
	meal, err := s.Get(userID, mealID)
	if err != nil {
		return "", err
	}

	if len(meal.Foods) > 0 {
		if err := s.intake.ApplyDelete(meal, userID, meal.CreatedAt); err != nil {
			return "", err
		}
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_info_id = ?", meal.ID).Delete(&models.MealInfoFood{}).Error; err != nil {
			return err
		}
		return tx.Delete(meal).Error
	})
	if err != nil {
		return "", err
	}
	return meal.ImgPath, nil
}
