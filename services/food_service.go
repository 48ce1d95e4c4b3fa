package services

import (
	"errors"
	"fmt"

	"github.com/dream2405/healthy-meal-backend/config"
	"github.com/dream2405/healthy-meal-backend/models"

	"gorm.io/gorm"
)

// FoodService is the query layer over the taxonomy catalog. The three
// distinct-label lookups feed the classification cascade one level at a
// time; EntriesByName resolves validated leaf names back into rows.
type FoodService struct{}

func NewFoodService() *FoodService {
	return &FoodService{}
}

func (s *FoodService) DistinctMajorCategories() ([]string, error) {
	var out []string
	err := config.DB.Model(&models.Food{}).
		Where("major_category <> ''").
		Distinct().
		Pluck("major_category", &out).Error
	return out, err
}

func (s *FoodService) RepresentativeFoodsOf(majorCategory string) ([]string, error) {
	var out []string
	err := config.DB.Model(&models.Food{}).
		Where("major_category = ? AND representative_food <> ''", majorCategory).
		Distinct().
		Pluck("representative_food", &out).Error
	return out, err
}

func (s *FoodService) LeafNamesOf(representativeFood string) ([]string, error) {
	var out []string
	err := config.DB.Model(&models.Food{}).
		Where("representative_food = ?", representativeFood).
		Distinct().
		Pluck("name", &out).Error
	return out, err
}

// EntriesByName may return several physically distinct rows sharing a name.
func (s *FoodService) EntriesByName(name string) ([]models.Food, error) {
	var foods []models.Food
	err := config.DB.Where("name = ?", name).Find(&foods).Error
	return foods, err
}

func (s *FoodService) GetByID(id uint) (*models.Food, error) {
	var food models.Food
	if err := config.DB.First(&food, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("food %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &food, nil
}

// Search lists foods filtered by partial name and/or exact major category.
func (s *FoodService) Search(name, majorCategory string, limit int) ([]models.Food, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	q := config.DB.Model(&models.Food{}).Limit(limit)
	if name != "" {
		q = q.Where("name LIKE ?", "%"+name+"%")
	}
	if majorCategory != "" {
		q = q.Where("major_category = ?", majorCategory)
	}
	var foods []models.Food
	err := q.Find(&foods).Error
	return foods, err
}
