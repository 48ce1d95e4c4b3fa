package services

import (
	"errors"
	"testing"
	"time"

	"github.com/dream2405/healthy-meal-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestParseServingWeight(t *testing.T) {
	v, err := parseServingWeight("300g")
	require.NoError(t, err)
	assert.Equal(t, 300.0, v)

	v, err = parseServingWeight("1.5kg")
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	_, err = parseServingWeight("")
	assert.True(t, errors.Is(err, ErrDataIntegrity))

	_, err = parseServingWeight("한 컵")
	assert.True(t, errors.Is(err, ErrDataIntegrity))
}

func seedFood(t *testing.T, db *gorm.DB, name, weight string, nutrients models.NutrientVector) *models.Food {
	t.Helper()
	food := &models.Food{
		Name:               name,
		RepresentativeFood: name,
		MajorCategory:      "밥류",
		Weight:             weight,
		EnergyKcal:         f64(nutrients[models.Energy]),
		CarbohydrateG:      f64(nutrients[models.Carbohydrate]),
		FatG:               f64(nutrients[models.Fat]),
		ProteinG:           f64(nutrients[models.Protein]),
		CelluloseG:         f64(nutrients[models.Cellulose]),
		SugarsG:            f64(nutrients[models.Sugars]),
		SodiumMg:           f64(nutrients[models.Sodium]),
		CholesterolMg:      f64(nutrients[models.Cholesterol]),
	}
	require.NoError(t, db.Create(food).Error)
	return food
}

func dailyAmounts(t *testing.T, db *gorm.DB, userID string, day time.Time) models.NutrientVector {
	t.Helper()
	var intake models.DailyIntake
	require.NoError(t, db.Where("user_id = ? AND day = ?", userID, DateOf(day)).First(&intake).Error)
	return intake.Amounts()
}

func TestConfirmFoodsAccumulates(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")

	per100g := models.NutrientVector{
		models.Energy:       150,
		models.Carbohydrate: 30,
		models.Fat:          2,
		models.Protein:      5,
		models.Cellulose:    1,
		models.Sugars:       3,
		models.Sodium:       400,
		models.Cholesterol:  10,
	}
	food := seedFood(t, db, "국밥_돼지머리", "200g", per100g)

	meals := NewMealService(NewIntakeService())
	meal, err := meals.Create(user.ID, "meal-images/a.jpg")
	require.NoError(t, err)

	// 200g serving at half a portion: effective ratio 200/100 * 0.5 = 1.
	confirmed, err := meals.ConfirmFoods(user.ID, meal.ID, []FoodConfirmation{
		{FoodID: food.ID, IntakeAmount: 0.5},
	})
	require.NoError(t, err)
	require.Len(t, confirmed.Foods, 1)

	got := dailyAmounts(t, db, user.ID, meal.CreatedAt)
	for _, n := range models.AllNutrients() {
		assert.InDelta(t, per100g[n], got[n], 1e-9, n.Name())
	}
}

func TestConfirmFoodsTwiceRejected(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	food := seedFood(t, db, "국밥_순대", "300g", models.NutrientVector{models.Energy: 100})

	meals := NewMealService(NewIntakeService())
	meal, err := meals.Create(user.ID, "meal-images/a.jpg")
	require.NoError(t, err)

	items := []FoodConfirmation{{FoodID: food.ID, IntakeAmount: 1}}
	_, err = meals.ConfirmFoods(user.ID, meal.ID, items)
	require.NoError(t, err)

	_, err = meals.ConfirmFoods(user.ID, meal.ID, items)
	assert.True(t, errors.Is(err, ErrAlreadyConfirmed))

	// The rejected rerun must not have touched the totals.
	got := dailyAmounts(t, db, user.ID, meal.CreatedAt)
	assert.InDelta(t, 300.0, got[models.Energy], 1e-9)
}

func TestConfirmFoodsValidation(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")

	meals := NewMealService(NewIntakeService())
	meal, err := meals.Create(user.ID, "meal-images/a.jpg")
	require.NoError(t, err)

	_, err = meals.ConfirmFoods(user.ID, meal.ID, nil)
	assert.True(t, errors.Is(err, ErrDataIntegrity))

	_, err = meals.ConfirmFoods(user.ID, meal.ID, []FoodConfirmation{{FoodID: 999, IntakeAmount: 1}})
	assert.True(t, errors.Is(err, ErrDataIntegrity))
}

func TestConfirmFoodsMalformedWeight(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	bad := seedFood(t, db, "이상한밥", "한 그릇", models.NutrientVector{models.Energy: 100})

	meals := NewMealService(NewIntakeService())
	meal, err := meals.Create(user.ID, "meal-images/a.jpg")
	require.NoError(t, err)

	_, err = meals.ConfirmFoods(user.ID, meal.ID, []FoodConfirmation{{FoodID: bad.ID, IntakeAmount: 1}})
	assert.True(t, errors.Is(err, ErrDataIntegrity))

	// The failed confirmation must leave no links and no totals row.
	var links int64
	require.NoError(t, db.Model(&models.MealInfoFood{}).Count(&links).Error)
	assert.Zero(t, links)
	var intakes int64
	require.NoError(t, db.Model(&models.DailyIntake{}).Count(&intakes).Error)
	assert.Zero(t, intakes)
}

func TestDeleteMealReversesTotals(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	foodA := seedFood(t, db, "국밥_돼지머리", "200g", models.NutrientVector{models.Energy: 150, models.Sodium: 400})
	foodB := seedFood(t, db, "국밥_순대", "100g", models.NutrientVector{models.Energy: 90, models.Sodium: 250})

	meals := NewMealService(NewIntakeService())

	mealA, err := meals.Create(user.ID, "meal-images/a.jpg")
	require.NoError(t, err)
	_, err = meals.ConfirmFoods(user.ID, mealA.ID, []FoodConfirmation{{FoodID: foodA.ID, IntakeAmount: 1}})
	require.NoError(t, err)

	mealB, err := meals.Create(user.ID, "meal-images/b.jpg")
	require.NoError(t, err)
	_, err = meals.ConfirmFoods(user.ID, mealB.ID, []FoodConfirmation{{FoodID: foodB.ID, IntakeAmount: 2}})
	require.NoError(t, err)

	// A contributes 200/100*1 = 2x, B contributes 100/100*2 = 2x.
	got := dailyAmounts(t, db, user.ID, mealA.CreatedAt)
	assert.InDelta(t, 2*150+2*90, got[models.Energy], 1e-9)
	assert.InDelta(t, 2*400+2*250, got[models.Sodium], 1e-9)

	imgPath, err := meals.Delete(user.ID, mealA.ID)
	require.NoError(t, err)
	assert.Equal(t, "meal-images/a.jpg", imgPath)

	got = dailyAmounts(t, db, user.ID, mealB.CreatedAt)
	assert.InDelta(t, 2*90, got[models.Energy], 1e-9)
	assert.InDelta(t, 2*250, got[models.Sodium], 1e-9)

	_, err = meals.Delete(user.ID, mealB.ID)
	require.NoError(t, err)

	got = dailyAmounts(t, db, user.ID, mealB.CreatedAt)
	for _, n := range models.AllNutrients() {
		assert.Zero(t, got[n], n.Name())
	}
}

func TestSubtractClampsAtZero(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	food := seedFood(t, db, "국밥_순대", "100g", models.NutrientVector{models.Energy: 90})

	intakes := NewIntakeService()
	meals := NewMealService(intakes)
	meal, err := meals.Create(user.ID, "meal-images/a.jpg")
	require.NoError(t, err)
	confirmed, err := meals.ConfirmFoods(user.ID, meal.ID, []FoodConfirmation{{FoodID: food.ID, IntakeAmount: 1}})
	require.NoError(t, err)

	require.NoError(t, intakes.ApplyDelete(confirmed, user.ID, confirmed.CreatedAt))
	require.NoError(t, intakes.ApplyDelete(confirmed, user.ID, confirmed.CreatedAt))

	got := dailyAmounts(t, db, user.ID, confirmed.CreatedAt)
	assert.Zero(t, got[models.Energy])
}

func TestMealOwnership(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	meals := NewMealService(NewIntakeService())
	meal, err := meals.Create(alice.ID, "meal-images/a.jpg")
	require.NoError(t, err)

	_, err = meals.Get("bob", meal.ID)
	assert.True(t, errors.Is(err, ErrForbidden))

	_, err = meals.Get("alice", 999)
	assert.True(t, errors.Is(err, ErrNotFound))
}
