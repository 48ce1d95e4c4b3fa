package services

import (
	"errors"
	"testing"

	"github.com/dream2405/healthy-meal-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriterionWeights(t *testing.T) {
	svc := NewUserService()

	user := &models.User{CritWeight: "100 80 100 120 100 100 50 100"}
	weights, err := svc.CriterionWeights(user)
	require.NoError(t, err)
	assert.Equal(t, 80, weights[models.Carbohydrate])
	assert.Equal(t, 50, weights[models.Sodium])

	// Empty reads as the neutral default.
	weights, err = svc.CriterionWeights(&models.User{})
	require.NoError(t, err)
	for _, w := range weights {
		assert.Equal(t, 100, w)
	}

	_, err = svc.CriterionWeights(&models.User{CritWeight: "100 100"})
	assert.True(t, errors.Is(err, ErrDataIntegrity))

	_, err = svc.CriterionWeights(&models.User{CritWeight: "100 100 100 100 100 100 100 abc"})
	assert.True(t, errors.Is(err, ErrDataIntegrity))
}

func TestWeightedCriterion(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	targets := seedCriterion(t, db)

	svc := NewUserService()

	// Neutral percents leave the bracket targets untouched.
	criterion, err := svc.WeightedCriterion(user)
	require.NoError(t, err)
	require.NotNil(t, criterion)
	assert.Equal(t, targets, criterion.Amounts())

	// Halving the energy percent halves only the energy target.
	user.CritWeight = "50 100 100 100 100 100 100 100"
	criterion, err = svc.WeightedCriterion(user)
	require.NoError(t, err)
	require.NotNil(t, criterion)
	assert.InDelta(t, targets[models.Energy]/2, criterion.Amounts()[models.Energy], 1e-9)
	assert.Equal(t, targets[models.Protein], criterion.Amounts()[models.Protein])
}

func TestWeightedCriterionNoBracket(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")

	criterion, err := NewUserService().WeightedCriterion(user)
	require.NoError(t, err)
	assert.Nil(t, criterion)
}
