package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dream2405/healthy-meal-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type scriptedCall struct {
	answer string
	err    error
}

// fakeOracle replays a fixed script of answers, one per call, in cascade
// order.
type fakeOracle struct {
	script []scriptedCall
	calls  int
}

func (o *fakeOracle) next() (string, error) {
	if o.calls >= len(o.script) {
		return "", fmt.Errorf("unexpected oracle call %d", o.calls+1)
	}
	s := o.script[o.calls]
	o.calls++
	return s.answer, s.err
}

func (o *fakeOracle) AnalyzeImage(ctx context.Context, prompt, base64Image string) (string, string, error) {
	answer, err := o.next()
	return answer, "conversation-token", err
}

func (o *fakeOracle) Continue(ctx context.Context, token, prompt string) (string, error) {
	return o.next()
}

func seedTaxonomy(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []models.Food{
		{Name: "국밥_돼지머리", RepresentativeFood: "국밥", MajorCategory: "밥류", Weight: "700g", EnergyKcal: f64(620)},
		{Name: "국밥_순대", RepresentativeFood: "국밥", MajorCategory: "밥류", Weight: "700g", EnergyKcal: f64(560)},
		{Name: "라면_신라면", RepresentativeFood: "라면", MajorCategory: "면류", Weight: "500g", EnergyKcal: f64(500)},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}
}

func TestIdentifyFoodsHappyPath(t *testing.T) {
	db := newTestDB(t)
	seedTaxonomy(t, db)

	oracle := &fakeOracle{script: []scriptedCall{
		{answer: "밥류"},
		{answer: "국밥"},
		{answer: "국밥_돼지머리"},
	}}
	svc := NewAnalyzeService(NewFoodService(), oracle)

	result, err := svc.IdentifyFoods(context.Background(), "img")
	require.NoError(t, err)
	assert.Equal(t, 3, oracle.calls)
	assert.False(t, result.Incomplete)
	require.Len(t, result.Foods, 1)
	assert.Equal(t, "국밥_돼지머리", result.Foods[0].Name)
}

func TestIdentifyFoodsNothingSeen(t *testing.T) {
	db := newTestDB(t)
	seedTaxonomy(t, db)

	oracle := &fakeOracle{script: []scriptedCall{
		{answer: UnidentifiedLabel},
	}}
	svc := NewAnalyzeService(NewFoodService(), oracle)

	result, err := svc.IdentifyFoods(context.Background(), "img")
	require.NoError(t, err)
	assert.Equal(t, 1, oracle.calls)
	assert.Empty(t, result.Foods)
	assert.False(t, result.Incomplete)
}

func TestIdentifyFoodsUnmatchableLeaf(t *testing.T) {
	db := newTestDB(t)
	seedTaxonomy(t, db)

	// "돼지국밥" shares syllables with both leaf names but neither clears the
	// edit-distance threshold, so the cascade ends with nothing identified.
	oracle := &fakeOracle{script: []scriptedCall{
		{answer: "밥류"},
		{answer: "국밥"},
		{answer: "돼지국밥"},
	}}
	svc := NewAnalyzeService(NewFoodService(), oracle)

	result, err := svc.IdentifyFoods(context.Background(), "img")
	require.NoError(t, err)
	assert.Equal(t, 3, oracle.calls)
	assert.Empty(t, result.Foods)
	assert.False(t, result.Incomplete)
}

func TestIdentifyFoodsImageCallFails(t *testing.T) {
	db := newTestDB(t)
	seedTaxonomy(t, db)

	oracle := &fakeOracle{script: []scriptedCall{
		{err: errors.New("upstream timeout")},
	}}
	svc := NewAnalyzeService(NewFoodService(), oracle)

	_, err := svc.IdentifyFoods(context.Background(), "img")
	assert.True(t, errors.Is(err, ErrClassifyIncomplete))
}

func TestIdentifyFoodsAllBranchesFail(t *testing.T) {
	db := newTestDB(t)
	seedTaxonomy(t, db)

	oracle := &fakeOracle{script: []scriptedCall{
		{answer: "밥류"},
		{err: errors.New("upstream timeout")},
	}}
	svc := NewAnalyzeService(NewFoodService(), oracle)

	_, err := svc.IdentifyFoods(context.Background(), "img")
	assert.True(t, errors.Is(err, ErrClassifyIncomplete))
}

func TestIdentifyFoodsPartialBranchFailure(t *testing.T) {
	db := newTestDB(t)
	seedTaxonomy(t, db)

	// The rice branch resolves, the noodle branch dies mid-cascade: partial
	// results are returned with the incomplete flag set.
	oracle := &fakeOracle{script: []scriptedCall{
		{answer: "밥류, 면류"},
		{answer: "국밥"},
		{answer: "국밥_순대"},
		{err: errors.New("upstream timeout")},
	}}
	svc := NewAnalyzeService(NewFoodService(), oracle)

	result, err := svc.IdentifyFoods(context.Background(), "img")
	require.NoError(t, err)
	assert.Equal(t, 4, oracle.calls)
	assert.True(t, result.Incomplete)
	require.Len(t, result.Foods, 1)
	assert.Equal(t, "국밥_순대", result.Foods[0].Name)
}

func TestParseLabels(t *testing.T) {
	assert.Equal(t, []string{"밥류", "면류"}, parseLabels("밥류, 면류"))
	assert.Equal(t, []string{"밥류"}, parseLabels(" 밥류 ,, "))
	assert.Nil(t, parseLabels(UnidentifiedLabel))
	assert.Equal(t, []string{"밥류"}, parseLabels("밥류, "+UnidentifiedLabel))
	assert.Nil(t, parseLabels(""))
}
