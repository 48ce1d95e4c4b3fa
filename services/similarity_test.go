package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity("밥류 면류", "밥류 면류"), 1e-9)
	assert.Equal(t, 0.0, CosineSimilarity("밥류", "국류"))
	assert.Equal(t, 0.0, CosineSimilarity("", "밥류"))
	assert.Equal(t, 0.0, CosineSimilarity("", ""))

	a := CosineSimilarity("김치 볶음밥", "볶음밥")
	b := CosineSimilarity("볶음밥", "김치 볶음밥")
	assert.Equal(t, a, b)
	assert.Greater(t, a, 0.0)
	assert.Less(t, a, 1.0)
}

func TestLevenshteinSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, LevenshteinSimilarity("돼지국밥", "돼지국밥"))
	assert.Equal(t, 1.0, LevenshteinSimilarity("", ""))
	assert.Equal(t, 0.0, LevenshteinSimilarity("", "국밥"))

	// One syllable substituted out of four.
	assert.InDelta(t, 0.75, LevenshteinSimilarity("돼지국밥", "돼지국수"), 1e-9)

	for _, pair := range [][2]string{
		{"국밥_돼지머리", "돼지국밥"},
		{"비빔밥", "볶음밥"},
		{"김치찌개", "된장찌개"},
	} {
		s := LevenshteinSimilarity(pair[0], pair[1])
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestMatchByCosine(t *testing.T) {
	candidates := []string{"밥류", "국 및 탕류", "면 및 만두류"}

	assert.Equal(t, "밥류", MatchByCosine("밥류", candidates, 0.25))
	assert.Equal(t, "국 및 탕류", MatchByCosine("국 탕류", candidates, 0.25))
	assert.Equal(t, "", MatchByCosine("디저트", candidates, 0.25))
	assert.Equal(t, "", MatchByCosine("밥류", nil, 0.25))
}

func TestMatchByLevenshtein(t *testing.T) {
	candidates := []string{"국밥_돼지머리", "국밥_순대"}

	assert.Equal(t, "국밥_돼지머리", MatchByLevenshtein("국밥_돼지머리", candidates, 0.4))

	// "돼지국밥" shares syllables with both candidates but neither clears the
	// threshold, so the matcher answers the sentinel instead of guessing.
	assert.Equal(t, UnidentifiedLabel, MatchByLevenshtein("돼지국밥", candidates, 0.4))
	assert.Equal(t, UnidentifiedLabel, MatchByLevenshtein("라면", candidates, 0.4))
	assert.Equal(t, UnidentifiedLabel, MatchByLevenshtein("국밥", nil, 0.4))
}
