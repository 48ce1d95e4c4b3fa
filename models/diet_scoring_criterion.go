package models

// DietScoringCriterion carries per-nutrient scoring-curve parameters and an
// optional global recommended amount, keyed by the nutrient's Korean name.
// Nil parameters fall back to the curve defaults in the score service.
type DietScoringCriterion struct {
	ID                 uint     `gorm:"primaryKey" json:"id"`
	NutrientName       string   `gorm:"uniqueIndex;not null" json:"nutrient_name"`
	RecommendedAmount  *float64 `json:"recommended_amount"`
	MinOptimalRatio    *float64 `json:"min_optimal_ratio"`
	MaxOptimalRatio    *float64 `json:"max_optimal_ratio"`
	ZeroScoreRatioUpper *float64 `json:"zero_score_ratio_upper"`
}
