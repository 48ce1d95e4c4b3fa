package models

// NutriWeight is a user's scoring-importance factor for one nutrient.
// Absent rows mean the neutral factor 1.0.
type NutriWeight struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	UserID   string  `gorm:"uniqueIndex:idx_user_nutrient;not null" json:"user_id"`
	Nutrient string  `gorm:"uniqueIndex:idx_user_nutrient;not null" json:"nutrient"`
	Weight   float64 `json:"weight"`
}
