package models

import "time"

// MealInfo is one photographed meal. Food links exist only after the user
// confirms the classification result; the cascade's raw output is never
// persisted here.
type MealInfo struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       string         `gorm:"index;not null" json:"user_id"`
	ImgPath      string         `json:"img_path"` // storage key of the photo
	Diary        string         `json:"diary"`
	IntakeAmount float64        `json:"intake_amount"`
	Foods        []MealInfoFood `gorm:"constraint:OnDelete:CASCADE" json:"foods"`
	CreatedAt    time.Time      `json:"created_at"`
}

// MealInfoFood links a confirmed food identity to a meal, with the
// user-chosen intake amount multiplier for that food.
type MealInfoFood struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	MealInfoID   uint    `gorm:"index;not null" json:"meal_info_id"`
	FoodID       uint    `gorm:"not null" json:"food_id"`
	Food         Food    `json:"food"`
	IntakeAmount float64 `json:"intake_amount"`
}
