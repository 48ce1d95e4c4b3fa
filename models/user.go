package models

import "time"

// DefaultCritWeight is the neutral criterion-weight vector: 100% of the
// age/gender target for every nutrient, in vector order.
const DefaultCritWeight = "100 100 100 100 100 100 100 100"

type User struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	HashedPassword string    `gorm:"not null" json:"-"`
	Birthday       time.Time `json:"birthday"`
	Gender         string    `gorm:"type:char(1)" json:"gender"` // "M" | "F"
	CritWeight     string    `json:"crit_weight"`                // eight space-separated percents
	CreatedAt      time.Time `json:"created_at"`
}
