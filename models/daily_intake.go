package models

import "time"

// DailyIntake is the running nutrient total for one (user, calendar day),
// created lazily when the first meal of the day is confirmed. Score stays
// nil until computed.
type DailyIntake struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        string    `gorm:"uniqueIndex:idx_user_day;not null" json:"user_id"`
	Day           time.Time `gorm:"uniqueIndex:idx_user_day;type:date" json:"day"`
	EnergyKcal    float64   `json:"energy_kcal"`
	ProteinG      float64   `json:"protein_g"`
	FatG          float64   `json:"fat_g"`
	CarbohydrateG float64   `json:"carbohydrate_g"`
	SugarsG       float64   `json:"sugars_g"`
	CelluloseG    float64   `json:"cellulose_g"`
	SodiumMg      float64   `json:"sodium_mg"`
	CholesterolMg float64   `json:"cholesterol_mg"`
	Score         *int      `json:"score"`
}

// Amounts returns the running sums as a vector.
func (d *DailyIntake) Amounts() NutrientVector {
	return NutrientVector{
		Energy:       d.EnergyKcal,
		Carbohydrate: d.CarbohydrateG,
		Fat:          d.FatG,
		Protein:      d.ProteinG,
		Cellulose:    d.CelluloseG,
		Sugars:       d.SugarsG,
		Sodium:       d.SodiumMg,
		Cholesterol:  d.CholesterolMg,
	}
}

func (d *DailyIntake) setAmounts(v NutrientVector) {
	d.EnergyKcal = v[Energy]
	d.CarbohydrateG = v[Carbohydrate]
	d.FatG = v[Fat]
	d.ProteinG = v[Protein]
	d.CelluloseG = v[Cellulose]
	d.SugarsG = v[Sugars]
	d.SodiumMg = v[Sodium]
	d.CholesterolMg = v[Cholesterol]
}

// Add accumulates one food's contribution into the running sums.
func (d *DailyIntake) Add(v NutrientVector) {
	sums := d.Amounts()
	for i, amt := range v {
		sums[i] += amt
	}
	d.setAmounts(sums)
}

// Subtract removes a contribution, clamping each sum at zero independently
// so floating-point drift or a repeated delete never drives a total negative.
func (d *DailyIntake) Subtract(v NutrientVector) {
	sums := d.Amounts()
	for i, amt := range v {
		sums[i] -= amt
		if sums[i] < 0 {
			sums[i] = 0
		}
	}
	d.setAmounts(sums)
}
