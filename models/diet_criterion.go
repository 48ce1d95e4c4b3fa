package models

// DietCriterion is the baseline recommended daily amount per nutrient for
// one (age range, gender) bracket.
type DietCriterion struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	StartAge      int     `json:"start_age"`
	EndAge        int     `json:"end_age"`
	Gender        string  `gorm:"type:char(1)" json:"gender"`
	EnergyKcal    float64 `json:"energy_kcal"`
	ProteinG      float64 `json:"protein_g"`
	FatG          float64 `json:"fat_g"`
	CarbohydrateG float64 `json:"carbohydrate_g"`
	SugarsG       float64 `json:"sugars_g"`
	CelluloseG    float64 `json:"cellulose_g"`
	SodiumMg      float64 `json:"sodium_mg"`
	CholesterolMg float64 `json:"cholesterol_mg"`
}

// Amounts returns the targets as a vector.
func (c *DietCriterion) Amounts() NutrientVector {
	return NutrientVector{
		Energy:       c.EnergyKcal,
		Carbohydrate: c.CarbohydrateG,
		Fat:          c.FatG,
		Protein:      c.ProteinG,
		Cellulose:    c.CelluloseG,
		Sugars:       c.SugarsG,
		Sodium:       c.SodiumMg,
		Cholesterol:  c.CholesterolMg,
	}
}

// SetAmounts overwrites the targets from a vector.
func (c *DietCriterion) SetAmounts(v NutrientVector) {
	c.EnergyKcal = v[Energy]
	c.CarbohydrateG = v[Carbohydrate]
	c.FatG = v[Fat]
	c.ProteinG = v[Protein]
	c.CelluloseG = v[Cellulose]
	c.SugarsG = v[Sugars]
	c.SodiumMg = v[Sodium]
	c.CholesterolMg = v[Cholesterol]
}
