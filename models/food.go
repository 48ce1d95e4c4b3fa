package models

// Food is one row of the taxonomy catalog: a leaf food name under a
// representative food under a major category, with per-100g nutrient
// amounts. Several physically distinct rows may share a name. Read-only
// reference data, owned by the catalog importer.
type Food struct {
	ID                 uint     `gorm:"primaryKey" json:"id"`
	Name               string   `gorm:"not null;index" json:"name"`
	RepresentativeFood string   `gorm:"index" json:"representative_food"`
	MajorCategory      string   `gorm:"index" json:"major_category"`
	Weight             string   `json:"weight"` // free text, e.g. "300g"
	EnergyKcal         *float64 `json:"energy_kcal"`
	ProteinG           *float64 `json:"protein_g"`
	FatG               *float64 `json:"fat_g"`
	CarbohydrateG      *float64 `json:"carbohydrate_g"`
	SugarsG            *float64 `json:"sugars_g"`
	CelluloseG         *float64 `json:"cellulose_g"`
	SodiumMg           *float64 `json:"sodium_mg"`
	CholesterolMg      *float64 `json:"cholesterol_mg"`
}

// Nutrients returns the per-100g amounts with absent values read as zero.
func (f *Food) Nutrients() NutrientVector {
	zero := func(v *float64) float64 {
		if v == nil {
			return 0
		}
		return *v
	}
	return NutrientVector{
		Energy:       zero(f.EnergyKcal),
		Carbohydrate: zero(f.CarbohydrateG),
		Fat:          zero(f.FatG),
		Protein:      zero(f.ProteinG),
		Cellulose:    zero(f.CelluloseG),
		Sugars:       zero(f.SugarsG),
		Sodium:       zero(f.SodiumMg),
		Cholesterol:  zero(f.CholesterolMg),
	}
}
