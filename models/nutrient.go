package models

// ScoringType selects the performance curve used when scoring a nutrient's
// daily intake against its recommended amount.
type ScoringType int

const (
	// TargetRange rewards staying inside an optimal band around the target.
	TargetRange ScoringType = iota
	// EnoughIsGood rewards reaching the target; overshooting never hurts.
	EnoughIsGood
	// LessIsBetter holds full score up to the target, then decays.
	LessIsBetter
	// TargetRangeUpperSensitive is TargetRange with a steeper penalty above
	// the band.
	TargetRangeUpperSensitive
)

// Nutrient indexes the eight tracked nutrients. The order is fixed: it is
// the layout of NutrientVector and of the user's criterion-weight string.
type Nutrient int

const (
	Energy Nutrient = iota
	Carbohydrate
	Fat
	Protein
	Cellulose
	Sugars
	Sodium
	Cholesterol

	NutrientCount = 8
)

type nutrientSpec struct {
	name          string
	unit          string
	defaultAmount float64
	scoringType   ScoringType
	importance    float64
}

var nutrientSpecs = [NutrientCount]nutrientSpec{
	Energy:       {"에너지", "kcal", 2000, TargetRange, 1.0},
	Carbohydrate: {"탄수화물", "g", 130, TargetRange, 1.0},
	Fat:          {"지방", "g", 51, TargetRangeUpperSensitive, 1.0},
	Protein:      {"단백질", "g", 65, EnoughIsGood, 1.0},
	Cellulose:    {"식이섬유", "g", 25, EnoughIsGood, 1.0},
	Sugars:       {"당류", "g", 50, LessIsBetter, 0.8},
	Sodium:       {"나트륨", "mg", 2000, LessIsBetter, 0.8},
	Cholesterol:  {"콜레스테롤", "mg", 300, LessIsBetter, 0.8},
}

func (n Nutrient) Name() string { return nutrientSpecs[n].name }

func (n Nutrient) Unit() string { return nutrientSpecs[n].unit }

// DefaultAmount is the hardcoded recommended daily amount, the last resort
// when neither a diet criterion nor a scoring criterion provides one.
func (n Nutrient) DefaultAmount() float64 { return nutrientSpecs[n].defaultAmount }

func (n Nutrient) ScoringType() ScoringType { return nutrientSpecs[n].scoringType }

// BaseImportance is the nutrient's intrinsic weight in the total score,
// multiplied by the user's personal importance factor.
func (n Nutrient) BaseImportance() float64 { return nutrientSpecs[n].importance }

// AllNutrients returns the nutrients in vector order.
func AllNutrients() [NutrientCount]Nutrient {
	return [NutrientCount]Nutrient{
		Energy, Carbohydrate, Fat, Protein, Cellulose, Sugars, Sodium, Cholesterol,
	}
}

// NutrientByName resolves a Korean nutrient name to its index.
func NutrientByName(name string) (Nutrient, bool) {
	for _, n := range AllNutrients() {
		if nutrientSpecs[n].name == name {
			return n, true
		}
	}
	return 0, false
}

// NutrientVector holds one amount per nutrient, in vector order.
type NutrientVector [NutrientCount]float64

// Scale returns the vector with every amount multiplied by factor.
func (v NutrientVector) Scale(factor float64) NutrientVector {
	var out NutrientVector
	for i, amt := range v {
		out[i] = amt * factor
	}
	return out
}
