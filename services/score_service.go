package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dream2405/healthy-meal-backend/config"
	"github.com/dream2405/healthy-meal-backend/logger"
	"github.com/dream2405/healthy-meal-backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Curve defaults, as ratios of the recommended amount. Zero points for the
// target-range curves are factors of the band's upper edge.
const (
	defaultMinOptimalRatio   = 0.8
	defaultMaxOptimalRatio   = 1.2
	targetRangeZeroFactor    = 2.0
	upperSensitiveZeroFactor = 1.5
	lessIsBetterZeroRatio    = 1.5

	minWeightFactor     = 0.1
	neutralPartialScore = 0.5
)

// ScoreService turns a day's accumulated totals into a 0-100 score using
// per-nutrient performance curves weighted by user importance factors.
type ScoreService struct {
	users *UserService
}

func NewScoreService(users *UserService) *ScoreService {
	return &ScoreService{users: users}
}

// curveScore maps an intake ratio to a [0,1] partial score. minRatio and
// maxRatio bound the optimal band; zeroRatio is the absolute ratio where
// the score bottoms out above the band.
func curveScore(st models.ScoringType, ratio, minRatio, maxRatio, zeroRatio float64) float64 {
	switch st {
	case models.EnoughIsGood:
		return math.Min(1.0, ratio)
	case models.LessIsBetter:
		if ratio <= 1.0 {
			return 1.0
		}
		if ratio >= zeroRatio {
			return 0
		}
		return (zeroRatio - ratio) / (zeroRatio - 1.0)
	default: // TargetRange, TargetRangeUpperSensitive
		if ratio < minRatio {
			return ratio / minRatio
		}
		if ratio <= maxRatio {
			return 1.0
		}
		if ratio >= zeroRatio {
			return 0
		}
		return (zeroRatio - ratio) / (zeroRatio - maxRatio)
	}
}

// curveParams resolves the band and zero point for a nutrient, letting a
// scoring-criterion row override the defaults.
func curveParams(n models.Nutrient, crit *models.DietScoringCriterion) (minRatio, maxRatio, zeroRatio float64) {
	minRatio = defaultMinOptimalRatio
	maxRatio = defaultMaxOptimalRatio
	if crit != nil && crit.MinOptimalRatio != nil {
		minRatio = *crit.MinOptimalRatio
	}
	if crit != nil && crit.MaxOptimalRatio != nil {
		maxRatio = *crit.MaxOptimalRatio
	}

	switch n.ScoringType() {
	case models.LessIsBetter:
		zeroRatio = lessIsBetterZeroRatio
	case models.TargetRangeUpperSensitive:
		zeroRatio = upperSensitiveZeroFactor * maxRatio
	default:
		zeroRatio = targetRangeZeroFactor * maxRatio
	}
	if crit != nil && crit.ZeroScoreRatioUpper != nil {
		zeroRatio = *crit.ZeroScoreRatioUpper
	}
	return minRatio, maxRatio, zeroRatio
}

// ComputeScore scores one day's totals for its owner. The recommended
// amount per nutrient resolves through exactly three tiers: the user's
// weighted age/gender criterion, then the scoring-criterion default, then
// the nutrient's hardcoded default.
func (s *ScoreService) ComputeScore(intake *models.DailyIntake) (int, error) {
	log := logger.L()

	user, err := s.users.Get(intake.UserID)
	if err != nil {
		return 0, err
	}

	criterion, err := s.users.WeightedCriterion(user)
	if err != nil {
		return 0, err
	}

	scoringCrits, err := scoringCriteria()
	if err != nil {
		return 0, err
	}
	weightFactors, err := nutriWeights(intake.UserID)
	if err != nil {
		return 0, err
	}

	actuals := intake.Amounts()
	var weightedSum, normalizer float64
	for _, n := range models.AllNutrients() {
		crit := scoringCrits[n]

		recommended := n.DefaultAmount()
		switch {
		case criterion != nil:
			recommended = criterion.Amounts()[n]
		case crit != nil && crit.RecommendedAmount != nil:
			recommended = *crit.RecommendedAmount
		}

		var partial float64
		if recommended <= 0 {
			partial = neutralPartialScore
			log.Warn("Non-positive recommended amount, using neutral partial score",
				zap.String("nutrient", n.Name()), zap.Float64("recommended", recommended))
		} else {
			minRatio, maxRatio, zeroRatio := curveParams(n, crit)
			partial = curveScore(n.ScoringType(), actuals[n]/recommended, minRatio, maxRatio, zeroRatio)
		}

		factor := weightFactors[n]
		weightedSum += partial * factor * n.BaseImportance()
		normalizer += factor * n.BaseImportance()
	}

	score := int(math.Round(100 * weightedSum / normalizer))
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}
	return score, nil
}

// UpdateScore computes and caches the score for (user, day).
func (s *ScoreService) UpdateScore(userID string, day time.Time) (*models.DailyIntake, error) {
	day = DateOf(day)

	var intake models.DailyIntake
	err := config.DB.Where("user_id = ? AND day = ?", userID, day).First(&intake).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("daily intake on %s: %w", day.Format("2006-01-02"), ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	score, err := s.ComputeScore(&intake)
	if err != nil {
		return nil, err
	}
	intake.Score = &score
	if err := config.DB.Save(&intake).Error; err != nil {
		return nil, err
	}
	return &intake, nil
}

// RecomputeDay rescores every user's totals for one calendar day. A failing
// row is logged and skipped; the job is idempotent.
func (s *ScoreService) RecomputeDay(day time.Time) {
	log := logger.L()
	day = DateOf(day)

	var intakes []models.DailyIntake
	if err := config.DB.Where("day = ?", day).Find(&intakes).Error; err != nil {
		log.Error("Failed to load daily intakes for rescore", zap.Error(err))
		return
	}

	for i := range intakes {
		score, err := s.ComputeScore(&intakes[i])
		if err != nil {
			log.Warn("Skipping daily intake during rescore",
				zap.String("userID", intakes[i].UserID), zap.Error(err))
			continue
		}
		intakes[i].Score = &score
		if err := config.DB.Save(&intakes[i]).Error; err != nil {
			log.Warn("Failed to save rescored daily intake",
				zap.String("userID", intakes[i].UserID), zap.Error(err))
		}
	}
	log.Info("Daily rescore finished",
		zap.String("day", day.Format("2006-01-02")), zap.Int("rows", len(intakes)))
}

func scoringCriteria() (map[models.Nutrient]*models.DietScoringCriterion, error) {
	var rows []models.DietScoringCriterion
	if err := config.DB.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[models.Nutrient]*models.DietScoringCriterion, len(rows))
	for i := range rows {
		if n, ok := models.NutrientByName(rows[i].NutrientName); ok {
			out[n] = &rows[i]
		}
	}
	return out, nil
}

// nutriWeights resolves the user's importance factors: 1.0 when absent,
// floored at 0.1 so a nutrient can be down-weighted but never erased.
func nutriWeights(userID string) (map[models.Nutrient]float64, error) {
	factors := make(map[models.Nutrient]float64, models.NutrientCount)
	for _, n := range models.AllNutrients() {
		factors[n] = 1.0
	}

	var rows []models.NutriWeight
	if err := config.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		n, ok := models.NutrientByName(row.Nutrient)
		if !ok {
			continue
		}
		factor := row.Weight
		if factor < minWeightFactor {
			factor = minWeightFactor
		}
		factors[n] = factor
	}
	return factors, nil
}
