package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dream2405/healthy-meal-backend/logger"
	"github.com/dream2405/healthy-meal-backend/models"

	"go.uber.org/zap"
)

// Validation thresholds per cascade level. Category labels are multi-word
// phrases where shared tokens matter; leaf names are single compounds where
// character edits matter.
const (
	cosineThreshold      = 0.25
	levenshteinThreshold = 0.4
)

const oracleCallTimeout = 5 * time.Minute

// AnalysisResult is the outcome of one cascade run. Incomplete is set when
// at least one branch failed mid-cascade but others still produced results;
// such a run is presented as a partial-result warning, not a failure.
type AnalysisResult struct {
	Foods      []models.Food
	Incomplete bool
}

// AnalyzeService narrows a meal photo into entries of the closed food
// vocabulary: one oracle call per taxonomy level per branch, each answer
// parsed as comma-separated labels and validated against the legal
// candidate set before descending.
type AnalyzeService struct {
	foods  *FoodService
	oracle Oracle
}

func NewAnalyzeService(foods *FoodService, oracle Oracle) *AnalyzeService {
	return &AnalyzeService{foods: foods, oracle: oracle}
}

// IdentifyFoods runs the three-level cascade over one base64-encoded photo.
// An empty Foods slice means "nothing identified" and is not an error; the
// branches are walked sequentially because the oracle conversation carries
// contextual memory.
func (s *AnalyzeService) IdentifyFoods(ctx context.Context, base64Image string) (*AnalysisResult, error) {
	log := logger.L()

	majors, err := s.foods.DistinctMajorCategories()
	if err != nil {
		return nil, err
	}
	if len(majors) == 0 {
		return &AnalysisResult{}, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, oracleCallTimeout)
	answer, token, err := s.oracle.AnalyzeImage(callCtx, imagePrompt(majors), base64Image)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("%w: major-category call: %v", ErrClassifyIncomplete, err)
	}

	labels := parseLabels(answer)
	if len(labels) == 0 {
		log.Info("Oracle saw no food in the image")
		return &AnalysisResult{}, nil
	}

	matchedMajors := dedup(nil)
	for _, label := range labels {
		if m := MatchByCosine(label, majors, cosineThreshold); m != "" {
			matchedMajors.add(m)
		}
	}
	log.Info("Major-category level validated",
		zap.Strings("oracle", labels), zap.Strings("matched", matchedMajors.items))
	if len(matchedMajors.items) == 0 {
		return &AnalysisResult{}, nil
	}

	var (
		leafNames         = dedup(nil)
		branchesAttempted int
		branchesFailed    int
	)

	for _, major := range matchedMajors.items {
		reps, err := s.foods.RepresentativeFoodsOf(major)
		if err != nil {
			return nil, err
		}
		if len(reps) == 0 {
			continue
		}

		branchesAttempted++
		callCtx, cancel := context.WithTimeout(ctx, oracleCallTimeout)
		answer, err := s.oracle.Continue(callCtx, token, followUpPrompt(major, reps))
		cancel()
		if err != nil {
			branchesFailed++
			log.Warn("Representative-food call failed, branch dropped",
				zap.String("majorCategory", major), zap.Error(err))
			continue
		}

		for _, label := range parseLabels(answer) {
			rep := MatchByCosine(label, reps, cosineThreshold)
			if rep == "" {
				continue
			}

			names, err := s.foods.LeafNamesOf(rep)
			if err != nil {
				return nil, err
			}
			if len(names) == 0 {
				continue
			}

			branchesAttempted++
			callCtx, cancel := context.WithTimeout(ctx, oracleCallTimeout)
			leafAnswer, err := s.oracle.Continue(callCtx, token, followUpPrompt(rep, names))
			cancel()
			if err != nil {
				branchesFailed++
				log.Warn("Leaf-name call failed, branch dropped",
					zap.String("representativeFood", rep), zap.Error(err))
				continue
			}

			for _, leafLabel := range parseLabels(leafAnswer) {
				if name := MatchByLevenshtein(leafLabel, names, levenshteinThreshold); name != UnidentifiedLabel {
					leafNames.add(name)
				}
			}
		}
	}

	if branchesFailed > 0 && branchesFailed == branchesAttempted {
		return nil, fmt.Errorf("%w: every branch failed", ErrClassifyIncomplete)
	}

	result := &AnalysisResult{Incomplete: branchesFailed > 0}
	seen := make(map[uint]bool)
	for _, name := range leafNames.items {
		entries, err := s.foods.EntriesByName(name)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !seen[entry.ID] {
				seen[entry.ID] = true
				result.Foods = append(result.Foods, entry)
			}
		}
	}

	log.Info("Cascade finished",
		zap.Strings("leafNames", leafNames.items),
		zap.Int("foods", len(result.Foods)),
		zap.Bool("incomplete", result.Incomplete))
	return result, nil
}

// parseLabels splits a comma-separated oracle answer into trimmed labels.
// The unidentified sentinel, alone or among other labels, is never a label.
func parseLabels(answer string) []string {
	var labels []string
	for _, part := range strings.Split(answer, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == UnidentifiedLabel {
			continue
		}
		labels = append(labels, part)
	}
	return labels
}

func imagePrompt(candidates []string) string {
	return fmt.Sprintf(`이미지 속에 보이는 음식을 아래 목록에 있는 이름으로만 나열해주세요.

⚠️ 규칙:
1. 설명 없이 음식 이름만 쉼표로 구분하여 출력해주세요.
2. 만약 식별되는 음식이 없다면 '%s'이라고 답해주세요.
3. 반드시 아래 목록에 있는 이름만 사용해주세요.

목록:
%s`, UnidentifiedLabel, strings.Join(candidates, ", "))
}

func followUpPrompt(parent string, candidates []string) string {
	return fmt.Sprintf(`'%s'에 해당하는 음식을 아래 목록에서 골라주세요.

⚠️ 규칙:
1. 설명 없이 음식 이름만 쉼표로 구분하여 출력해주세요.
2. 해당하는 음식이 없다면 '%s'이라고 답해주세요.

목록:
%s`, parent, UnidentifiedLabel, strings.Join(candidates, ", "))
}

// dedupList keeps insertion order while dropping repeats.
type dedupList struct {
	items []string
	seen  map[string]bool
}

func dedup(initial []string) *dedupList {
	d := &dedupList{seen: make(map[string]bool)}
	for _, item := range initial {
		d.add(item)
	}
	return d
}

func (d *dedupList) add(item string) {
	if !d.seen[item] {
		d.seen[item] = true
		d.items = append(d.items, item)
	}
}
