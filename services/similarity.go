package services

import (
	"math"
	"strings"
)

// UnidentifiedLabel is the literal the vision oracle answers when it sees no
// food, and the sentinel the leaf matcher maps unmatchable labels to.
// Callers detect "nothing identified" by this exact string.
const UnidentifiedLabel = "식별되지않음"

// CosineSimilarity is the token-frequency cosine of two strings split on
// whitespace. Either side tokenizing to an all-zero vector scores 0.
func CosineSimilarity(s1, s2 string) float64 {
	words1 := strings.Fields(s1)
	words2 := strings.Fields(s2)

	vocab := make(map[string]int)
	for _, w := range words1 {
		if _, ok := vocab[w]; !ok {
			vocab[w] = len(vocab)
		}
	}
	for _, w := range words2 {
		if _, ok := vocab[w]; !ok {
			vocab[w] = len(vocab)
		}
	}

	vec1 := make([]int, len(vocab))
	vec2 := make([]int, len(vocab))
	for _, w := range words1 {
		vec1[vocab[w]]++
	}
	for _, w := range words2 {
		vec2[vocab[w]]++
	}

	var dot, norm1, norm2 float64
	for i := range vec1 {
		dot += float64(vec1[i] * vec2[i])
		norm1 += float64(vec1[i] * vec1[i])
		norm2 += float64(vec2[i] * vec2[i])
	}
	if norm1 == 0 || norm2 == 0 {
		return 0
	}
	return dot / (math.Sqrt(norm1) * math.Sqrt(norm2))
}

// LevenshteinSimilarity is 1 - editDistance/maxLen over runes, so Korean
// syllables count as single edits. Two empty strings score 1.
func LevenshteinSimilarity(s1, s2 string) float64 {
	r1 := []rune(s1)
	r2 := []rune(s2)
	maxLen := len(r1)
	if len(r2) > maxLen {
		maxLen = len(r2)
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(r1, r2))/float64(maxLen)
}

func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// MatchByCosine returns the best cosine-scoring candidate, or "" when the
// best score stays under the threshold.
func MatchByCosine(input string, candidates []string, threshold float64) string {
	best, score := bestMatch(input, candidates, CosineSimilarity)
	if score >= threshold {
		return best
	}
	return ""
}

// MatchByLevenshtein returns the best edit-distance candidate, or the
// unidentified sentinel when nothing clears the threshold, so callers can
// tell "oracle said nothing" from "oracle said something unmatchable".
func MatchByLevenshtein(input string, candidates []string, threshold float64) string {
	best, score := bestMatch(input, candidates, LevenshteinSimilarity)
	if score >= threshold {
		return best
	}
	return UnidentifiedLabel
}

func bestMatch(input string, candidates []string, sim func(string, string) float64) (string, float64) {
	bestScore := 0.0
	best := ""
	for _, candidate := range candidates {
		if score := sim(input, candidate); score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	return best, bestScore
}
