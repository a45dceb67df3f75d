package game

import (
	"math"

	"github.com/antzucaro/matchr"
)

// Accuracy computes a 0-100 similarity percentage between a target word and a
// spoken transcript using normalized Levenshtein distance, rounded to two
// decimal places. An empty transcript scores 0. When both strings are empty
// the result is 100: no edit is needed to match.
//
// Case matters: callers normalize transcripts (trim + capitalize first letter)
// before scoring, and target words carry the same capitalization.
func Accuracy(target, spoken string) float64 {
	if spoken == "" {
		if target == "" {
			return 100
		}
		return 0
	}

	maxLen := len([]rune(target))
	if l := len([]rune(spoken)); l > maxLen {
		maxLen = l
	}

	distance := matchr.Levenshtein(target, spoken)
	accuracy := float64(maxLen-distance) / float64(maxLen) * 100
	return round2(accuracy)
}

// round2 rounds to two decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
