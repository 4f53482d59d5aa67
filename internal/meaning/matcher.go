package meaning

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultFuzzyThreshold is the minimum score a fuzzy match needs.
const DefaultFuzzyThreshold = 65

// Matcher finds the candidate most similar to a query.
type Matcher interface {
	// BestMatch returns the best scoring candidate and its score on a 0 to 100 scale.
	// ok is false when no candidate reaches the matcher's threshold.
	BestMatch(query string, candidates []string) (match string, score int, ok bool)
}

// LevenshteinMatcher scores candidates with a token sort ratio over the Levenshtein distance.
type LevenshteinMatcher struct {
	Threshold int
}

var _ Matcher = LevenshteinMatcher{}

func NewLevenshteinMatcher(threshold int) LevenshteinMatcher {
	return LevenshteinMatcher{Threshold: threshold}
}

func (m LevenshteinMatcher) BestMatch(query string, candidates []string) (string, int, bool) {
	best, bestScore := "", -1
	for _, candidate := range candidates {
		// Ties keep the earlier candidate.
		if score := TokenSortRatio(query, candidate); score > bestScore {
			best, bestScore = candidate, score
		}
	}
	if bestScore < 0 || bestScore < m.Threshold {
		return "", max(bestScore, 0), false
	}
	return best, bestScore, true
}

// NoopMatcher never matches. It disables the fuzzy tier.
type NoopMatcher struct{}

var _ Matcher = NoopMatcher{}

func (NoopMatcher) BestMatch(string, []string) (string, int, bool) {
	return "", 0, false
}

// TokenSortRatio compares two strings regardless of word order, from 0 (different) to 100 (equal).
func TokenSortRatio(a, b string) int {
	return ratio(sortTokens(a), sortTokens(b))
}

func sortTokens(s string) string {
	tokens := strings.Fields(strings.ToLower(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func ratio(a, b string) int {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 100
	}
	distance := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * (1 - float64(distance)/float64(longest))))
}
