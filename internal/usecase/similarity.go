package usecase

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/antzucaro/matchr"
)

// ScoreFunc compares two normalized strings and returns a similarity in [0,100].
// Identical strings score 100.
type ScoreFunc func(a, b string) float64

// Scorer names accepted by ScorerByName
const (
	ScorerRatio       = "ratio"
	ScorerTokenSort   = "token_sort"
	ScorerJaroWinkler = "jaro_winkler"
	ScorerLevenshtein = "levenshtein"
)

// Ratio is the indel similarity: 2*LCS / (len(a)+len(b)), scaled to 100
func Ratio(a, b string) float64 {
	if a == b {
		return 100
	}
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}
	lcs := matchr.LongestCommonSubsequence(a, b)
	return 100 * float64(2*lcs) / float64(total)
}

// TokenSortRatio sorts the words of both strings before applying Ratio,
// so "pepper black" and "black pepper" compare equal.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortTokens(a), sortTokens(b))
}

func sortTokens(s string) string {
	words := strings.Fields(s)
	sort.Strings(words)
	return strings.Join(words, " ")
}

// JaroWinklerScore weights shared prefixes more heavily than Ratio does
func JaroWinklerScore(a, b string) float64 {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	return 100 * matchr.JaroWinkler(a, b, false)
}

// LevenshteinRatio is 1 - editDistance/maxLen, scaled to 100
func LevenshteinRatio(a, b string) float64 {
	if a == b {
		return 100
	}
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 100
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(distance)/float64(longest))
}

// ScorerByName resolves a configured algorithm name. Empty selects Ratio.
func ScorerByName(name string) (ScoreFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ScorerRatio:
		return Ratio, nil
	case ScorerTokenSort:
		return TokenSortRatio, nil
	case ScorerJaroWinkler:
		return JaroWinklerScore, nil
	case ScorerLevenshtein:
		return LevenshteinRatio, nil
	default:
		return nil, fmt.Errorf("unknown similarity algorithm %q", name)
	}
}

// ScorerNames lists every algorithm ScorerByName understands
func ScorerNames() []string {
	return []string{ScorerRatio, ScorerTokenSort, ScorerJaroWinkler, ScorerLevenshtein}
}

// validScore reports whether s is a usable similarity value
func validScore(s float64) bool {
	return !math.IsNaN(s) && s >= 0 && s <= 100
}
