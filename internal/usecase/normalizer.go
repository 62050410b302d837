package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// quantity matches "2", "2.5", "1/2", "1 1/2" and ranges such as "2-3"
const quantity = `(?:\d+\s+)?\d+(?:[./]\d+)?(?:\s*-\s*\d+(?:[./]\d+)?)?`

// Compiled quantity/unit patterns, applied in order.
// Every occurrence of every pattern is removed.
var quantityPatterns = []*regexp.Regexp{
	// Parenthetical annotations like "(14 oz)" or "(optional)"
	regexp.MustCompile(`\([^)]*\)`),

	// Volume: "2 cups", "1/2 tsp"
	regexp.MustCompile(`\b` + quantity + `\s*(?:cups?|tablespoons?|tbsps?|teaspoons?|tsps?)\b`),
	// Weight: "2 lbs", "12 oz"
	regexp.MustCompile(`\b` + quantity + `\s*(?:pounds?|lbs?|ounces?|oz)\b`),
	// Metric mass: "500 g", "1 kg"
	regexp.MustCompile(`\b` + quantity + `\s*(?:grams?|kilograms?|kg|g)\b`),
	// Metric volume: "250 ml", "1 l"
	regexp.MustCompile(`\b` + quantity + `\s*(?:liters?|litres?|milliliters?|millilitres?|ml|l)\b`),
	// Linear: "2 inch", "1 in"
	regexp.MustCompile(`\b` + quantity + `\s*(?:inch(?:es)?|in)\b`),
	// Count: "3 cloves", "2 slices"
	regexp.MustCompile(`\b` + quantity + `\s*(?:pieces?|pcs|slices?|cloves?)\b`),
	// Containers: "1 can", "2 jars"
	regexp.MustCompile(`\b` + quantity + `\s*(?:cans?|jars?|bottles?|packages?|pkgs?)\b`),

	// Ranges without a unit: "2-3"
	regexp.MustCompile(`\b\d+(?:\.\d+)?\s*-\s*\d+(?:\.\d+)?\b`),
	// Fractions: "1/2"
	regexp.MustCompile(`\b\d+/\d+\b`),
	// Standalone numbers
	regexp.MustCompile(`\b\d+(?:\.\d+)?\b`),
}

// fractionReplacer rewrites vulgar fraction runes as ASCII so the quantity patterns
// see "1½" as "1 1/2". NFD leaves these runes alone.
var fractionReplacer = strings.NewReplacer(
	"½", " 1/2", "⅓", " 1/3", "⅔", " 2/3", "¼", " 1/4", "¾", " 3/4",
	"⅛", " 1/8", "⅜", " 3/8", "⅝", " 5/8", "⅞", " 7/8",
)

var (
	punctuationPattern = regexp.MustCompile(`[,()\[\].]+`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

// maxNormalizePasses bounds the fixed-point loop in Normalize.
// Every pass only deletes or shortens, so real input settles in two or three.
const maxNormalizePasses = 8

// defaultStopWords are descriptive/state adjectives that never identify an ingredient
var defaultStopWords = []string{
	"fresh", "frozen", "dried", "organic", "raw", "cooked", "chopped",
	"diced", "sliced", "minced", "grated", "shredded", "crushed",
	"whole", "ground", "powdered", "extra", "virgin", "pure",
	"unsalted", "salted", "unsweetened", "sweetened", "low", "fat",
	"reduced", "sodium", "free", "range", "grade", "large", "medium",
	"small", "baby", "young", "mature", "ripe", "unripe", "canned",
	"jarred", "bottled", "packaged", "refrigerated",
}

// Normalizer reduces a raw ingredient phrase to a canonical comparison string
type Normalizer struct {
	stopWords map[string]struct{}
}

// NewNormalizer creates a normalizer with the default stop-word set
func NewNormalizer() *Normalizer {
	stopWords := make(map[string]struct{}, len(defaultStopWords))
	for _, w := range defaultStopWords {
		stopWords[w] = struct{}{}
	}
	return &Normalizer{stopWords: stopWords}
}

// Normalize strips quantities, units, descriptive noise and a trailing plural.
// The result is a fixed point: Normalize(Normalize(x)) == Normalize(x).
func (n *Normalizer) Normalize(text string) string {
	current := strings.TrimSpace(text)
	for i := 0; i < maxNormalizePasses; i++ {
		next := n.pass(current)
		if next == current {
			break
		}
		current = next
	}
	return current
}

// pass applies one round of normalization
func (n *Normalizer) pass(text string) string {
	if text == "" {
		return ""
	}

	s := fractionReplacer.Replace(strings.ToLower(foldAccents(text)))

	// Step 1: Quantities and units
	for _, pattern := range quantityPatterns {
		s = pattern.ReplaceAllString(s, " ")
	}

	// Step 2: Punctuation, before the stop-word filter so "chopped," is caught
	s = punctuationPattern.ReplaceAllString(s, " ")

	// Step 3: Descriptive stop words
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if _, stop := n.stopWords[w]; !stop {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return ""
	}

	// Step 4: Plural folding on the trailing word only
	last := singularize(kept[len(kept)-1])
	if last == "" {
		kept = kept[:len(kept)-1]
	} else {
		kept[len(kept)-1] = last
	}

	s = strings.Join(kept, " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// singularize applies the longest-suffix-first plural rule
func singularize(word string) string {
	switch {
	case strings.HasSuffix(word, "ies"):
		return strings.TrimSuffix(word, "ies") + "y"
	case strings.HasSuffix(word, "es") && !strings.HasSuffix(word, "oes"):
		return strings.TrimSuffix(word, "es")
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") && len(word) > 3:
		return strings.TrimSuffix(word, "s")
	}
	return word
}

// foldAccents strips combining marks so "jalapeño" compares equal to "jalapeno".
// The chained transformer holds state, so one is built per call.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
