package usecase

import "strings"

// SynonymTable maps a canonical ingredient phrase to its culinary equivalents
type SynonymTable map[string][]string

// DefaultSynonyms returns a fresh copy of the built-in synonym table.
// Every entry is listed from each side so lookups work in both directions.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		"scallion":            {"green onion", "spring onion"},
		"green onion":         {"scallion", "spring onion"},
		"spring onion":        {"scallion", "green onion"},
		"cilantro":            {"coriander", "chinese parsley"},
		"coriander":           {"cilantro", "chinese parsley"},
		"bell pepper":         {"sweet pepper", "capsicum"},
		"sweet pepper":        {"bell pepper", "capsicum"},
		"capsicum":            {"bell pepper", "sweet pepper"},
		"zucchini":            {"courgette"},
		"courgette":           {"zucchini"},
		"eggplant":            {"aubergine"},
		"aubergine":           {"eggplant"},
		"romaine":             {"romaine lettuce", "cos lettuce"},
		"romaine lettuce":     {"romaine", "cos lettuce"},
		"ground beef":         {"beef mince", "minced beef"},
		"beef mince":          {"ground beef", "minced beef"},
		"ground turkey":       {"turkey mince", "minced turkey"},
		"turkey mince":        {"ground turkey", "minced turkey"},
		"chicken breast":      {"chicken breasts", "chicken breast meat"},
		"olive oil":           {"extra virgin olive oil", "evoo"},
		"evoo":                {"olive oil", "extra virgin olive oil"},
		"coconut oil":         {"virgin coconut oil", "unrefined coconut oil"},
		"sea salt":            {"salt", "kosher salt"},
		"kosher salt":         {"salt", "sea salt"},
		"black pepper":        {"pepper", "ground black pepper"},
		"ground black pepper": {"black pepper", "pepper"},
	}
}

// clone copies the table so callers cannot mutate an expander's view of it
func (t SynonymTable) clone() SynonymTable {
	out := make(SynonymTable, len(t))
	for k, v := range t {
		out[strings.ToLower(strings.TrimSpace(k))] = append([]string(nil), v...)
	}
	return out
}

// VariationExpander produces the alternate strings tried when matching an ingredient
type VariationExpander struct {
	normalizer *Normalizer
	synonyms   SynonymTable
}

// NewVariationExpander creates an expander. A nil synonym table means DefaultSynonyms.
func NewVariationExpander(normalizer *Normalizer, synonyms SynonymTable) *VariationExpander {
	if normalizer == nil {
		normalizer = NewNormalizer()
	}
	if synonyms == nil {
		synonyms = DefaultSynonyms()
	}
	return &VariationExpander{
		normalizer: normalizer,
		synonyms:   synonyms.clone(),
	}
}

// Expand returns the de-duplicated, non-empty candidates for an ingredient, in order:
// normalized form, raw lower-cased form, synonyms, then the individual words of a
// multi-word normalized form. Only the normalized form is looked up in the synonym table.
func (e *VariationExpander) Expand(ingredient string) []string {
	normalized := e.normalizer.Normalize(ingredient)
	raw := strings.ToLower(strings.TrimSpace(ingredient))

	candidates := []string{normalized, raw}
	candidates = append(candidates, e.synonyms[normalized]...)

	if words := strings.Fields(normalized); len(words) > 1 {
		candidates = append(candidates, words...)
	}

	seen := make(map[string]bool, len(candidates))
	variations := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		variations = append(variations, c)
	}
	return variations
}

// Normalizer exposes the normalizer shared with the matcher
func (e *VariationExpander) Normalizer() *Normalizer {
	return e.normalizer
}
