package usecase

import "strings"

// cuisineExclusions lists title words that mark a result as belonging to some other
// cuisine. The recipe API occasionally ignores the cuisine filter when a diet is also set.
var cuisineExclusions = map[string][]string{
	"asian": {
		"jamaican", "caribbean", "jerk", "trinidadian", "cuban", "mexican",
		"peruvian", "brazilian", "argentinian", "ethiopian", "moroccan",
	},
	"mediterranean": {
		"jamaican", "caribbean", "asian", "chinese", "japanese", "korean",
		"thai", "vietnamese", "mexican", "indian", "trinidadian",
	},
	"mexican": {
		"asian", "chinese", "italian", "jamaican", "indian", "thai",
		"japanese", "korean", "vietnamese", "mediterranean",
	},
}

var (
	asianIndicators = []string{
		"asian", "chinese", "japanese", "korean", "thai", "vietnamese",
		"teriyaki", "stir fry", "stir-fry", "sesame", "ginger", "soy sauce",
	}
	curryIndicators     = []string{"curry", "korma", "tikka", "masala", "tandoori"}
	caribbeanIndicators = []string{"jamaican", "caribbean", "trinidadian", "jerk"}
)

// matchesCuisine reports whether a recipe title plausibly belongs to the requested cuisine.
// Unknown cuisines accept everything.
func matchesCuisine(title, cuisine string) bool {
	title = strings.ToLower(title)
	cuisine = strings.ToLower(strings.TrimSpace(cuisine))

	if containsAny(title, cuisineExclusions[cuisine]) {
		return false
	}

	if cuisine == "asian" {
		if containsAny(title, asianIndicators) {
			return true
		}
		if containsAny(title, curryIndicators) {
			return !containsAny(title, caribbeanIndicators)
		}
	}

	return true
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
