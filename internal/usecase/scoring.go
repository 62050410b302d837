package usecase

import (
	"cmp"
	"slices"

	"github.com/pantryrank/backend/internal/domain"
)

// Priority weights: pantry stock is worth most, plain availability least
const (
	pantryWeight       = 0.5
	commissaryWeight   = 0.3
	availabilityWeight = 0.2
)

// Per-ingredient cost units by tier
const (
	commissaryCost = 1.0
	storeCost      = 2.0
)

// Score returns the priority score in [0,1] (3 decimals) and the cost score in [0,2]
// (2 decimals). A recipe with no ingredients scores (0, 2).
func Score(counts domain.TierCounts) (priority, cost float64) {
	total := counts.Pantry + counts.Commissary + counts.Store
	if total <= 0 {
		return 0, storeCost
	}

	t := float64(total)
	pantryPct := float64(counts.Pantry) / t
	commissaryPct := float64(counts.Commissary) / t
	availablePct := float64(counts.Pantry+counts.Commissary) / t

	priority = pantryWeight*pantryPct + commissaryWeight*commissaryPct + availabilityWeight*availablePct
	cost = (commissaryCost*float64(counts.Commissary) + storeCost*float64(counts.Store)) / t

	return roundTo(priority, 3), roundTo(cost, 2)
}

// RankRecipes returns the recipes ordered by priority score, highest first.
// Equal scores keep their input order; unanalysed recipes score 0.
func RankRecipes(recipes []domain.Recipe) []domain.Recipe {
	ranked := slices.Clone(recipes)
	slices.SortStableFunc(ranked, func(a, b domain.Recipe) int {
		return cmp.Compare(b.PriorityScore(), a.PriorityScore())
	})
	return ranked
}
