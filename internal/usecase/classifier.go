package usecase

import (
	"math"

	"go.uber.org/zap"

	"github.com/pantryrank/backend/internal/domain"
)

// Store-tier entries carry these in place of inventory metadata
const (
	storeCategory = "Store Purchase"
	storeVendor   = "Supermarket"
)

// BuildPool combines pantry and commissary into one tier-tagged pool, pantry first.
// Duplicate names across the two lists are kept; each is a separate candidate.
func BuildPool(pantry, commissary []domain.InventoryItem) []domain.PoolItem {
	pool := make([]domain.PoolItem, 0, len(pantry)+len(commissary))
	for _, item := range pantry {
		pool = append(pool, domain.PoolItem{InventoryItem: item, Tier: domain.TierPantry})
	}
	for _, item := range commissary {
		pool = append(pool, domain.PoolItem{InventoryItem: item, Tier: domain.TierCommissary})
	}
	return pool
}

// Classifier sorts a recipe's ingredients into pantry, commissary and store buckets
type Classifier struct {
	matcher *MatchingService
	logger  *zap.Logger
}

// NewClassifier creates a classifier backed by the given matcher
func NewClassifier(matcher *MatchingService, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{matcher: matcher, logger: logger}
}

// Matcher returns the underlying matching service
func (c *Classifier) Matcher() *MatchingService {
	return c.matcher
}

// Prepare builds and normalizes the combined pool for repeated classification
func (c *Classifier) Prepare(pantry, commissary []domain.InventoryItem) *PreparedPool {
	return c.matcher.PreparePool(BuildPool(pantry, commissary))
}

// Classify matches every ingredient against the combined pantry and commissary pool
func (c *Classifier) Classify(ingredients []domain.RecipeIngredient, pantry, commissary []domain.InventoryItem) domain.RecipeAnalysis {
	return c.ClassifyWithPool(ingredients, c.Prepare(pantry, commissary))
}

// ClassifyWithPool classifies against a prepared pool. Ingredients without a name are
// skipped and excluded from every count.
func (c *Classifier) ClassifyWithPool(ingredients []domain.RecipeIngredient, pool *PreparedPool) domain.RecipeAnalysis {
	analysis := domain.RecipeAnalysis{
		PantryIngredients:     []string{},
		CommissaryIngredients: []string{},
		StoreIngredients:      []string{},
		DetailedMatches: map[domain.Tier][]domain.IngredientMatch{
			domain.TierPantry:     {},
			domain.TierCommissary: {},
			domain.TierStore:      {},
		},
	}

	for _, ingredient := range ingredients {
		name := ingredient.DisplayName()
		if name == "" {
			continue
		}

		match := c.matcher.MatchPrepared(name, pool)
		if match == nil {
			analysis.StoreIngredients = append(analysis.StoreIngredients, name)
			analysis.DetailedMatches[domain.TierStore] = append(analysis.DetailedMatches[domain.TierStore], domain.IngredientMatch{
				RecipeIngredient: name,
				Category:         storeCategory,
				Vendor:           storeVendor,
			})
			continue
		}

		detail := domain.IngredientMatch{
			RecipeIngredient: name,
			MatchedItem:      match.Item.Name,
			MatchScore:       match.Score,
			Category:         match.Item.Category,
			Vendor:           match.Item.Vendor,
		}
		switch match.Tier {
		case domain.TierPantry:
			analysis.PantryIngredients = append(analysis.PantryIngredients, name)
		case domain.TierCommissary:
			analysis.CommissaryIngredients = append(analysis.CommissaryIngredients, name)
		}
		analysis.DetailedMatches[match.Tier] = append(analysis.DetailedMatches[match.Tier], detail)
	}

	analysis.Counts = domain.TierCounts{
		Pantry:     len(analysis.PantryIngredients),
		Commissary: len(analysis.CommissaryIngredients),
		Store:      len(analysis.StoreIngredients),
	}
	analysis.Counts.Total = analysis.Counts.Pantry + analysis.Counts.Commissary + analysis.Counts.Store

	analysis.PriorityScore, analysis.CostScore = Score(analysis.Counts)
	if total := analysis.Counts.Total; total > 0 {
		analysis.MatchPercentage = percentage(analysis.Counts.Pantry+analysis.Counts.Commissary, total)
		analysis.PantryPercentage = percentage(analysis.Counts.Pantry, total)
		analysis.CommissaryPercentage = percentage(analysis.Counts.Commissary, total)
	}

	return analysis
}

// AnalyzeRecipe returns a copy of the recipe with its analysis attached
func (c *Classifier) AnalyzeRecipe(recipe domain.Recipe, pool *PreparedPool) domain.Recipe {
	analysis := c.ClassifyWithPool(recipe.Ingredients, pool)
	recipe.Analysis = &analysis

	c.logger.Info("recipe classified",
		zap.String("title", recipe.Title),
		zap.Int("pantry", analysis.Counts.Pantry),
		zap.Int("commissary", analysis.Counts.Commissary),
		zap.Int("store", analysis.Counts.Store),
		zap.Float64("priority", analysis.PriorityScore))

	return recipe
}

// percentage returns part/total*100 rounded to one decimal
func percentage(part, total int) float64 {
	return roundTo(float64(part)/float64(total)*100, 1)
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
