package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryrank/backend/internal/domain"
)

func ingredients(names ...string) []domain.RecipeIngredient {
	out := make([]domain.RecipeIngredient, len(names))
	for i, name := range names {
		out[i] = domain.RecipeIngredient{Name: name}
	}
	return out
}

func items(names ...string) []domain.InventoryItem {
	out := make([]domain.InventoryItem, len(names))
	for i, name := range names {
		out[i] = domain.InventoryItem{Name: name}
	}
	return out
}

func newTestClassifier() *Classifier {
	return NewClassifier(NewMatchingService(DefaultMatchConfig()), nil)
}

func TestBuildPool(t *testing.T) {
	pool := BuildPool(items("Garlic"), items("Garlic", "Kale"))

	require.Len(t, pool, 3)
	assert.Equal(t, domain.TierPantry, pool[0].Tier)
	assert.Equal(t, domain.TierCommissary, pool[1].Tier)
	assert.Equal(t, "Kale", pool[2].Name)
}

func TestClassify(t *testing.T) {
	c := newTestClassifier()

	analysis := c.Classify(
		ingredients("chicken breast", "bell peppers", "quinoa", "garlic"),
		items("Chicken Breast", "Bell Peppers"),
		items("Garlic"),
	)

	assert.Equal(t, domain.TierCounts{Pantry: 2, Commissary: 1, Store: 1, Total: 4}, analysis.Counts)
	assert.Equal(t, []string{"chicken breast", "bell peppers"}, analysis.PantryIngredients)
	assert.Equal(t, []string{"garlic"}, analysis.CommissaryIngredients)
	assert.Equal(t, []string{"quinoa"}, analysis.StoreIngredients)

	assert.Equal(t, 0.475, analysis.PriorityScore)
	assert.Equal(t, 0.75, analysis.CostScore)
	assert.Equal(t, 75.0, analysis.MatchPercentage)
	assert.Equal(t, 50.0, analysis.PantryPercentage)
	assert.Equal(t, 25.0, analysis.CommissaryPercentage)

	store := analysis.DetailedMatches[domain.TierStore]
	require.Len(t, store, 1)
	assert.Equal(t, "Store Purchase", store[0].Category)
	assert.Equal(t, "Supermarket", store[0].Vendor)
	assert.Empty(t, store[0].MatchedItem)

	commissary := analysis.DetailedMatches[domain.TierCommissary]
	require.Len(t, commissary, 1)
	assert.Equal(t, "Garlic", commissary[0].MatchedItem)
	assert.Equal(t, 100.0, commissary[0].MatchScore)
}

func TestClassify_SkipsNamelessIngredients(t *testing.T) {
	c := newTestClassifier()

	recipe := []domain.RecipeIngredient{
		{Name: "", Original: ""},
		{Name: "  ", Original: "2 cloves garlic"},
		{Name: "garlic"},
		{Original: "   "},
	}
	analysis := c.Classify(recipe, nil, items("Garlic"))

	assert.Equal(t, domain.TierCounts{Commissary: 2, Total: 2}, analysis.Counts)
	assert.Equal(t, []string{"2 cloves garlic", "garlic"}, analysis.CommissaryIngredients)
}

func TestClassify_EmptyInventory(t *testing.T) {
	c := newTestClassifier()

	analysis := c.Classify(ingredients("garlic", "kale"), nil, nil)

	assert.Equal(t, domain.TierCounts{Store: 2, Total: 2}, analysis.Counts)
	assert.Equal(t, 0.0, analysis.PriorityScore)
	assert.Equal(t, 2.0, analysis.CostScore)
}

func TestClassify_NoIngredients(t *testing.T) {
	c := newTestClassifier()

	analysis := c.Classify(nil, items("Garlic"), nil)

	assert.Equal(t, 0, analysis.Counts.Total)
	assert.Equal(t, 0.0, analysis.PriorityScore)
	assert.Equal(t, 2.0, analysis.CostScore)
	assert.NotNil(t, analysis.PantryIngredients)
	assert.NotNil(t, analysis.StoreIngredients)
}

func TestClassify_CountInvariant(t *testing.T) {
	c := newTestClassifier()
	pantry := items("Chicken Breast", "Green Onions", "Bell Peppers", "Olive Oil", "Sea Salt")
	commissary := items("Turkey Mince", "Zucchini", "Carrots", "Garlic", "Onions")

	recipes := [][]domain.RecipeIngredient{
		ingredients("scallions", "courgette", "2 lbs ground turkey", "quinoa"),
		ingredients("1 tsp kosher salt", "2 tbsp extra virgin olive oil", "", "almond flour"),
		ingredients(),
		ingredients("saffron", "tahini"),
	}

	for _, recipe := range recipes {
		a := c.Classify(recipe, pantry, commissary)

		assert.Equal(t, a.Counts.Total, a.Counts.Pantry+a.Counts.Commissary+a.Counts.Store)
		assert.Len(t, a.PantryIngredients, a.Counts.Pantry)
		assert.Len(t, a.CommissaryIngredients, a.Counts.Commissary)
		assert.Len(t, a.StoreIngredients, a.Counts.Store)
		assert.GreaterOrEqual(t, a.PriorityScore, 0.0)
		assert.LessOrEqual(t, a.PriorityScore, 1.0)
		assert.GreaterOrEqual(t, a.CostScore, 0.0)
		assert.LessOrEqual(t, a.CostScore, 2.0)
	}
}

func TestAnalyzeRecipe(t *testing.T) {
	c := newTestClassifier()
	pool := c.Prepare(items("Garlic"), nil)

	original := domain.Recipe{ID: 7, Title: "Garlic Bread", Ingredients: ingredients("garlic", "bread")}
	analyzed := c.AnalyzeRecipe(original, pool)

	require.NotNil(t, analyzed.Analysis)
	assert.Nil(t, original.Analysis)
	assert.Equal(t, 0.35, analyzed.PriorityScore())
	assert.Equal(t, []string{"bread"}, analyzed.Analysis.StoreIngredients)
}
