package domain

import "strings"

// RecipeIngredient is one line of a recipe's ingredient list as supplied by the recipe source
type RecipeIngredient struct {
	ID           int     `json:"id,omitempty"`
	Name         string  `json:"name"`
	Original     string  `json:"original"`
	OriginalName string  `json:"originalName,omitempty"`
	Amount       float64 `json:"amount,omitempty"`
	Unit         string  `json:"unit,omitempty"`
	Aisle        string  `json:"aisle,omitempty"`
	Consistency  string  `json:"consistency,omitempty"`
}

// DisplayName prefers the short name and falls back to the original text.
// Empty means the ingredient cannot be classified.
func (i RecipeIngredient) DisplayName() string {
	if name := strings.TrimSpace(i.Name); name != "" {
		return name
	}
	return strings.TrimSpace(i.Original)
}

// Instruction is a single numbered cooking step
type Instruction struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

// Recipe represents a recipe from the upstream recipe source, optionally augmented with its analysis
type Recipe struct {
	ID              int                `json:"id"`
	Title           string             `json:"title"`
	Image           string             `json:"image,omitempty"`
	Summary         string             `json:"summary,omitempty"`
	ReadyInMinutes  int                `json:"readyInMinutes"`
	Servings        int                `json:"servings"`
	SourceURL       string             `json:"sourceUrl,omitempty"`
	SpoonacularURL  string             `json:"spoonacularUrl,omitempty"`
	Vegetarian      bool               `json:"vegetarian"`
	Vegan           bool               `json:"vegan"`
	GlutenFree      bool               `json:"glutenFree"`
	DairyFree       bool               `json:"dairyFree"`
	Whole30         bool               `json:"whole30"`
	HealthScore     float64            `json:"healthScore"`
	PricePerServing float64            `json:"pricePerServing"`
	Cuisines        []string           `json:"cuisines,omitempty"`
	DishTypes       []string           `json:"dishTypes,omitempty"`
	Ingredients     []RecipeIngredient `json:"ingredients"`
	Instructions    []Instruction      `json:"instructions,omitempty"`
	Analysis        *RecipeAnalysis    `json:"ingredientAnalysis,omitempty"`
}

// PriorityScore returns the analysed priority score, or 0 when the recipe was never analysed
func (r Recipe) PriorityScore() float64 {
	if r.Analysis == nil {
		return 0
	}
	return r.Analysis.PriorityScore
}

// RecipeSearchQuery describes a search against the recipe source
type RecipeSearchQuery struct {
	Query              string   `json:"query,omitempty"`
	DishType           string   `json:"type,omitempty"`
	Cuisine            string   `json:"cuisine,omitempty"`
	Diet               string   `json:"diet,omitempty"`
	Intolerances       string   `json:"intolerances,omitempty"`
	IncludeIngredients []string `json:"includeIngredients,omitempty"`
	Number             int      `json:"number"`
	Offset             int      `json:"offset"`
}

// RecipeSearchResponse is a page of recipes returned by the recipe source
type RecipeSearchResponse struct {
	Recipes      []Recipe `json:"recipes"`
	TotalResults int      `json:"totalResults"`
	Number       int      `json:"number"`
	Offset       int      `json:"offset"`
}
