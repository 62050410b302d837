package domain

// MatchResult represents the outcome of matching one recipe ingredient against the inventory pool.
// A nil *MatchResult means no match, i.e. the ingredient falls to the store tier.
type MatchResult struct {
	Item        *InventoryItem `json:"matchedItem,omitempty"`
	MatchedName string         `json:"matchedName,omitempty"` // Normalized pool name that won
	Variation   string         `json:"variation,omitempty"`   // Expanded candidate that won
	Score       float64        `json:"score"`                 // Similarity 0-100
	Tier        Tier           `json:"tier"`
}

// IngredientMatch records how a single recipe ingredient was classified
type IngredientMatch struct {
	RecipeIngredient string  `json:"recipeIngredient"`
	MatchedItem      string  `json:"matchedItem,omitempty"`
	MatchScore       float64 `json:"matchScore"`
	Category         string  `json:"category,omitempty"`
	Vendor           string  `json:"vendor,omitempty"`
}

// TierCounts holds per-tier ingredient counts for a recipe.
// Pantry+Commissary+Store always equals Total.
type TierCounts struct {
	Pantry     int `json:"pantry"`
	Commissary int `json:"commissary"`
	Store      int `json:"store"`
	Total      int `json:"total"`
}

// RecipeAnalysis is the aggregate classification for one recipe
type RecipeAnalysis struct {
	PantryIngredients     []string   `json:"pantryIngredients"`
	CommissaryIngredients []string   `json:"commissaryIngredients"`
	StoreIngredients      []string   `json:"storeIngredients"`
	Counts                TierCounts `json:"counts"`

	MatchPercentage      float64 `json:"matchPercentage"`      // Pantry+commissary share, 0-100
	PantryPercentage     float64 `json:"pantryPercentage"`     // 0-100
	CommissaryPercentage float64 `json:"commissaryPercentage"` // 0-100
	PriorityScore        float64 `json:"priorityScore"`        // 0-1, higher is better
	CostScore            float64 `json:"costScore"`            // 0-2, lower is cheaper

	DetailedMatches map[Tier][]IngredientMatch `json:"detailedMatches"`
}
