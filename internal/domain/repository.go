package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are stored as JSON and decoded into dest on Get.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// RecipeClient defines the interface for the third-party recipe database
type RecipeClient interface {
	SearchRecipes(ctx context.Context, query RecipeSearchQuery) (*RecipeSearchResponse, error)
	GetRecipeDetails(ctx context.Context, id int) (*Recipe, error)
}
