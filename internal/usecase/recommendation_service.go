package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pantryrank/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s,]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// Search defaults and limits, as imposed by the recipe API
const (
	defaultResultCount = 10
	maxResultCount     = 100
	defaultDiet        = "whole30"
)

// RecommendationServiceConfig holds configuration for the recommendation service
type RecommendationServiceConfig struct {
	CacheTTL time.Duration
	Workers  int // Concurrent recipe classifications per request
}

// SearchResult is a ranked page of recipes, each carrying its ingredient analysis
type SearchResult struct {
	Recipes      []domain.Recipe `json:"recipes"`
	TotalResults int             `json:"totalResults"`
	Number       int             `json:"number"`
	Offset       int             `json:"offset"`
	Filtered     int             `json:"filtered"` // Dropped by the cuisine filter
	Cached       bool            `json:"cached"`
}

// MatchExplanation describes how a single ingredient was matched
type MatchExplanation struct {
	Ingredient string              `json:"ingredient"`
	Normalized string              `json:"normalized"`
	Variations []string            `json:"variations"`
	Threshold  int                 `json:"threshold"`
	Match      *domain.MatchResult `json:"match"`
	Tier       domain.Tier         `json:"tier"`
}

// RecommendationService searches recipes and ranks them by what the kitchen already has.
// Flow: check cache -> search recipe API -> cache -> filter cuisine -> classify -> rank
type RecommendationService struct {
	cache      domain.CacheRepository
	client     domain.RecipeClient
	classifier *Classifier
	cacheTTL   time.Duration
	workers    int
	logger     *zap.Logger
}

// NewRecommendationService creates a new recommendation service with dependencies
func NewRecommendationService(
	cache domain.CacheRepository,
	client domain.RecipeClient,
	classifier *Classifier,
	config RecommendationServiceConfig,
	logger *zap.Logger,
) *RecommendationService {
	if logger == nil {
		logger = zap.NewNop()
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 6 * time.Hour
	}

	workers := config.Workers
	if workers <= 0 {
		workers = 4
	}

	return &RecommendationService{
		cache:      cache,
		client:     client,
		classifier: classifier,
		cacheTTL:   cacheTTL,
		workers:    workers,
		logger:     logger,
	}
}

// SearchRecipes finds recipes for the query and ranks them against the inventory.
// Only the upstream page is cached; analyses depend on the inventory and are always fresh.
func (s *RecommendationService) SearchRecipes(
	ctx context.Context,
	query domain.RecipeSearchQuery,
	inventory domain.Inventory,
) (*SearchResult, error) {
	query, err := normalizeSearchQuery(query)
	if err != nil {
		return nil, err
	}

	cacheKey := generateSearchCacheKey(query)
	cached := false

	var page domain.RecipeSearchResponse
	if err := s.cache.Get(ctx, cacheKey, &page); err == nil {
		cached = true
	} else {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}

		resp, err := s.client.SearchRecipes(ctx, query)
		if err != nil {
			return nil, upstreamError(err)
		}
		page = *resp

		if err := s.cache.Set(ctx, cacheKey, page, s.cacheTTL); err != nil {
			s.logger.Warn("cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	recipes := page.Recipes
	filtered := 0
	if query.Cuisine != "" {
		kept := make([]domain.Recipe, 0, len(recipes))
		for _, r := range recipes {
			if !matchesCuisine(r.Title, query.Cuisine) {
				s.logger.Warn("filtering recipe outside requested cuisine",
					zap.String("title", r.Title),
					zap.String("cuisine", query.Cuisine))
				filtered++
				continue
			}
			kept = append(kept, r)
		}
		recipes = kept
	}

	analyzed, err := s.classifyAll(ctx, recipes, inventory)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Recipes:      RankRecipes(analyzed),
		TotalResults: page.TotalResults,
		Number:       page.Number,
		Offset:       page.Offset,
		Filtered:     filtered,
		Cached:       cached,
	}, nil
}

// GetRecipe fetches one recipe and analyses it against the inventory
func (s *RecommendationService) GetRecipe(ctx context.Context, id int, inventory domain.Inventory) (*domain.Recipe, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := fmt.Sprintf("recipes:detail:%d", id)

	var recipe domain.Recipe
	if err := s.cache.Get(ctx, cacheKey, &recipe); err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}

		fetched, err := s.client.GetRecipeDetails(ctx, id)
		if err != nil {
			return nil, upstreamError(err)
		}
		recipe = *fetched
		recipe.Analysis = nil

		if err := s.cache.Set(ctx, cacheKey, recipe, s.cacheTTL); err != nil {
			s.logger.Warn("cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	pantry, commissary := usableItems(inventory)
	analyzed := s.classifier.AnalyzeRecipe(recipe, s.classifier.Prepare(pantry, commissary))
	return &analyzed, nil
}

// MatchIngredient explains how one ingredient resolves against the inventory
func (s *RecommendationService) MatchIngredient(ingredient string, inventory domain.Inventory) (*MatchExplanation, error) {
	if strings.TrimSpace(ingredient) == "" {
		return nil, domain.ErrInvalidRequest
	}

	matcher := s.classifier.Matcher()
	pantry, commissary := usableItems(inventory)
	match := matcher.FindBestMatch(ingredient, BuildPool(pantry, commissary))

	tier := domain.TierStore
	if match != nil {
		tier = match.Tier
	}

	return &MatchExplanation{
		Ingredient: ingredient,
		Normalized: matcher.Normalize(ingredient),
		Variations: matcher.Variations(ingredient),
		Threshold:  matcher.Threshold(),
		Match:      match,
		Tier:       tier,
	}, nil
}

// classifyAll analyses each recipe on a bounded pool of goroutines.
// Every goroutine writes only its own slot, and ranking waits for all of them.
func (s *RecommendationService) classifyAll(ctx context.Context, recipes []domain.Recipe, inventory domain.Inventory) ([]domain.Recipe, error) {
	pantry, commissary := usableItems(inventory)
	pool := s.classifier.Prepare(pantry, commissary)

	analyzed := make([]domain.Recipe, len(recipes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := range recipes {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			analyzed[i] = s.classifier.AnalyzeRecipe(recipes[i], pool)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return analyzed, nil
}

// usableItems drops inventory records without a name
func usableItems(inventory domain.Inventory) (pantry, commissary []domain.InventoryItem) {
	return nonBlank(inventory.Pantry), nonBlank(inventory.Commissary)
}

func nonBlank(items []domain.InventoryItem) []domain.InventoryItem {
	out := make([]domain.InventoryItem, 0, len(items))
	for _, item := range items {
		if !item.Blank() {
			out = append(out, item)
		}
	}
	return out
}

// normalizeSearchQuery applies defaults and validates paging
func normalizeSearchQuery(query domain.RecipeSearchQuery) (domain.RecipeSearchQuery, error) {
	if query.Number == 0 {
		query.Number = defaultResultCount
	}
	if query.Number < 0 || query.Number > maxResultCount || query.Offset < 0 {
		return query, domain.ErrInvalidRequest
	}
	if strings.TrimSpace(query.Diet) == "" {
		query.Diet = defaultDiet
	}
	return query, nil
}

// generateSearchCacheKey creates a normalized cache key from a search query.
// Format: "recipes:search:{query}:{type}:{cuisine}:{diet}:{intolerances}:{include}:{number}:{offset}"
func generateSearchCacheKey(query domain.RecipeSearchQuery) string {
	include := make([]string, 0, len(query.IncludeIngredients))
	for _, ing := range query.IncludeIngredients {
		if n := normalizeForCacheKey(ing); n != "" {
			include = append(include, n)
		}
	}

	return fmt.Sprintf("recipes:search:%s:%s:%s:%s:%s:%s:%d:%d",
		normalizeForCacheKey(query.Query),
		normalizeForCacheKey(query.DishType),
		normalizeForCacheKey(query.Cuisine),
		normalizeForCacheKey(query.Diet),
		normalizeForCacheKey(query.Intolerances),
		strings.Join(include, ","),
		query.Number,
		query.Offset,
	)
}

// normalizeForCacheKey normalizes a string for use as cache key component.
// Converts to lowercase, removes special characters, and trims whitespace.
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// upstreamError keeps known recipe API failures and wraps anything else
func upstreamError(err error) error {
	for _, known := range []error{
		domain.ErrRecipeNotFound,
		domain.ErrQuotaExceeded,
		domain.ErrUnauthorized,
		domain.ErrRecipeAPIFailure,
		domain.ErrInvalidRequest,
		context.Canceled,
		context.DeadlineExceeded,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrRecipeAPIFailure, err)
}
