package spoonacular

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pantryrank/backend/internal/domain"
)

// Defaults used when Config leaves a field zero
const (
	DefaultBaseURL           = "https://api.spoonacular.com"
	defaultRequestsPerSecond = 10
	defaultTimeout           = 30 * time.Second
	defaultMaxRetries        = 3
	maxLoggedBody            = 512
)

// Config holds the client settings
type Config struct {
	APIKey            string
	BaseURL           string
	RequestsPerSecond float64
	Timeout           time.Duration
	MaxRetries        int
}

// Client handles communication with the Spoonacular recipe API
type Client struct {
	http        *resty.Client
	apiKey      string
	rateLimiter *rate.Limiter
	maxRetries  int
	backoff     func(attempt int) time.Duration
	debug       bool
	logger      *zap.Logger
}

// NewClient creates a new Spoonacular API client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "PantryRank/1.0")

	return &Client{
		http:        httpClient,
		apiKey:      cfg.APIKey,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), 1),
		maxRetries:  retries,
		backoff:     exponentialBackoff,
		logger:      logger,
	}
}

// SetDebug toggles verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return 500 * time.Millisecond * time.Duration(1<<(attempt-1))
}

// SearchRecipes runs a complexSearch with recipe information and ingredients filled in
func (c *Client) SearchRecipes(ctx context.Context, query domain.RecipeSearchQuery) (*domain.RecipeSearchResponse, error) {
	number := query.Number
	if number <= 0 {
		number = 10
	}
	params := map[string]string{
		"number":               strconv.Itoa(min(number, 100)),
		"offset":               strconv.Itoa(query.Offset),
		"addRecipeInformation": "true",
		"addRecipeNutrition":   "false",
		"fillIngredients":      "true",
		"sort":                 "popularity",
	}
	setIfPresent(params, "query", query.Query)
	setIfPresent(params, "type", query.DishType)
	setIfPresent(params, "cuisine", query.Cuisine)
	setIfPresent(params, "diet", query.Diet)
	setIfPresent(params, "intolerances", query.Intolerances)
	if len(query.IncludeIngredients) > 0 {
		params["includeIngredients"] = strings.Join(query.IncludeIngredients, ",")
	}

	body, err := c.get(ctx, "/recipes/complexSearch", params)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	result := mapSearchResponse(&resp)
	c.logger.Info("recipe search completed",
		zap.String("query", query.Query),
		zap.Int("results", len(result.Recipes)),
		zap.Int("total", result.TotalResults))
	return result, nil
}

// GetRecipeDetails retrieves full information for a single recipe
func (c *Client) GetRecipeDetails(ctx context.Context, id int) (*domain.Recipe, error) {
	body, err := c.get(ctx, fmt.Sprintf("/recipes/%d/information", id), map[string]string{
		"includeNutrition": "false",
	})
	if err != nil {
		return nil, err
	}

	var r apiRecipe
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if r.ID == 0 {
		return nil, domain.ErrRecipeNotFound
	}

	recipe := mapRecipe(&r)
	return &recipe, nil
}

// TestConnection performs a one-result search to validate the key and quota
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.SearchRecipes(ctx, domain.RecipeSearchQuery{Query: "chicken", Number: 1})
	return err
}

// get performs a rate-limited GET, retrying transport errors, 429 and 5xx responses
func (c *Client) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		if c.debug {
			c.logger.Debug("spoonacular request", zap.String("path", path), zap.Any("params", params), zap.Int("attempt", attempt))
		}

		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(params).
			SetQueryParam("apiKey", c.apiKey).
			Get(path)

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			c.logger.Warn("spoonacular request error", zap.String("path", path), zap.Int("attempt", attempt), zap.Error(err))
			lastErr = fmt.Errorf("%w: %v", domain.ErrRecipeAPIFailure, err)
		} else {
			status := resp.StatusCode()
			if status == http.StatusOK {
				if c.debug {
					c.logger.Debug("spoonacular response", zap.String("path", path), zap.Int("bytes", len(resp.Body())))
				}
				return resp.Body(), nil
			}

			c.logger.Warn("spoonacular API error",
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Int("status", status),
				zap.String("body", truncate(resp.Body(), maxLoggedBody)))

			lastErr = statusError(status)
			if !retryable(status) {
				return nil, lastErr
			}
		}

		if attempt < c.maxRetries {
			if err := sleepContext(ctx, c.backoff(attempt)); err != nil {
				return nil, err
			}
		}
	}

	c.logger.Error("spoonacular retries exhausted", zap.String("path", path), zap.Error(lastErr))
	return nil, lastErr
}

// statusError maps an upstream status code onto a domain error
func statusError(status int) error {
	switch status {
	case http.StatusPaymentRequired:
		return domain.ErrQuotaExceeded
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrRecipeNotFound
	default:
		return fmt.Errorf("%w: status %d", domain.ErrRecipeAPIFailure, status)
	}
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func setIfPresent(params map[string]string, key, value string) {
	if v := strings.TrimSpace(value); v != "" {
		params[key] = v
	}
}

func truncate(body []byte, limit int) string {
	if len(body) > limit {
		return string(body[:limit])
	}
	return string(body)
}
