package spoonacular

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryrank/backend/internal/domain"
)

const searchBody = `{
	"results": [
		{
			"id": 715538,
			"title": "Bruschetta Style Pork & Pasta",
			"summary": "A <b>quick</b> dinner &amp; more",
			"readyInMinutes": 35,
			"servings": 5,
			"diets": ["whole 30"],
			"extendedIngredients": [
				{"id": 1, "name": "pork chops", "original": "2 pork chops", "amount": 2, "unit": ""},
				{"id": 2, "name": "garlic", "original": "3 cloves garlic", "amount": 3, "unit": "cloves"}
			],
			"analyzedInstructions": [
				{"name": "", "steps": [{"number": 1, "step": "Sear the pork."}, {"number": 2, "step": "Add garlic."}]}
			]
		}
	],
	"offset": 0,
	"number": 1,
	"totalResults": 42
}`

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	client := NewClient(Config{APIKey: "test-api-key", BaseURL: url, RequestsPerSecond: 1000}, nil)
	client.backoff = func(int) time.Duration { return time.Millisecond }
	return client
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{APIKey: "key"}, nil)

	assert.NotNil(t, client.http)
	assert.NotNil(t, client.rateLimiter)
	assert.Equal(t, DefaultBaseURL, client.http.BaseURL)
	assert.Equal(t, defaultMaxRetries, client.maxRetries)
	assert.False(t, client.debug)
}

func TestSetDebug(t *testing.T) {
	client := NewClient(Config{APIKey: "key"}, nil)

	client.SetDebug(true)
	assert.True(t, client.debug)

	client.SetDebug(false)
	assert.False(t, client.debug)
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 2000 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, exponentialBackoff(tt.attempt))
		})
	}
}

func TestSearchRecipes_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/complexSearch", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "test-api-key", q.Get("apiKey"))
		assert.Equal(t, "pork", q.Get("query"))
		assert.Equal(t, "whole30", q.Get("diet"))
		assert.Equal(t, "main course", q.Get("type"))
		assert.Equal(t, "garlic,onion", q.Get("includeIngredients"))
		assert.Equal(t, "true", q.Get("fillIngredients"))
		assert.Equal(t, "true", q.Get("addRecipeInformation"))
		assert.Equal(t, "100", q.Get("number"))
		assert.Equal(t, "20", q.Get("offset"))
		assert.Empty(t, q.Get("cuisine"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.SearchRecipes(context.Background(), domain.RecipeSearchQuery{
		Query:              "pork",
		DishType:           "main course",
		Diet:               "whole30",
		IncludeIngredients: []string{"garlic", "onion"},
		Number:             250,
		Offset:             20,
	})

	require.NoError(t, err)
	assert.Equal(t, 42, resp.TotalResults)
	require.Len(t, resp.Recipes, 1)

	recipe := resp.Recipes[0]
	assert.Equal(t, 715538, recipe.ID)
	assert.Equal(t, "A quick dinner & more", recipe.Summary)
	assert.True(t, recipe.Whole30)
	require.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, "garlic", recipe.Ingredients[1].Name)
	require.Len(t, recipe.Instructions, 2)
	assert.Equal(t, "Add garlic.", recipe.Instructions[1].Step)
}

func TestGetRecipeDetails_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/715538/information", r.URL.Path)
		assert.Equal(t, "false", r.URL.Query().Get("includeNutrition"))
		_, _ = w.Write([]byte(`{"id": 715538, "title": "Pork", "servings": 2, "extendedIngredients": [{"name": "salt"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	recipe, err := client.GetRecipeDetails(context.Background(), 715538)

	require.NoError(t, err)
	assert.Equal(t, "Pork", recipe.Title)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "salt", recipe.Ingredients[0].Name)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantErr     error
		wantAttempt int32
	}{
		{"quota exhausted", http.StatusPaymentRequired, domain.ErrQuotaExceeded, 1},
		{"bad key", http.StatusUnauthorized, domain.ErrUnauthorized, 1},
		{"forbidden", http.StatusForbidden, domain.ErrUnauthorized, 1},
		{"missing recipe", http.StatusNotFound, domain.ErrRecipeNotFound, 1},
		{"bad request", http.StatusBadRequest, domain.ErrRecipeAPIFailure, 1},
		{"server error retried", http.StatusInternalServerError, domain.ErrRecipeAPIFailure, 3},
		{"rate limited retried", http.StatusTooManyRequests, domain.ErrRecipeAPIFailure, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&attempts, 1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"status":"failure"}`))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			_, err := client.GetRecipeDetails(context.Background(), 1)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantAttempt, atomic.LoadInt32(&attempts))
		})
	}
}

func TestClient_RetrySucceeds(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"id": 7, "title": "Soup"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	recipe, err := client.GetRecipeDetails(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "Soup", recipe.Title)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(t, server.URL)
	_, err := client.SearchRecipes(ctx, domain.RecipeSearchQuery{Query: "soup"})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetRecipeDetails_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GetRecipeDetails(context.Background(), 1)

	assert.ErrorContains(t, err, "failed to decode response")
}
