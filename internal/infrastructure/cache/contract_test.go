package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryrank/backend/internal/domain"
)

// runCacheContract checks the behavior every domain.CacheRepository backend must share
func runCacheContract(t *testing.T, cache domain.CacheRepository) {
	t.Helper()
	ctx := context.Background()

	t.Run("round trips a struct", func(t *testing.T) {
		want := domain.Inventory{
			Pantry:     []domain.InventoryItem{{Name: "Chicken Breast", Category: "Protein", Vendor: "Pantry"}},
			Commissary: []domain.InventoryItem{{Name: "Garlic"}},
		}
		require.NoError(t, cache.Set(ctx, "inventory:abc", want, time.Minute))

		var got domain.Inventory
		require.NoError(t, cache.Get(ctx, "inventory:abc", &got))
		assert.Equal(t, want, got)
	})

	t.Run("missing key is a cache miss", func(t *testing.T) {
		var got string
		err := cache.Get(ctx, "no-such-key", &got)
		assert.True(t, errors.Is(err, domain.ErrCacheMiss), "got %v", err)
	})

	t.Run("exists and delete", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "recipes:detail:1", domain.Recipe{ID: 1, Title: "Soup"}, time.Minute))

		exists, err := cache.Exists(ctx, "recipes:detail:1")
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, cache.Delete(ctx, "recipes:detail:1"))

		exists, err = cache.Exists(ctx, "recipes:detail:1")
		require.NoError(t, err)
		assert.False(t, exists)

		var got domain.Recipe
		assert.ErrorIs(t, cache.Get(ctx, "recipes:detail:1", &got), domain.ErrCacheMiss)
	})

	t.Run("delete of missing key succeeds", func(t *testing.T) {
		assert.NoError(t, cache.Delete(ctx, "never-set"))
	})

	t.Run("overwrite replaces value", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "k", "first", time.Minute))
		require.NoError(t, cache.Set(ctx, "k", "second", time.Minute))

		var got string
		require.NoError(t, cache.Get(ctx, "k", &got))
		assert.Equal(t, "second", got)
	})

	t.Run("unencodable value fails", func(t *testing.T) {
		assert.Error(t, cache.Set(ctx, "bad", make(chan int), time.Minute))
	})
}
