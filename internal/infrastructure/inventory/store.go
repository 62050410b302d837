package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pantryrank/backend/internal/domain"
)

const (
	keyPrefix  = "inventory:"
	defaultTTL = 24 * time.Hour
)

// Store keeps uploaded inventories in the shared cache under a generated id
type Store struct {
	cache domain.CacheRepository
	ttl   time.Duration
}

// NewStore creates a Store. A non-positive ttl falls back to 24h.
func NewStore(cache domain.CacheRepository, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{cache: cache, ttl: ttl}
}

// Save stores inv and returns its id
func (s *Store) Save(ctx context.Context, inv domain.Inventory) (string, error) {
	id := uuid.NewString()
	if err := s.cache.Set(ctx, keyPrefix+id, inv, s.ttl); err != nil {
		return "", fmt.Errorf("failed to store inventory: %w", err)
	}
	return id, nil
}

// Load returns the inventory saved under id
func (s *Store) Load(ctx context.Context, id string) (domain.Inventory, error) {
	var inv domain.Inventory
	if _, err := uuid.Parse(id); err != nil {
		return inv, domain.ErrInventoryNotFound
	}

	if err := s.cache.Get(ctx, keyPrefix+id, &inv); err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return inv, domain.ErrInventoryNotFound
		}
		return inv, fmt.Errorf("failed to load inventory: %w", err)
	}
	return inv, nil
}
