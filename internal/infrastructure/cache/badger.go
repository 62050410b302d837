package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"

	"github.com/pantryrank/backend/internal/domain"
)

// gcDiscardRatio is the value log rewrite threshold passed to RunValueLogGC
const gcDiscardRatio = 0.5

// BadgerCache persists JSON-encoded values in an embedded BadgerDB, so uploaded
// inventories and recipe pages survive a restart without an external server.
type BadgerCache struct {
	db     *badger.DB
	logger *zap.Logger

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewBadgerCache opens (or creates) a Badger database in dataDir
func NewBadgerCache(dataDir string, logger *zap.Logger) (*BadgerCache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	absPath, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	opts := badger.DefaultOptions(absPath)
	opts.Logger = nil // Disable Badger's internal logger

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}

	logger.Info("BadgerDB opened", zap.String("path", absPath))
	return &BadgerCache{db: db, logger: logger, stop: make(chan struct{})}, nil
}

// Get decodes the value stored under key into dest
func (c *BadgerCache) Get(ctx context.Context, key string, dest interface{}) error {
	var data []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			data = append([]byte{}, val...)
			return nil
		})
	})

	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.ErrCacheMiss
		}
		return fmt.Errorf("failed to get value: %w", err)
	}

	return json.Unmarshal(data, dest)
}

// Set stores a value with TTL. A non-positive TTL never expires.
func (c *BadgerCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	entry := badger.NewEntry([]byte(key), data)
	if ttl > 0 {
		entry = entry.WithTTL(ttl)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(entry)
	})
}

// Delete removes a key from the database
func (c *BadgerCache) Delete(ctx context.Context, key string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Exists checks if an unexpired key is present
func (c *BadgerCache) Exists(ctx context.Context, key string) (bool, error) {
	err := c.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		return err
	})

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("failed to check key: %w", err)
	}
}

// RunGC runs value log garbage collection once
func (c *BadgerCache) RunGC() error {
	return c.db.RunValueLogGC(gcDiscardRatio)
}

// StartGCRoutine starts a goroutine that periodically runs garbage collection until Close
func (c *BadgerCache) StartGCRoutine(interval time.Duration) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-c.stop:
				return
			case <-ticker.C:
				// ErrNoRewrite only means there was nothing to collect
				if err := c.RunGC(); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
					c.logger.Error("BadgerDB GC error", zap.Error(err))
				}
			}
		}
	}()
	c.logger.Info("Started BadgerDB GC routine", zap.Duration("interval", interval))
}

// Close stops the GC routine and closes the database
func (c *BadgerCache) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	c.wg.Wait()
	return c.db.Close()
}
