package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pantryrank/backend/config"
	httpDelivery "github.com/pantryrank/backend/internal/delivery/http"
	"github.com/pantryrank/backend/internal/domain"
	"github.com/pantryrank/backend/internal/infrastructure/cache"
	"github.com/pantryrank/backend/internal/infrastructure/inventory"
	"github.com/pantryrank/backend/internal/infrastructure/logging"
	"github.com/pantryrank/backend/internal/infrastructure/spoonacular"
	"github.com/pantryrank/backend/internal/usecase"
)

const (
	shutdownTimeout  = 15 * time.Second
	badgerGCInterval = 10 * time.Minute
)

type closableCache interface {
	domain.CacheRepository
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting PantryRank backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache", cfg.Cache.Type))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close cache", zap.Error(err))
		}
	}()

	client := spoonacular.NewClient(spoonacular.Config{
		APIKey:            cfg.Spoonacular.APIKey,
		BaseURL:           cfg.Spoonacular.BaseURL,
		RequestsPerSecond: cfg.Spoonacular.RequestsPerSecond,
		Timeout:           cfg.Spoonacular.Timeout,
		MaxRetries:        cfg.Spoonacular.MaxRetries,
	}, logger.Named("spoonacular"))
	if cfg.Server.Environment == "development" {
		client.SetDebug(true)
	}

	scorer, err := usecase.ScorerByName(cfg.Matching.Algorithm)
	if err != nil {
		return err
	}
	matchConfig := usecase.DefaultMatchConfig()
	matchConfig.FuzzyThreshold = cfg.Matching.FuzzyThreshold
	matchConfig.Scorer = scorer
	matchConfig.EnableDebugLogging = cfg.Matching.EnableDebugLogging
	matchConfig.Logger = logger.Named("matcher")

	classifier := usecase.NewClassifier(usecase.NewMatchingService(matchConfig), logger.Named("classifier"))
	recommender := usecase.NewRecommendationService(store, client, classifier, usecase.RecommendationServiceConfig{
		CacheTTL: cfg.Cache.TTL,
		Workers:  cfg.Matching.Workers,
	}, logger.Named("recommendations"))

	logger.Info("matching configured",
		zap.Int("fuzzy_threshold", cfg.Matching.FuzzyThreshold),
		zap.String("algorithm", cfg.Matching.Algorithm),
		zap.Int("workers", cfg.Matching.Workers),
		zap.Bool("debug", cfg.Matching.EnableDebugLogging))

	handler := httpDelivery.NewHandler(
		recommender,
		inventory.NewStore(store, cfg.Cache.TTL),
		httpDelivery.MatchingInfo{FuzzyThreshold: cfg.Matching.FuzzyThreshold, Algorithm: cfg.Matching.Algorithm},
		logger.Named("http"),
	)
	router := httpDelivery.SetupRouter(cfg, handler, logger.Named("http"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server exited")
	return nil
}

// newCache builds the configured cache backend
func newCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (closableCache, error) {
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, "pantryrank:")
		if err != nil {
			return nil, err
		}
		logger.Info("using Redis cache")
		return redisCache, nil
	case "badger":
		badgerCache, err := cache.NewBadgerCache(cfg.Cache.BadgerDir, logger.Named("badger"))
		if err != nil {
			return nil, err
		}
		badgerCache.StartGCRoutine(badgerGCInterval)
		return badgerCache, nil
	default:
		logger.Info("using in-memory cache", zap.Duration("ttl", cfg.Cache.TTL))
		return cache.NewMemoryCache(), nil
	}
}
