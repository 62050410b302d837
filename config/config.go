package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pantryrank/backend/internal/infrastructure/logging"
	"github.com/pantryrank/backend/internal/usecase"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Spoonacular SpoonacularConfig `mapstructure:"spoonacular"`
	Cache       CacheConfig       `mapstructure:"cache"`
	RateLimit   RateLimitConfig   `mapstructure:"ratelimit"`
	Matching    MatchingConfig    `mapstructure:"matching"`
	Log         LogConfig         `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	Environment    string        `mapstructure:"environment"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// SpoonacularConfig holds recipe API configuration
type SpoonacularConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxRetries        int           `mapstructure:"max_retries"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type      string        `mapstructure:"type"` // "memory", "redis" or "badger"
	RedisURL  string        `mapstructure:"redis_url"`
	BadgerDir string        `mapstructure:"badger_dir"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// MatchingConfig tunes the ingredient matcher
type MatchingConfig struct {
	FuzzyThreshold     int    `mapstructure:"fuzzy_threshold"`
	Algorithm          string `mapstructure:"algorithm"`
	Workers            int    `mapstructure:"workers"`
	EnableDebugLogging bool   `mapstructure:"enable_debug_logging"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pantryrank/")

	// PANTRYRANK_CACHE_REDIS_URL -> cache.redis_url
	v.SetEnvPrefix("PANTRYRANK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads .env from the working directory. Variables already set in the
// environment win, and a missing file is not an error.
func loadEnvFile() error {
	err := godotenv.Load()
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values. Every key gets a default so
// AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.request_timeout", "30s")

	v.SetDefault("spoonacular.api_key", "")
	v.SetDefault("spoonacular.base_url", "https://api.spoonacular.com")
	v.SetDefault("spoonacular.requests_per_second", 10)
	v.SetDefault("spoonacular.timeout", "30s")
	v.SetDefault("spoonacular.max_retries", 3)

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.badger_dir", "./data/cache")
	v.SetDefault("cache.ttl", "6h")

	v.SetDefault("ratelimit.per_ip", 100)

	v.SetDefault("matching.fuzzy_threshold", usecase.DefaultFuzzyThreshold)
	v.SetDefault("matching.algorithm", usecase.ScorerRatio)
	v.SetDefault("matching.workers", 4)
	v.SetDefault("matching.enable_debug_logging", false)

	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Spoonacular.APIKey == "" {
		return fmt.Errorf("Spoonacular API key is required (set PANTRYRANK_SPOONACULAR_API_KEY)")
	}

	switch config.Cache.Type {
	case "memory":
	case "redis":
		if config.Cache.RedisURL == "" {
			return fmt.Errorf("Redis URL is required when cache type is 'redis'")
		}
	case "badger":
		if config.Cache.BadgerDir == "" {
			return fmt.Errorf("badger directory is required when cache type is 'badger'")
		}
	default:
		return fmt.Errorf("cache type must be 'memory', 'redis' or 'badger', got: %s", config.Cache.Type)
	}

	if config.Matching.FuzzyThreshold < 0 || config.Matching.FuzzyThreshold > 100 {
		return fmt.Errorf("fuzzy threshold must be between 0 and 100, got: %d", config.Matching.FuzzyThreshold)
	}
	if _, err := usecase.ScorerByName(config.Matching.Algorithm); err != nil {
		return err
	}
	if config.Matching.Workers < 1 {
		return fmt.Errorf("matching workers must be at least 1, got: %d", config.Matching.Workers)
	}
	if config.RateLimit.PerIP < 1 {
		return fmt.Errorf("per-IP rate limit must be at least 1, got: %d", config.RateLimit.PerIP)
	}
	if _, err := logging.ParseLevel(config.Log.Level); err != nil {
		return err
	}

	return nil
}
