package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRecipeNotFound is returned when the recipe source has no such recipe
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrQuotaExceeded is returned when the recipe API quota is used up
	ErrQuotaExceeded = errors.New("recipe API quota exceeded")

	// ErrUnauthorized is returned when the recipe API rejects our key
	ErrUnauthorized = errors.New("recipe API key rejected")

	// ErrRecipeAPIFailure is returned when a recipe API request fails
	ErrRecipeAPIFailure = errors.New("recipe API request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidInventory is returned when an inventory file cannot be read
	ErrInvalidInventory = errors.New("invalid inventory file")

	// ErrInventoryNotFound is returned when an uploaded inventory has expired or never existed
	ErrInventoryNotFound = errors.New("inventory not found")
)
