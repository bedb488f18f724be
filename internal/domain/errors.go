package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidDescription is returned when an analyzed description is
	// missing required attributes (type, genre, pattern or length)
	ErrInvalidDescription = errors.New("analyzed description missing required attributes")

	// ErrNoComparableProducts is returned when no competitors with valid
	// pricing and sufficient similarity remain for price aggregation
	ErrNoComparableProducts = errors.New("no comparable products with valid pricing found")

	// ErrCollectionNotFound is returned when the catalog store has no such collection
	ErrCollectionNotFound = errors.New("collection not found in catalog store")

	// ErrCatalogUnavailable is returned when the catalog store API request fails
	ErrCatalogUnavailable = errors.New("catalog store request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
