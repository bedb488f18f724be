package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogRepository defines the interface for reading scraped product data
// from the catalog store
type CatalogRepository interface {
	ListCollections(ctx context.Context) ([]string, error)
	FetchProducts(ctx context.Context, collection string) ([]ProductRecord, error)
	FetchCollections(ctx context.Context, collections []string) ([]ProductRecord, error)
}
