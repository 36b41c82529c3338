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

// ProductSource defines the interface for the external product-lookup
// collaborator (OpenFoodFacts). The scoring core never calls it directly;
// the usecase layer fetches a record and hands it to the engine.
type ProductSource interface {
	FetchProduct(ctx context.Context, barcode string) (*ProductRecord, error)
}
