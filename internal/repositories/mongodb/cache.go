package mongodb

import (
	"context"
	"time"
)

// CacheService is the optional read-through cache in front of hot user
// lookups. A nil CacheService disables caching entirely.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
