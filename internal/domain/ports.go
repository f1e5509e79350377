package domain

import "context"

// Repository is the data-access contract over one entity type.
type Repository[T any] interface {
	// Read paths
	GetAll(ctx context.Context, f *Filter) ([]T, error)
	// Get returns the first match or ErrNotFound. tracked asks the store to keep the
	// instance for later reconciliation; stateless stores ignore it.
	Get(ctx context.Context, f *Filter, tracked bool) (T, error)

	// Write paths
	Create(ctx context.Context, e *T) error
	Update(ctx context.Context, e *T) error
	Remove(ctx context.Context, e T) error
	Save(ctx context.Context) error
}

type VillaRepository interface {
	Repository[Villa]
	Ping(ctx context.Context) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, keys ...string) error
}
