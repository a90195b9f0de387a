package domain

import (
	"context"
	"time"
)

// ListingCache caches rendered event listings keyed by listing name. A miss
// returns (nil, nil); the caller falls through to the repository.
type ListingCache interface {
	Get(ctx context.Context, key string) ([]*EventDetails, error)
	Set(ctx context.Context, key string, items []*EventDetails, ttl time.Duration) error
	// Invalidate drops every cached listing. Called after any event write.
	Invalidate(ctx context.Context) error
}
