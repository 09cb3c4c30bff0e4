package grail

import (
	"context"
	"time"
)

// CachePolicy controls reuse of stored content.
type CachePolicy struct {
	// TTL is the maximum age of a reusable entry. An entry whose age equals
	// TTL is stale.
	TTL time.Duration

	// Refresh ignores stored entries and always fetches.
	Refresh bool
}

// FetchFunc produces fresh content on a cache miss.
type FetchFunc func(ctx context.Context) (string, error)

// CacheStore reuses previously fetched content keyed by page identity.
type CacheStore interface {
	// GetOrFetch returns stored content for key when fresh under policy.
	// Otherwise it calls fetch, stores the result and returns it.
	// Errors from fetch are returned untouched and never stored.
	GetOrFetch(ctx context.Context, key string, policy CachePolicy, fetch FetchFunc) (string, error)
}
