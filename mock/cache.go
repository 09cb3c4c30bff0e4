package mock

import (
	"context"

	"github.com/fwojciec/grail"
)

var _ grail.CacheStore = (*CacheStore)(nil)

// CacheStore is a mock implementation of grail.CacheStore.
type CacheStore struct {
	GetOrFetchFn func(ctx context.Context, key string, policy grail.CachePolicy, fetch grail.FetchFunc) (string, error)
}

func (c *CacheStore) GetOrFetch(ctx context.Context, key string, policy grail.CachePolicy, fetch grail.FetchFunc) (string, error) {
	return c.GetOrFetchFn(ctx, key, policy, fetch)
}

// PassthroughCache returns a CacheStore that always calls fetch, recording
// every key it was asked for in keys.
func PassthroughCache(keys *[]string) *CacheStore {
	return &CacheStore{
		GetOrFetchFn: func(ctx context.Context, key string, _ grail.CachePolicy, fetch grail.FetchFunc) (string, error) {
			if keys != nil {
				*keys = append(*keys, key)
			}
			return fetch(ctx)
		},
	}
}
