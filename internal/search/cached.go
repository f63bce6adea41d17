package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rolescout/internal/cache"
)

// CachedProvider wraps a Provider with a cache so that repeated
// verification queries within a run (and across nearby runs) do not
// re-spend provider quota.
type CachedProvider struct {
	inner Provider
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedProvider wraps inner with the given cache
func NewCachedProvider(inner Provider, c cache.Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		cache: c,
		ttl:   ttl,
	}
}

// Name returns the inner provider's name
func (p *CachedProvider) Name() string {
	return p.inner.Name()
}

// Search consults the cache before the inner provider. Cache failures are
// ignored; the provider answer wins.
func (p *CachedProvider) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	key := cache.CacheKey(fmt.Sprintf("search:%s:%d:%s", p.inner.Name(), maxResults, query))

	if data, found := p.cache.Get(key); found {
		var results []Result
		if err := json.Unmarshal(data, &results); err == nil {
			return results, nil
		}
	}

	results, err := p.inner.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(results); err == nil {
		_ = p.cache.Set(key, data, p.ttl)
	}

	return results, nil
}
