package profile

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is enough to hold every funnel key.
const DefaultCacheSize = 32

// cacheEntry remembers both present and absent lookups.
type cacheEntry struct {
	value string
	ok    bool
}

// CachedBackend is a read-through LRU cache in front of another Backend.
// Writes go to the inner backend first; the cache is only updated when the
// write succeeded.
type CachedBackend struct {
	inner Backend
	cache *lru.Cache[string, cacheEntry]
}

var _ Backend = (*CachedBackend)(nil)

// NewCachedBackend wraps inner with an LRU cache holding up to size keys.
func NewCachedBackend(inner Backend, size int) (*CachedBackend, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("create profile cache: %w", err)
	}
	return &CachedBackend{inner: inner, cache: c}, nil
}

func (c *CachedBackend) Get(ctx context.Context, key string) (string, bool, error) {
	if e, ok := c.cache.Get(key); ok {
		return e.value, e.ok, nil
	}
	v, ok, err := c.inner.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	c.cache.Add(key, cacheEntry{value: v, ok: ok})
	return v, ok, nil
}

func (c *CachedBackend) Set(ctx context.Context, key, value string) error {
	if err := c.inner.Set(ctx, key, value); err != nil {
		c.cache.Remove(key)
		return err
	}
	c.cache.Add(key, cacheEntry{value: value, ok: true})
	return nil
}

func (c *CachedBackend) Remove(ctx context.Context, keys ...string) error {
	err := c.inner.Remove(ctx, keys...)
	for _, k := range keys {
		c.cache.Remove(k)
	}
	return err
}
