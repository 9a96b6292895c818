package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process cache backed by patrickmn/go-cache.
type Memory struct {
	store *gocache.Cache
}

// NewMemory creates a memory cache whose entries expire after ttl and are
// swept every cleanup interval.
func NewMemory(ttl, cleanup time.Duration) *Memory {
	return &Memory{store: gocache.New(ttl, cleanup)}
}

// Get returns the stored bytes. Callers must not modify them.
func (c *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, found := c.store.Get(key)
	if !found {
		return nil, false, nil
	}
	data, ok := v.([]byte)
	if !ok {
		c.store.Delete(key)
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores data.
func (c *Memory) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.store.Set(key, data, ttl)
	return nil
}

// Len returns the number of cached entries, including expired entries not
// yet swept.
func (c *Memory) Len() int { return c.store.ItemCount() }

// Close drops every entry.
func (c *Memory) Close() error {
	c.store.Flush()
	return nil
}

var _ Cache = (*Memory)(nil)
