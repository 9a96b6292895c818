package cache

import (
	"context"
	"time"
)

// Null never stores anything.
type Null struct{}

// NewNull creates a cache that always misses.
func NewNull() *Null { return &Null{} }

func (c *Null) Get(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, nil }

func (c *Null) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (c *Null) Close() error { return nil }

var _ Cache = (*Null)(nil)
