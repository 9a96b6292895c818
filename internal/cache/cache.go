// Package cache stores serialized QR responses so identical requests skip
// encoding and rendering.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/cristianadrielbraun/qrapi/internal/config"
)

// Cache stores byte blobs by key.
type Cache interface {
	// Get returns the stored data and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data for ttl; zero ttl selects the backend default.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Close() error
}

// New builds the backend selected by cfg.
func New(cfg config.CacheConfig) (Cache, error) {
	switch cfg.Backend {
	case "memory", "":
		return NewMemory(cfg.TTL, cfg.CleanupInterval), nil
	case "redis":
		return NewRedis(cfg.Redis, cfg.TTL), nil
	case "none":
		return NewNull(), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}
