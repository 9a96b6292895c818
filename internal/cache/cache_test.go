package cache

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cristianadrielbraun/qrapi/internal/config"
)

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Hour, time.Hour)
	defer c.Close()

	if _, ok, err := c.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("Get(missing) = %v, %v; want miss", ok, err)
	}

	want := []byte{0x89, 'P', 'N', 'G'}
	if err := c.Set(ctx, "k", want, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want hit", ok, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get() = %x, want %x", got, want)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestMemory_Expiration(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Hour, time.Hour)

	if err := c.Set(ctx, "k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get() hit after expiration")
	}
}

func TestMemory_Close(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Hour, time.Hour)
	_ = c.Set(ctx, "k", []byte("v"), 0)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Close, want 0", c.Len())
	}
}

func TestNull(t *testing.T) {
	ctx := context.Background()
	c := NewNull()
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Null cache returned a hit")
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		backend string
		want    string
		wantErr bool
	}{
		{"memory", "*cache.Memory", false},
		{"", "*cache.Memory", false},
		{"none", "*cache.Null", false},
		{"redis", "*cache.Redis", false},
		{"memcached", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			c, err := New(config.CacheConfig{Backend: tt.backend, TTL: time.Minute, CleanupInterval: time.Minute,
				Redis: config.RedisConfig{Addr: "localhost:6379"}})
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.backend, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			defer c.Close()
			if got := typeName(c); got != tt.want {
				t.Errorf("New(%q) = %s, want %s", tt.backend, got, tt.want)
			}
		})
	}
}

func typeName(c Cache) string {
	switch c.(type) {
	case *Memory:
		return "*cache.Memory"
	case *Null:
		return "*cache.Null"
	case *Redis:
		return "*cache.Redis"
	}
	return "unknown"
}
