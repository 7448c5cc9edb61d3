// Package cache stores rendered list responses between writes.
package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache holds opaque JSON payloads by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
	// InvalidatePrefix drops every key starting with prefix.
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// Memory is an in-process cache.
type Memory struct {
	c   *gocache.Cache
	ttl time.Duration
}

// NewMemory returns an in-process cache whose entries expire after ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{c: gocache.New(ttl, 2*ttl), ttl: ttl}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	v, found := m.c.Get(key)
	if !found {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.c.Set(key, value, gocache.DefaultExpiration)
	return nil
}

func (m *Memory) InvalidatePrefix(_ context.Context, prefix string) error {
	for key := range m.c.Items() {
		if strings.HasPrefix(key, prefix) {
			m.c.Delete(key)
		}
	}
	return nil
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (Nop) Set(context.Context, string, []byte) error { return nil }

func (Nop) InvalidatePrefix(context.Context, string) error { return nil }
