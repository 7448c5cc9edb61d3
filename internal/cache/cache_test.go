package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGet(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx, "skills?")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "skills?", []byte(`[1]`)))
	got, ok := c.Get(ctx, "skills?")
	require.True(t, ok)
	assert.Equal(t, `[1]`, string(got))
}

func TestMemory_InvalidatePrefix(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "skills?", []byte(`a`)))
	require.NoError(t, c.Set(ctx, "skills?featured=true", []byte(`b`)))
	require.NoError(t, c.Set(ctx, "posts?", []byte(`c`)))

	require.NoError(t, c.InvalidatePrefix(ctx, "skills?"))

	_, ok := c.Get(ctx, "skills?")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "skills?featured=true")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "posts?")
	assert.True(t, ok)
}

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedis_InvalidatePrefix(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("Skipping test - no Redis connection configured")
	}
	ctx := context.Background()

	c, err := NewRedis(ctx, addr, os.Getenv("REDIS_PASSWORD"), time.Minute)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "test-skills?", []byte(`a`)))
	require.NoError(t, c.Set(ctx, "test-skills?featured=true", []byte(`b`)))

	got, ok := c.Get(ctx, "test-skills?")
	require.True(t, ok)
	assert.Equal(t, "a", string(got))

	require.NoError(t, c.InvalidatePrefix(ctx, "test-skills?"))
	_, ok = c.Get(ctx, "test-skills?featured=true")
	assert.False(t, ok)
}
