package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, c.Set(ctx, "k", payload{Name: "a", Count: 3}, time.Minute))

	var got payload
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, payload{Name: "a", Count: 3}, got)
}

func TestMemoryCacheMissLeavesDestUntouched(t *testing.T) {
	c := NewMemoryCache()

	got := "unchanged"
	found, err := c.Get(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "unchanged", got)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	current := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	require.NoError(t, c.Set(ctx, "k", "v", 10*time.Minute))

	var got string
	found, _ := c.Get(ctx, "k", &got)
	assert.True(t, found)

	current = current.Add(11 * time.Minute)
	found, _ = c.Get(ctx, "k", &got)
	assert.False(t, found, "entry older than its TTL must not be served")
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1, 0))
	require.NoError(t, c.Set(ctx, "b", 2, 0))
	require.NoError(t, c.Delete(ctx, "a", "b"))

	var got int
	found, _ := c.Get(ctx, "a", &got)
	assert.False(t, found)
}
