package inmemory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
)

func TestPositionsCacheSetGet(t *testing.T) {
	c := NewPositionsCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "positions:sun:x", "123.456", time.Minute))

	got, err := c.Get(ctx, "positions:sun:x")
	require.NoError(t, err)
	assert.Equal(t, "123.456", got)

	exists, err := c.Exists(ctx, "positions:sun:x")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPositionsCacheMiss(t *testing.T) {
	c := NewPositionsCache()

	_, err := c.Get(context.Background(), "absent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCacheMiss))
}

func TestPositionsCacheDelete(t *testing.T) {
	c := NewPositionsCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	require.NoError(t, c.Delete(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.True(t, errors.Is(err, domain.ErrCacheMiss))
}

func TestPositionsCacheExpiry(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	c := &PositionsCache{
		entries: make(map[string]entry),
		now:     func() time.Time { return now },
	}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	// Часы ушли за TTL, запись протухла
	now = now.Add(2 * time.Minute)

	_, err = c.Get(ctx, "k")
	assert.True(t, errors.Is(err, domain.ErrCacheMiss))

	exists, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPositionsCacheZeroTTLNeverExpires(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	c := &PositionsCache{
		entries: make(map[string]entry),
		now:     func() time.Time { return now },
	}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 0))

	now = now.Add(1000 * time.Hour)

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}
