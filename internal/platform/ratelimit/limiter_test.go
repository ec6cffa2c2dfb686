package ratelimit

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLimiter_InvalidRate(t *testing.T) {
	_, err := NewLimiter("lots", nil)
	assert.Error(t, err)
}

func TestNewLimiter_MemoryStore(t *testing.T) {
	lim, err := NewLimiter("2-M", nil)
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		lctx, err := lim.Get(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.False(t, lctx.Reached)
	}
	lctx, err := lim.Get(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, lctx.Reached)

	other, err := lim.Get(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.False(t, other.Reached, "limits are per key")
}

func TestNewLimiter_RedisStoreSharesCounters(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := NewRedisClient(ctx, "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	defer client.Close()

	first, err := NewLimiter("1-M", client)
	require.NoError(t, err)
	second, err := NewLimiter("1-M", client)
	require.NoError(t, err)

	lctx, err := first.Get(ctx, "10.0.0.9")
	require.NoError(t, err)
	assert.False(t, lctx.Reached)

	lctx, err = second.Get(ctx, "10.0.0.9")
	require.NoError(t, err)
	assert.True(t, lctx.Reached, "a second limiter on the same redis sees the first request")
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)
}
