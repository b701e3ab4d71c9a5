package memcache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newRedisCache(t *testing.T) (*miniredis.Miniredis, *RedisPlaceCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisPlaceCache(client, zaptest.NewLogger(t))
}

func TestRedisPlaceCache_SetGet(t *testing.T) {
	ctx := context.Background()
	mr, c := newRedisCache(t)

	require.NoError(t, c.Set(ctx, "p1", record("Elm Park"), time.Minute))
	assert.True(t, mr.Exists(placeKeyPrefix+"p1"))
	assert.Equal(t, time.Minute, mr.TTL(placeKeyPrefix+"p1"))

	got, ok := c.Get(ctx, "p1")
	require.True(t, ok)
	assert.Equal(t, "Elm Park", *got.Name)
	require.NotNil(t, got.Reviews)
	assert.Equal(t, "nice swings", (*got.Reviews)[0].Text)
}

func TestRedisPlaceCache_Expiry(t *testing.T) {
	ctx := context.Background()
	mr, c := newRedisCache(t)

	require.NoError(t, c.Set(ctx, "p1", record("Elm Park"), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, "p1")
	assert.False(t, ok)
}

func TestRedisPlaceCache_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	mr, c := newRedisCache(t)

	require.NoError(t, mr.Set(placeKeyPrefix+"p1", "{broken"))
	_, ok := c.Get(ctx, "p1")
	assert.False(t, ok)
	assert.False(t, mr.Exists(placeKeyPrefix+"p1"))
}

func TestRedisPlaceCache_ServerDown(t *testing.T) {
	ctx := context.Background()
	mr, c := newRedisCache(t)
	mr.Close()

	_, ok := c.Get(ctx, "p1")
	assert.False(t, ok)
	assert.Error(t, c.Set(ctx, "p1", record("Elm Park"), time.Minute))
}
