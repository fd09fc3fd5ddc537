package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailstock/internal/pkg/cache"
)

func getRedisClient(t *testing.T) *cache.RedisClient {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client, err := cache.NewRedisClient(addr)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisClient_SetGetDelete(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	key := "test:inventory:" + uuid.NewString()

	_, err := client.Get(ctx, key)
	assert.Equal(t, cache.ErrCacheMiss, err)

	require.NoError(t, client.Set(ctx, key, `[{"id":"INV1"}]`, time.Minute))

	val, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"INV1"}]`, val)

	require.NoError(t, client.Delete(ctx, key, key+":other"))
	_, err = client.Get(ctx, key)
	assert.Equal(t, cache.ErrCacheMiss, err)
}

func TestRedisClient_Counter(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	key := "test:rate-limit:" + uuid.NewString()
	defer client.Delete(ctx, key)

	_, err := client.GetInt(ctx, key)
	assert.Equal(t, cache.ErrCacheMiss, err)

	require.NoError(t, client.Set(ctx, key, 1, time.Minute))
	n, err := client.Incr(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	count, err := client.GetInt(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
