package cache

import (
	"context"
	"testing"
	"time"

	"inventory-service/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type cachedProduct struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestInMemoryCache_JSONRoundTrip(t *testing.T) {
	c := NewInMemoryCache(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, c, "product:1", cachedProduct{ID: 1, Name: "Widget"}, time.Minute))

	var got cachedProduct
	require.NoError(t, GetJSON(ctx, c, "product:1", &got))
	assert.Equal(t, "Widget", got.Name)
}

func TestInMemoryCache_Expiry(t *testing.T) {
	c := NewInMemoryCache(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), -time.Second))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestNewCache_FallsBackWhenRedisUnavailable(t *testing.T) {
	cfg := &config.Config{RedisHost: "127.0.0.1", RedisPort: "1"}

	c := NewCache(cfg, zap.NewNop())

	_, ok := c.(*InMemoryCache)
	assert.True(t, ok)
	assert.NoError(t, c.Close())
}

func TestTTL(t *testing.T) {
	assert.Equal(t, 300*time.Second, TTL(300))
}
