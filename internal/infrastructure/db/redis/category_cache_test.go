package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCategoryCache(t *testing.T) (*CategoryCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCategoryCache(client), mr
}

func TestCategoryCache_Miss(t *testing.T) {
	cache, _ := setupCategoryCache(t)

	got, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCategoryCache_SetAndGet(t *testing.T) {
	cache, mr := setupCategoryCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, []string{"Femme", "Homme"}))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Femme", "Homme"}, got)

	ttl := mr.TTL(categoriesKey)
	assert.GreaterOrEqual(t, ttl, categoriesBaseTTL)
	assert.Less(t, ttl, categoriesBaseTTL+categoriesJitter*time.Minute)
}

func TestCategoryCache_EmptyListIsAHit(t *testing.T) {
	cache, _ := setupCategoryCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, nil))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCategoryCache_Expiry(t *testing.T) {
	cache, mr := setupCategoryCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, []string{"Homme"}))
	mr.FastForward(categoriesBaseTTL + categoriesJitter*time.Minute)

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCategoryCache_Invalidate(t *testing.T) {
	cache, mr := setupCategoryCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, []string{"Homme"}))
	require.NoError(t, cache.Invalidate(ctx))
	assert.False(t, mr.Exists(categoriesKey))

	// Deleting a missing key is not an error.
	require.NoError(t, cache.Invalidate(ctx))
}

func TestCategoryCache_InvalidJSON(t *testing.T) {
	cache, mr := setupCategoryCache(t)

	require.NoError(t, mr.Set(categoriesKey, "not json"))

	_, err := cache.Get(context.Background())
	assert.Error(t, err)
}

func TestCategoryCache_ServerDown(t *testing.T) {
	cache, mr := setupCategoryCache(t)
	mr.Close()

	_, err := cache.Get(context.Background())
	assert.Error(t, err)
}
