package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/address-similarity/app/models"
)

func TestLRUQueryCache(t *testing.T) {
	cache, err := NewLRUQueryCache(8)
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()

	_, found, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	result := &models.SimilarityResult{Query: "人民路40号", Mode: 2, TopN: 5}
	require.NoError(t, cache.Set(ctx, "k1", result))

	got, found, err := cache.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, result, got)

	stats, err := cache.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalHits)
	assert.Equal(t, int64(1), stats.TotalMiss)
	assert.Equal(t, int64(1), stats.TotalItems)
	assert.InDelta(t, 0.5, stats.HitRate, 1e-12)

	require.NoError(t, cache.Delete(ctx, "k1"))
	_, found, err = cache.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, "k2", result))
	require.NoError(t, cache.Clear(ctx))
	stats, err = cache.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalItems)
}

func TestLRUQueryCacheEvicts(t *testing.T) {
	cache, err := NewLRUQueryCache(2)
	require.NoError(t, err)

	ctx := context.Background()
	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, cache.Set(ctx, key, &models.SimilarityResult{Query: key}))
	}

	_, found, _ := cache.Get(ctx, "a")
	assert.False(t, found, "oldest entry evicted at capacity")
	_, found, _ = cache.Get(ctx, "c")
	assert.True(t, found)
}

func TestQueryKeyDistinguishesModeAndTopN(t *testing.T) {
	base := queryKey("人民路40号", 5, 2)
	assert.Equal(t, base, queryKey("人民路40号", 5, 2))
	assert.NotEqual(t, base, queryKey("人民路40号", 10, 2))
	assert.NotEqual(t, base, queryKey("人民路40号", 5, 1))
	assert.NotEqual(t, base, queryKey("人民路41号", 5, 2))
}
