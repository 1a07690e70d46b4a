package services

import (
	"context"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/address-similarity/app/models"
)

// LRUQueryCache is the in-process fallback for deployments without Redis.
type LRUQueryCache struct {
	cache *lru.Cache[string, *models.SimilarityResult]

	hits   int64
	misses int64
}

func NewLRUQueryCache(size int) (*LRUQueryCache, error) {
	if size <= 0 {
		size = 4096
	}
	c, err := lru.New[string, *models.SimilarityResult](size)
	if err != nil {
		return nil, err
	}
	return &LRUQueryCache{cache: c}, nil
}

func (lc *LRUQueryCache) Get(_ context.Context, key string) (*models.SimilarityResult, bool, error) {
	if result, ok := lc.cache.Get(key); ok {
		atomic.AddInt64(&lc.hits, 1)
		return result, true, nil
	}
	atomic.AddInt64(&lc.misses, 1)
	return nil, false, nil
}

func (lc *LRUQueryCache) Set(_ context.Context, key string, result *models.SimilarityResult) error {
	lc.cache.Add(key, result)
	return nil
}

func (lc *LRUQueryCache) Delete(_ context.Context, key string) error {
	lc.cache.Remove(key)
	return nil
}

func (lc *LRUQueryCache) Clear(_ context.Context) error {
	lc.cache.Purge()
	return nil
}

func (lc *LRUQueryCache) GetStats(_ context.Context) (*CacheStats, error) {
	hits := atomic.LoadInt64(&lc.hits)
	misses := atomic.LoadInt64(&lc.misses)

	hitRate := float64(0)
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(lc.cache.Len()),
	}, nil
}

func (lc *LRUQueryCache) Close() error { return nil }
