package services

import (
	"context"

	"github.com/address-similarity/app/models"
)

// CacheStats summarizes query-cache effectiveness.
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// IQueryCache caches ranked similarity results keyed by query text, mode and
// top-n. Both the Redis-backed and the in-process LRU implementations satisfy
// it; the service works with either (or none).
type IQueryCache interface {
	// Get returns the cached result for key, if present.
	Get(ctx context.Context, key string) (*models.SimilarityResult, bool, error)

	// Set stores a result under key.
	Set(ctx context.Context, key string, result *models.SimilarityResult) error

	// Delete removes a single key.
	Delete(ctx context.Context, key string) error

	// Clear drops every cached result.
	Clear(ctx context.Context) error

	// GetStats reports hit/miss counters.
	GetStats(ctx context.Context) (*CacheStats, error)

	// Close releases any connection held by the cache.
	Close() error
}
