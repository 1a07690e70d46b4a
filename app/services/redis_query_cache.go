package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/address-similarity/app/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisQueryCache stores ranked results in Redis so multiple engine instances
// share one query cache.
type RedisQueryCache struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	hits   int64
	misses int64
}

// NewRedisQueryCache connects to redisURL and verifies the connection before
// returning.
func NewRedisQueryCache(redisURL string, logger *zap.Logger) (*RedisQueryCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisQueryCache{
		client: client,
		logger: logger,
		prefix: "addr_sim:",
		ttl:    6 * time.Hour,
	}, nil
}

func (rc *RedisQueryCache) Get(ctx context.Context, key string) (*models.SimilarityResult, bool, error) {
	cacheKey := rc.prefix + key

	val, err := rc.client.Get(ctx, cacheKey).Result()
	if err == redis.Nil {
		atomic.AddInt64(&rc.misses, 1)
		return nil, false, nil
	}
	if err != nil {
		rc.logger.Error("redis get failed", zap.Error(err), zap.String("key", cacheKey))
		return nil, false, err
	}

	var result models.SimilarityResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		rc.logger.Error("unmarshal cached result failed", zap.Error(err))
		return nil, false, err
	}

	atomic.AddInt64(&rc.hits, 1)
	rc.logger.Debug("redis cache hit", zap.String("key", key))
	return &result, true, nil
}

func (rc *RedisQueryCache) Set(ctx context.Context, key string, result *models.SimilarityResult) error {
	cacheKey := rc.prefix + key

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if err := rc.client.Set(ctx, cacheKey, data, rc.ttl).Err(); err != nil {
		rc.logger.Error("redis set failed", zap.Error(err), zap.String("key", cacheKey))
		return err
	}
	return nil
}

func (rc *RedisQueryCache) Delete(ctx context.Context, key string) error {
	if err := rc.client.Del(ctx, rc.prefix+key).Err(); err != nil {
		rc.logger.Error("redis delete failed", zap.Error(err), zap.String("key", key))
		return err
	}
	return nil
}

func (rc *RedisQueryCache) Clear(ctx context.Context) error {
	keys, err := rc.client.Keys(ctx, rc.prefix+"*").Result()
	if err != nil {
		return fmt.Errorf("list cache keys: %w", err)
	}
	if len(keys) > 0 {
		if err := rc.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("delete cache keys: %w", err)
		}
	}
	rc.logger.Info("cleared redis query cache", zap.Int("keys_deleted", len(keys)))
	return nil
}

func (rc *RedisQueryCache) GetStats(ctx context.Context) (*CacheStats, error) {
	hits := atomic.LoadInt64(&rc.hits)
	misses := atomic.LoadInt64(&rc.misses)

	hitRate := float64(0)
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	var totalItems int64
	if keys, err := rc.client.Keys(ctx, rc.prefix+"*").Result(); err == nil {
		totalItems = int64(len(keys))
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: totalItems,
	}, nil
}

func (rc *RedisQueryCache) Close() error {
	return rc.client.Close()
}

// SetTTL overrides the default entry lifetime.
func (rc *RedisQueryCache) SetTTL(ttl time.Duration) {
	rc.ttl = ttl
}
