package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"iops/internal/application/usage/dto"
	"iops/internal/shared/logger"
)

const usageStatsKeyPrefix = "usage:stats:"

// RedisUsageStatsCache caches the per-user usage snapshot between writes. A
// short TTL bounds staleness; every increment invalidates the entry anyway,
// so the TTL only matters when invalidation itself fails.
type RedisUsageStatsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewRedisUsageStatsCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisUsageStatsCache {
	return &RedisUsageStatsCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisUsageStatsCache) key(userID uint, monthYear string) string {
	return fmt.Sprintf("%s%d:%s", usageStatsKeyPrefix, userID, monthYear)
}

// Get returns the cached snapshot, or nil on a miss.
func (c *RedisUsageStatsCache) Get(ctx context.Context, userID uint, monthYear string) (*dto.UsageStats, error) {
	raw, err := c.client.Get(ctx, c.key(userID, monthYear)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get usage stats from cache: %w", err)
	}

	var stats dto.UsageStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		c.logger.Warnw("corrupt usage stats cache entry", "user_id", userID, "error", err)
		return nil, nil
	}

	return &stats, nil
}

func (c *RedisUsageStatsCache) Set(ctx context.Context, userID uint, monthYear string, stats *dto.UsageStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal usage stats: %w", err)
	}

	if err := c.client.Set(ctx, c.key(userID, monthYear), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set usage stats in cache: %w", err)
	}

	return nil
}

func (c *RedisUsageStatsCache) Invalidate(ctx context.Context, userID uint, monthYear string) error {
	if err := c.client.Del(ctx, c.key(userID, monthYear)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate usage stats cache: %w", err)
	}
	return nil
}
