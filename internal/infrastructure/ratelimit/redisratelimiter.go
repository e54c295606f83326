package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"iops/internal/shared/logger"
)

type window struct {
	span time.Duration
	cap  int
}

// RedisLimiter keeps one sorted set of request timestamps per (key, window)
// pair and counts the entries inside the sliding window. Sets expire one
// minute after their window so idle keys clean themselves up.
type RedisLimiter struct {
	client *redis.Client
	cfg    Config
	logger logger.Interface
}

func NewRedisLimiter(client *redis.Client, cfg Config, logger logger.Interface) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Allow admits the request only when every configured window has room. The
// request is recorded in each window it was checked against, so a denial in
// the minute window still counts toward the hour window.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	for _, w := range []window{
		{time.Minute, l.cfg.PerMinute},
		{time.Hour, l.cfg.PerHour},
	} {
		if w.cap <= 0 {
			continue
		}

		ok, err := l.allowWindow(ctx, key, w)
		if err != nil {
			return false, err
		}
		if !ok {
			l.logger.Debugw("rate limit window exhausted",
				"key", key, "window", w.span.String(), "cap", w.cap)
			return false, nil
		}
	}

	return true, nil
}

func (l *RedisLimiter) allowWindow(ctx context.Context, key string, w window) (bool, error) {
	bucket := fmt.Sprintf("ratelimit:%s:%s", key, w.span)
	now := time.Now()
	cutoff := strconv.FormatInt(now.Add(-w.span).UnixNano(), 10)
	stamp := now.UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, bucket, "0", cutoff)
	count := pipe.ZCard(ctx, bucket)
	pipe.ZAdd(ctx, bucket, redis.Z{Score: float64(stamp), Member: stamp})
	pipe.Expire(ctx, bucket, w.span+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit pipeline failed for %s: %w", bucket, err)
	}

	return count.Val() < int64(w.cap), nil
}
