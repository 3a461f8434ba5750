package httpapi

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/meanblog/internal/logging"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const (
	redisKeyPrefix   = "meanblog:ratelimit"
	redisCallTimeout = 200 * time.Millisecond
	memoryStoreTTL   = 3 * time.Minute
)

// NewMemoryRateLimiterStore returns a per-process token bucket store.
func NewMemoryRateLimiterStore(limit float64, burst int) middleware.RateLimiterStore {
	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(limit),
		Burst:     burst,
		ExpiresIn: memoryStoreTTL,
	})
}

// RedisRateLimiterStore is a fixed one-second window counter kept in Redis,
// so every instance behind a load balancer shares the same budget. If Redis
// is unreachable requests are let through.
type RedisRateLimiterStore struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
	logger logging.Logger
	now    func() time.Time
}

// NewRedisRateLimiterStore allows up to max(ceil(limit), burst) requests per
// identifier per second.
func NewRedisRateLimiterStore(client redis.Cmdable, limit float64, burst int, l logging.Logger) *RedisRateLimiterStore {
	perWindow := int64(math.Ceil(limit))
	if int64(burst) > perWindow {
		perWindow = int64(burst)
	}
	return &RedisRateLimiterStore{
		client: client,
		limit:  perWindow,
		window: time.Second,
		logger: l.With("module", "rate_limiter"),
		now:    time.Now,
	}
}

func (s *RedisRateLimiterStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisCallTimeout)
	defer cancel()

	window := s.now().Truncate(s.window).Unix()
	key := fmt.Sprintf("%s:%s:%d", redisKeyPrefix, identifier, window)

	var count *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		count = p.Incr(ctx, key)
		p.Expire(ctx, key, 2*s.window)
		return nil
	})
	if err != nil {
		s.logger.Warn(ctx, "rate limiter unavailable", "error", err)
		return true, nil
	}

	return count.Val() <= s.limit, nil
}
