package counter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Counter is a fixed-window counter service: Increment bumps the counter
// for key within the window containing now and returns the new count.
// Behind an interface so the redis implementation can be swapped for
// another distributed counter.
type Counter interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(addr, password string) *RedisCounter {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("Could not connect to redis")
	}

	return &RedisCounter{client: client}
}

func (c *RedisCounter) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	windowKey := WindowKey(key, time.Now(), window)

	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	// Expiry a window past the boundary keeps the key alive for the whole
	// window even when the first increment lands late in it.
	pipe.Expire(ctx, windowKey, 2*window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// WindowKey buckets key into the fixed window containing now.
func WindowKey(key string, now time.Time, window time.Duration) string {
	bucket := now.Unix() / int64(window.Seconds())
	return fmt.Sprintf("%s:%d", key, bucket)
}
