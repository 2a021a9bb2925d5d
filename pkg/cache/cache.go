// Package cache holds the Redis client used for soft state: page-view
// counters and health pings. The catalog read/write path never goes
// through Redis — every catalog call is a fresh round trip to the
// backend — so Redis being down only disables counters.
package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/storefront/config"
)

// RDB is the shared client; nil when Redis is unavailable.
var RDB *redis.Client

// Connect initialises the client and verifies it with a ping. On error
// the client is left nil and every helper degrades to a no-op.
func Connect() error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := RDB.Ping(context.Background()).Err(); err != nil {
		RDB = nil
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Incr increments the integer at key and returns the new value.
// Returns 0 when Redis is unavailable.
func Incr(ctx context.Context, key string) int64 {
	if RDB == nil {
		return 0
	}
	n, err := RDB.Incr(ctx, key).Result()
	if err != nil {
		return 0
	}
	return n
}

// GetInt returns the integer stored at key, or 0 on miss/error.
func GetInt(ctx context.Context, key string) int64 {
	if RDB == nil {
		return 0
	}
	n, err := RDB.Get(ctx, key).Int64()
	if err != nil {
		return 0
	}
	return n
}

// Ping reports whether Redis is reachable.
func Ping(ctx context.Context) error {
	if RDB == nil {
		return fmt.Errorf("cache: not connected")
	}
	return RDB.Ping(ctx).Err()
}
