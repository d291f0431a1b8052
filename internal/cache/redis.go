package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to Redis at addr. It returns nil when addr is empty or
// the server is unreachable; callers treat a nil client as caching disabled.
func NewClient(addr string) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
