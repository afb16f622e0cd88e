/*
Package cache provides a small key-value cache used to memoize
comparison results.

PURPOSE:
  Running the amortization engine for every saved scenario on each
  comparison request is cheap but not free. Results only change when a
  scenario is re-saved, so cache keys embed the SavedAt timestamps of
  the inputs and stale entries simply stop being read.

IMPLEMENTATIONS:
  Redis:  shared cache for deployments with more than one instance
  Memory: in-process map, used when no Redis address is configured
          and in tests

A cache miss is not an error. Callers fall through to recomputing and
best-effort Set the fresh value.
*/
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a read-through cache for serialized comparison results.
type Cache interface {
	// Get returns the cached value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a value with a time-to-live. A zero ttl means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Redis implements Cache on a Redis server.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to the Redis server at addr.
func NewRedis(addr string) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Redis{client: rdb}
}

// Ping verifies the connection. Call once at startup.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error { return r.client.Close() }
