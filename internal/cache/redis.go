package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix namespaces all cache keys in Redis to avoid collisions.
	keyPrefix = "subfinder:"

	// opTimeout bounds every Redis round trip so a slow server never stalls a search.
	opTimeout = 2 * time.Second
)

func init() {
	Register("redis", newRedisCache)
}

// redisCache implements the Cache interface using Redis/Valkey.
//
// Each entry is a plain string key ({prefix}{user key}) with a per-key TTL;
// expiry and memory-pressure eviction are left to the server (maxmemory with
// an lru policy), so no application-side bookkeeping is needed. OnEvict is
// not supported: the server evicts without notifying us.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

func newRedisCache(cfg BackendConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Verify connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisCache{
		client: client,
		ttl:    cfg.TTL,
		logger: cfg.Logger,
	}, nil
}

func (r *redisCache) logError(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, err)
	}
}

func (r *redisCache) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	val, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		// redis.Nil means the key doesn't exist — a normal cache miss.
		if !errors.Is(err, redis.Nil) {
			r.logError("redis cache Get failed", err)
		}
		return nil, false
	}
	return val, true
}

func (r *redisCache) Set(key string, value []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := r.client.Set(ctx, keyPrefix+key, value, r.ttl).Err(); err != nil {
		r.logError("redis cache Set failed", err)
	}
}

func (r *redisCache) Contains(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	n, err := r.client.Exists(ctx, keyPrefix+key).Result()
	if err != nil {
		r.logError("redis cache Contains failed", err)
		return false
	}
	return n > 0
}

func (r *redisCache) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	// Count only our namespace; other databases' keys are none of our business.
	var count int
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		r.logError("redis cache Len failed", err)
		return 0
	}
	return count
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
