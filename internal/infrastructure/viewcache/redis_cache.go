package viewcache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/janhq/companion-api/internal/domain/view"
)

// RedisCache shares rendered views between replicas.
type RedisCache struct {
	client redis.UniversalClient
	// eachNode runs fn against every node holding a share of the keyspace.
	eachNode func(ctx context.Context, fn func(ctx context.Context, node redis.Cmdable) error) error
}

var _ view.Cache = (*RedisCache)(nil)

// NewRedisCache connects to the comma separated list of Redis URLs or addresses.
func NewRedisCache(ctx context.Context, redisURL string) (*RedisCache, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("Redis URL must be provided")
	}

	opts, err := buildUniversalOptions(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if len(opts.Addrs) > 1 {
		opts.DB = 0
	}

	client := redis.NewUniversalClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCacheWithClient(client), nil
}

func NewRedisCacheWithClient(client redis.UniversalClient) *RedisCache {
	cache := &RedisCache{client: client}
	switch c := client.(type) {
	case *redis.ClusterClient:
		// SCAN is keyless and lands on a single shard; walk every master instead.
		cache.eachNode = func(ctx context.Context, fn func(ctx context.Context, node redis.Cmdable) error) error {
			return c.ForEachMaster(ctx, func(ctx context.Context, node *redis.Client) error {
				return fn(ctx, node)
			})
		}
	default:
		cache.eachNode = func(ctx context.Context, fn func(ctx context.Context, node redis.Cmdable) error) error {
			return fn(ctx, client)
		}
	}
	return cache
}

func buildUniversalOptions(raw string) (*redis.UniversalOptions, error) {
	opts := &redis.UniversalOptions{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.Contains(part, "://") {
			opts.Addrs = append(opts.Addrs, part)
			continue
		}

		parsed, err := redis.ParseURL(part)
		if err != nil {
			return nil, err
		}
		opts.Addrs = append(opts.Addrs, parsed.Addr)
		if opts.Username == "" {
			opts.Username = parsed.Username
		}
		if opts.Password == "" {
			opts.Password = parsed.Password
		}
		if opts.DB == 0 {
			opts.DB = parsed.DB
		}
		if opts.TLSConfig == nil {
			opts.TLSConfig = parsed.TLSConfig
		}
	}

	if len(opts.Addrs) == 0 {
		return nil, fmt.Errorf("no Redis addresses provided")
	}
	return opts, nil
}

func (r *RedisCache) Get(ctx context.Context, path, variant string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, cacheKey(path, variant)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get view from cache: %w", err)
	}
	return val, true, nil
}

func (r *RedisCache) Set(ctx context.Context, path, variant string, payload []byte, ttl time.Duration) error {
	return r.client.Set(ctx, cacheKey(path, variant), payload, ttl).Err()
}

// Invalidate scans every node for the variants of path and unlinks them.
func (r *RedisCache) Invalidate(ctx context.Context, path string) error {
	pattern := pathPattern(path)
	return r.eachNode(ctx, func(ctx context.Context, node redis.Cmdable) error {
		return unlinkMatching(ctx, node, pattern)
	})
}

func unlinkMatching(ctx context.Context, node redis.Cmdable, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := node.Scan(ctx, cursor, pattern, 1000).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys: %w", err)
		}
		if len(keys) > 0 {
			pipe := node.Pipeline()
			for _, k := range keys {
				pipe.Unlink(ctx, k)
			}
			if _, err := pipe.Exec(ctx); err != nil {
				return fmt.Errorf("failed to unlink keys: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
