package viewcache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUniversalOptions(t *testing.T) {
	opts, err := buildUniversalOptions("redis://:secret@cache-1:6379/2, cache-2:6380")
	require.NoError(t, err)
	assert.Equal(t, []string{"cache-1:6379", "cache-2:6380"}, opts.Addrs)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)

	_, err = buildUniversalOptions(" , ")
	assert.Error(t, err)
}

func TestNewRedisCache_RequiresURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "")
	require.Error(t, err)
}

func TestPathPattern(t *testing.T) {
	assert.Equal(t, "view:/companions|*", pathPattern("/companions"))
	assert.Equal(t, `view:/a\*b|*`, pathPattern("/a*b"))
	assert.Equal(t, `view:/a\?\[x\]|*`, pathPattern("/a?[x]"))
	assert.Equal(t, "view:/|user_1", cacheKey("/", "user_1"))
}

// shardNode serves SCAN and UNLINK from an in-memory key set.
type shardNode struct {
	redis.Cmdable
	keys map[string]bool
}

func newShardNode(keys ...string) *shardNode {
	n := &shardNode{keys: map[string]bool{}}
	for _, k := range keys {
		n.keys[k] = true
	}
	return n
}

func (n *shardNode) Scan(_ context.Context, _ uint64, match string, _ int64) *redis.ScanCmd {
	prefix := strings.TrimSuffix(match, "*")
	var found []string
	for k := range n.keys {
		if strings.HasPrefix(k, prefix) {
			found = append(found, k)
		}
	}
	return redis.NewScanCmdResult(found, 0, nil)
}

func (n *shardNode) Pipeline() redis.Pipeliner {
	return &shardPipe{node: n}
}

type shardPipe struct {
	redis.Pipeliner
	node    *shardNode
	pending []string
}

func (p *shardPipe) Unlink(_ context.Context, keys ...string) *redis.IntCmd {
	p.pending = append(p.pending, keys...)
	return redis.NewIntResult(int64(len(keys)), nil)
}

func (p *shardPipe) Exec(context.Context) ([]redis.Cmder, error) {
	for _, k := range p.pending {
		delete(p.node.keys, k)
	}
	return nil, nil
}

func TestRedisCache_InvalidateVisitsEveryShard(t *testing.T) {
	shardA := newShardNode(cacheKey("/companions", "u1?"), cacheKey("/", "u1?"))
	shardB := newShardNode(cacheKey("/companions", "u2?page=2"))

	cache := &RedisCache{
		eachNode: func(ctx context.Context, fn func(ctx context.Context, node redis.Cmdable) error) error {
			for _, node := range []redis.Cmdable{shardA, shardB} {
				if err := fn(ctx, node); err != nil {
					return err
				}
			}
			return nil
		},
	}

	require.NoError(t, cache.Invalidate(context.Background(), "/companions"))
	assert.Equal(t, map[string]bool{cacheKey("/", "u1?"): true}, shardA.keys)
	assert.Empty(t, shardB.keys)
}

func TestNewRedisCacheWithClient_ClusterWalksMasters(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cluster := redis.NewClusterClient(&redis.ClusterOptions{
		Addrs:       []string{"127.0.0.1:1"},
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer cluster.Close()

	// Loading the cluster topology fails before any node is scanned.
	err := NewRedisCacheWithClient(cluster).Invalidate(ctx, "/companions")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "failed to scan keys")

	single := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer single.Close()

	err = NewRedisCacheWithClient(single).Invalidate(ctx, "/companions")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to scan keys")
}
