package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const menuKey = "serbburger:menu:v1"

// /menuレスポンスのキャッシュ。usecase.MenuCacheの実装。
type RedisMenuCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMenuCache(addr string, ttl time.Duration) *RedisMenuCache {
	return &RedisMenuCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func (c *RedisMenuCache) Get(ctx context.Context) ([]byte, bool, error) {
	b, err := c.client.Get(ctx, menuKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *RedisMenuCache) Set(ctx context.Context, payload []byte) error {
	return c.client.Set(ctx, menuKey, payload, c.ttl).Err()
}

func (c *RedisMenuCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, menuKey).Err()
}

// キャッシュ無し構成用
type NoopMenuCache struct{}

func (NoopMenuCache) Get(ctx context.Context) ([]byte, bool, error) { return nil, false, nil }
func (NoopMenuCache) Set(ctx context.Context, payload []byte) error { return nil }
func (NoopMenuCache) Invalidate(ctx context.Context) error          { return nil }
