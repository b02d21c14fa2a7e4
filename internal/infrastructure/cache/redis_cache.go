package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
)

const keyPrefix = "products:list:"

// RedisProductListCache caché del listado de productos sobre Redis.
type RedisProductListCache struct {
	client *redis.Client
}

// NewRedisProductListCache construye el cliente Redis.
func NewRedisProductListCache(addr, password string, db int) *RedisProductListCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisProductListCache{client: client}
}

func (c *RedisProductListCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisProductListCache) Close() error {
	return c.client.Close()
}

func (c *RedisProductListCache) Get(ctx context.Context, key string) ([]*entity.Product, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var products []*entity.Product
	if err := json.Unmarshal([]byte(val), &products); err != nil {
		return nil, false, err
	}
	return products, true, nil
}

func (c *RedisProductListCache) Set(ctx context.Context, key string, products []*entity.Product, ttl time.Duration) error {
	if products == nil {
		return nil
	}
	payload, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+key, payload, ttl).Err()
}

// InvalidateAll borra todas las páginas cacheadas del listado.
func (c *RedisProductListCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
