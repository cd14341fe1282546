// internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hardwarehub/storefront-backend/internal/config"
)

// Key prefixes for the cached read models.
const (
	ProductListPrefix = "products:list:"
	CategoryListKey   = "categories:all"
)

// Cache is a thin JSON layer over Redis. A nil *Cache is valid and turns
// every operation into a no-op, so the services degrade to plain database
// reads when Redis is not configured.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(cfg config.RedisConfig) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("Redis unavailable, caching disabled")
		return nil
	}

	return &Cache{
		client: client,
		ttl:    time.Duration(cfg.TTL) * time.Second,
	}
}

// GetJSON loads the cached value into dest and reports whether it was found.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).WithField("key", key).Warn("Cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache entry corrupted, dropping")
		c.client.Del(ctx, key)
		return false
	}

	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache marshal failed")
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logrus.WithError(err).Warn("Cache delete failed")
	}
}

// DeleteByPrefix drops every key under the prefix; used to invalidate list
// pages after a mutation.
func (c *Cache) DeleteByPrefix(ctx context.Context, prefix string) {
	if c == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logrus.WithError(err).WithField("prefix", prefix).Warn("Cache scan failed")
		return
	}

	c.Delete(ctx, keys...)
}
