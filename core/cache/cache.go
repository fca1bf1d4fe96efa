package cache

import (
	"context"
	"time"

	"campus-events-api/core/config"
	"campus-events-api/core/constants"
	"campus-events-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// ICache is the subset of cache operations the services need. Tests substitute
// an in-memory implementation.
type ICache interface {
	AddToTokenBlacklist(ctx context.Context, token string) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

type Cache struct {
	client *redis.Client
}

var instance *Cache

// Init connects to redis and keeps a process-wide client.
func Init(cfg config.RedisConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Error("Cache:Init:Ping:Error:", err)
		return nil, err
	}

	instance = &Cache{client: client}
	logger.Info("Redis connected", "addr", cfg.Addr)
	return instance, nil
}

func Get() *Cache {
	return instance
}

// AddToTokenBlacklist marks a token revoked until its natural expiry window passes.
func (c *Cache) AddToTokenBlacklist(ctx context.Context, token string) error {
	key := constants.RedisKeyTokenBlacklist + token
	return c.client.Set(ctx, key, "1", constants.AccessTokenTTL).Err()
}

func (c *Cache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	key := constants.RedisKeyTokenBlacklist + token
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetWithTTL is a generic helper for short-lived values.
func (c *Cache) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *Cache) GetValue(ctx context.Context, key string) (string, error) {
	v, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return v, err
}

func (c *Cache) Close() error {
	return c.client.Close()
}
