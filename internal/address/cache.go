package address

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache returns (nil, nil) on a miss.
type Cache interface {
	Get(ctx context.Context, cep string) (*Address, error)
	Set(ctx context.Context, cep string, addr *Address, ttl time.Duration) error
}

type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, prefix: "cep:"}
}

func (c *RedisCache) Get(ctx context.Context, cep string) (*Address, error) {
	raw, err := c.client.Get(ctx, c.prefix+cep).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var addr Address
	if err := json.Unmarshal(raw, &addr); err != nil {
		return nil, err
	}
	return &addr, nil
}

func (c *RedisCache) Set(ctx context.Context, cep string, addr *Address, ttl time.Duration) error {
	raw, err := json.Marshal(addr)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+cep, raw, ttl).Err()
}
