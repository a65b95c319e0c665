package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/nexastore/storefront/internal/config"
	domainErrors "github.com/nexastore/storefront/internal/domain/errors"
	"github.com/redis/go-redis/v9"
)

// RedisRegistry records references with SET NX EX so duplicates are
// rejected atomically across instances.
type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed registry with the given TTL.
func NewRedis(client *redis.Client, ttl time.Duration) *RedisRegistry {
	return &RedisRegistry{client: client, ttl: ttl}
}

func (r *RedisRegistry) Record(ctx context.Context, reference string) error {
	ok, err := r.client.SetNX(ctx, "reference:"+reference, 1, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("record reference: %w", err)
	}
	if !ok {
		return domainErrors.ErrDuplicateReference
	}
	return nil
}

// NewRedisClient creates a Redis client with configurable retry logic
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
	})

	maxRetries := cfg.ConnectRetries
	if maxRetries <= 0 {
		maxRetries = 5
	}
	retryDelay := cfg.ConnectRetryDelay
	if retryDelay <= 0 {
		retryDelay = 1 * time.Second
	}

	for i := 0; i < maxRetries; i++ {
		if err := client.Ping(ctx).Err(); err != nil {
			if i == maxRetries-1 {
				client.Close()
				return nil, fmt.Errorf("failed to connect to Redis after %d retries: %w", maxRetries, err)
			}
			time.Sleep(time.Duration(i+1) * retryDelay)
			continue
		}
		break
	}

	return client, nil
}
