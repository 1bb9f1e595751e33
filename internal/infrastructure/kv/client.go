package kv

import (
	"context"
	"fmt"

	"github.com/martijn/userservice/pkg/config"
	"github.com/redis/go-redis/v9"
)

// Open connects to redis and checks the connection with a PING.
func Open(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Storage.RedisAddr,
		DB:           cfg.Storage.RedisDB,
		Password:     cfg.Storage.RedisPassword,
		PoolSize:     cfg.Database.MaxOpenConns,
		MinIdleConns: cfg.Database.MaxIdleConns,
		DialTimeout:  cfg.Database.ConnectTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}
