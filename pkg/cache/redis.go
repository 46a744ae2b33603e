package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campushub/timetable-api/pkg/config"
)

// The stats cache is best effort: a slow Redis must never hold up a slot
// mutation, so the per-command timeouts stay short.
const (
	dialTimeout    = 2 * time.Second
	commandTimeout = 500 * time.Millisecond
	pingTimeout    = 3 * time.Second
)

// NewRedis connects the stats cache and fails fast when it is unreachable;
// the caller degrades to uncached stats.
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  commandTimeout,
		WriteTimeout: commandTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}
