package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/evalua-app/evalua-api/pkg/config"
)

// pingTimeout bounds the startup probe; the caller treats a slow or absent
// Redis as "run without the statistics cache", not as a fatal error.
const pingTimeout = 5 * time.Second

// NewRedis connects the statistics cache. Only aggregate snapshots live
// here, so the client is tuned for a handful of keys, not a hot path.
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:       fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:   cfg.Password,
		DB:         cfg.DB,
		ClientName: "evalua-api",
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}
