package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/veritlyapp-cell/liah-backend/pkg/config"
	"github.com/veritlyapp-cell/liah-backend/pkg/logger"
)

var (
	// Client is the global Redis client; nil means Redis is disabled.
	Client *redis.Client

	isEnabled bool
)

// Init connects the global client. A failed connection degrades gracefully
// to database-only mode instead of blocking startup.
func Init(cfg *config.RedisConfig) error {
	if !cfg.Enabled {
		logger.Infof("[Redis] disabled in config - running in database mode")
		isEnabled = false
		return nil
	}

	cfg.SetDefaults()

	Client = redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  time.Duration(cfg.ConnectTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ConnectTimeout)*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		Client.Close()
		Client = nil
		isEnabled = false
		return fmt.Errorf("failed to connect to Redis at %s:%d: %w (falling back to database mode)", cfg.Host, cfg.Port, err)
	}

	isEnabled = true
	logger.Infof("[Redis] connected to %s:%d (DB: %d, PoolSize: %d)", cfg.Host, cfg.Port, cfg.DB, cfg.PoolSize)
	return nil
}

// IsEnabled reports whether the Redis cache layer is available.
func IsEnabled() bool {
	return isEnabled && Client != nil
}

// GetClient returns the global client, nil when disabled.
func GetClient() *redis.Client {
	return Client
}

// Close tears down the client on shutdown.
func Close() {
	if Client != nil {
		_ = Client.Close()
		Client = nil
		isEnabled = false
	}
}
