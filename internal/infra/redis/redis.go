// Package redis provides the Redis connection used by the session store.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/conciliador/backend/config"
)

// Connection wraps the Redis client with lifecycle helpers.
type Connection struct {
	client *redis.Client
}

// NewConnection connects to Redis using the given configuration and
// verifies the connection with a ping.
func NewConnection(cfg *config.RedisConfig) (*Connection, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &Connection{client: client}, nil
}

// Client returns the underlying Redis client.
func (c *Connection) Client() *redis.Client {
	return c.client
}

// HealthCheck reports whether the connection still answers pings.
func (c *Connection) HealthCheck() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err() == nil
}

// Close closes the underlying client.
func (c *Connection) Close() error {
	return c.client.Close()
}
