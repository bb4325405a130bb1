package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/shopnex/pkg/config"
	"github.com/angelmondragon/shopnex/pkg/logger"
	"github.com/angelmondragon/shopnex/pkg/storage"
	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace = "shopnex"
	slotPrefix   = "slot"
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Client wraps the redis connection and exposes it as slot storage.
type Client struct {
	store cmdable
	raw   *redis.Client
}

var errNotInitialized = errors.New("redis client not initialized")

// New bootstraps a Redis client with pooling/timeouts and verifies connectivity.
func New(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if logg != nil {
		logg.Info(logg.WithField(ctx, "redis_addr", opts.Addr), "redis connection established")
	}
	return &Client{store: raw, raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// GetItem returns the value stored in the named slot.
func (c *Client) GetItem(ctx context.Context, key string) (string, error) {
	if c.store == nil {
		return "", fmt.Errorf("%w: %w", storage.ErrUnavailable, errNotInitialized)
	}
	value, err := c.store.Get(ctx, c.SlotKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", classify(err)
	}
	return value, nil
}

// SetItem replaces the named slot without expiry.
func (c *Client) SetItem(ctx context.Context, key, value string) error {
	if c.store == nil {
		return fmt.Errorf("%w: %w", storage.ErrUnavailable, errNotInitialized)
	}
	if err := c.store.Set(ctx, c.SlotKey(key), value, 0).Err(); err != nil {
		return classify(err)
	}
	return nil
}

// RemoveItem deletes the named slot.
func (c *Client) RemoveItem(ctx context.Context, key string) error {
	if c.store == nil {
		return fmt.Errorf("%w: %w", storage.ErrUnavailable, errNotInitialized)
	}
	if err := c.store.Del(ctx, c.SlotKey(key)).Err(); err != nil {
		return classify(err)
	}
	return nil
}

// SlotKey returns the namespaced key for a storage slot.
func (c *Client) SlotKey(name string) string {
	return c.buildKey(slotPrefix, name)
}

// Ping verifies the connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return errNotInitialized
	}
	return c.store.Ping(ctx).Err()
}

// Close shuts down the underlying client if available.
func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

// classify maps redis failures onto the storage sentinels. A server at
// maxmemory answers writes with an OOM error, which is the redis form of a
// full quota.
func classify(err error) error {
	if strings.HasPrefix(err.Error(), "OOM ") {
		return fmt.Errorf("%w: %w", storage.ErrQuotaExceeded, err)
	}
	return fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
}

func (c *Client) buildKey(parts ...string) string {
	if len(parts) == 0 {
		return keyNamespace
	}
	clean := []string{keyNamespace}
	for _, part := range parts {
		if part == "" {
			continue
		}
		clean = append(clean, strings.TrimSpace(part))
	}
	return strings.Join(clean, ":")
}
