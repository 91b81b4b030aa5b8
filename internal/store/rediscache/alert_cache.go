// Package rediscache caches the small, frequently polled unread-alert
// payload so the UI refresh loop does not hit Postgres on every tick.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Nishasathish105/ai-compliance-platform/internal/config"
	"github.com/Nishasathish105/ai-compliance-platform/internal/domain"
)

const unreadAlertsKey = "compliance:alerts:unread"

// ErrMiss indicates the cached payload is absent or expired.
var ErrMiss = errors.New("cache miss")

// AlertCache holds the unread-alert list with a short TTL.
type AlertCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects a cache client from config.
func New(cfg *config.RedisConfig) *AlertCache {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	return &AlertCache{client: client, ttl: cfg.AlertsCacheTTL}
}

// NewWithClient wires an existing client, used in tests.
func NewWithClient(client *redis.Client, ttl time.Duration) *AlertCache {
	return &AlertCache{client: client, ttl: ttl}
}

// GetUnread returns the cached unread alerts or ErrMiss.
func (c *AlertCache) GetUnread(ctx context.Context) ([]domain.Alert, error) {
	raw, err := c.client.Get(ctx, unreadAlertsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var alerts []domain.Alert
	if err := json.Unmarshal(raw, &alerts); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return alerts, nil
}

// SetUnread stores the unread alerts under the configured TTL.
func (c *AlertCache) SetUnread(ctx context.Context, alerts []domain.Alert) error {
	raw, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, unreadAlertsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached payload. Called after alert inserts and
// mark-read updates.
func (c *AlertCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, unreadAlertsKey).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (c *AlertCache) Close() error { return c.client.Close() }
