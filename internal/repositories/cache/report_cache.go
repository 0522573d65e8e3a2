// Package cache provides the Redis-backed report cache. Dashboard payloads
// are cached per user and month and dropped wholesale whenever the user's
// transactions change.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	portsrepo "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

type RedisReportCache struct {
	client *redis.Client
}

func NewRedisReportCache(client *redis.Client) portsrepo.ReportCache {
	return &RedisReportCache{client: client}
}

var _ portsrepo.ReportCache = (*RedisReportCache)(nil)

func reportKey(userID, month string) string {
	return fmt.Sprintf("report:%s:%s", userID, month)
}

func (c *RedisReportCache) Get(ctx context.Context, userID, month string) ([]byte, error) {
	payload, err := c.client.Get(ctx, reportKey(userID, month)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached report: %w", err)
	}
	return payload, nil
}

func (c *RedisReportCache) Set(ctx context.Context, userID, month string, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, reportKey(userID, month), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

func (c *RedisReportCache) Invalidate(ctx context.Context, userID string) error {
	pattern := fmt.Sprintf("report:%s:*", userID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	keys := []string{}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan report keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate reports: %w", err)
	}
	return nil
}
