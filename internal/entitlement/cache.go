package entitlement

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const keyPrefix = "entitlement:"

// Cache is the subset of the redis client the checker uses.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CachedChecker is a read-through cache in front of another Checker.
// Only positive answers are cached so a fresh subscription is visible on
// the next request. A nil client turns the cache off.
type CachedChecker struct {
	next Checker
	rdb  Cache
	ttl  time.Duration
	log  *zap.Logger
}

func NewCachedChecker(next Checker, rdb *redis.Client, ttl time.Duration, log *zap.Logger) *CachedChecker {
	c := &CachedChecker{next: next, ttl: ttl, log: log}
	if rdb != nil {
		c.rdb = rdb
	}
	return c
}

func key(id uuid.UUID) string {
	return keyPrefix + id.String()
}

func (c *CachedChecker) IsEntitled(ctx context.Context, billingID uuid.UUID) (bool, error) {
	if c.rdb == nil {
		return c.next.IsEntitled(ctx, billingID)
	}

	_, err := c.rdb.Get(ctx, key(billingID)).Result()
	switch {
	case err == nil:
		return true, nil
	case !errors.Is(err, redis.Nil):
		// fall through to the store
		c.log.Warn("entitlement cache read failed", zap.Error(err))
	}

	ok, err := c.next.IsEntitled(ctx, billingID)
	if err != nil || !ok {
		return ok, err
	}

	if err := c.rdb.Set(ctx, key(billingID), "1", c.ttl).Err(); err != nil {
		c.log.Warn("entitlement cache write failed", zap.Error(err))
	}
	return true, nil
}

// Invalidate drops the cached answer for billingID.
func (c *CachedChecker) Invalidate(ctx context.Context, billingID uuid.UUID) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, key(billingID)).Err(); err != nil {
		c.log.Warn("entitlement cache invalidate failed", zap.Error(err))
	}
}

var _ Cache = (*redis.Client)(nil)
