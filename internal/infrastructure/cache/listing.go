package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"peerlend-backend/internal/logger"
)

// Listing cache keys. Mutations invalidate the scopes whose reads they stale.
func OffersKey() string { return "listing:offers" }

func BorrowerLoansKey(userID string) string { return "listing:loans:borrower:" + userID }

func LenderLoansKey(userID string) string { return "listing:loans:lender:" + userID }

// Listing is a best-effort read cache for offer and loan listings. Misses and
// backend failures both read as a miss; invalidation failures are logged and
// swallowed so a flaky cache never fails a mutation.
type Listing struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewListing(rdb *redis.Client, ttl time.Duration) *Listing {
	return &Listing{rdb: rdb, ttl: ttl}
}

func (c *Listing) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(b, dest) == nil
}

func (c *Listing) Set(ctx context.Context, key string, v any) {
	if c == nil || c.rdb == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		logger.Log.Warn("listing cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Listing) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("listing cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
