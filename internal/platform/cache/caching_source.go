// Package cache provides caching implementations for market data sources.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"cloudtrade/internal/feature/marketdata/domain/entity"
	"cloudtrade/internal/feature/marketdata/usecase"
)

const (
	defaultQuoteTTL   = 15 * time.Second
	defaultHistoryTTL = 5 * time.Minute
	defaultNamespace  = "marketdata"
)

// CachingSource decorates a Source with Redis caching.
// Only successful responses are cached, so failures keep reaching the fallback path.
type CachingSource struct {
	inner      usecase.Source
	rdb        *redis.Client
	quoteTTL   time.Duration
	historyTTL time.Duration
	namespace  string
}

var _ usecase.Source = (*CachingSource)(nil)

// NewCachingSource decorates a Source with Redis caching.
// Non-positive TTLs fall back to 15s for quotes and 5m for histories. If namespace is empty, it uses "marketdata".
// A nil client disables caching.
func NewCachingSource(rdb *redis.Client, inner usecase.Source, quoteTTL, historyTTL time.Duration, namespace string) *CachingSource {
	if quoteTTL <= 0 {
		quoteTTL = defaultQuoteTTL
	}
	if historyTTL <= 0 {
		historyTTL = defaultHistoryTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingSource{
		inner:      inner,
		rdb:        rdb,
		quoteTTL:   quoteTTL,
		historyTTL: historyTTL,
		namespace:  namespace,
	}
}

// History retrieves candles, checking the cache first then falling back to the inner source.
func (c *CachingSource) History(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error) {
	if c.rdb == nil {
		return c.inner.History(ctx, symbol, rng)
	}

	key := c.historyKey(symbol, rng)
	var cached []entity.Candle
	if c.get(ctx, key, &cached) {
		return cached, nil
	}

	out, err := c.inner.History(ctx, symbol, rng)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, out, c.historyTTL)
	return out, nil
}

// Quote retrieves a quote, checking the cache first then falling back to the inner source.
func (c *CachingSource) Quote(ctx context.Context, symbol string) (entity.Quote, error) {
	if c.rdb == nil {
		return c.inner.Quote(ctx, symbol)
	}

	key := c.quoteKey(symbol)
	var cached entity.Quote
	if c.get(ctx, key, &cached) {
		return cached, nil
	}

	out, err := c.inner.Quote(ctx, symbol)
	if err != nil {
		return entity.Quote{}, err
	}
	c.set(ctx, key, out, c.quoteTTL)
	return out, nil
}

// get loads key into dst. Corrupted entries are deleted and reported as a miss.
func (c *CachingSource) get(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// set stores v under key (best effort).
func (c *CachingSource) set(ctx context.Context, key string, v any, ttl time.Duration) {
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, ttl).Err()
	}
}

// historyKey generates a cache key for a history query.
func (c *CachingSource) historyKey(symbol string, rng entity.Range) string {
	return fmt.Sprintf("%s:history:%s:%s", c.namespace, safe(symbol), safe(string(rng)))
}

// quoteKey generates a cache key for a quote query.
func (c *CachingSource) quoteKey(symbol string) string {
	return fmt.Sprintf("%s:quote:%s", c.namespace, safe(symbol))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
