// Package cache provides Redis caching decorators for repositories and market data sources.
// A nil *redis.Client disables caching and every call goes straight to the inner implementation.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"twstock/internal/feature/candles/domain/entity"
)

// CandleStore is the repository decorated by CachingCandleRepository.
type CandleStore interface {
	Find(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error)
	UpsertBatch(ctx context.Context, candles []entity.Candle) error
}

// CachingCandleRepository caches Find results per symbol, interval and outputsize.
// Writes drop every cached query of the written symbol and interval.
type CachingCandleRepository struct {
	inner     CandleStore
	rdb       *redis.Client
	ttl       func() time.Duration
	namespace string
	observe   func(result string)
}

// NewCachingCandleRepository decorates inner. A nil ttl expires entries at the next
// 08:00 Taipei time, after the nightly ingest. An empty namespace means "candles".
func NewCachingCandleRepository(rdb *redis.Client, inner CandleStore, ttl func() time.Duration, namespace string) *CachingCandleRepository {
	if ttl == nil {
		ttl = TimeUntilNext8AM
	}
	if namespace == "" {
		namespace = "candles"
	}
	return &CachingCandleRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
		observe:   noopObserve,
	}
}

// WithObserver sets a callback receiving "hit", "miss" or "error" for each lookup.
func (c *CachingCandleRepository) WithObserver(fn func(result string)) *CachingCandleRepository {
	if fn != nil {
		c.observe = fn
	}
	return c
}

// UpsertBatch writes through to the store, then invalidates once per symbol+interval.
func (c *CachingCandleRepository) UpsertBatch(ctx context.Context, candles []entity.Candle) error {
	if err := c.inner.UpsertBatch(ctx, candles); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}

	seen := make(map[string]bool)
	for _, cd := range candles {
		prefix := c.keyPrefix(cd.Symbol, cd.Interval)
		if seen[prefix] {
			continue
		}
		seen[prefix] = true
		if _, err := deleteByPattern(ctx, c.rdb, prefix+"*"); err != nil {
			slog.Warn("candle cache invalidation failed", "prefix", prefix, "error", err)
		}
	}
	return nil
}

// Find returns cached candles or reads the store and caches the result.
func (c *CachingCandleRepository) Find(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	if c.rdb == nil {
		return c.inner.Find(ctx, symbol, interval, outputsize)
	}

	key := fmt.Sprintf("%s%d", c.keyPrefix(symbol, interval), outputsize)
	if cached, ok := loadJSON[[]entity.Candle](ctx, c.rdb, key, c.observe); ok {
		return cached, nil
	}

	out, err := c.inner.Find(ctx, symbol, interval, outputsize)
	if err != nil {
		return nil, err
	}
	storeJSON(ctx, c.rdb, key, out, c.ttl())
	return out, nil
}

// keyPrefix is "<namespace>:<symbol>:<interval>:".
func (c *CachingCandleRepository) keyPrefix(symbol, interval string) string {
	return fmt.Sprintf("%s:%s:%s:", c.namespace, safe(symbol), safe(interval))
}
