package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"twstock/internal/platform/externalapi/yahoo"
	"twstock/internal/shared/symbolcode"
)

// ChartSource fetches charts by Taiwan stock code.
type ChartSource interface {
	FetchTW(ctx context.Context, code, interval, rng string) (*yahoo.Chart, error)
}

// CachingChartSource caches provider charts in Redis until the next daily refresh.
// Not-found results and errors are never cached.
type CachingChartSource struct {
	inner     ChartSource
	rdb       *redis.Client
	ttl       func() time.Duration
	namespace string
	observe   func(result string)
}

// NewCachingChartSource decorates a ChartSource with Redis caching.
// A nil ttl expires entries at the next 08:00 Taipei time.
func NewCachingChartSource(rdb *redis.Client, inner ChartSource, ttl func() time.Duration) *CachingChartSource {
	if ttl == nil {
		ttl = TimeUntilNext8AM
	}
	return &CachingChartSource{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: "chart",
		observe:   noopObserve,
	}
}

// WithObserver sets a callback receiving "hit", "miss" or "error" for each lookup.
func (c *CachingChartSource) WithObserver(fn func(result string)) *CachingChartSource {
	if fn != nil {
		c.observe = fn
	}
	return c
}

// FetchTW returns the cached chart or fetches and stores it.
func (c *CachingChartSource) FetchTW(ctx context.Context, code, interval, rng string) (*yahoo.Chart, error) {
	if c.rdb == nil {
		return c.inner.FetchTW(ctx, code, interval, rng)
	}

	key := c.cacheKey(code, interval, rng)
	if cached, ok := loadJSON[yahoo.Chart](ctx, c.rdb, key, c.observe); ok {
		return &cached, nil
	}

	out, err := c.inner.FetchTW(ctx, code, interval, rng)
	if err != nil {
		return nil, err
	}
	storeJSON(ctx, c.rdb, key, out, c.ttl())
	return out, nil
}

// Invalidate drops every cached chart for code, with or without an exchange suffix.
func (c *CachingChartSource) Invalidate(ctx context.Context, code string) (int, error) {
	if c.rdb == nil {
		return 0, nil
	}
	bare := symbolcode.Bare(code)
	patterns := []string{
		fmt.Sprintf("%s:%s:*", c.namespace, safe(bare)),
		fmt.Sprintf("%s:%s:*", c.namespace, safe(bare+symbolcode.ListedSuffix)),
		fmt.Sprintf("%s:%s:*", c.namespace, safe(bare+symbolcode.OTCSuffix)),
	}
	deleted := 0
	for _, p := range patterns {
		n, err := deleteByPattern(ctx, c.rdb, p)
		deleted += n
		if err != nil {
			return deleted, fmt.Errorf("invalidate %s: %w", p, err)
		}
	}
	return deleted, nil
}

func (c *CachingChartSource) cacheKey(code, interval, rng string) string {
	return fmt.Sprintf("%s:%s:%s:%s", c.namespace, safe(symbolcode.Normalize(code)), safe(interval), safe(rng))
}
