// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"twstock/internal/platform/cache"
	"twstock/internal/platform/externalapi/yahoo"
	infrahttp "twstock/internal/platform/http"
	"twstock/internal/platform/metrics"
)

// NewMarket creates a fully configured Yahoo chart client with HTTP client.
func NewMarket(m *metrics.Metrics) *yahoo.Client {
	cfg := yahoo.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	client := yahoo.NewClient(cfg, httpClient)
	if m != nil {
		client.WithObserver(m.UpstreamObserver("yahoo"))
	}
	return client
}

// NewChartSource wraps the market client with the Redis chart cache.
// rdb may be nil, in which case every request goes to the provider.
func NewChartSource(rdb *redis.Client, market cache.ChartSource, m *metrics.Metrics, ttl func() time.Duration) *cache.CachingChartSource {
	src := cache.NewCachingChartSource(rdb, market, ttl)
	if m != nil {
		src.WithObserver(m.CacheObserver("chart"))
	}
	return src
}
