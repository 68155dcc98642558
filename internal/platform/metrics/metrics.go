// Package metrics はPrometheusメトリクスを定義します。
// グローバルレジストリではなく専用のRegistryに登録するため、テストごとに生成できます。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics はサービス全体のメトリクスです。
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests       *prometheus.CounterVec   // labels: method, route, status
	HTTPDuration       *prometheus.HistogramVec // labels: method, route
	UpstreamRequests   *prometheus.CounterVec   // labels: provider, outcome
	CacheLookups       *prometheus.CounterVec   // labels: cache, result
	IndicatorCompute   prometheus.Histogram
	IngestedCandles    *prometheus.CounterVec // labels: interval
	IngestFailures     prometheus.Counter
	IngestLastSuccessS prometheus.Gauge
}

// New はメトリクスを生成し、専用レジストリへ登録します。
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "twstock_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "twstock_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "twstock_upstream_requests_total",
			Help: "Market data provider requests by outcome",
		}, []string{"provider", "outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "twstock_cache_lookups_total",
			Help: "Cache lookups by cache name and result (hit, miss, error)",
		}, []string{"cache", "result"}),
		IndicatorCompute: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "twstock_indicator_compute_duration_seconds",
			Help:    "Indicator engine compute latency per series",
			Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
		IngestedCandles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "twstock_ingested_candles_total",
			Help: "Candles upserted by the ingest job",
		}, []string{"interval"}),
		IngestFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "twstock_ingest_failures_total",
			Help: "Symbol/interval pairs that failed during ingest",
		}),
		IngestLastSuccessS: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "twstock_ingest_last_success_timestamp_seconds",
			Help: "Unix time of the last completed ingest run",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.UpstreamRequests,
		m.CacheLookups,
		m.IndicatorCompute,
		m.IngestedCandles,
		m.IngestFailures,
		m.IngestLastSuccessS,
	)
	return m
}

// Registry はメトリクスが登録されたレジストリを返します。
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler は /metrics 用のHTTPハンドラーを返します。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// UpstreamObserver はプロバイダー名を固定した結果通知関数を返します。
func (m *Metrics) UpstreamObserver(provider string) func(outcome string) {
	return func(outcome string) {
		m.UpstreamRequests.WithLabelValues(provider, outcome).Inc()
	}
}

// CacheObserver はキャッシュ名を固定した結果通知関数を返します。
func (m *Metrics) CacheObserver(cache string) func(result string) {
	return func(result string) {
		m.CacheLookups.WithLabelValues(cache, result).Inc()
	}
}

// RecordIngest は取り込んだローソク足件数を加算します。
func (m *Metrics) RecordIngest(interval string, n int) {
	m.IngestedCandles.WithLabelValues(interval).Add(float64(n))
}

// RecordIngestFailure は取り込み失敗を1件加算します。
func (m *Metrics) RecordIngestFailure() { m.IngestFailures.Inc() }

// RecordIngestCompleted は取り込み完了時刻を記録します。
func (m *Metrics) RecordIngestCompleted(at time.Time) {
	m.IngestLastSuccessS.Set(float64(at.Unix()))
}
