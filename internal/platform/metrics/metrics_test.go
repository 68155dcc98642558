package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IndependentRegistries(t *testing.T) {
	// 専用レジストリなので複数回生成しても登録が衝突しない
	a := New()
	b := New()
	a.UpstreamObserver("yahoo")("ok")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.UpstreamRequests.WithLabelValues("yahoo", "ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.UpstreamRequests.WithLabelValues("yahoo", "ok")))
}

func TestCacheObserver(t *testing.T) {
	m := New()
	obs := m.CacheObserver("chart")
	obs("hit")
	obs("hit")
	obs("miss")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("chart", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("chart", "miss")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New()
	m.IndicatorCompute.Observe(0.001)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "twstock_indicator_compute_duration_seconds")
}

func TestIngestRecorder(t *testing.T) {
	m := New()
	m.RecordIngest("1day", 240)
	m.RecordIngest("1day", 10)
	m.RecordIngestFailure()
	at := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	m.RecordIngestCompleted(at)

	assert.Equal(t, 250.0, testutil.ToFloat64(m.IngestedCandles.WithLabelValues("1day")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IngestFailures))
	assert.Equal(t, float64(at.Unix()), testutil.ToFloat64(m.IngestLastSuccessS))
}
