package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twstock/internal/platform/externalapi/yahoo"
)

type mockChartSource struct {
	calls int
	chart *yahoo.Chart
	err   error
}

func (m *mockChartSource) FetchTW(ctx context.Context, code, interval, rng string) (*yahoo.Chart, error) {
	m.calls++
	return m.chart, m.err
}

func sampleChart() *yahoo.Chart {
	return &yahoo.Chart{
		Ticker:   "2330.TW",
		LongName: "Taiwan Semiconductor Manufacturing Company Limited",
		Currency: "TWD",
		Bars: []yahoo.Bar{
			{Time: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Open: 1070, High: 1075, Low: 1055, Close: 1065, Volume: 25000000},
		},
	}
}

func fixedTTL() time.Duration { return time.Hour }

func TestCachingChartSource_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockChartSource{chart: sampleChart()}
	src := NewCachingChartSource(nil, inner, nil)

	got, err := src.FetchTW(context.Background(), "2330", "1d", "1y")
	require.NoError(t, err)
	assert.Equal(t, "2330.TW", got.Ticker)
	assert.Equal(t, 1, inner.calls)

	n, err := src.Invalidate(context.Background(), "2330")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCachingChartSource_MissThenStore(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	chart := sampleChart()
	b, _ := json.Marshal(chart)
	mock.ExpectGet("chart:2330:1d:1y").RedisNil()
	mock.ExpectSet("chart:2330:1d:1y", b, time.Hour).SetVal("OK")

	inner := &mockChartSource{chart: chart}
	src := NewCachingChartSource(rdb, inner, fixedTTL)

	got, err := src.FetchTW(context.Background(), "2330", "1d", "1y")
	require.NoError(t, err)
	assert.Equal(t, chart.Ticker, got.Ticker)
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingChartSource_Hit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	chart := sampleChart()
	b, _ := json.Marshal(chart)
	mock.ExpectGet("chart:2330:1d:1y").SetVal(string(b))

	var observed []string
	inner := &mockChartSource{}
	src := NewCachingChartSource(rdb, inner, fixedTTL).
		WithObserver(func(r string) { observed = append(observed, r) })

	got, err := src.FetchTW(context.Background(), "2330", "1d", "1y")
	require.NoError(t, err)
	assert.Equal(t, 0, inner.calls)
	require.Len(t, got.Bars, 1)
	assert.Equal(t, 1065.0, got.Bars[0].Close)
	assert.True(t, got.Bars[0].Time.Equal(chart.Bars[0].Time))
	assert.Equal(t, []string{"hit"}, observed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingChartSource_NotFoundIsNotCached(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("chart:9999:1d:1y").RedisNil()

	inner := &mockChartSource{err: yahoo.ErrNotFound}
	src := NewCachingChartSource(rdb, inner, fixedTTL)

	_, err := src.FetchTW(context.Background(), "9999", "1d", "1y")
	assert.True(t, errors.Is(err, yahoo.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingChartSource_CorruptedEntry(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	chart := sampleChart()
	b, _ := json.Marshal(chart)
	mock.ExpectGet("chart:2330.TW:1d:5d").SetVal("{broken")
	mock.ExpectDel("chart:2330.TW:1d:5d").SetVal(1)
	mock.ExpectSet("chart:2330.TW:1d:5d", b, time.Hour).SetVal("OK")

	inner := &mockChartSource{chart: chart}
	src := NewCachingChartSource(rdb, inner, fixedTTL)

	_, err := src.FetchTW(context.Background(), "2330.tw", "1d", "5d")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingChartSource_Invalidate(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "chart:2330:*", 200).SetVal([]string{"chart:2330:1d:1y", "chart:2330:1d:5d"}, 0)
	mock.ExpectDel("chart:2330:1d:1y", "chart:2330:1d:5d").SetVal(2)
	mock.ExpectScan(0, "chart:2330.TW:*", 200).SetVal([]string{"chart:2330.TW:1d:1y"}, 0)
	mock.ExpectDel("chart:2330.TW:1d:1y").SetVal(1)
	mock.ExpectScan(0, "chart:2330.TWO:*", 200).SetVal([]string{}, 0)

	src := NewCachingChartSource(rdb, &mockChartSource{}, fixedTTL)
	n, err := src.Invalidate(context.Background(), "2330.TW")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingChartSource_InvalidateScanError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "chart:2330:*", 200).SetErr(errors.New("connection refused"))

	src := NewCachingChartSource(rdb, &mockChartSource{}, fixedTTL)
	_, err := src.Invalidate(context.Background(), "2330")
	assert.Error(t, err)
}
