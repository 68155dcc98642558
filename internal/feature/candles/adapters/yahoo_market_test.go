package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twstock/internal/feature/candles/usecase"
	"twstock/internal/platform/externalapi/yahoo"
)

type fakeFetcher struct {
	gotCode, gotInterval, gotRange string
	chart                          *yahoo.Chart
	err                            error
}

func (f *fakeFetcher) FetchTW(ctx context.Context, code, interval, rng string) (*yahoo.Chart, error) {
	f.gotCode, f.gotInterval, f.gotRange = code, interval, rng
	return f.chart, f.err
}

func TestRangeFor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		interval   string
		outputsize int
		want       string
	}{
		{"1day", 20, "1mo"},
		{"1day", 200, "1y"},
		{"1day", 300, "2y"},
		{"1week", 200, "5y"},
		{"1month", 200, "max"},
		{"1month", 12, "1y"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, rangeFor(tc.interval, tc.outputsize), "%s/%d", tc.interval, tc.outputsize)
	}
}

func TestYahooMarket_GetTimeSeries(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]yahoo.Bar, 5)
	for i := range bars {
		bars[i] = yahoo.Bar{Time: day.AddDate(0, 0, i), Open: 10, High: 11, Low: 9, Close: float64(10 + i), Volume: 1000}
	}
	f := &fakeFetcher{chart: &yahoo.Chart{Ticker: "6488.TWO", Bars: bars}}

	got, err := NewYahooMarket(f).GetTimeSeries(context.Background(), "6488", "1week", 3)
	require.NoError(t, err)

	assert.Equal(t, "6488", f.gotCode)
	assert.Equal(t, "1wk", f.gotInterval)
	assert.Equal(t, "1mo", f.gotRange)

	require.Len(t, got, 3)
	assert.Equal(t, "6488", got[0].Symbol)
	assert.Equal(t, "1week", got[0].Interval)
	assert.Equal(t, 12.0, got[0].Close)
	assert.Equal(t, 14.0, got[2].Close)
}

func TestYahooMarket_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewYahooMarket(&fakeFetcher{}).GetTimeSeries(context.Background(), "2330", "1h", 10)
	assert.ErrorIs(t, err, usecase.ErrUnsupportedInterval)

	_, err = NewYahooMarket(&fakeFetcher{err: yahoo.ErrNotFound}).GetTimeSeries(context.Background(), "9999", "1day", 10)
	assert.ErrorIs(t, err, yahoo.ErrNotFound)
}
