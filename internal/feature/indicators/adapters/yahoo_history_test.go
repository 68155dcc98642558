package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twstock/internal/feature/indicators/usecase"
	"twstock/internal/platform/externalapi/yahoo"
)

type stubFetcher struct {
	chart           *yahoo.Chart
	err             error
	gotCode, gotRng string
	gotInterval     string
}

func (s *stubFetcher) FetchTW(ctx context.Context, code, interval, rng string) (*yahoo.Chart, error) {
	s.gotCode, s.gotInterval, s.gotRng = code, interval, rng
	return s.chart, s.err
}

func TestYahooHistory_ConvertsChart(t *testing.T) {
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	f := &stubFetcher{chart: &yahoo.Chart{
		Ticker:    "6488.TWO",
		ShortName: "GlobalWafers",
		Bars: []yahoo.Bar{
			{Time: day, Open: 400, High: 410, Low: 395, Close: 405.5, Volume: 1234567},
		},
	}}

	h, err := NewYahooHistory(f).History(context.Background(), "6488", "6mo")
	require.NoError(t, err)

	assert.Equal(t, "6488", f.gotCode)
	assert.Equal(t, "1d", f.gotInterval)
	assert.Equal(t, "6mo", f.gotRng)
	assert.Equal(t, "6488", h.Symbol)
	assert.Equal(t, "GlobalWafers", h.Name)
	require.Len(t, h.Bars, 1)
	assert.True(t, h.Bars[0].Date.Equal(day))
	assert.Equal(t, 405.5, h.Bars[0].Close)
	assert.Equal(t, int64(1234567), h.Bars[0].Volume)
}

func TestYahooHistory_PrefersLongName(t *testing.T) {
	f := &stubFetcher{chart: &yahoo.Chart{Ticker: "2330.TW", LongName: "TSMC Ltd", ShortName: "TSMC"}}
	h, err := NewYahooHistory(f).History(context.Background(), "2330", "1y")
	require.NoError(t, err)
	assert.Equal(t, "TSMC Ltd", h.Name)
}

func TestYahooHistory_NotFound(t *testing.T) {
	f := &stubFetcher{err: yahoo.ErrNotFound}
	_, err := NewYahooHistory(f).History(context.Background(), "0000", "1y")
	assert.True(t, errors.Is(err, usecase.ErrNoData))
}

func TestYahooHistory_UpstreamError(t *testing.T) {
	boom := errors.New("timeout")
	f := &stubFetcher{err: boom}
	_, err := NewYahooHistory(f).History(context.Background(), "2330", "1y")
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, usecase.ErrNoData))
}
