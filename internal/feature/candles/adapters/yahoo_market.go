package adapters

import (
	"context"
	"fmt"

	"twstock/internal/feature/candles/domain/entity"
	"twstock/internal/feature/candles/usecase"
	"twstock/internal/platform/externalapi/yahoo"
	"twstock/internal/shared/symbolcode"
)

// ChartFetcher はYahooのチャートを台湾株コードで取得します。
// *yahoo.Client とキャッシュ付きの実装の両方が満たします。
type ChartFetcher interface {
	FetchTW(ctx context.Context, code, interval, rng string) (*yahoo.Chart, error)
}

// yahooMarket はYahoo Financeから時系列データを取得するMarketRepository実装です。
type yahooMarket struct {
	fetcher ChartFetcher
}

var _ usecase.MarketRepository = (*yahooMarket)(nil)

// NewYahooMarket はyahooMarketを生成します。
func NewYahooMarket(fetcher ChartFetcher) *yahooMarket {
	return &yahooMarket{fetcher: fetcher}
}

// yahooIntervals は時間足名をYahooのintervalに対応付けます。
var yahooIntervals = map[string]string{
	entity.IntervalDay:   "1d",
	entity.IntervalWeek:  "1wk",
	entity.IntervalMonth: "1mo",
}

// rangeFor はoutputsize本を含む最短のYahoo rangeを選びます。
func rangeFor(interval string, outputsize int) string {
	// 1年あたりのおおよその本数（台湾市場は年間約245営業日）
	perYear := map[string]int{entity.IntervalDay: 245, entity.IntervalWeek: 52, entity.IntervalMonth: 12}[interval]
	if perYear == 0 {
		return "max"
	}
	for _, r := range []struct {
		name  string
		years float64
	}{
		{"1mo", 1.0 / 12}, {"3mo", 0.25}, {"6mo", 0.5},
		{"1y", 1}, {"2y", 2}, {"5y", 5}, {"10y", 10},
	} {
		if float64(perYear)*r.years >= float64(outputsize) {
			return r.name
		}
	}
	return "max"
}

// GetTimeSeries はsymbolの時系列をoutputsize本まで古い順に返します。
func (m *yahooMarket) GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	yi, ok := yahooIntervals[interval]
	if !ok {
		return nil, fmt.Errorf("%w: %q", usecase.ErrUnsupportedInterval, interval)
	}

	chart, err := m.fetcher.FetchTW(ctx, symbol, yi, rangeFor(interval, outputsize))
	if err != nil {
		return nil, err
	}

	bars := chart.Bars
	if outputsize > 0 && len(bars) > outputsize {
		bars = bars[len(bars)-outputsize:]
	}

	code := symbolcode.Bare(chart.Ticker)
	out := make([]entity.Candle, 0, len(bars))
	for _, b := range bars {
		out = append(out, entity.Candle{
			Symbol:   code,
			Interval: interval,
			Time:     b.Time,
			Open:     b.Open,
			High:     b.High,
			Low:      b.Low,
			Close:    b.Close,
			Volume:   b.Volume,
		})
	}
	return out, nil
}
