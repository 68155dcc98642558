// Package adapters はindicatorsフィーチャーの外部データ取得を実装します。
package adapters

import (
	"context"
	"errors"
	"fmt"

	"twstock/internal/feature/indicators/domain/entity"
	"twstock/internal/feature/indicators/usecase"
	"twstock/internal/platform/externalapi/yahoo"
	"twstock/internal/shared/symbolcode"
)

// ChartFetcher はYahooのチャートを台湾株コードで取得します。
type ChartFetcher interface {
	FetchTW(ctx context.Context, code, interval, rng string) (*yahoo.Chart, error)
}

type yahooHistory struct {
	fetcher ChartFetcher
}

var _ usecase.HistorySource = (*yahooHistory)(nil)

// NewYahooHistory はYahooの日足チャートをHistorySourceとして提供します。
func NewYahooHistory(fetcher ChartFetcher) *yahooHistory {
	return &yahooHistory{fetcher: fetcher}
}

// History はcodeの日足をrng分取得します。上場(.TW)で見つからなければ上櫃(.TWO)を試します。
func (y *yahooHistory) History(ctx context.Context, code, rng string) (*entity.History, error) {
	chart, err := y.fetcher.FetchTW(ctx, code, "1d", rng)
	if err != nil {
		if errors.Is(err, yahoo.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", usecase.ErrNoData, code)
		}
		return nil, err
	}

	bars := make([]entity.Bar, len(chart.Bars))
	for i, b := range chart.Bars {
		bars[i] = entity.Bar{
			Date:   b.Time,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}

	name := chart.LongName
	if name == "" {
		name = chart.ShortName
	}
	return &entity.History{
		Symbol: symbolcode.Bare(chart.Ticker),
		Name:   name,
		Bars:   bars,
	}, nil
}
