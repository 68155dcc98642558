// Package adapters はquoteフィーチャーの外部データ取得を実装します。
package adapters

import (
	"context"
	"errors"
	"fmt"

	"twstock/internal/feature/quote/domain/entity"
	"twstock/internal/feature/quote/usecase"
	"twstock/internal/platform/externalapi/yahoo"
	"twstock/internal/shared/symbolcode"
)

// snapshotRange は最新株価の計算に使う期間です。
const snapshotRange = "5d"

// ChartFetcher はYahooのチャートを台湾株コードで取得します。
type ChartFetcher interface {
	FetchTW(ctx context.Context, code, interval, rng string) (*yahoo.Chart, error)
}

type yahooSnapshot struct {
	fetcher ChartFetcher
}

var _ usecase.SnapshotSource = (*yahooSnapshot)(nil)

// NewYahooSnapshot はYahooのチャートをSnapshotSourceとして提供します。
func NewYahooSnapshot(fetcher ChartFetcher) *yahooSnapshot {
	return &yahooSnapshot{fetcher: fetcher}
}

// Snapshot は直近5日分の日足と52週高安値を取得します。
func (y *yahooSnapshot) Snapshot(ctx context.Context, code string) (*entity.Snapshot, error) {
	chart, err := y.fetcher.FetchTW(ctx, code, "1d", snapshotRange)
	if err != nil {
		if errors.Is(err, yahoo.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", usecase.ErrNoData, code)
		}
		return nil, err
	}

	bars := make([]entity.DailyBar, len(chart.Bars))
	for i, b := range chart.Bars {
		bars[i] = entity.DailyBar{
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
	return &entity.Snapshot{
		Symbol:     symbolcode.Bare(chart.Ticker),
		Name:       name,
		Bars:       bars,
		Week52High: chart.Week52High,
		Week52Low:  chart.Week52Low,
	}, nil
}
