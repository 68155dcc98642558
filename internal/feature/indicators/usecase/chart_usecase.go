// Package usecase はチャート（価格履歴＋テクニカル指標）取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"twstock/internal/feature/indicators/domain/entity"
	"twstock/internal/feature/indicators/engine"
)

// DefaultPeriod は未指定・未知の期間に使うチャート期間です。
const DefaultPeriod = "1y"

var (
	// ErrNoData は銘柄の価格履歴が見つからないことを示します。
	ErrNoData = errors.New("no price data")
	// ErrUpstream はマーケットデータ提供元の障害を示します。
	ErrUpstream = errors.New("market data provider failure")
)

// periodRanges は公開APIの期間指定を提供元のrangeに対応付けます。
var periodRanges = map[string]string{
	"1m":  "1mo",
	"3m":  "3mo",
	"6m":  "6mo",
	"1y":  "1y",
	"2y":  "2y",
	"5y":  "5y",
	"max": "max",
}

// ResolvePeriod は期間指定を提供元のrangeに変換します。未知の値はDefaultPeriod扱いです。
func ResolvePeriod(period string) (string, string) {
	if rng, ok := periodRanges[period]; ok {
		return period, rng
	}
	return DefaultPeriod, periodRanges[DefaultPeriod]
}

// HistorySource は日足の価格履歴を取得します。
// 銘柄が存在しない場合はErrNoDataをラップしたエラーを返します。
type HistorySource interface {
	History(ctx context.Context, code, rng string) (*entity.History, error)
}

// NameResolver は銘柄コードから表示名を引きます。
type NameResolver interface {
	Name(code string) (string, bool)
}

// Chart はチャートAPIの結果です。価格と指標は丸め済みで、出来高は張（1000株）単位です。
type Chart struct {
	Symbol     string
	Name       string
	Bars       []entity.Bar
	Indicators *entity.Bundle
}

// ChartUsecase は価格履歴を取得して全指標を計算します。
type ChartUsecase struct {
	source  HistorySource
	names   NameResolver
	cfg     entity.WindowConfig
	observe func(time.Duration)
	nowFunc func() time.Time
}

// NewChartUsecase はChartUsecaseを生成します。namesはnilでも構いません。
func NewChartUsecase(source HistorySource, names NameResolver, cfg entity.WindowConfig) *ChartUsecase {
	return &ChartUsecase{
		source:  source,
		names:   names,
		cfg:     cfg,
		observe: func(time.Duration) {},
		nowFunc: time.Now,
	}
}

// WithComputeObserver は指標計算にかかった時間の通知先を設定します。
func (u *ChartUsecase) WithComputeObserver(fn func(time.Duration)) *ChartUsecase {
	if fn != nil {
		u.observe = fn
	}
	return u
}

// GetChart はcodeの期間periodの価格履歴と指標を返します。
func (u *ChartUsecase) GetChart(ctx context.Context, code, period string) (*Chart, error) {
	_, rng := ResolvePeriod(period)

	h, err := u.source.History(ctx, code, rng)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(h.Bars) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, code)
	}

	start := u.nowFunc()
	bundle, err := engine.Compute(h.Bars, u.cfg)
	u.observe(u.nowFunc().Sub(start))
	if err != nil {
		return nil, err
	}

	bars := make([]entity.Bar, len(h.Bars))
	for i, b := range h.Bars {
		bars[i] = entity.Bar{
			Date:   b.Date,
			Open:   entity.Round2(b.Open),
			High:   entity.Round2(b.High),
			Low:    entity.Round2(b.Low),
			Close:  entity.Round2(b.Close),
			Volume: entity.VolumeLots(b.Volume),
		}
	}

	return &Chart{
		Symbol:     h.Symbol,
		Name:       u.displayName(h),
		Bars:       bars,
		Indicators: bundle.Rounded(),
	}, nil
}

// displayName は提供元の名前、カタログ名、銘柄コードの順に採用します。
func (u *ChartUsecase) displayName(h *entity.History) string {
	if h.Name != "" {
		return h.Name
	}
	if u.names != nil {
		if n, ok := u.names.Name(h.Symbol); ok {
			return n
		}
	}
	return h.Symbol
}
