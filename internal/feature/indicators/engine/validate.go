// Package engine は日足系列からテクニカル指標を計算する純粋関数群を提供します。
// 入力を変更せず、呼び出し間で状態を共有しません。
package engine

import (
	"fmt"
	"math"

	"twstock/internal/feature/indicators/domain/entity"
)

// NewPriceSeries は生のバー列を検証し、正規化済みのPriceSeriesを返します。
//
// 検証順:
//  1. 空、またはminBars未満 -> ErrInsufficientData
//  2. 非有限・非正の価格、負の出来高 -> ErrInvalidSeries
//  3. 暦日が厳密に昇順でない（重複・逆順） -> ErrInvalidSeries
//
// 入力スライスはコピーされ、以降呼び出し側が変更しても影響を受けません。
func NewPriceSeries(bars []entity.Bar, minBars int) (*entity.PriceSeries, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: empty series", entity.ErrInsufficientData)
	}
	if len(bars) < minBars {
		return nil, fmt.Errorf("%w: got %d bars, need at least %d", entity.ErrInsufficientData, len(bars), minBars)
	}

	for i, b := range bars {
		for _, p := range [...]struct {
			name string
			v    float64
		}{{"open", b.Open}, {"high", b.High}, {"low", b.Low}, {"close", b.Close}} {
			if math.IsNaN(p.v) || math.IsInf(p.v, 0) || p.v <= 0 {
				return nil, fmt.Errorf("%w: bar %d has invalid %s %v", entity.ErrInvalidSeries, i, p.name, p.v)
			}
		}
		if b.Volume < 0 {
			return nil, fmt.Errorf("%w: bar %d has negative volume %d", entity.ErrInvalidSeries, i, b.Volume)
		}
	}

	for i := 1; i < len(bars); i++ {
		prev, cur := calendarDay(bars[i-1]), calendarDay(bars[i])
		if cur <= prev {
			return nil, fmt.Errorf("%w: date %s at index %d does not follow %s",
				entity.ErrInvalidSeries,
				bars[i].Date.Format("2006-01-02"), i, bars[i-1].Date.Format("2006-01-02"))
		}
	}

	return entity.NewPriceSeriesUnchecked(bars), nil
}

// calendarDay は時刻を無視した暦日を比較可能な整数 (yyyymmdd) にします。
func calendarDay(b entity.Bar) int {
	y, m, d := b.Date.Date()
	return y*10000 + int(m)*100 + d
}
