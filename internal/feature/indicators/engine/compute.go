package engine

import (
	"fmt"

	"twstock/internal/feature/indicators/domain/entity"
)

// Compute は設定と系列を検証したうえで全指標を計算します。
// 検証に失敗した場合は指標を一切計算せずにエラーを返します。
// 戻り値は丸め前の値です。出力境界ではBundle.Roundedを使ってください。
func Compute(bars []entity.Bar, cfg entity.WindowConfig) (*entity.Bundle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	series, err := NewPriceSeries(bars, cfg.MinBars())
	if err != nil {
		return nil, fmt.Errorf("validate series: %w", err)
	}
	return ComputeSeries(series, cfg), nil
}

// ComputeSeries は検証済みの系列から全指標を計算します。
func ComputeSeries(s *entity.PriceSeries, cfg entity.WindowConfig) *entity.Bundle {
	highs, lows, closes := s.High(), s.Low(), s.Close()

	ma := MovingAverage(closes, cfg.MA)
	return &entity.Bundle{
		MA:        ma,
		KD:        Stochastic(highs, lows, closes, cfg.Stochastic),
		MACD:      MACD(closes, cfg.MACD),
		RSI:       RSI(closes, cfg.RSI),
		Bias:      Bias(closes, cfg.Bias, ma),
		Bollinger: Bollinger(closes, cfg.Bollinger),
		Williams:  WilliamsR(highs, lows, closes, cfg.Williams),
	}
}
