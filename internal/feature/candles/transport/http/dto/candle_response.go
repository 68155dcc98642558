// Package dto はcandlesフィーチャーのHTTPレスポンス型を定義します。
package dto

import (
	"twstock/internal/feature/candles/domain/entity"
	indicators "twstock/internal/feature/indicators/domain/entity"
	"twstock/internal/shared/twtime"
)

// Candle は1本分のローソク足です。価格は小数点以下2桁、出来高は張です。
type Candle struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// CandlesResponse は GET /candles/:code のレスポンスです。
type CandlesResponse struct {
	Symbol   string   `json:"symbol"`
	Interval string   `json:"interval"`
	Candles  []Candle `json:"candles"`
}

// NewCandlesResponse は保存済み系列をレスポンスに変換します。
func NewCandlesResponse(s *entity.Series) CandlesResponse {
	out := CandlesResponse{
		Symbol:   s.Symbol,
		Interval: s.Interval,
		Candles:  make([]Candle, 0, len(s.Candles)),
	}
	for _, c := range s.Candles {
		out.Candles = append(out.Candles, Candle{
			Date:   twtime.FormatDate(c.Time),
			Open:   indicators.Round2(c.Open),
			High:   indicators.Round2(c.High),
			Low:    indicators.Round2(c.Low),
			Close:  indicators.Round2(c.Close),
			Volume: indicators.VolumeLots(c.Volume),
		})
	}
	return out
}

type ErrorResponse struct {
	Error string `json:"error"`
}
