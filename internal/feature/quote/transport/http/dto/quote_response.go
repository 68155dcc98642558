// Package dto はquoteフィーチャーのHTTPレスポンス型を定義します。
package dto

import "twstock/internal/feature/quote/domain/entity"

// QuoteResponse は最新株価APIのレスポンスです。
type QuoteResponse struct {
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	CurrentPrice float64  `json:"current_price"`
	PrevClose    float64  `json:"prev_close"`
	Change       float64  `json:"change"`
	ChangePct    float64  `json:"change_pct"`
	Open         float64  `json:"open"`
	High         float64  `json:"high"`
	Low          float64  `json:"low"`
	Volume       int64    `json:"volume"` // 張
	DayHigh      float64  `json:"day_high"`
	DayLow       float64  `json:"day_low"`
	Week52High   *float64 `json:"week52_high"`
	Week52Low    *float64 `json:"week52_low"`
}

// ErrorResponse はエラーレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewQuoteResponse はQuoteをレスポンスに変換します。
func NewQuoteResponse(q *entity.Quote) QuoteResponse {
	return QuoteResponse{
		Symbol:       q.Symbol,
		Name:         q.Name,
		CurrentPrice: q.CurrentPrice,
		PrevClose:    q.PrevClose,
		Change:       q.Change,
		ChangePct:    q.ChangePct,
		Open:         q.Open,
		High:         q.High,
		Low:          q.Low,
		Volume:       q.Volume,
		DayHigh:      q.DayHigh,
		DayLow:       q.DayLow,
		Week52High:   q.Week52High,
		Week52Low:    q.Week52Low,
	}
}
