// Package entity defines the domain models for the candles feature.
package entity

import "time"

// Candle is one persisted OHLCV bar of a Taiwan stock.
// Daily, weekly and monthly bars share the table and are told apart by Interval.
type Candle struct {
	Symbol   string    // 接尾辞なしの銘柄コード ("2330", "00878")
	Interval string    // IntervalDay, IntervalWeek or IntervalMonth
	Time     time.Time // Start of the period in Asia/Taipei
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   int64 // 株数（張ではない）
}

// Series is the stored candles of one symbol and interval, oldest first.
type Series struct {
	Symbol   string
	Interval string
	Candles  []Candle
}

// Supported intervals.
const (
	IntervalDay   = "1day"
	IntervalWeek  = "1week"
	IntervalMonth = "1month"
)

// Intervals lists every supported interval, shortest first.
var Intervals = []string{IntervalDay, IntervalWeek, IntervalMonth}

// ValidInterval reports whether interval is one of Intervals.
func ValidInterval(interval string) bool {
	switch interval {
	case IntervalDay, IntervalWeek, IntervalMonth:
		return true
	}
	return false
}
