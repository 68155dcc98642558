// Package entity defines the domain models for the indicators feature.
package entity

import "time"

// Bar is one trading day of OHLCV data.
type Bar struct {
	Date   time.Time // Trading day (only the calendar date is significant)
	Open   float64   // Opening price
	High   float64   // Highest price of the day
	Low    float64   // Lowest price of the day
	Close  float64   // Closing price
	Volume int64     // Traded volume in shares
}

// PriceSeries is a validated, date-ascending copy of caller-supplied bars.
// It is only built through engine.NewPriceSeries and never mutated afterwards.
type PriceSeries struct {
	bars []Bar
}

// NewPriceSeriesUnchecked wraps bars that have already been validated.
// The slice is copied so later changes by the caller are not observed.
func NewPriceSeriesUnchecked(bars []Bar) *PriceSeries {
	cp := make([]Bar, len(bars))
	copy(cp, bars)
	return &PriceSeries{bars: cp}
}

// Len returns the number of bars.
func (s *PriceSeries) Len() int { return len(s.bars) }

// Bars returns a copy of the underlying bars.
func (s *PriceSeries) Bars() []Bar {
	cp := make([]Bar, len(s.bars))
	copy(cp, s.bars)
	return cp
}

// Dates returns the trading day of every bar.
func (s *PriceSeries) Dates() []time.Time {
	out := make([]time.Time, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.Date
	}
	return out
}

// Open returns the opening prices.
func (s *PriceSeries) Open() []float64 { return s.column(func(b Bar) float64 { return b.Open }) }

// High returns the daily highs.
func (s *PriceSeries) High() []float64 { return s.column(func(b Bar) float64 { return b.High }) }

// Low returns the daily lows.
func (s *PriceSeries) Low() []float64 { return s.column(func(b Bar) float64 { return b.Low }) }

// Close returns the closing prices.
func (s *PriceSeries) Close() []float64 { return s.column(func(b Bar) float64 { return b.Close }) }

// Volume returns the traded volume in shares.
func (s *PriceSeries) Volume() []int64 {
	out := make([]int64, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.Volume
	}
	return out
}

func (s *PriceSeries) column(get func(Bar) float64) []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = get(b)
	}
	return out
}
