package entity

// History is the daily price history of one stock as returned by a market data provider.
type History struct {
	Symbol string // Stock code without exchange suffix
	Name   string // Provider display name, may be empty
	Bars   []Bar  // Date-ascending
}
