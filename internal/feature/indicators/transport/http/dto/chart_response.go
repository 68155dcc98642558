// Package dto はindicatorsフィーチャーのHTTPレスポンス型を定義します。
package dto

import (
	"strconv"

	"twstock/internal/feature/indicators/domain/entity"
	"twstock/internal/feature/indicators/usecase"
	"twstock/internal/shared/twtime"
)

// OHLC は日付に対応する四本値の配列です。
type OHLC struct {
	Open  []float64 `json:"open"`
	High  []float64 `json:"high"`
	Low   []float64 `json:"low"`
	Close []float64 `json:"close"`
}

// KD はKD指標の%K/%D系列です。
type KD struct {
	K entity.Line `json:"k"`
	D entity.Line `json:"d"`
}

// MACD はMACD線・シグナル線・ヒストグラムです。
type MACD struct {
	MACD      entity.Line `json:"macd"`
	Signal    entity.Line `json:"signal"`
	Histogram entity.Line `json:"histogram"`
}

// Bollinger はボリンジャーバンドの上限・中心・下限です。
type Bollinger struct {
	Upper  entity.Line `json:"upper"`
	Middle entity.Line `json:"middle"`
	Lower  entity.Line `json:"lower"`
}

// ChartResponse はチャートAPIのレスポンスです。
// 指標の配列はdatesと同じ長さで、値が定義されない位置はnullになります。
type ChartResponse struct {
	Symbol    string                 `json:"symbol"`
	Name      string                 `json:"name"`
	Dates     []string               `json:"dates"`
	OHLC      OHLC                   `json:"ohlc"`
	Volume    []int64                `json:"volume"` // 張（1000株）
	MA        map[string]entity.Line `json:"ma"`     // "ma5", "ma10", ...
	KD        KD                     `json:"kd"`
	MACD      MACD                   `json:"macd"`
	RSI       entity.Line            `json:"rsi"`
	Bias      map[string]entity.Line `json:"bias"` // "bias5", "bias10", ...
	Bollinger Bollinger              `json:"bollinger"`
	Williams  entity.Line            `json:"williams"`
}

// ErrorResponse はエラーレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewChartResponse はusecaseの結果をレスポンスに変換します。
func NewChartResponse(c *usecase.Chart) ChartResponse {
	n := len(c.Bars)
	out := ChartResponse{
		Symbol: c.Symbol,
		Name:   c.Name,
		Dates:  make([]string, n),
		OHLC: OHLC{
			Open:  make([]float64, n),
			High:  make([]float64, n),
			Low:   make([]float64, n),
			Close: make([]float64, n),
		},
		Volume: make([]int64, n),
		MA:     prefixed("ma", c.Indicators.MA),
		KD:     KD{K: c.Indicators.KD.K, D: c.Indicators.KD.D},
		MACD: MACD{
			MACD:      c.Indicators.MACD.MACD,
			Signal:    c.Indicators.MACD.Signal,
			Histogram: c.Indicators.MACD.Histogram,
		},
		RSI:  c.Indicators.RSI,
		Bias: prefixed("bias", c.Indicators.Bias),
		Bollinger: Bollinger{
			Upper:  c.Indicators.Bollinger.Upper,
			Middle: c.Indicators.Bollinger.Middle,
			Lower:  c.Indicators.Bollinger.Lower,
		},
		Williams: c.Indicators.Williams,
	}
	for i, b := range c.Bars {
		out.Dates[i] = twtime.FormatDate(b.Date)
		out.OHLC.Open[i] = b.Open
		out.OHLC.High[i] = b.High
		out.OHLC.Low[i] = b.Low
		out.OHLC.Close[i] = b.Close
		out.Volume[i] = b.Volume
	}
	return out
}

func prefixed(prefix string, lines map[int]entity.Line) map[string]entity.Line {
	out := make(map[string]entity.Line, len(lines))
	for w, l := range lines {
		out[prefix+strconv.Itoa(w)] = l
	}
	return out
}
