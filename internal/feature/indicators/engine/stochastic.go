package engine

import "twstock/internal/feature/indicators/domain/entity"

// Stochastic はKD指標を計算します。
//
//	rawK = 100 * (close - LL) / (HH - LL)   （HH, LL はperiod期間の最高値・最安値）
//	K    = rawK のsmooth期間平均
//	D    = K のsignalSmooth期間平均
//
// HH == LL のときrawKはnullです。
func Stochastic(highs, lows, closes []float64, w entity.StochasticWindows) entity.KD {
	hh := highest(highs, w.Period)
	ll := lowest(lows, w.Period)

	rawK := entity.NewNullLine(len(closes))
	for i := range closes {
		h, okH := hh.At(i)
		l, okL := ll.At(i)
		if !okH || !okL {
			continue
		}
		rng := h - l
		if rng == 0 {
			continue
		}
		rawK[i] = 100 * (closes[i] - l) / rng
	}

	k := nullableMean(rawK, w.Smooth)
	d := nullableMean(k, w.SignalSmooth)
	return entity.KD{K: k, D: d}
}
