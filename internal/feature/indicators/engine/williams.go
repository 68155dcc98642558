package engine

import "twstock/internal/feature/indicators/domain/entity"

// WilliamsR はウィリアムズ%Rを返します。
//
//	%R = -100 * (HH - close) / (HH - LL)
//
// HH == LL のときはnullです。[-100, 0] への切り詰めは行いません。
func WilliamsR(highs, lows, closes []float64, period int) entity.Line {
	hh := highest(highs, period)
	ll := lowest(lows, period)

	out := entity.NewNullLine(len(closes))
	for i := range closes {
		h, okH := hh.At(i)
		l, okL := ll.At(i)
		if !okH || !okL || h == l {
			continue
		}
		out[i] = -100 * (h - closes[i]) / (h - l)
	}
	return out
}
