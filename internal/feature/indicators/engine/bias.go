package engine

import "twstock/internal/feature/indicators/domain/entity"

// Bias は終値の移動平均からの乖離率（%）を返します。
// 計算済みの移動平均があればそれを使い、なければここで計算します。
// 値は丸めません。
func Bias(closes []float64, windows []int, ma map[int]entity.Line) map[int]entity.Line {
	out := make(map[int]entity.Line, len(windows))
	for _, w := range windows {
		avg, ok := ma[w]
		if !ok {
			avg = sma(closes, w)
		}
		line := entity.NewNullLine(len(closes))
		for i := range closes {
			m, ok := avg.At(i)
			if !ok || m == 0 {
				continue
			}
			line[i] = (closes[i] - m) / m * 100
		}
		out[w] = line
	}
	return out
}
