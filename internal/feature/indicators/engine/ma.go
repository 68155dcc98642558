package engine

import "twstock/internal/feature/indicators/domain/entity"

// MovingAverage は各ウィンドウの終値単純移動平均を返します。
// 系列長がウィンドウ未満のものは全体がnullです（途中から埋めることはしません）。
func MovingAverage(closes []float64, windows []int) map[int]entity.Line {
	out := make(map[int]entity.Line, len(windows))
	for _, w := range windows {
		if _, ok := out[w]; ok {
			continue
		}
		out[w] = sma(closes, w)
	}
	return out
}
