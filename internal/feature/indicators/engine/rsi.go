package engine

import (
	"gonum.org/v1/gonum/stat"

	"twstock/internal/feature/indicators/domain/entity"
)

// RSI はWilderの平滑化による相対力指数です。
// 最初のperiod件の上昇幅・下落幅の単純平均を初期値とし、以降は
// avg = (avg*(period-1) + x) / period で更新します。
// 平均下落幅が0のときは100です。最初の有効indexはperiodです。
func RSI(closes []float64, period int) entity.Line {
	n := len(closes)
	out := entity.NewNullLine(n)
	if n <= period {
		return out
	}

	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		diff := closes[i] - closes[i-1]
		if diff > 0 {
			gains[i] = diff
		} else {
			losses[i] = -diff
		}
	}

	avgGain := stat.Mean(gains[1:period+1], nil)
	avgLoss := stat.Mean(losses[1:period+1], nil)
	out[period] = rsiValue(avgGain, avgLoss)

	p := float64(period)
	for i := period + 1; i < n; i++ {
		avgGain = (avgGain*(p-1) + gains[i]) / p
		avgLoss = (avgLoss*(p-1) + losses[i]) / p
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
