package engine

import (
	"math"

	"twstock/internal/feature/indicators/domain/entity"
)

// Bollinger はボリンジャーバンドを返します。
// 中心線は終値のperiod期間SMA、幅は同じウィンドウの標本標準偏差のStdDevMult倍です。
func Bollinger(closes []float64, w entity.BollingerWindows) entity.Bands {
	middle := sma(closes, w.Period)
	sd := sampleStdDev(closes, w.Period)

	n := len(closes)
	upper := entity.NewNullLine(n)
	lower := entity.NewNullLine(n)
	for i := 0; i < n; i++ {
		m, okM := middle.At(i)
		s, okS := sd.At(i)
		if !okM || !okS {
			middle[i] = math.NaN()
			continue
		}
		upper[i] = m + w.StdDevMult*s
		lower[i] = m - w.StdDevMult*s
	}
	return entity.Bands{Upper: upper, Middle: middle, Lower: lower}
}
