package engine

import "twstock/internal/feature/indicators/domain/entity"

// MACD は短期・長期EMAの差、そのシグナル線、ヒストグラムを返します。
//
// MACD線は長期EMAの初期値が意味を持つ slow-1 以降のみ有効です。
// シグナル線は最初の有効なMACD値で初期化し、signal件を消化した時点
// （既定値では index 33）から報告します。
func MACD(closes []float64, w entity.MACDWindows) entity.MACD {
	n := len(closes)
	fast := ema(closes, w.Fast)
	slow := ema(closes, w.Slow)

	line := entity.NewNullLine(n)
	for i := w.Slow - 1; i < n; i++ {
		line[i] = fast[i] - slow[i]
	}

	signal := entity.NewNullLine(n)
	hist := entity.NewNullLine(n)
	start := line.FirstValid()
	if start < 0 {
		return entity.MACD{MACD: line, Signal: signal, Histogram: hist}
	}

	sig := ema(line[start:], w.Signal)
	for j := w.Signal - 1; j < len(sig); j++ {
		i := start + j
		signal[i] = sig[j]
		hist[i] = line[i] - signal[i]
	}
	return entity.MACD{MACD: line, Signal: signal, Histogram: hist}
}
