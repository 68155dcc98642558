package engine

import (
	"math"

	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/stat"

	"twstock/internal/feature/indicators/domain/entity"
)

// sma は終値などの欠損のない系列の単純移動平均です。
// 系列長がwに満たない場合は全体がnullになります。
func sma(in []float64, w int) entity.Line {
	out := entity.NewNullLine(len(in))
	if len(in) < w {
		return out
	}
	raw := talib.Sma(in, w)
	copy(out[w-1:], raw[w-1:])
	return out
}

// highest はw期間の最高値です。先頭w-1件はnullです。
func highest(in []float64, w int) entity.Line {
	return extreme(in, w, talib.Max)
}

// lowest はw期間の最安値です。先頭w-1件はnullです。
func lowest(in []float64, w int) entity.Line {
	return extreme(in, w, talib.Min)
}

func extreme(in []float64, w int, fn func([]float64, int) []float64) entity.Line {
	out := entity.NewNullLine(len(in))
	if len(in) < w {
		return out
	}
	// talibのMax/Minは期間1を扱わない
	if w == 1 {
		copy(out, in)
		return out
	}
	raw := fn(in, w)
	copy(out[w-1:], raw[w-1:])
	return out
}

// nullableMean はnullを含み得る系列の移動平均です。
// ウィンドウ内にひとつでもnullがあればその位置はnullになります。
func nullableMean(in entity.Line, w int) entity.Line {
	out := entity.NewNullLine(len(in))
	if len(in) < w {
		return out
	}
	run := 0 // 直近で連続する非null件数
	for i, v := range in {
		if math.IsNaN(v) {
			run = 0
			continue
		}
		run++
		if run >= w {
			out[i] = stat.Mean(in[i-w+1:i+1], nil)
		}
	}
	return out
}

// sampleStdDev はw期間の標本標準偏差（n-1で割る）です。
func sampleStdDev(in []float64, w int) entity.Line {
	out := entity.NewNullLine(len(in))
	if len(in) < w || w < 2 {
		return out
	}
	for i := w - 1; i < len(in); i++ {
		v := stat.Variance(in[i-w+1:i+1], nil)
		out[i] = math.Sqrt(math.Max(v, 0))
	}
	return out
}

// ema はspan nの指数移動平均です。ema[0] = in[0] から再帰的に計算します。
func ema(in []float64, n int) []float64 {
	out := make([]float64, len(in))
	if len(in) == 0 {
		return out
	}
	alpha := 2.0 / float64(n+1)
	out[0] = in[0]
	for i := 1; i < len(in); i++ {
		out[i] = alpha*in[i] + (1-alpha)*out[i-1]
	}
	return out
}
