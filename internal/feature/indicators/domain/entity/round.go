package entity

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// SharesPerLot は台湾市場の1張あたりの株数です。
const SharesPerLot = 1000

var lot = decimal.NewFromInt(SharesPerLot)

// Round2 は値を小数点以下2桁に丸めます。
// 丸めはfloat64の正確な2進値に対して行い、ちょうど中間の場合は偶数側に寄せます。
// 例: 2.675（実際は2.67499...）は2.67になります。
// null（NaN）と無限大はそのまま返します。
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.RequireFromString(strconv.FormatFloat(v, 'f', 2, 64)).InexactFloat64()
}

// VolumeLots は株数を張単位に換算し、最も近い整数へ丸めます。
func VolumeLots(shares int64) int64 {
	return decimal.NewFromInt(shares).Div(lot).RoundBank(0).IntPart()
}

// VolumeLotsTruncated は株数を張単位に換算し、端数を切り捨てます。
func VolumeLotsTruncated(shares int64) int64 {
	return decimal.NewFromInt(shares).Div(lot).Truncate(0).IntPart()
}

// RoundLine はLineの各値を2桁に丸めた新しいLineを返します。
func RoundLine(l Line) Line {
	if l == nil {
		return nil
	}
	out := make(Line, len(l))
	for i, v := range l {
		out[i] = Round2(v)
	}
	return out
}

// Rounded は価格スケールの指標を2桁に丸めたコピーを返します。
// 乖離率は丸めずにそのまま複製します。
func (b *Bundle) Rounded() *Bundle {
	out := b.Clone()
	for w, l := range out.MA {
		out.MA[w] = RoundLine(l)
	}
	out.KD = KD{K: RoundLine(out.KD.K), D: RoundLine(out.KD.D)}
	out.MACD = MACD{
		MACD:      RoundLine(out.MACD.MACD),
		Signal:    RoundLine(out.MACD.Signal),
		Histogram: RoundLine(out.MACD.Histogram),
	}
	out.RSI = RoundLine(out.RSI)
	out.Bollinger = Bands{
		Upper:  RoundLine(out.Bollinger.Upper),
		Middle: RoundLine(out.Bollinger.Middle),
		Lower:  RoundLine(out.Bollinger.Lower),
	}
	out.Williams = RoundLine(out.Williams)
	return out
}
