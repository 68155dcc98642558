package entity

// KD はストキャスティクスのK線とD線です。
type KD struct {
	K Line
	D Line
}

// MACD はMACD線・シグナル線・ヒストグラムです。
type MACD struct {
	MACD      Line
	Signal    Line
	Histogram Line
}

// Bands はボリンジャーバンドの上限・中心・下限です。
type Bands struct {
	Upper  Line
	Middle Line
	Lower  Line
}

// Bundle はひとつの系列から計算した全指標の集合です。
// すべてのLineは入力系列と同じ長さで、インデックスが日付と一対一に対応します。
type Bundle struct {
	MA        map[int]Line // ウィンドウ長 -> 移動平均
	KD        KD
	MACD      MACD
	RSI       Line
	Bias      map[int]Line // ウィンドウ長 -> 乖離率（丸めない）
	Bollinger Bands
	Williams  Line
}

// Clone はすべてのLineを複製した独立したBundleを返します。
func (b *Bundle) Clone() *Bundle {
	out := &Bundle{
		MA:   make(map[int]Line, len(b.MA)),
		Bias: make(map[int]Line, len(b.Bias)),
		KD:   KD{K: b.KD.K.Clone(), D: b.KD.D.Clone()},
		MACD: MACD{
			MACD:      b.MACD.MACD.Clone(),
			Signal:    b.MACD.Signal.Clone(),
			Histogram: b.MACD.Histogram.Clone(),
		},
		RSI: b.RSI.Clone(),
		Bollinger: Bands{
			Upper:  b.Bollinger.Upper.Clone(),
			Middle: b.Bollinger.Middle.Clone(),
			Lower:  b.Bollinger.Lower.Clone(),
		},
		Williams: b.Williams.Clone(),
	}
	for w, l := range b.MA {
		out.MA[w] = l.Clone()
	}
	for w, l := range b.Bias {
		out.Bias[w] = l.Clone()
	}
	return out
}

