package entity

import "fmt"

// StochasticWindows はKD指標のウィンドウ長です。
type StochasticWindows struct {
	Period       int // 最高値・最安値を取る期間
	Smooth       int // 生%Kを平滑化してKを得る期間
	SignalSmooth int // Kを平滑化してDを得る期間
}

// MACDWindows はMACDのEMAスパンです。
type MACDWindows struct {
	Fast   int
	Slow   int
	Signal int
}

// BollingerWindows はボリンジャーバンドの期間と標準偏差の倍率です。
type BollingerWindows struct {
	Period     int
	StdDevMult float64
}

// WindowConfig は指標計算に使う不変のウィンドウ設定です。
type WindowConfig struct {
	MA         []int
	Stochastic StochasticWindows
	MACD       MACDWindows
	RSI        int
	Bias       []int
	Bollinger  BollingerWindows
	Williams   int
}

// DefaultWindowConfig は台湾株チャートで使う標準のウィンドウ設定を返します。
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		MA:         []int{5, 10, 20, 60, 120, 240},
		Stochastic: StochasticWindows{Period: 9, Smooth: 3, SignalSmooth: 3},
		MACD:       MACDWindows{Fast: 12, Slow: 26, Signal: 9},
		RSI:        14,
		Bias:       []int{5, 10, 20},
		Bollinger:  BollingerWindows{Period: 20, StdDevMult: 2},
		Williams:   14,
	}
}

// MinBars は指標を一切計算しない下限のバー数（MACDの長期EMAスパン）を返します。
func (c WindowConfig) MinBars() int {
	return c.MACD.Slow
}

// Validate はすべてのウィンドウが正の値であることを確認します。
func (c WindowConfig) Validate() error {
	check := func(name string, w int) error {
		if w <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, name, w)
		}
		return nil
	}

	for _, w := range c.MA {
		if err := check("ma window", w); err != nil {
			return err
		}
	}
	for _, w := range c.Bias {
		if err := check("bias window", w); err != nil {
			return err
		}
	}
	pairs := []struct {
		name string
		w    int
	}{
		{"stochastic period", c.Stochastic.Period},
		{"stochastic smooth", c.Stochastic.Smooth},
		{"stochastic signal smooth", c.Stochastic.SignalSmooth},
		{"macd fast", c.MACD.Fast},
		{"macd slow", c.MACD.Slow},
		{"macd signal", c.MACD.Signal},
		{"rsi period", c.RSI},
		{"bollinger period", c.Bollinger.Period},
		{"williams period", c.Williams},
	}
	for _, p := range pairs {
		if err := check(p.name, p.w); err != nil {
			return err
		}
	}
	if c.Bollinger.StdDevMult < 0 {
		return fmt.Errorf("%w: bollinger stddev multiplier must not be negative", ErrInvalidConfig)
	}
	return nil
}
