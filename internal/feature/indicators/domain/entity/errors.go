package entity

import "errors"

var (
	// ErrInsufficientData は系列が空、または最低限必要なバー数に満たない場合に返されます。
	// より長い期間で再取得すれば解消し得るため、呼び出し側のバグではありません。
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidSeries は日付の重複・逆順、非有限または負の価格など、
	// 呼び出し側の契約違反を表します。再試行しても解消しません。
	ErrInvalidSeries = errors.New("invalid series")

	// ErrInvalidConfig はウィンドウ設定が不正な場合に返されます。
	ErrInvalidConfig = errors.New("invalid window config")
)
