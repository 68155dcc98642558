// Package entity はquoteフィーチャーのドメインモデルを定義します。
package entity

import "time"

// DailyBar は1営業日分の四本値と出来高（株）です。
type DailyBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Snapshot は直近数営業日の日足と提供元のメタデータです。
type Snapshot struct {
	Symbol     string // 接尾辞なしの銘柄コード
	Name       string
	Bars       []DailyBar // 日付昇順
	Week52High *float64
	Week52Low  *float64
}

// Quote は最新の株価情報です。価格は小数2桁、出来高は張単位です。
type Quote struct {
	Symbol       string
	Name         string
	Date         time.Time
	CurrentPrice float64
	PrevClose    float64
	Change       float64
	ChangePct    float64
	Open         float64
	High         float64
	Low          float64
	DayHigh      float64
	DayLow       float64
	Volume       int64
	Week52High   *float64
	Week52Low    *float64
}
