// Package entity は銘柄マスタのドメインモデルです。
package entity

import (
	"time"

	"twstock/internal/shared/symbolcode"
)

// 市場区分
const (
	MarketTWSE = "TWSE" // 上市
	MarketTPEx = "TPEx" // 上櫃
)

// Symbol は追跡対象の台湾株・ETFです。
// Code は接尾辞なしで保存します ("2330" であり "2330.TW" ではない)。
type Symbol struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:16;not null;uniqueIndex"`
	Name      string    `gorm:"size:64;not null"`
	Market    string    `gorm:"size:8;not null;default:TWSE"`
	IsActive  bool      `gorm:"not null;default:true;index:idx_symbols_active_sort,priority:1"`
	SortKey   int       `gorm:"not null;default:0;index:idx_symbols_active_sort,priority:2"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Ticker は市場区分に対応するYahooティッカーを返します。
func (s Symbol) Ticker() string {
	if s.Market == MarketTPEx {
		return s.Code + symbolcode.OTCSuffix
	}
	return s.Code + symbolcode.ListedSuffix
}
