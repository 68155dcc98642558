package adapters

import (
	"context"
	"slices"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"twstock/internal/feature/candles/domain/entity"
	"twstock/internal/feature/candles/usecase"
)

// upsertBatchSize は1回のINSERTに含める最大行数です。
const upsertBatchSize = 500

// CandleModel は candles テーブルの行です。(symbol, interval, time) で一意です。
type CandleModel struct {
	ID        uint      `gorm:"primaryKey"`
	Symbol    string    `gorm:"size:16;not null;uniqueIndex:ux_candles_sym_int_time,priority:1"`
	Interval  string    `gorm:"size:8;not null;uniqueIndex:ux_candles_sym_int_time,priority:2"`
	Time      time.Time `gorm:"not null;uniqueIndex:ux_candles_sym_int_time,priority:3"`
	Open      float64   `gorm:"not null"`
	High      float64   `gorm:"not null"`
	Low       float64   `gorm:"not null"`
	Close     float64   `gorm:"not null"`
	Volume    int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (CandleModel) TableName() string { return "candles" }

func newCandleModel(c entity.Candle) CandleModel {
	return CandleModel{
		Symbol: c.Symbol, Interval: c.Interval, Time: c.Time,
		Open: c.Open, High: c.High, Low: c.Low, Close: c.Close, Volume: c.Volume,
	}
}

func (m CandleModel) candle() entity.Candle {
	return entity.Candle{
		Symbol: m.Symbol, Interval: m.Interval, Time: m.Time,
		Open: m.Open, High: m.High, Low: m.Low, Close: m.Close, Volume: m.Volume,
	}
}

type candleGorm struct {
	db *gorm.DB
}

var (
	_ usecase.CandleRepository = (*candleGorm)(nil)
	_ usecase.CandleWriter     = (*candleGorm)(nil)
)

// NewCandleRepository はgormによるローソク足リポジトリを生成します。
// 列名はgormがクォートするので、MySQLの予約語intervalでも問題ありません。
func NewCandleRepository(db *gorm.DB) *candleGorm {
	return &candleGorm{db: db}
}

// UpsertBatch は既存の (symbol, interval, time) の価格と出来高を上書きし、残りを挿入します。
// Yahooは当日の足を取引中にも返すため、同じ日の再取り込みで値が更新されます。
func (r *candleGorm) UpsertBatch(ctx context.Context, candles []entity.Candle) error {
	if len(candles) == 0 {
		return nil
	}
	rows := make([]CandleModel, len(candles))
	for i, c := range candles {
		rows[i] = newCandleModel(c)
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "interval"}, {Name: "time"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume", "updated_at"}),
	}).CreateInBatches(&rows, upsertBatchSize).Error
}

// Find は最新outputsize件を古い順に返します。outputsizeが0以下なら全件です。
func (r *candleGorm) Find(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	var rows []CandleModel
	q := r.db.WithContext(ctx).
		Where(&CandleModel{Symbol: symbol, Interval: interval}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "time"}, Desc: true})
	if outputsize > 0 {
		q = q.Limit(outputsize)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	// 新しい順に取ったものを古い順へ
	slices.Reverse(rows)

	out := make([]entity.Candle, len(rows))
	for i, m := range rows {
		out[i] = m.candle()
	}
	return out, nil
}
