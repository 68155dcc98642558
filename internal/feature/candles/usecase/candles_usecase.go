// Package usecase はローソク足の参照と取り込みのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"twstock/internal/feature/candles/domain/entity"
)

const (
	DefaultInterval   = entity.IntervalDay
	DefaultOutputSize = 200
	MaxOutputSize     = 5000
)

var (
	// ErrUnsupportedInterval は1day/1week/1month以外の時間足です。
	ErrUnsupportedInterval = errors.New("unsupported interval")
	// ErrInvalidSymbol は銘柄コードが空です。
	ErrInvalidSymbol = errors.New("symbol is required")
	// ErrNoCandles はまだ取り込まれていない銘柄・時間足です。
	ErrNoCandles = errors.New("no candles stored")
)

// CandleRepository は保存済みローソク足の読み取り側です。
type CandleRepository interface {
	// Find は最新outputsize件を古い順に返します。
	Find(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error)
}

// Query は /candles の検索条件です。ゼロ値の項目は既定値で補われます。
type Query struct {
	Symbol     string
	Interval   string
	OutputSize int
}

func (q Query) normalize() (Query, error) {
	if q.Symbol == "" {
		return q, ErrInvalidSymbol
	}
	if q.Interval == "" {
		q.Interval = DefaultInterval
	}
	if !entity.ValidInterval(q.Interval) {
		return q, fmt.Errorf("%w: %q", ErrUnsupportedInterval, q.Interval)
	}
	if q.OutputSize <= 0 || q.OutputSize > MaxOutputSize {
		q.OutputSize = DefaultOutputSize
	}
	return q, nil
}

// CandlesUsecase は取り込み済みローソク足を返します。
type CandlesUsecase struct {
	repo CandleRepository
}

func NewCandlesUsecase(repo CandleRepository) *CandlesUsecase {
	return &CandlesUsecase{repo: repo}
}

// GetCandles は条件を正規化してから保存済みのローソク足を読みます。
// 1件もなければErrNoCandlesです。
func (u *CandlesUsecase) GetCandles(ctx context.Context, q Query) (*entity.Series, error) {
	q, err := q.normalize()
	if err != nil {
		return nil, err
	}

	cs, err := u.repo.Find(ctx, q.Symbol, q.Interval, q.OutputSize)
	if err != nil {
		return nil, fmt.Errorf("find %s %s: %w", q.Symbol, q.Interval, err)
	}
	if len(cs) == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrNoCandles, q.Symbol, q.Interval)
	}
	return &entity.Series{Symbol: q.Symbol, Interval: q.Interval, Candles: cs}, nil
}
