// Package usecase は最新株価取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	indicators "twstock/internal/feature/indicators/domain/entity"
	"twstock/internal/feature/quote/domain/entity"
)

var (
	// ErrNoData は銘柄の価格データが見つからないことを示します。
	ErrNoData = errors.New("no price data")
	// ErrUpstream はマーケットデータ提供元の障害を示します。
	ErrUpstream = errors.New("market data provider failure")
)

// SnapshotSource は直近の日足スナップショットを取得します。
// 銘柄が存在しない場合はErrNoDataをラップしたエラーを返します。
type SnapshotSource interface {
	Snapshot(ctx context.Context, code string) (*entity.Snapshot, error)
}

// NameResolver は銘柄コードから表示名を引きます。
type NameResolver interface {
	Name(code string) (string, bool)
}

// QuoteUsecase は最新株価を組み立てます。
type QuoteUsecase struct {
	source SnapshotSource
	names  NameResolver
}

// NewQuoteUsecase はQuoteUsecaseを生成します。namesはnilでも構いません。
func NewQuoteUsecase(source SnapshotSource, names NameResolver) *QuoteUsecase {
	return &QuoteUsecase{source: source, names: names}
}

// GetQuote はcodeの最新株価を返します。
func (u *QuoteUsecase) GetQuote(ctx context.Context, code string) (*entity.Quote, error) {
	s, err := u.source.Snapshot(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(s.Bars) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, code)
	}

	q := Build(s)
	if q.Name == "" {
		q.Name = q.Symbol
		if u.names != nil {
			if n, ok := u.names.Name(s.Symbol); ok {
				q.Name = n
			}
		}
	}
	return q, nil
}

// Build はスナップショットから株価を計算します。s.Barsは1本以上必要です。
// 前日比は丸め前の値で計算し、最後に丸めます。
func Build(s *entity.Snapshot) *entity.Quote {
	last := s.Bars[len(s.Bars)-1]
	prev := last.Close
	if len(s.Bars) > 1 {
		prev = s.Bars[len(s.Bars)-2].Close
	}
	change := last.Close - prev
	var pct float64
	if prev != 0 {
		pct = change / prev * 100
	}

	r := indicators.Round2
	return &entity.Quote{
		Symbol:       s.Symbol,
		Name:         s.Name,
		Date:         last.Date,
		CurrentPrice: r(last.Close),
		PrevClose:    r(prev),
		Change:       r(change),
		ChangePct:    r(pct),
		Open:         r(last.Open),
		High:         r(last.High),
		Low:          r(last.Low),
		DayHigh:      r(last.High),
		DayLow:       r(last.Low),
		Volume:       indicators.VolumeLotsTruncated(last.Volume),
		Week52High:   s.Week52High,
		Week52Low:    s.Week52Low,
	}
}
