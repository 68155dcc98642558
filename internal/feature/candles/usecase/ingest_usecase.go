package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"twstock/internal/feature/candles/domain/entity"
	"twstock/internal/shared/ratelimiter"
)

// ingestOutputSize は時間足ごとに取り込む本数です。日足なら約10か月分になります。
const ingestOutputSize = 200

// MarketRepository は上流から時間足のローソク足を取得します。
type MarketRepository interface {
	GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error)
}

// CandleWriter はローソク足を永続化します。
type CandleWriter interface {
	UpsertBatch(ctx context.Context, candles []entity.Candle) error
}

// IngestRecorder は取り込み結果の記録先です（メトリクスなど）。
type IngestRecorder interface {
	RecordIngest(interval string, n int)
	RecordIngestFailure()
	RecordIngestCompleted(at time.Time)
}

type nopRecorder struct{}

func (nopRecorder) RecordIngest(string, int)        {}
func (nopRecorder) RecordIngestFailure()            {}
func (nopRecorder) RecordIngestCompleted(time.Time) {}

// IngestReport は1回の取り込み結果の集計です。件数は銘柄×時間足の組単位です。
type IngestReport struct {
	Symbols   int           `json:"symbols"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Candles   int           `json:"candles"`
	Failures  []string      `json:"failures,omitempty"` // "2330/1day" 形式
	Elapsed   time.Duration `json:"elapsed"`
}

// IngestUsecase は上流の日足・週足・月足をDBへ取り込みます。
type IngestUsecase struct {
	market   MarketRepository
	candle   CandleWriter
	limiter  ratelimiter.Limiter
	recorder IngestRecorder
}

// NewIngestUsecase は IngestUsecase を作成します。recorderはnilでも構いません。
func NewIngestUsecase(market MarketRepository, candle CandleWriter, limiter ratelimiter.Limiter, recorder IngestRecorder) *IngestUsecase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &IngestUsecase{market: market, candle: candle, limiter: limiter, recorder: recorder}
}

// ingestOne は1銘柄・1時間足を取得してupsertし、件数を返します。
func (iu *IngestUsecase) ingestOne(ctx context.Context, symbol, interval string, outputsize int) (int, error) {
	cs, err := iu.market.GetTimeSeries(ctx, symbol, interval, outputsize)
	if err != nil {
		return 0, fmt.Errorf("fetch %s/%s: %w", symbol, interval, err)
	}
	if len(cs) == 0 {
		return 0, nil
	}
	for i := range cs {
		cs[i].Symbol = symbol
		cs[i].Interval = interval
	}
	if err := iu.candle.UpsertBatch(ctx, cs); err != nil {
		return 0, fmt.Errorf("store %s/%s: %w", symbol, interval, err)
	}
	return len(cs), nil
}

// IngestAll は全銘柄をentity.Intervalsの各時間足で取り込みます。
// 上流への呼び出しはlimiterで間隔を空けます。
// 個別の失敗は集計して続行し、ctxが終わった場合だけエラーを返します。
func (iu *IngestUsecase) IngestAll(ctx context.Context, symbols []string) (IngestReport, error) {
	start := time.Now()
	report := IngestReport{Symbols: len(symbols)}
	finish := func() {
		report.Elapsed = time.Since(start)
	}

	for _, s := range symbols {
		for _, interval := range entity.Intervals {
			if err := iu.limiter.Wait(ctx); err != nil {
				finish()
				return report, err
			}
			n, err := iu.ingestOne(ctx, s, interval, ingestOutputSize)
			if err != nil {
				if ctx.Err() != nil {
					finish()
					return report, ctx.Err()
				}
				slog.WarnContext(ctx, "ingest skipped", "symbol", s, "interval", interval, "error", err)
				report.Failed++
				report.Failures = append(report.Failures, s+"/"+interval)
				iu.recorder.RecordIngestFailure()
				continue
			}
			report.Succeeded++
			report.Candles += n
			iu.recorder.RecordIngest(interval, n)
		}
	}

	finish()
	iu.recorder.RecordIngestCompleted(time.Now())
	slog.InfoContext(ctx, "ingest completed",
		"symbols", report.Symbols, "succeeded", report.Succeeded,
		"failed", report.Failed, "candles", report.Candles, "elapsed", report.Elapsed)
	return report, nil
}
