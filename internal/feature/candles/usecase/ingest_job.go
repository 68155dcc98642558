package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// ErrIngestRunning は取り込みが既に実行中であることを示します。
var ErrIngestRunning = errors.New("ingest already running")

// SymbolSource は取り込み対象の銘柄コードを返します。
type SymbolSource interface {
	ListActiveCodes(ctx context.Context) ([]string, error)
}

// IngestJob はアクティブな全銘柄の取り込みを、同時に1つだけ実行します。
type IngestJob struct {
	ingest  *IngestUsecase
	symbols SymbolSource
	running atomic.Bool
}

// NewIngestJob はIngestJobを生成します。
func NewIngestJob(ingest *IngestUsecase, symbols SymbolSource) *IngestJob {
	return &IngestJob{ingest: ingest, symbols: symbols}
}

// Running は取り込みが実行中かを返します。
func (j *IngestJob) Running() bool { return j.running.Load() }

// Run は取り込みを同期的に実行します。実行中ならErrIngestRunningを返します。
func (j *IngestJob) Run(ctx context.Context) (IngestReport, error) {
	if !j.running.CompareAndSwap(false, true) {
		return IngestReport{}, ErrIngestRunning
	}
	defer j.running.Store(false)
	return j.run(ctx)
}

// Start は取り込みをバックグラウンドで開始します。実行中ならErrIngestRunningを返します。
// 呼び出し元のリクエストが終わっても継続するよう、ctxのキャンセルは引き継ぎません。
func (j *IngestJob) Start(ctx context.Context) error {
	if !j.running.CompareAndSwap(false, true) {
		return ErrIngestRunning
	}
	bg := context.WithoutCancel(ctx)
	go func() {
		defer j.running.Store(false)
		if _, err := j.run(bg); err != nil {
			slog.Error("background ingest failed", "error", err)
		}
	}()
	return nil
}

func (j *IngestJob) run(ctx context.Context) (IngestReport, error) {
	codes, err := j.symbols.ListActiveCodes(ctx)
	if err != nil {
		return IngestReport{}, fmt.Errorf("list active codes: %w", err)
	}
	return j.ingest.IngestAll(ctx, codes)
}
