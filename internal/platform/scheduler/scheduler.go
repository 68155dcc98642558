// Package scheduler はrobfig/cronによる定期実行を提供します。
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron jobs in a fixed time zone.
// A job that is still running when its next tick arrives is skipped.
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
}

// New creates a Scheduler. Jobs receive ctx and should stop when it is canceled.
func New(ctx context.Context, loc *time.Location) *Scheduler {
	logger := slogLogger{l: slog.Default().With("component", "scheduler")}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		ctx: ctx,
	}
}

// Validate は5フィールド形式（分 時 日 月 曜日）または記述子（@daily等）を検証します。
func Validate(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return nil
}

// Add registers fn under spec.
func (s *Scheduler) Add(name, spec string, fn func(ctx context.Context)) error {
	if _, err := s.cron.AddFunc(spec, func() {
		slog.Info("scheduled job started", "job", name)
		start := time.Now()
		fn(s.ctx)
		slog.Info("scheduled job finished", "job", name, "elapsed", time.Since(start))
	}); err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}
	return nil
}

// Next は登録済みジョブの次回実行時刻を返します。ジョブがなければゼロ値です。
func (s *Scheduler) Next() time.Time {
	var next time.Time
	for _, e := range s.cron.Entries() {
		if next.IsZero() || (!e.Next.IsZero() && e.Next.Before(next)) {
			next = e.Next
		}
	}
	return next
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop stops the scheduler and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		slog.Info("scheduler stopped")
	case <-ctx.Done():
		slog.Warn("scheduler stop timed out waiting for running jobs")
	}
}

// slogLogger adapts slog to cron.Logger.
type slogLogger struct {
	l *slog.Logger
}

func (s slogLogger) Info(msg string, keysAndValues ...interface{}) {
	s.l.Debug(msg, keysAndValues...)
}

func (s slogLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	s.l.Error(msg, append(keysAndValues, "error", err)...)
}
