package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"twstock/internal/app/di"
	"twstock/internal/feature/symbollist/catalog"
	"twstock/internal/platform/logger"
	"twstock/internal/platform/scheduler"
	"twstock/internal/shared/twtime"
)

// runTimeout は1回の取り込みに許す時間です。
const runTimeout = 15 * time.Minute

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	logger.Init("twstock-ingest")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("ingest failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cat, err := catalog.LoadFromEnv()
	if err != nil {
		return err
	}
	db, err := di.OpenDatabase(ctx)
	if err != nil {
		return err
	}
	if db == nil {
		return errors.New("ingest requires a database (set DB_DRIVER and DB_*)")
	}
	rdb := di.OpenRedis(ctx)
	if rdb != nil {
		defer rdb.Close()
	}

	symbols := di.NewSymbolUsecase(db, cat)
	if _, err := symbols.SeedCatalog(ctx); err != nil {
		return err
	}
	job := di.NewIngestJob(db, rdb, di.NewMarket(nil), symbols, nil)

	once := func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, runTimeout)
		defer cancel()
		report, err := job.Run(ctx)
		if err != nil {
			slog.Error("ingest run failed", "error", err)
			return
		}
		slog.Info("ingest ok", "symbols", report.Symbols, "succeeded", report.Succeeded, "failed", report.Failed)
	}

	spec := os.Getenv("INGEST_CRON")
	if spec == "" {
		once(ctx)
		return nil
	}

	sched := scheduler.New(ctx, twtime.Location())
	if err := sched.Add("ingest", spec, once); err != nil {
		return err
	}
	sched.Start()
	slog.Info("ingest scheduled", "cron", spec, "next", sched.Next())

	<-ctx.Done()
	stopCtx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	sched.Stop(stopCtx)
	return nil
}
