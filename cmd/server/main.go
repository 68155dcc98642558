package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"twstock/internal/app/di"
	"twstock/internal/app/router"
	"twstock/internal/feature/symbollist/catalog"
	"twstock/internal/platform/logger"
	"twstock/internal/platform/metrics"
)

const (
	defaultPort     = "5000"
	shutdownTimeout = 10 * time.Second
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	logger.Init("twstock-api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cat, err := catalog.LoadFromEnv()
	if err != nil {
		return err
	}
	slog.Info("symbol catalog loaded", "symbols", cat.Len())

	db, err := di.OpenDatabase(ctx)
	if err != nil {
		return err
	}

	rdb := di.OpenRedis(ctx)
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close redis client", "error", err)
			}
		}()
	}

	m := metrics.New()
	c := di.NewComponents(di.Deps{DB: db, Redis: rdb, Metrics: m, Catalog: cat})

	if db != nil {
		n, err := c.SymbolUC.SeedCatalog(ctx)
		if err != nil {
			slog.Warn("failed to seed symbol table", "error", err)
		} else {
			slog.Info("symbol table seeded", "symbols", n)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router.NewRouter(c, router.Options{Metrics: m, DB: db, Redis: rdb}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
