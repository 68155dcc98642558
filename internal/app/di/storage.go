package di

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	candleadapters "twstock/internal/feature/candles/adapters"
	symbolentity "twstock/internal/feature/symbollist/domain/entity"
	"twstock/internal/platform/db"
	infraredis "twstock/internal/platform/redis"
)

// Models are the gorm models migrated when RUN_MIGRATIONS=true.
func Models() []any {
	return []any{&candleadapters.CandleModel{}, &symbolentity.Symbol{}}
}

// OpenDatabase connects to the database configured by DB_* variables.
// If DB_HOST (or INSTANCE_CONNECTION_NAME) is not set for a server driver, it
// returns nil and the service runs without persisted candles.
func OpenDatabase(ctx context.Context) (*gorm.DB, error) {
	cfg := db.LoadConfigFromEnv()
	if !databaseConfigured(cfg) {
		slog.Warn("database not configured, candles and symbol table disabled")
		return nil, nil
	}
	return db.OpenDB(ctx, cfg, Models()...)
}

func databaseConfigured(cfg db.Config) bool {
	return cfg.Driver == db.DriverSQLite || cfg.Host != "" || cfg.InstanceName != ""
}

// OpenRedis connects to Redis when REDIS_URL or REDIS_HOST is set.
// Connection failures are logged and the service continues without cache.
func OpenRedis(ctx context.Context) *redis.Client {
	cfg := infraredis.LoadConfig()
	if !cfg.Enabled() {
		slog.Info("redis not configured, running without cache")
		return nil
	}
	rdb, err := infraredis.NewRedisClient(ctx, cfg)
	if err != nil {
		slog.Warn("redis unavailable, running without cache", "error", err)
		return nil
	}
	return rdb
}
