// Package db はgormによるデータベース接続を提供します。
// DB_DRIVERでmysql（既定）、postgres、sqliteを切り替えます。
package db

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	connectTimeout     = 60 * time.Second
	defaultMaxOpen     = 10
	defaultMaxIdle     = 5
	defaultConnMaxLife = 30 * time.Minute
)

// retryInterval は接続リトライの間隔です。
var retryInterval = 3 * time.Second

// Config はデータベース接続設定です。
type Config struct {
	Driver       string
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	InstanceName string // Cloud SQLのインスタンス接続名（mysqlのみ）
	SSLMode      string // postgresのsslmode
	SQLitePath   string // ":memory:" も可
	MaxOpenConns int
	MaxIdleConns int
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver:       envOr("DB_DRIVER", DriverMySQL),
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
		SSLMode:      envOr("DB_SSLMODE", "disable"),
		SQLitePath:   envOr("DB_SQLITE_PATH", "twstock.db"),
		MaxOpenConns: envInt("DB_MAX_OPEN_CONNS", defaultMaxOpen),
		MaxIdleConns: envInt("DB_MAX_IDLE_CONNS", defaultMaxIdle),
	}
	if cfg.Port == "" {
		switch cfg.Driver {
		case DriverMySQL:
			cfg.Port = "3306"
		case DriverPostgres:
			cfg.Port = "5432"
		}
	}
	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// BuildDSN はMySQL用のDSNを生成します。InstanceNameがあればCloud SQLのUnixソケットを使います。
// 日足の時刻はUTCで保存します。
func BuildDSN(cfg Config) string {
	addr := fmt.Sprintf("tcp(%s:%s)", cfg.Host, cfg.Port)
	if cfg.InstanceName != "" {
		addr = fmt.Sprintf("unix(/cloudsql/%s)", cfg.InstanceName)
	}
	return fmt.Sprintf("%s:%s@%s/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		cfg.User, cfg.Password, addr, cfg.Name)
}

// BuildPostgresDSN はPostgreSQL用のキーワード形式DSNを生成します。
func BuildPostgresDSN(cfg Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// Opener はDSNからgorm.DBを開く関数です。テストで差し替えます。
type Opener func(dsn string) (*gorm.DB, error)

// OpenerFor はドライバーに対応するDSNとOpenerを返します。
func OpenerFor(cfg Config) (string, Opener, error) {
	var dialect func(string) gorm.Dialector
	var dsn string
	switch cfg.Driver {
	case DriverMySQL:
		dsn, dialect = BuildDSN(cfg), gmysql.Open
	case DriverPostgres:
		dsn, dialect = BuildPostgresDSN(cfg), postgres.Open
	case DriverSQLite:
		dsn, dialect = cfg.SQLitePath, sqlite.Open
	default:
		return "", nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
	return dsn, func(dsn string) (*gorm.DB, error) {
		return gorm.Open(dialect(dsn), &gorm.Config{})
	}, nil
}

// ConnectWithRetry はtimeoutに達するかctxが終わるまでretryInterval間隔で接続を試みます。
func ConnectWithRetry(ctx context.Context, dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for attempt := 1; ; attempt++ {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		slog.WarnContext(ctx, "db connect failed", "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("db connect gave up after %d attempts: %w", attempt, err)
		case <-time.After(retryInterval):
		}
	}
}

// OpenDB は設定に従ってデータベースへ接続し、コネクションプールを設定します。
// RUN_MIGRATIONS=true の場合は渡されたモデルをAutoMigrateします。
func OpenDB(ctx context.Context, cfg Config, models ...any) (*gorm.DB, error) {
	dsn, open, err := OpenerFor(cfg)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(ctx, dsn, connectTimeout, open)
	if err != nil {
		return nil, err
	}
	if err := configurePool(db, cfg); err != nil {
		return nil, err
	}
	slog.Info("database connected", "driver", cfg.Driver, "max_open", cfg.MaxOpenConns)

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		slog.Info("database migrated", "models", len(models))
	}
	return db, nil
}

func configurePool(db *gorm.DB, cfg Config) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("db pool: %w", err)
	}
	// sqliteは書き込みが直列なので1本に絞る
	if cfg.Driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
		return nil
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(defaultConnMaxLife)
	return nil
}
