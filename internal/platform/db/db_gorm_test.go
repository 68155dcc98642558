package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	retryInterval = 5 * time.Millisecond
}

func TestBuildDSN(t *testing.T) {
	t.Parallel()

	base := Config{User: "tw", Password: "secret", Name: "twstock", Host: "mysql", Port: "3306"}
	cloud := base
	cloud.InstanceName = "proj:asia-east1:twstock"

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"tcp", base, "tw:secret@tcp(mysql:3306)/twstock?charset=utf8mb4&parseTime=true&loc=UTC"},
		{"cloud sqlが優先", cloud, "tw:secret@unix(/cloudsql/proj:asia-east1:twstock)/twstock?charset=utf8mb4&parseTime=true&loc=UTC"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BuildDSN(tt.cfg))
		})
	}
}

func TestBuildPostgresDSN(t *testing.T) {
	t.Parallel()

	cfg := Config{User: "u", Password: "p", Name: "twstock", Host: "pg", Port: "5432", SSLMode: "require"}
	assert.Equal(t, "host=pg port=5432 user=u password=p dbname=twstock sslmode=require TimeZone=UTC", BuildPostgresDSN(cfg))
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_USER", "envuser")
	t.Setenv("DB_HOST", "envhost")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_SSLMODE", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("DB_MAX_IDLE_CONNS", "nope")

	cfg := LoadConfigFromEnv()
	assert.Equal(t, DriverMySQL, cfg.Driver)
	assert.Equal(t, "envuser", cfg.User)
	assert.Equal(t, "envhost", cfg.Host)
	assert.Equal(t, "3306", cfg.Port)
	assert.Equal(t, "disable", cfg.SSLMode)
	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, defaultMaxIdle, cfg.MaxIdleConns)

	t.Setenv("DB_DRIVER", DriverPostgres)
	assert.Equal(t, "5432", LoadConfigFromEnv().Port)
}

func TestOpenerFor(t *testing.T) {
	t.Parallel()

	dsn, open, err := OpenerFor(Config{Driver: DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	assert.Equal(t, ":memory:", dsn)
	db, err := open(dsn)
	require.NoError(t, err)
	require.NotNil(t, db)

	dsn, _, err = OpenerFor(Config{Driver: DriverPostgres, Host: "pg", Port: "5432"})
	require.NoError(t, err)
	assert.Contains(t, dsn, "host=pg")

	_, _, err = OpenerFor(Config{Driver: "oracle"})
	assert.ErrorContains(t, err, "oracle")
}

func TestConnectWithRetry(t *testing.T) {
	t.Parallel()

	want := &gorm.DB{}
	refused := errors.New("connection refused")

	t.Run("3回目で成功", func(t *testing.T) {
		t.Parallel()
		attempts := 0
		got, err := ConnectWithRetry(context.Background(), "dsn", time.Second, func(string) (*gorm.DB, error) {
			attempts++
			if attempts < 3 {
				return nil, refused
			}
			return want, nil
		})
		require.NoError(t, err)
		assert.Same(t, want, got)
		assert.Equal(t, 3, attempts)
	})

	t.Run("タイムアウト", func(t *testing.T) {
		t.Parallel()
		_, err := ConnectWithRetry(context.Background(), "dsn", 30*time.Millisecond, func(string) (*gorm.DB, error) {
			return nil, refused
		})
		assert.ErrorIs(t, err, refused)
	})

	t.Run("キャンセル済みctxは1回で諦める", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		attempts := 0
		_, err := ConnectWithRetry(ctx, "dsn", time.Minute, func(string) (*gorm.DB, error) {
			attempts++
			return nil, refused
		})
		assert.Error(t, err)
		assert.Equal(t, 1, attempts)
	})
}

func TestOpenDB_SQLiteMigrates(t *testing.T) {
	t.Setenv("RUN_MIGRATIONS", "true")

	type probe struct {
		ID   uint
		Code string
	}
	db, err := OpenDB(context.Background(), Config{Driver: DriverSQLite, SQLitePath: ":memory:"}, &probe{})
	require.NoError(t, err)

	require.NoError(t, db.Create(&probe{Code: "2330"}).Error)
	var n int64
	require.NoError(t, db.Model(&probe{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}
