// Package redis はキャッシュ用のRedisクライアントを生成します。
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pingTimeout  = 3 * time.Second
	dialTimeout  = 2 * time.Second
	readTimeout  = time.Second
	writeTimeout = time.Second
)

// Config はRedis接続設定です。URLがあればHost/Portより優先します。
type Config struct {
	URL      string // redis://:pass@host:6379/0 形式
	Host     string
	Port     string
	Password string
	DB       int
}

// LoadConfig は環境変数からRedis設定を読み込みます。
func LoadConfig() Config {
	cfg := Config{
		URL:      os.Getenv("REDIS_URL"),
		Host:     os.Getenv("REDIS_HOST"),
		Port:     os.Getenv("REDIS_PORT"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
	if cfg.Port == "" {
		cfg.Port = "6379"
	}
	if n, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil && n >= 0 {
		cfg.DB = n
	}
	return cfg
}

// Enabled はRedisが設定されているかを返します。未設定ならキャッシュなしで動作します。
func (c Config) Enabled() bool {
	return c.URL != "" || c.Host != ""
}

// Options はgo-redisの接続オプションを組み立てます。
func (c Config) Options() (*redis.Options, error) {
	var opt *redis.Options
	if c.URL != "" {
		parsed, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		opt = parsed
	} else {
		opt = &redis.Options{
			Addr:     net.JoinHostPort(c.Host, c.Port),
			Password: c.Password,
			DB:       c.DB,
		}
	}
	opt.DialTimeout = dialTimeout
	opt.ReadTimeout = readTimeout
	opt.WriteTimeout = writeTimeout
	return opt, nil
}

// NewRedisClient はRedisへ接続し、疎通確認を行います。
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	opt, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opt.Addr, err)
	}

	slog.Info("redis connected", "address", opt.Addr, "db", opt.DB)
	return rdb, nil
}
