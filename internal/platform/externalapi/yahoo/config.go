// Package yahoo はYahoo FinanceのチャートAPI (v8) から日足データを取得するクライアントです。
package yahoo

import (
	"log/slog"
	"os"
	"time"
)

const (
	defaultBaseURL   = "https://query1.finance.yahoo.com"
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "Mozilla/5.0"
)

// Config はYahoo Financeクライアントの設定です。
type Config struct {
	BaseURL   string        // APIのベースURL (例: "https://query1.finance.yahoo.com")
	Timeout   time.Duration // HTTPリクエストのタイムアウト
	UserAgent string        // User-Agentヘッダー（空だと拒否されることがある）
}

// LoadConfig は環境変数からYahoo Financeの設定を読み込みます。
func LoadConfig() Config {
	cfg := Config{
		BaseURL:   os.Getenv("YAHOO_BASE_URL"),
		Timeout:   defaultTimeout,
		UserAgent: os.Getenv("YAHOO_USER_AGENT"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if v := os.Getenv("YAHOO_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid YAHOO_TIMEOUT, using default", "value", v, "error", err)
		} else {
			cfg.Timeout = d
		}
	}
	return cfg
}
