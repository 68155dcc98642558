// Package logger はlog/slogによる構造化ログの初期化と、
// コンテキスト経由のリクエストID伝播を提供します。
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type ctxKey struct{}

// ParseLevel はLOG_LEVELの値をslog.Levelに変換します。不明な値はInfoです。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init はserviceを付与したJSONロガーを生成し、デフォルトロガーに設定します。
// レベルは環境変数LOG_LEVELで指定します。
func Init(service string) *slog.Logger {
	return New(os.Stdout, service, ParseLevel(os.Getenv("LOG_LEVEL")))
}

// New は出力先を指定してロガーを生成し、デフォルトロガーに設定します。
func New(w io.Writer, service string, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	l := slog.New(handler).With(slog.String("service", service))
	slog.SetDefault(l)
	return l
}

// WithRequestID はリクエストIDをコンテキストに格納します。
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID はコンテキストからリクエストIDを取り出します。未設定なら空文字です。
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}

// FromContext はリクエストIDを付与したロガーを返します。
func FromContext(ctx context.Context) *slog.Logger {
	if id := RequestID(ctx); id != "" {
		return slog.Default().With(slog.String("request_id", id))
	}
	return slog.Default()
}
