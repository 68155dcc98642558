// Package http はマーケットデータ提供元向けのHTTPクライアントを提供します。
package http

import (
	"net"
	"net/http"
	"time"

	"twstock/internal/platform/logger"
)

// DefaultTimeout はtimeoutに0以下が渡された場合のリクエスト全体のタイムアウトです。
const DefaultTimeout = 10 * time.Second

// NewHTTPClient は上流API用のクライアントを返します。
// http.DefaultClientはタイムアウトがないので使わないこと。
// 取得先はほぼYahooの1ホストなので、ホスト単位のアイドル接続を多めに持ちます。
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Timeout: timeout, Transport: &loggingTransport{next: base}}
}

// loggingTransport は上流呼び出しをリクエストIDつきでdebugログに残します。
// クエリ文字列はログに出しません。
type loggingTransport struct {
	next http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	log := logger.FromContext(req.Context()).With(
		"upstream", req.URL.Host,
		"path", req.URL.Path,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if err != nil {
		log.Debug("upstream request failed", "error", err)
		return nil, err
	}
	log.Debug("upstream request", "status", resp.StatusCode)
	return resp, nil
}
