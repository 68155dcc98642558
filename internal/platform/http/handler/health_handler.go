// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// readyTimeout は依存先ごとの確認に使う時間の上限です。
const readyTimeout = 2 * time.Second

// Check は依存先（DB、Redisなど）の疎通確認です。
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// Health は /healthz の liveness 応答です。依存先は見ません。
// HEAD はボディなしの200を返します。
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	if c.Request.Method == http.MethodHead {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready は /readyz 用のハンドラーを返します。
// すべてのCheckが成功すれば200、ひとつでも失敗すれば503を返します。
func Ready(checks ...Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		results := make(map[string]string, len(checks))
		status := http.StatusOK
		for _, ch := range checks {
			ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
			err := ch.Probe(ctx)
			cancel()
			if err != nil {
				results[ch.Name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[ch.Name] = "ok"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "unavailable"
		}
		c.JSON(status, gin.H{"status": overall, "checks": results})
	}
}
