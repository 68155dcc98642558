package router

import (
	"context"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"twstock/internal/app/di"
	"twstock/internal/feature/admin/usecase"
	"twstock/internal/platform/http/handler"
	"twstock/internal/platform/http/middleware"
	jwtmw "twstock/internal/platform/jwt"
	"twstock/internal/platform/metrics"
)

// Options are the pieces the router needs beyond the feature handlers.
type Options struct {
	Metrics *metrics.Metrics
	DB      *gorm.DB
	Redis   *redis.Client
}

// NewRouter はすべてのルートを登録したgin.Engineを返します。
// /candles はDBが無い場合は登録されません。
func NewRouter(c *di.Components, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.AccessLog(), middleware.Recovery())
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	if origins := allowOrigins(); len(origins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = origins
		cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
		r.Use(cors.New(cfg))
	}

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(readinessChecks(opts)...))

	api := r.Group("/api")
	{
		api.GET("/chart/:code", c.Chart.GetChart)
		api.GET("/quote/:code", c.Quote.GetQuote)
		api.GET("/popular", c.Symbols.Popular)
		api.GET("/search", c.Symbols.Search)
	}

	r.GET("/symbols", c.Symbols.List)
	if c.Candles != nil {
		r.GET("/candles/:code", c.Candles.GetCandlesHandler)
	}

	// ログイン（JWT 発行）
	r.POST("/admin/login", c.Admin.Login)

	// 管理者のみ
	admin := r.Group("/admin")
	admin.Use(jwtmw.AuthRequired(c.JWTSecret, usecase.RoleAdmin))
	{
		admin.POST("/ingest", c.Admin.TriggerIngest)
		admin.DELETE("/cache/:code", c.Admin.InvalidateCache)
	}

	return r
}

// allowOrigins はCORS_ALLOW_ORIGINS（カンマ区切り）を読みます。未設定ならCORSは無効です。
func allowOrigins() []string {
	var out []string
	for _, o := range strings.Split(os.Getenv("CORS_ALLOW_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func readinessChecks(opts Options) []handler.Check {
	var checks []handler.Check
	if opts.DB != nil {
		checks = append(checks, handler.Check{Name: "database", Probe: func(ctx context.Context) error {
			sqlDB, err := opts.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}})
	}
	if opts.Redis != nil {
		checks = append(checks, handler.Check{Name: "redis", Probe: func(ctx context.Context) error {
			return opts.Redis.Ping(ctx).Err()
		}})
	}
	return checks
}
