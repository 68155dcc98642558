package di

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	adminhandler "twstock/internal/feature/admin/transport/handler"
	adminusecase "twstock/internal/feature/admin/usecase"
	candleadapters "twstock/internal/feature/candles/adapters"
	candlehandler "twstock/internal/feature/candles/transport/handler"
	candleusecase "twstock/internal/feature/candles/usecase"
	indicatoradapters "twstock/internal/feature/indicators/adapters"
	indicatorentity "twstock/internal/feature/indicators/domain/entity"
	indicatorhandler "twstock/internal/feature/indicators/transport/handler"
	indicatorusecase "twstock/internal/feature/indicators/usecase"
	quoteadapters "twstock/internal/feature/quote/adapters"
	quotehandler "twstock/internal/feature/quote/transport/handler"
	quoteusecase "twstock/internal/feature/quote/usecase"
	symboladapters "twstock/internal/feature/symbollist/adapters"
	"twstock/internal/feature/symbollist/catalog"
	symbolhandler "twstock/internal/feature/symbollist/transport/handler"
	symbolusecase "twstock/internal/feature/symbollist/usecase"
	"twstock/internal/platform/cache"
	jwtmw "twstock/internal/platform/jwt"
	"twstock/internal/platform/metrics"
	"twstock/internal/shared/ratelimiter"
)

// defaultIngestRatePerMinute は取り込み時のプロバイダーへの最大リクエスト数（毎分）です。
const defaultIngestRatePerMinute = 60

// Deps are the platform resources shared by every feature. DB and Redis may be nil.
type Deps struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Metrics *metrics.Metrics
	Catalog *catalog.Catalog
}

// Components holds the wired handlers for the HTTP server.
// Candles is nil when no database is configured.
type Components struct {
	Chart     *indicatorhandler.ChartHandler
	Quote     *quotehandler.QuoteHandler
	Symbols   *symbolhandler.SymbolHandler
	Candles   *candlehandler.CandlesHandler
	Admin     *adminhandler.AdminHandler
	JWTSecret string
	IngestJob *candleusecase.IngestJob
	SymbolUC  *symbolusecase.SymbolUsecase
}

// NewSymbolUsecase builds the symbol usecase. Without a database it serves the catalog only.
func NewSymbolUsecase(db *gorm.DB, c *catalog.Catalog) *symbolusecase.SymbolUsecase {
	if db == nil {
		return symbolusecase.NewSymbolUsecase(nil, c)
	}
	return symbolusecase.NewSymbolUsecase(symboladapters.NewSymbolRepository(db), c)
}

// NewCandleStore returns the gorm candle repository wrapped with the Redis cache.
func NewCandleStore(db *gorm.DB, rdb *redis.Client, m *metrics.Metrics) *cache.CachingCandleRepository {
	store := cache.NewCachingCandleRepository(rdb, candleadapters.NewCandleRepository(db), nil, "candles")
	if m != nil {
		store.WithObserver(m.CacheObserver("candles"))
	}
	return store
}

// NewIngestJob wires the candle ingest job. It returns nil without a database.
func NewIngestJob(db *gorm.DB, rdb *redis.Client, market candleadapters.ChartFetcher, symbols candleusecase.SymbolSource, m *metrics.Metrics) *candleusecase.IngestJob {
	if db == nil {
		return nil
	}
	limiter := ratelimiter.NewRateLimiter(ingestRatePerMinute(), time.Minute)
	var recorder candleusecase.IngestRecorder
	if m != nil {
		recorder = m
	}
	uc := candleusecase.NewIngestUsecase(candleadapters.NewYahooMarket(market), NewCandleStore(db, rdb, m), limiter, recorder)
	return candleusecase.NewIngestJob(uc, symbols)
}

func ingestRatePerMinute() int {
	if v, err := strconv.Atoi(os.Getenv("INGEST_RATE_PER_MINUTE")); err == nil && v > 0 {
		return v
	}
	return defaultIngestRatePerMinute
}

// NewComponents wires every feature for the HTTP server.
func NewComponents(d Deps) *Components {
	market := NewMarket(d.Metrics)
	charts := NewChartSource(d.Redis, market, d.Metrics, nil)

	chartUC := indicatorusecase.NewChartUsecase(
		indicatoradapters.NewYahooHistory(charts), d.Catalog, indicatorentity.DefaultWindowConfig())
	if d.Metrics != nil {
		chartUC.WithComputeObserver(func(elapsed time.Duration) {
			d.Metrics.IndicatorCompute.Observe(elapsed.Seconds())
		})
	}
	quoteUC := quoteusecase.NewQuoteUsecase(quoteadapters.NewYahooSnapshot(charts), d.Catalog)
	symbolUC := NewSymbolUsecase(d.DB, d.Catalog)

	c := &Components{
		Chart:    indicatorhandler.NewChartHandler(chartUC),
		Quote:    quotehandler.NewQuoteHandler(quoteUC),
		Symbols:  symbolhandler.NewSymbolHandler(symbolUC),
		SymbolUC: symbolUC,
	}

	var ingest adminusecase.IngestStarter
	if d.DB != nil {
		c.Candles = candlehandler.NewCandlesHandler(candleusecase.NewCandlesUsecase(NewCandleStore(d.DB, d.Redis, d.Metrics)))
		c.IngestJob = NewIngestJob(d.DB, d.Redis, market, symbolUC, d.Metrics)
		ingest = c.IngestJob
	}

	secret, err := jwtmw.SecretFromEnv()
	if err != nil {
		slog.Warn("JWT_SECRET is not set, admin endpoints will reject every request")
	}
	c.JWTSecret = secret
	adminUC := adminusecase.NewAdminUsecase(adminusecase.LoadConfig(),
		jwtmw.NewGenerator(secret, jwtmw.DefaultExpiration), ingest, charts)
	c.Admin = adminhandler.NewAdminHandler(adminUC)

	return c
}
