package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twstock/internal/app/di"
	"twstock/internal/app/router"
	adminhandler "twstock/internal/feature/admin/transport/handler"
	adminusecase "twstock/internal/feature/admin/usecase"
	indicatorhandler "twstock/internal/feature/indicators/transport/handler"
	quotehandler "twstock/internal/feature/quote/transport/handler"
	"twstock/internal/feature/symbollist/catalog"
	symbolhandler "twstock/internal/feature/symbollist/transport/handler"
	jwtmw "twstock/internal/platform/jwt"
	"twstock/internal/platform/metrics"
)

const testSecret = "router-test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	symbolUC := di.NewSymbolUsecase(nil, catalog.Default())
	adminUC := adminusecase.NewAdminUsecase(adminusecase.Config{},
		jwtmw.NewGenerator(testSecret, jwtmw.DefaultExpiration), nil, nil)
	c := &di.Components{
		Chart:     indicatorhandler.NewChartHandler(nil),
		Quote:     quotehandler.NewQuoteHandler(nil),
		Symbols:   symbolhandler.NewSymbolHandler(symbolUC),
		Admin:     adminhandler.NewAdminHandler(adminUC),
		JWTSecret: testSecret,
		SymbolUC:  symbolUC,
	}
	return router.NewRouter(c, router.Options{Metrics: metrics.New()})
}

func serve(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_PublicRoutes(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/healthz", "").Code)

	w := serve(r, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{}}`, w.Body.String())

	w = serve(r, http.MethodGet, "/api/popular", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"2330"`)

	w = serve(r, http.MethodGet, "/api/search?q=233", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2330")

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/symbols", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/metrics", "").Code)
}

func TestRouter_CandlesDisabledWithoutDatabase(t *testing.T) {
	r := newTestRouter(t)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/candles/2330", "").Code)
}

func TestRouter_AdminRequiresToken(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "/admin/ingest", "").Code)

	gen := jwtmw.NewGenerator(testSecret, jwtmw.DefaultExpiration)
	viewer, err := gen.GenerateToken("someone", "viewer")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodPost, "/admin/ingest", viewer).Code)

	admin, err := gen.GenerateToken("ops", adminusecase.RoleAdmin)
	require.NoError(t, err)
	// DBが無いので取り込みは利用不可
	assert.Equal(t, http.StatusServiceUnavailable, serve(r, http.MethodPost, "/admin/ingest", admin).Code)

	w := serve(r, http.MethodDelete, "/admin/cache/2330", admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":"2330","deleted":0}`, w.Body.String())
}
