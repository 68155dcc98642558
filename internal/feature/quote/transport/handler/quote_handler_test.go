package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"twstock/internal/feature/quote/domain/entity"
	"twstock/internal/feature/quote/transport/handler"
	"twstock/internal/feature/quote/usecase"
)

type mockQuoteUsecase struct {
	quote *entity.Quote
	err   error
	code  string
}

func (m *mockQuoteUsecase) GetQuote(ctx context.Context, code string) (*entity.Quote, error) {
	m.code = code
	return m.quote, m.err
}

func serve(uc handler.QuoteUsecase, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/quote/:code", handler.NewQuoteHandler(uc).GetQuote)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestQuoteHandler_Success(t *testing.T) {
	hi := 688.0
	uc := &mockQuoteUsecase{quote: &entity.Quote{
		Symbol: "2330", Name: "台積電", CurrentPrice: 585.5, PrevClose: 580, Change: 5.5, ChangePct: 0.95,
		Open: 581.23, High: 590.46, Low: 579.11, DayHigh: 590.46, DayLow: 579.11, Volume: 25678,
		Week52High: &hi,
	}}

	w := serve(uc, "/api/quote/2330")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2330", uc.code)
	assert.JSONEq(t, `{
		"symbol":"2330","name":"台積電","current_price":585.5,"prev_close":580,"change":5.5,
		"change_pct":0.95,"open":581.23,"high":590.46,"low":579.11,"volume":25678,
		"day_high":590.46,"day_low":579.11,"week52_high":688,"week52_low":null
	}`, w.Body.String())
}

func TestQuoteHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("%w: 9999", usecase.ErrNoData), http.StatusNotFound},
		{"upstream", fmt.Errorf("%w: 503", usecase.ErrUpstream), http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&mockQuoteUsecase{err: tt.err}, "/api/quote/9999")
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}
