package handler_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"twstock/internal/feature/admin/transport/handler"
	"twstock/internal/feature/admin/usecase"
	candles "twstock/internal/feature/candles/usecase"
)

type mockAdminUsecase struct {
	loginFn      func(ctx context.Context, username, password string) (string, error)
	ingestErr    error
	invalidateFn func(ctx context.Context, code string) (int, error)
}

func (m *mockAdminUsecase) Login(ctx context.Context, username, password string) (string, error) {
	return m.loginFn(ctx, username, password)
}

func (m *mockAdminUsecase) TriggerIngest(ctx context.Context) error { return m.ingestErr }

func (m *mockAdminUsecase) InvalidateCache(ctx context.Context, code string) (int, error) {
	return m.invalidateFn(ctx, code)
}

func newRouter(uc handler.AdminUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewAdminHandler(uc)
	r := gin.New()
	r.POST("/admin/login", h.Login)
	r.POST("/admin/ingest", h.TriggerIngest)
	r.DELETE("/admin/cache/:code", h.InvalidateCache)
	return r
}

func TestAdminHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		loginFn        func(ctx context.Context, username, password string) (string, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			body: `{"username":"ops","password":"pw"}`,
			loginFn: func(ctx context.Context, username, password string) (string, error) {
				assert.Equal(t, "ops", username)
				assert.Equal(t, "pw", password)
				return "tok", nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"token":"tok"}`,
		},
		{
			name:           "missing password",
			body:           `{"username":"ops"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name: "bad credentials",
			body: `{"username":"ops","password":"nope"}`,
			loginFn: func(ctx context.Context, username, password string) (string, error) {
				return "", usecase.ErrInvalidCredentials
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid username or password"}`,
		},
		{
			name: "token failure",
			body: `{"username":"ops","password":"pw"}`,
			loginFn: func(ctx context.Context, username, password string) (string, error) {
				return "", errors.New("sign failed")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"login failed"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(&mockAdminUsecase{loginFn: tt.loginFn})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestAdminHandler_TriggerIngest(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"accepted", nil, http.StatusAccepted},
		{"running", candles.ErrIngestRunning, http.StatusConflict},
		{"unavailable", fmt.Errorf("%w: no db", usecase.ErrUnavailable), http.StatusServiceUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(&mockAdminUsecase{ingestErr: tt.err})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/ingest", nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAdminHandler_InvalidateCache(t *testing.T) {
	r := newRouter(&mockAdminUsecase{invalidateFn: func(ctx context.Context, code string) (int, error) {
		assert.Equal(t, "2330", code)
		return 4, nil
	}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/cache/2330.TW", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":"2330","deleted":4}`, w.Body.String())
}

func TestAdminHandler_InvalidateCache_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid code", usecase.ErrInvalidCode, http.StatusBadRequest},
		{"redis failure", errors.New("redis down"), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(&mockAdminUsecase{invalidateFn: func(ctx context.Context, code string) (int, error) {
				return 0, tt.err
			}})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/cache/2330", nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
