// Package handler はadminフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"twstock/internal/feature/admin/transport/http/dto"
	"twstock/internal/feature/admin/usecase"
	candles "twstock/internal/feature/candles/usecase"
	jwtmw "twstock/internal/platform/jwt"
	"twstock/internal/shared/symbolcode"
)

// AdminUsecase は管理者操作のユースケースを定義します。
type AdminUsecase interface {
	Login(ctx context.Context, username, password string) (string, error)
	TriggerIngest(ctx context.Context) error
	InvalidateCache(ctx context.Context, code string) (int, error)
}

// AdminHandler は管理者APIのリクエストを処理します。
type AdminHandler struct {
	uc AdminUsecase
}

// NewAdminHandler はAdminHandlerを生成します。
func NewAdminHandler(uc AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// Login は管理者ログインを処理します。
// - バリデーションエラー時は400
// - 認証失敗時は401
// - 成功時はトークン付きで200
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("admin login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}
	token, err := h.uc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		slog.Warn("admin login failed", "error", err, "remote_addr", c.ClientIP())
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "login failed"})
		return
	}
	slog.Info("admin login successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// TriggerIngest は取り込みをバックグラウンドで開始し202を返します。
//
// POST /admin/ingest
func (h *AdminHandler) TriggerIngest(c *gin.Context) {
	err := h.uc.TriggerIngest(c.Request.Context())
	switch {
	case err == nil:
		slog.Info("ingest triggered", "by", jwtmw.Subject(c))
		c.JSON(http.StatusAccepted, dto.MessageResponse{Message: "ingest started"})
	case errors.Is(err, candles.ErrIngestRunning):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to start ingest"})
	}
}

// InvalidateCache は銘柄のキャッシュ済み価格履歴を削除します。
//
// DELETE /admin/cache/:code
func (h *AdminHandler) InvalidateCache(c *gin.Context) {
	code := symbolcode.Bare(c.Param("code"))
	n, err := h.uc.InvalidateCache(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCode) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("cache invalidation failed", "code", code, "error", err)
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "failed to invalidate cache"})
		return
	}
	slog.Info("cache invalidated", "code", code, "deleted", n, "by", jwtmw.Subject(c))
	c.JSON(http.StatusOK, dto.InvalidateResponse{Code: code, Deleted: n})
}
