// Package handler はquoteフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"twstock/internal/feature/quote/domain/entity"
	"twstock/internal/feature/quote/transport/http/dto"
	"twstock/internal/feature/quote/usecase"
	"twstock/internal/platform/logger"
	"twstock/internal/shared/symbolcode"
)

// QuoteUsecase は最新株価取得のユースケースです。
type QuoteUsecase interface {
	GetQuote(ctx context.Context, code string) (*entity.Quote, error)
}

// QuoteHandler は最新株価APIのリクエストを処理します。
type QuoteHandler struct {
	uc QuoteUsecase
}

// NewQuoteHandler はQuoteHandlerを生成します。
func NewQuoteHandler(uc QuoteUsecase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// GetQuote は最新株価を返します。
//
// エンドポイント例:
// GET /api/quote/:code
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	code := symbolcode.Normalize(c.Param("code"))
	if code == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "stock code is required"})
		return
	}

	q, err := h.uc.GetQuote(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, usecase.ErrNoData) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "no data found for this stock code"})
			return
		}
		logger.FromContext(c.Request.Context()).Error("quote request failed",
			slog.String("code", code), slog.Any("error", err))
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "failed to fetch market data"})
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(q))
}
