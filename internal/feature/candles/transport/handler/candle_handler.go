// Package handler はcandlesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"twstock/internal/feature/candles/domain/entity"
	"twstock/internal/feature/candles/transport/http/dto"
	"twstock/internal/feature/candles/usecase"
	"twstock/internal/platform/logger"
	"twstock/internal/shared/symbolcode"
)

// CandlesUsecase は保存済みローソク足の参照です。
type CandlesUsecase interface {
	GetCandles(ctx context.Context, q usecase.Query) (*entity.Series, error)
}

type CandlesHandler struct {
	uc CandlesUsecase
}

func NewCandlesHandler(uc CandlesUsecase) *CandlesHandler {
	return &CandlesHandler{uc: uc}
}

// GetCandlesHandler は取り込み済みのローソク足を返します。
//
// GET /candles/:code?interval=1day&outputsize=200
func (h *CandlesHandler) GetCandlesHandler(c *gin.Context) {
	// 保存時は接尾辞なしのコードで持っている
	q := usecase.Query{
		Symbol:   symbolcode.Bare(c.Param("code")),
		Interval: c.Query("interval"),
	}
	// 数値でなければ0として扱い、usecase側で既定値になる
	q.OutputSize, _ = strconv.Atoi(c.Query("outputsize"))

	series, err := h.uc.GetCandles(c.Request.Context(), q)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			logger.FromContext(c.Request.Context()).Error("get candles failed", "symbol", q.Symbol, "error", err)
			c.JSON(status, dto.ErrorResponse{Error: "failed to load candles"})
			return
		}
		c.JSON(status, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.NewCandlesResponse(series))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrUnsupportedInterval), errors.Is(err, usecase.ErrInvalidSymbol):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrNoCandles):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
