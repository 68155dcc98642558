// Package handler はindicatorsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"twstock/internal/feature/indicators/domain/entity"
	"twstock/internal/feature/indicators/transport/http/dto"
	"twstock/internal/feature/indicators/usecase"
	"twstock/internal/platform/logger"
	"twstock/internal/shared/symbolcode"
)

// ChartUsecase はチャート取得のユースケースです。
type ChartUsecase interface {
	GetChart(ctx context.Context, code, period string) (*usecase.Chart, error)
}

// ChartHandler はチャートAPIのリクエストを処理します。
type ChartHandler struct {
	uc ChartUsecase
}

// NewChartHandler はChartHandlerを生成します。
func NewChartHandler(uc ChartUsecase) *ChartHandler {
	return &ChartHandler{uc: uc}
}

// GetChart は価格履歴と全テクニカル指標を返します。
//
// エンドポイント例:
// GET /api/chart/:code?period=1y
func (h *ChartHandler) GetChart(c *gin.Context) {
	code := symbolcode.Normalize(c.Param("code"))
	if code == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "stock code is required"})
		return
	}

	chart, err := h.uc.GetChart(c.Request.Context(), code, c.Query("period"))
	if err != nil {
		status, msg := classify(err)
		if status >= http.StatusInternalServerError {
			logger.FromContext(c.Request.Context()).Error("chart request failed",
				slog.String("code", code), slog.Any("error", err))
		}
		c.JSON(status, dto.ErrorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, dto.NewChartResponse(chart))
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrNoData):
		return http.StatusNotFound, "no data found for this stock code"
	case errors.Is(err, entity.ErrInsufficientData):
		return http.StatusBadRequest, "not enough trading days to compute indicators; try a longer period"
	case errors.Is(err, entity.ErrInvalidSeries):
		return http.StatusBadRequest, "price history contains invalid data"
	case errors.Is(err, entity.ErrInvalidConfig):
		return http.StatusInternalServerError, "indicator configuration is invalid"
	default:
		return http.StatusBadGateway, "failed to fetch market data"
	}
}
