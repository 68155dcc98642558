// Package handler はsymbollistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"twstock/internal/feature/symbollist/catalog"
	"twstock/internal/feature/symbollist/domain/entity"
	"twstock/internal/feature/symbollist/transport/http/dto"
	"twstock/internal/platform/logger"
)

// SymbolUsecase は銘柄情報に関するユースケースのインターフェースです。
type SymbolUsecase interface {
	ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error)
	Popular() []catalog.Entry
	Search(q string, limit int) []catalog.Entry
}

// SymbolHandler は銘柄情報に関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List は有効な銘柄を市場区分とティッカー付きで返します。
//
// GET /symbols
func (h *SymbolHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	symbols, err := h.uc.ListActiveSymbols(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("list symbols failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list symbols"})
		return
	}
	out := make([]dto.ListedSymbol, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, dto.ListedSymbol{Code: s.Code, Name: s.Name, Market: s.Market, Ticker: s.Ticker()})
	}
	c.JSON(http.StatusOK, out)
}

// Popular は人気銘柄を {code: name} で返します。
//
// GET /api/popular
func (h *SymbolHandler) Popular(c *gin.Context) {
	c.JSON(http.StatusOK, dto.PopularResponse(items(h.uc.Popular())))
}

// Search はコードまたは名称で銘柄を検索します。
//
// GET /api/search?q=台&limit=10
func (h *SymbolHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	c.JSON(http.StatusOK, items(h.uc.Search(c.Query("q"), limit)))
}

func items(entries []catalog.Entry) []dto.SymbolItem {
	out := make([]dto.SymbolItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.SymbolItem{Code: e.Code, Name: e.Name})
	}
	return out
}
