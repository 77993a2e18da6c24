// Package handler はportfolioフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	modeentity "cloudtrade/internal/feature/mode/domain/entity"
	modehandler "cloudtrade/internal/feature/mode/transport/handler"
	"cloudtrade/internal/feature/portfolio/domain/entity"
	"cloudtrade/internal/feature/portfolio/transport/http/dto"
	tradeentity "cloudtrade/internal/feature/trades/domain/entity"
	tradeusecase "cloudtrade/internal/feature/trades/usecase"
	httpdto "cloudtrade/internal/platform/http/dto"
)

// PortfolioService はポートフォリオ集計のユースケースインターフェースです。
type PortfolioService interface {
	Current(ctx context.Context) (entity.Summary, error)
	Summarize(ctx context.Context, trades []tradeentity.TradeRecord) entity.Summary
}

// PortfolioHandler はポートフォリオのHTTPリクエストを処理します。
type PortfolioHandler struct {
	services modeentity.ByMode[PortfolioService]
}

// NewPortfolioHandler はPortfolioHandlerを生成します。
func NewPortfolioHandler(services modeentity.ByMode[PortfolioService]) *PortfolioHandler {
	return &PortfolioHandler{services: services}
}

// Get は現在のモードの台帳から計算したポートフォリオを返します。
//
// GET /portfolio
func (h *PortfolioHandler) Get(c *gin.Context) {
	s, err := h.service(c).Current(c.Request.Context())
	if err != nil {
		slog.Error("failed to compute portfolio", "error", err)
		c.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: httpdto.OperationFailed})
		return
	}
	c.JSON(http.StatusOK, dto.NewSummaryResponse(s))
}

// Aggregate はリクエストボディの取引一覧を集計します。台帳は参照しません。
// 銘柄と売買区分は大文字化し、不正な取引が1件でもあれば422を返します。
//
// POST /portfolio/aggregate {"trades":[...]}
func (h *PortfolioHandler) Aggregate(c *gin.Context) {
	var req dto.AggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
		return
	}
	trades := req.ToEntities()
	for i, t := range trades {
		normalized, err := tradeusecase.NormalizeRecord(t)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, httpdto.ErrorResponse{Error: fmt.Sprintf("trades[%d]: %v", i, err)})
			return
		}
		trades[i] = normalized
	}
	s := h.service(c).Summarize(c.Request.Context(), trades)
	c.JSON(http.StatusOK, dto.NewSummaryResponse(s))
}

func (h *PortfolioHandler) service(c *gin.Context) PortfolioService {
	return h.services.For(modehandler.FromContext(c))
}
