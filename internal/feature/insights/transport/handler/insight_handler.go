// Package handler はinsightsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudtrade/internal/feature/insights/domain/entity"
	"cloudtrade/internal/feature/insights/transport/http/dto"
	modeentity "cloudtrade/internal/feature/mode/domain/entity"
	modehandler "cloudtrade/internal/feature/mode/transport/handler"
)

// InsightService はインサイト生成のユースケースインターフェースです。
type InsightService interface {
	Generate(ctx context.Context, symbol string) entity.Insight
}

// InsightHandler はマーケットインサイトのHTTPリクエストを処理します。
type InsightHandler struct {
	services modeentity.ByMode[InsightService]
}

// NewInsightHandler はInsightHandlerを生成します。
func NewInsightHandler(services modeentity.ByMode[InsightService]) *InsightHandler {
	return &InsightHandler{services: services}
}

// Get は銘柄のインサイトを返します。生成に失敗しても200で固定文を返します。
//
// GET /insights/:symbol
func (h *InsightHandler) Get(c *gin.Context) {
	svc := h.services.For(modehandler.FromContext(c))
	c.JSON(http.StatusOK, dto.NewInsightResponse(svc.Generate(c.Request.Context(), c.Param("symbol"))))
}
