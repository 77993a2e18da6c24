// Package handler はtradesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	modeentity "cloudtrade/internal/feature/mode/domain/entity"
	modehandler "cloudtrade/internal/feature/mode/transport/handler"
	"cloudtrade/internal/feature/trades/domain/entity"
	"cloudtrade/internal/feature/trades/transport/http/dto"
	"cloudtrade/internal/feature/trades/usecase"
	httpdto "cloudtrade/internal/platform/http/dto"
)

// TradeService は取引台帳のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type TradeService interface {
	Append(ctx context.Context, order entity.Order) (entity.TradeRecord, error)
	List(ctx context.Context) ([]entity.TradeRecord, error)
}

// TradeHandler は取引の登録と一覧取得を処理します。
type TradeHandler struct {
	services modeentity.ByMode[TradeService]
}

// NewTradeHandler はTradeHandlerを生成します。
func NewTradeHandler(services modeentity.ByMode[TradeService]) *TradeHandler {
	return &TradeHandler{services: services}
}

// List は取引履歴を新しい順に返します。
//
// GET /trades
func (h *TradeHandler) List(c *gin.Context) {
	trades, err := h.service(c).List(c.Request.Context())
	if err != nil {
		slog.Error("failed to list trades", "error", err)
		c.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: httpdto.OperationFailed})
		return
	}
	c.JSON(http.StatusOK, dto.NewTradeListResponse(trades))
}

// Create は注文を受け付けて取引として記録します。
// 不正な注文は422、それ以外の失敗は500 "operation failed" を返します。
//
// POST /trades {"symbol":"AAPL","action":"BUY","price":150,"quantity":1}
func (h *TradeHandler) Create(c *gin.Context) {
	var req dto.CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
		return
	}

	trade, err := h.service(c).Append(c.Request.Context(), req.ToOrder())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrOrderRejected):
			c.JSON(http.StatusUnprocessableEntity, httpdto.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("failed to append trade", "symbol", req.Symbol, "error", err)
			c.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: httpdto.OperationFailed})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.NewTradeResponse(trade))
}

func (h *TradeHandler) service(c *gin.Context) TradeService {
	return h.services.For(modehandler.FromContext(c))
}
