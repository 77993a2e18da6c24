// Package handler はmarketdataフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudtrade/internal/feature/marketdata/domain/entity"
	"cloudtrade/internal/feature/marketdata/transport/http/dto"
	"cloudtrade/internal/feature/marketdata/usecase"
	modeentity "cloudtrade/internal/feature/mode/domain/entity"
	modehandler "cloudtrade/internal/feature/mode/transport/handler"
)

// OriginHeader はデータの取得経路（synthetic/remote/fallback）を示すレスポンスヘッダーです。
const OriginHeader = "X-Data-Origin"

// MarketService は市場データ取得のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type MarketService interface {
	FetchHistory(ctx context.Context, symbol string, rng entity.Range) entity.Result[[]entity.Candle]
	FetchQuote(ctx context.Context, symbol string) entity.Result[entity.Quote]
}

// MarketDataHandler はローソク足と気配値のHTTPリクエストを処理します。
// モードごとのサービスはリクエストのモードで選択されます。
type MarketDataHandler struct {
	services modeentity.ByMode[MarketService]
}

// NewMarketDataHandler はMarketDataHandlerを生成します。
func NewMarketDataHandler(services modeentity.ByMode[MarketService]) *MarketDataHandler {
	return &MarketDataHandler{services: services}
}

// GetCandles は価格履歴を返します。取得元が失敗してもエラーにはならず、代替データを返します。
//
// エンドポイント例:
// GET /candles/AAPL?range=1W
func (h *MarketDataHandler) GetCandles(c *gin.Context) {
	symbol := usecase.NormalizeSymbol(c.Param("symbol"))
	rng := entity.ParseRange(c.DefaultQuery("range", string(entity.DefaultRange)))

	res := h.service(c).FetchHistory(c.Request.Context(), symbol, rng)

	c.Header(OriginHeader, string(res.Origin))
	c.JSON(http.StatusOK, dto.NewHistoryResponse(symbol, rng, res))
}

// GetQuote は現在の気配値を返します。
//
// エンドポイント例:
// GET /quote/AAPL
func (h *MarketDataHandler) GetQuote(c *gin.Context) {
	symbol := usecase.NormalizeSymbol(c.Param("symbol"))

	res := h.service(c).FetchQuote(c.Request.Context(), symbol)

	c.Header(OriginHeader, string(res.Origin))
	c.JSON(http.StatusOK, dto.NewQuoteResponse(symbol, res))
}

func (h *MarketDataHandler) service(c *gin.Context) MarketService {
	return h.services.For(modehandler.FromContext(c))
}
