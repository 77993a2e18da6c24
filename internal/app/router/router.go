// Package router builds the HTTP routes of the service.
package router

import (
	"github.com/gin-gonic/gin"

	insightshandler "cloudtrade/internal/feature/insights/transport/handler"
	markethandler "cloudtrade/internal/feature/marketdata/transport/handler"
	modehandler "cloudtrade/internal/feature/mode/transport/handler"
	portfoliohandler "cloudtrade/internal/feature/portfolio/transport/handler"
	tradehandler "cloudtrade/internal/feature/trades/transport/handler"
	platformhandler "cloudtrade/internal/platform/http/handler"
)

// Handlers is the set of handlers mounted by NewRouter.
type Handlers struct {
	Mode      *modehandler.ModeHandler
	Market    *markethandler.MarketDataHandler
	Trades    *tradehandler.TradeHandler
	Portfolio *portfoliohandler.PortfolioHandler
	Insights  *insightshandler.InsightHandler
	Status    platformhandler.StatusProvider
	// HealthChecks are the optional dependencies reported by /healthz.
	HealthChecks map[string]platformhandler.Check
}

// NewRouter mounts h on a gin engine with the default logger and recovery middleware.
func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	// 導通確認用（モード解決の前）
	health := platformhandler.Health(h.HealthChecks)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)

	// 以降のルートはリクエストごとにモードを解決する
	api := r.Group("/")
	api.Use(h.Mode.Middleware())
	{
		api.GET("/status", platformhandler.Status(h.Status))

		api.GET("/mode", h.Mode.Get)
		api.PUT("/mode", h.Mode.Set)
		api.POST("/mode/toggle", h.Mode.Toggle)

		api.GET("/candles/:symbol", h.Market.GetCandles)
		api.GET("/quote/:symbol", h.Market.GetQuote)

		api.GET("/trades", h.Trades.List)
		api.POST("/trades", h.Trades.Create)

		api.GET("/portfolio", h.Portfolio.Get)
		api.POST("/portfolio/aggregate", h.Portfolio.Aggregate)

		api.GET("/insights/:symbol", h.Insights.Get)
	}

	return r
}
