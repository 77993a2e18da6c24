package di

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"cloudtrade/internal/app/router"
	insightshandler "cloudtrade/internal/feature/insights/transport/handler"
	insightsusecase "cloudtrade/internal/feature/insights/usecase"
	markethandler "cloudtrade/internal/feature/marketdata/transport/handler"
	marketusecase "cloudtrade/internal/feature/marketdata/usecase"
	modeentity "cloudtrade/internal/feature/mode/domain/entity"
	modehandler "cloudtrade/internal/feature/mode/transport/handler"
	modeusecase "cloudtrade/internal/feature/mode/usecase"
	portfoliohandler "cloudtrade/internal/feature/portfolio/transport/handler"
	portfoliousecase "cloudtrade/internal/feature/portfolio/usecase"
	tradehandler "cloudtrade/internal/feature/trades/transport/handler"
	tradeusecase "cloudtrade/internal/feature/trades/usecase"
	"cloudtrade/internal/platform/config"
	platformhandler "cloudtrade/internal/platform/http/handler"
)

// StartMode returns the mode requested by APP_MODE, or "" to let the selector decide.
func StartMode(cfg config.Config) modeentity.Mode {
	if cfg.AppMode == "" {
		return ""
	}
	m, err := modeentity.ParseMode(cfg.AppMode)
	if err != nil {
		log.Printf("[WARN] ignoring APP_MODE: %v", err)
		return ""
	}
	return m
}

// NewHandlers wires every feature for both modes and returns the router's handler set.
func NewHandlers(ctx context.Context, cfg config.Config, infra Infra) router.Handlers {
	sel := modeusecase.NewSelector(cfg.RealModeReady(), StartMode(cfg))

	markets := NewMarketServices(cfg, infra.Redis, infra.Clock)
	ledgers, ledgerKinds := NewLedgers(infra)
	analyzers := NewAnalyzers(ctx, cfg)

	trades := mapModes(ledgers, func(_ modeentity.Mode, l tradeusecase.Ledger) *tradeusecase.TradeUsecase {
		return tradeusecase.NewTradeUsecase(l, infra.Clock)
	})

	marketSvc := mapModes(markets, func(_ modeentity.Mode, s *marketusecase.Service) markethandler.MarketService { return s })
	tradeSvc := mapModes(trades, func(_ modeentity.Mode, u *tradeusecase.TradeUsecase) tradehandler.TradeService { return u })
	portfolioSvc := mapModes(trades, func(m modeentity.Mode, u *tradeusecase.TradeUsecase) portfoliohandler.PortfolioService {
		var quoter portfoliousecase.Quoter
		if cfg.PortfolioPricing == config.PricingLive {
			quoter = markets.For(m)
		}
		return portfoliousecase.NewPortfolioUsecase(u, quoter, cfg.PlaceholderPrice)
	})
	insightSvc := mapModes(analyzers, func(m modeentity.Mode, a insightsusecase.Analyzer) insightshandler.InsightService {
		return insightsusecase.NewInsightUsecase(markets.For(m), a)
	})

	status := func(c *gin.Context) platformhandler.StatusSnapshot {
		m := modehandler.FromContext(c)
		source := "synthetic"
		if m == modeentity.Real {
			source = "finnhub"
		}
		return platformhandler.StatusSnapshot{
			Mode:          m.String(),
			RealModeReady: sel.IsReady(),
			Ledger:        ledgerKinds[m],
			MarketData:    source,
			Cache:         infra.Redis != nil,
			Insights:      string(analyzers.For(m).Engine()),
		}
	}

	return router.Handlers{
		Mode:      modehandler.NewModeHandler(sel),
		Market:    markethandler.NewMarketDataHandler(marketSvc),
		Trades:    tradehandler.NewTradeHandler(tradeSvc),
		Portfolio: portfoliohandler.NewPortfolioHandler(portfolioSvc),
		Insights:  insightshandler.NewInsightHandler(insightSvc),
		Status:    status,

		HealthChecks: HealthChecks(infra),
	}
}
