package di

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/redis/go-redis/v9"

	"cloudtrade/internal/feature/marketdata/adapters/synthetic"
	marketusecase "cloudtrade/internal/feature/marketdata/usecase"
	modeentity "cloudtrade/internal/feature/mode/domain/entity"
	"cloudtrade/internal/platform/cache"
	"cloudtrade/internal/platform/config"
	"cloudtrade/internal/platform/externalapi/finnhub"
	infrahttp "cloudtrade/internal/platform/http"
	"cloudtrade/internal/shared/ratelimiter"
)

// NewFinnhubSource creates the Finnhub client behind the Redis cache.
func NewFinnhubSource(cfg config.Config, rdb *redis.Client, clk clock.Clock) marketusecase.Source {
	client := finnhub.NewClient(
		finnhub.Config{APIKey: cfg.Finnhub.APIKey, BaseURL: cfg.Finnhub.BaseURL, Timeout: cfg.Finnhub.Timeout},
		infrahttp.NewHTTPClient(cfg.Finnhub.Timeout),
		ratelimiter.NewRateLimiter(cfg.Finnhub.RatePerMinute, time.Minute),
		clk,
	)
	return cache.NewCachingSource(rdb, client, cfg.Redis.QuoteCacheTTL, cfg.Redis.HistoryCacheTTL, "marketdata")
}

// NewMarketServices creates one market data service per mode.
// REAL is only present when the provider key is configured.
func NewMarketServices(cfg config.Config, rdb *redis.Client, clk clock.Clock) modeentity.ByMode[*marketusecase.Service] {
	gen := synthetic.NewGenerator(nil, clk)
	out := modeentity.ByMode[*marketusecase.Service]{
		modeentity.Mock: marketusecase.NewSyntheticService(gen),
	}
	if cfg.RealModeReady() {
		out[modeentity.Real] = marketusecase.NewRemoteService(NewFinnhubSource(cfg, rdb, clk), synthetic.NewFallback(gen))
	}
	return out
}
