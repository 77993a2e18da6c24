package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	marketentity "cloudtrade/internal/feature/marketdata/domain/entity"
	"cloudtrade/internal/feature/portfolio/domain/entity"
	tradeentity "cloudtrade/internal/feature/trades/domain/entity"
)

// TradeLister はポートフォリオの元になる取引一覧を提供します。
type TradeLister interface {
	List(ctx context.Context) ([]tradeentity.TradeRecord, error)
}

// Quoter は銘柄の気配値を提供します。marketdata の Service が満たします。
type Quoter interface {
	FetchQuote(ctx context.Context, symbol string) marketentity.Result[marketentity.Quote]
}

// LivePrices は symbols の気配値を並行して取得し、PriceLookup にまとめます。
// 気配値が正の有限値でない銘柄と未取得の銘柄には fallback を返します。
func LivePrices(ctx context.Context, q Quoter, symbols []string, fallback float64) PriceLookup {
	prices := make(map[string]float64, len(symbols))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, sym := range symbols {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			res := q.FetchQuote(ctx, sym)
			if !validPrice(res.Data.Current) {
				return
			}
			mu.Lock()
			prices[sym] = res.Data.Current
			mu.Unlock()
		}(sym)
	}
	wg.Wait()

	return func(symbol string) float64 {
		if p, ok := prices[symbol]; ok {
			return p
		}
		return fallback
	}
}

// PortfolioUsecase は台帳から現在のポートフォリオを計算します。
type PortfolioUsecase struct {
	trades      TradeLister
	quoter      Quoter
	placeholder float64
}

// NewPortfolioUsecase はPortfolioUsecaseを生成します。
// quoter が nil の場合は placeholder の固定価格で評価します。placeholder が正の有限値でなければ150です。
func NewPortfolioUsecase(trades TradeLister, quoter Quoter, placeholder float64) *PortfolioUsecase {
	if !validPrice(placeholder) {
		placeholder = DefaultPlaceholderPrice
	}
	return &PortfolioUsecase{trades: trades, quoter: quoter, placeholder: placeholder}
}

// Current は台帳の取引を集計したポートフォリオを返します。
func (u *PortfolioUsecase) Current(ctx context.Context) (entity.Summary, error) {
	trades, err := u.trades.List(ctx)
	if err != nil {
		return entity.Summary{}, fmt.Errorf("list trades: %w", err)
	}
	return u.Summarize(ctx, trades), nil
}

// Summarize は渡された取引のスナップショットを集計します。
func (u *PortfolioUsecase) Summarize(ctx context.Context, trades []tradeentity.TradeRecord) entity.Summary {
	return Summarize(trades, u.priceLookup(ctx, trades))
}

func (u *PortfolioUsecase) priceLookup(ctx context.Context, trades []tradeentity.TradeRecord) PriceLookup {
	if u.quoter == nil {
		return ConstantPrice(u.placeholder)
	}
	symbols := heldSymbols(trades)
	slog.Debug("pricing portfolio with live quotes", "symbols", len(symbols))
	return LivePrices(ctx, u.quoter, symbols, u.placeholder)
}

// heldSymbols は正味数量が正の銘柄を返します。
func heldSymbols(trades []tradeentity.TradeRecord) []string {
	items := Aggregate(trades, ConstantPrice(0))
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Symbol)
	}
	return out
}

// validPrice は p が参照価格として使える正の有限値かを判定します。
func validPrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 1)
}
