// Package usecase はポートフォリオ集計のロジックを実装します。
package usecase

import (
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"cloudtrade/internal/feature/portfolio/domain/entity"
	tradeentity "cloudtrade/internal/feature/trades/domain/entity"
)

// DefaultPlaceholderPrice は評価額の計算に使う既定の参照価格です。
const DefaultPlaceholderPrice = 150.0

// PriceLookup は銘柄の参照価格を返します。
// NaN、無限大、負の値を返した銘柄は DefaultPlaceholderPrice で評価されます。
type PriceLookup func(symbol string) float64

// ConstantPrice は全銘柄に同じ価格を返す PriceLookup です。
func ConstantPrice(p float64) PriceLookup {
	return func(string) float64 { return p }
}

// Aggregate は取引一覧を銘柄ごとの保有に畳み込みます。
//
// 銘柄（大文字化）ごとに BUY を加算、SELL を減算し、正味数量が0以下の銘柄は除外します。
// 評価額は 数量 × price(銘柄)、配分は 評価額 ÷ 合計 × 100（合計が0なら0）です。
// 結果は評価額の降順、同額なら銘柄順に並ぶため、入力の並び順に依存しません。入力は変更しません。
func Aggregate(trades []tradeentity.TradeRecord, price PriceLookup) []entity.PortfolioItem {
	items, _ := aggregate(trades, price)
	return items
}

// Summarize は集計結果と合計評価額をまとめます。
func Summarize(trades []tradeentity.TradeRecord, price PriceLookup) entity.Summary {
	items, total := aggregate(trades, price)
	return entity.Summary{Items: items, TotalValue: total.InexactFloat64()}
}

func aggregate(trades []tradeentity.TradeRecord, price PriceLookup) ([]entity.PortfolioItem, decimal.Decimal) {
	if price == nil {
		price = ConstantPrice(DefaultPlaceholderPrice)
	}

	net := make(map[string]int64)
	for _, t := range trades {
		sym := strings.ToUpper(strings.TrimSpace(t.Symbol))
		switch t.Side {
		case tradeentity.SideBuy:
			net[sym] += t.Quantity
		case tradeentity.SideSell:
			net[sym] -= t.Quantity
		}
	}

	type holding struct {
		symbol string
		qty    int64
		value  decimal.Decimal
	}
	held := make([]holding, 0, len(net))
	total := decimal.Zero
	for sym, qty := range net {
		if qty <= 0 {
			continue
		}
		p := price(sym)
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			p = DefaultPlaceholderPrice
		}
		v := decimal.NewFromInt(qty).Mul(decimal.NewFromFloat(p))
		held = append(held, holding{symbol: sym, qty: qty, value: v})
		total = total.Add(v)
	}

	sort.Slice(held, func(i, j int) bool {
		if c := held[i].value.Cmp(held[j].value); c != 0 {
			return c > 0
		}
		return held[i].symbol < held[j].symbol
	})

	hundred := decimal.NewFromInt(100)
	items := make([]entity.PortfolioItem, 0, len(held))
	for _, h := range held {
		alloc := decimal.Zero
		if total.IsPositive() {
			alloc = h.value.Div(total).Mul(hundred)
		}
		items = append(items, entity.PortfolioItem{
			Symbol:        h.symbol,
			TotalQuantity: h.qty,
			AveragePrice:  0,
			CurrentValue:  h.value.InexactFloat64(),
			Allocation:    alloc.InexactFloat64(),
		})
	}
	return items, total
}
