// Package dto はportfolioフィーチャーのリクエスト・レスポンス形式を定義します。
package dto

import (
	"cloudtrade/internal/feature/portfolio/domain/entity"
	tradeentity "cloudtrade/internal/feature/trades/domain/entity"
	tradedto "cloudtrade/internal/feature/trades/transport/http/dto"
)

// PortfolioItemResponse は1銘柄の保有です。
type PortfolioItemResponse struct {
	Symbol        string  `json:"symbol"`
	TotalQuantity int64   `json:"totalQuantity"`
	AveragePrice  float64 `json:"averagePrice"`
	CurrentValue  float64 `json:"currentValue"`
	Allocation    float64 `json:"allocation"`
}

// SummaryResponse は GET /portfolio と POST /portfolio/aggregate のレスポンスです。
type SummaryResponse struct {
	Items      []PortfolioItemResponse `json:"items"`
	TotalValue float64                 `json:"totalValue"`
}

// AggregateRequest は POST /portfolio/aggregate のリクエストボディです。
type AggregateRequest struct {
	Trades []tradedto.TradeResponse `json:"trades"`
}

// ToEntities はリクエストの取引をエンティティに変換します。
func (r AggregateRequest) ToEntities() []tradeentity.TradeRecord {
	out := make([]tradeentity.TradeRecord, 0, len(r.Trades))
	for _, t := range r.Trades {
		out = append(out, t.ToEntity())
	}
	return out
}

// NewSummaryResponse はエンティティをレスポンスに変換します。
func NewSummaryResponse(s entity.Summary) SummaryResponse {
	items := make([]PortfolioItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, PortfolioItemResponse{
			Symbol:        it.Symbol,
			TotalQuantity: it.TotalQuantity,
			AveragePrice:  it.AveragePrice,
			CurrentValue:  it.CurrentValue,
			Allocation:    it.Allocation,
		})
	}
	return SummaryResponse{Items: items, TotalValue: s.TotalValue}
}
