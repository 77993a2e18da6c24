// Package dto はtradesフィーチャーのリクエスト・レスポンス形式を定義します。
package dto

import "cloudtrade/internal/feature/trades/domain/entity"

// CreateTradeRequest は POST /trades のリクエストボディです。
// 値の妥当性はユースケースで検証します。
type CreateTradeRequest struct {
	Symbol    string  `json:"symbol"`
	Action    string  `json:"action"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
	Timestamp int64   `json:"timestamp"`
}

// ToOrder はリクエストを注文エンティティに変換します。
func (r CreateTradeRequest) ToOrder() entity.Order {
	return entity.Order{
		Symbol:    r.Symbol,
		Side:      entity.Side(r.Action),
		Price:     r.Price,
		Quantity:  r.Quantity,
		Timestamp: r.Timestamp,
	}
}

// TradeResponse は1件の取引です。
type TradeResponse struct {
	ID        string  `json:"id"`
	Symbol    string  `json:"symbol"`
	Action    string  `json:"action"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
	Timestamp int64   `json:"timestamp"`
	Status    string  `json:"status"`
}

// NewTradeResponse はエンティティをレスポンスに変換します。
func NewTradeResponse(e entity.TradeRecord) TradeResponse {
	return TradeResponse{
		ID:        e.ID,
		Symbol:    e.Symbol,
		Action:    string(e.Side),
		Price:     e.Price,
		Quantity:  e.Quantity,
		Timestamp: e.Timestamp,
		Status:    string(e.Status),
	}
}

// NewTradeListResponse はエンティティの一覧をレスポンスに変換します。
func NewTradeListResponse(trades []entity.TradeRecord) []TradeResponse {
	out := make([]TradeResponse, 0, len(trades))
	for _, t := range trades {
		out = append(out, NewTradeResponse(t))
	}
	return out
}

// ToEntity はレスポンス形式の取引をエンティティに戻します。ポートフォリオ集計の入力に使います。
func (r TradeResponse) ToEntity() entity.TradeRecord {
	return entity.TradeRecord{
		ID:        r.ID,
		Symbol:    r.Symbol,
		Side:      entity.Side(r.Action),
		Price:     r.Price,
		Quantity:  r.Quantity,
		Timestamp: r.Timestamp,
		Status:    entity.Status(r.Status),
	}
}
