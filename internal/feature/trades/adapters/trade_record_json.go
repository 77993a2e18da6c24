// Package adapters はtradesフィーチャーの台帳実装を提供します。
package adapters

import "cloudtrade/internal/feature/trades/domain/entity"

// tradeJSON はキーバリューストアに保存する取引のシリアライズ形式です。
type tradeJSON struct {
	ID        string  `json:"id"`
	Symbol    string  `json:"symbol"`
	Action    string  `json:"action"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
	Timestamp int64   `json:"timestamp"`
	Status    string  `json:"status"`
}

func toJSON(e entity.TradeRecord) tradeJSON {
	return tradeJSON{
		ID:        e.ID,
		Symbol:    e.Symbol,
		Action:    string(e.Side),
		Price:     e.Price,
		Quantity:  e.Quantity,
		Timestamp: e.Timestamp,
		Status:    string(e.Status),
	}
}

func (j tradeJSON) toEntity() entity.TradeRecord {
	return entity.TradeRecord{
		ID:        j.ID,
		Symbol:    j.Symbol,
		Side:      entity.Side(j.Action),
		Price:     j.Price,
		Quantity:  j.Quantity,
		Timestamp: j.Timestamp,
		Status:    entity.Status(j.Status),
	}
}
