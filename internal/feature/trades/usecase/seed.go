package usecase

import (
	"time"

	"cloudtrade/internal/feature/trades/domain/entity"
)

// SeedTrades は空の台帳に表示するサンプル取引を新しい順で返します。
// タイムスタンプは now を基準に計算されます。
func SeedTrades(now time.Time) []entity.TradeRecord {
	const day = 24 * time.Hour
	at := func(d time.Duration) int64 { return now.Add(-d).UnixMilli() }

	return []entity.TradeRecord{
		{ID: "tx_4", Symbol: "AAPL", Side: entity.SideSell, Price: 155.00, Quantity: 2, Timestamp: at(time.Hour), Status: entity.StatusSuccess},
		{ID: "tx_3", Symbol: "NVDA", Side: entity.SideBuy, Price: 420.00, Quantity: 2, Timestamp: at(2 * day), Status: entity.StatusSuccess},
		{ID: "tx_2", Symbol: "TSLA", Side: entity.SideBuy, Price: 210.50, Quantity: 5, Timestamp: at(3 * day), Status: entity.StatusSuccess},
		{ID: "tx_1", Symbol: "AAPL", Side: entity.SideBuy, Price: 145.20, Quantity: 10, Timestamp: at(5 * day), Status: entity.StatusSuccess},
	}
}
