package usecase_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudtrade/internal/feature/portfolio/domain/entity"
	"cloudtrade/internal/feature/portfolio/usecase"
	tradeentity "cloudtrade/internal/feature/trades/domain/entity"
)

func buy(sym string, qty int64, price float64) tradeentity.TradeRecord {
	return tradeentity.TradeRecord{Symbol: sym, Side: tradeentity.SideBuy, Quantity: qty, Price: price, Status: tradeentity.StatusSuccess}
}

func sell(sym string, qty int64, price float64) tradeentity.TradeRecord {
	return tradeentity.TradeRecord{Symbol: sym, Side: tradeentity.SideSell, Quantity: qty, Price: price, Status: tradeentity.StatusSuccess}
}

func sampleLedger() []tradeentity.TradeRecord {
	return []tradeentity.TradeRecord{
		buy("AAPL", 10, 145.20),
		buy("TSLA", 5, 210.50),
		buy("NVDA", 2, 420.00),
		sell("AAPL", 2, 155.00),
	}
}

func TestAggregate_SampleLedger(t *testing.T) {
	t.Parallel()

	got := usecase.Aggregate(sampleLedger(), usecase.ConstantPrice(150))

	require.Len(t, got, 3)
	want := []struct {
		symbol string
		qty    int64
		value  float64
		alloc  float64
	}{
		{"AAPL", 8, 1200, 53.333},
		{"TSLA", 5, 750, 33.333},
		{"NVDA", 2, 300, 13.333},
	}
	sum := 0.0
	for i, w := range want {
		assert.Equal(t, w.symbol, got[i].Symbol)
		assert.Equal(t, w.qty, got[i].TotalQuantity)
		assert.InDelta(t, w.value, got[i].CurrentValue, 1e-9)
		assert.InDelta(t, w.alloc, got[i].Allocation, 0.001)
		assert.Zero(t, got[i].AveragePrice)
		sum += got[i].Allocation
	}
	assert.InDelta(t, 100, sum, 1e-6)
}

func TestAggregate_EdgeCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		trades []tradeentity.TradeRecord
		price  usecase.PriceLookup
		want   []entity.PortfolioItem
	}{
		{
			name:   "empty ledger",
			trades: nil,
			want:   []entity.PortfolioItem{},
		},
		{
			name:   "closed position is excluded",
			trades: []tradeentity.TradeRecord{buy("X", 5, 10), sell("X", 5, 12)},
			want:   []entity.PortfolioItem{},
		},
		{
			name:   "oversold position is excluded",
			trades: []tradeentity.TradeRecord{buy("X", 1, 10), sell("X", 3, 12), buy("Y", 1, 1)},
			want:   []entity.PortfolioItem{{Symbol: "Y", TotalQuantity: 1, CurrentValue: 150, Allocation: 100}},
		},
		{
			name:   "symbols are grouped case-insensitively",
			trades: []tradeentity.TradeRecord{buy("aapl", 1, 1), buy("AAPL", 2, 1)},
			want:   []entity.PortfolioItem{{Symbol: "AAPL", TotalQuantity: 3, CurrentValue: 450, Allocation: 100}},
		},
		{
			name:   "zero total gives zero allocation",
			trades: []tradeentity.TradeRecord{buy("A", 1, 1)},
			price:  usecase.ConstantPrice(0),
			want:   []entity.PortfolioItem{{Symbol: "A", TotalQuantity: 1, CurrentValue: 0, Allocation: 0}},
		},
		{
			name:   "NaN price falls back to the placeholder",
			trades: []tradeentity.TradeRecord{buy("A", 2, 1)},
			price:  usecase.ConstantPrice(math.NaN()),
			want:   []entity.PortfolioItem{{Symbol: "A", TotalQuantity: 2, CurrentValue: 300, Allocation: 100}},
		},
		{
			name:   "infinite and negative prices fall back to the placeholder",
			trades: []tradeentity.TradeRecord{buy("A", 1, 1), buy("B", 1, 1)},
			price: func(sym string) float64 {
				if sym == "A" {
					return math.Inf(1)
				}
				return -20
			},
			want: []entity.PortfolioItem{
				{Symbol: "A", TotalQuantity: 1, CurrentValue: 150, Allocation: 50},
				{Symbol: "B", TotalQuantity: 1, CurrentValue: 150, Allocation: 50},
			},
		},
		{
			name:   "per-symbol price lookup",
			trades: []tradeentity.TradeRecord{buy("A", 1, 1), buy("B", 3, 1)},
			price: func(sym string) float64 {
				if sym == "A" {
					return 300
				}
				return 100
			},
			want: []entity.PortfolioItem{
				{Symbol: "A", TotalQuantity: 1, CurrentValue: 300, Allocation: 50},
				{Symbol: "B", TotalQuantity: 3, CurrentValue: 300, Allocation: 50},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			price := tt.price
			if price == nil {
				price = usecase.ConstantPrice(150)
			}
			assert.Equal(t, tt.want, usecase.Aggregate(tt.trades, price))
		})
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	t.Parallel()

	trades := append(sampleLedger(), buy("MSFT", 4, 300), sell("TSLA", 1, 200), buy("AMZN", 8, 120))
	want := usecase.Aggregate(trades, usecase.ConstantPrice(150))

	rnd := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		shuffled := append([]tradeentity.TradeRecord(nil), trades...)
		rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, want, usecase.Aggregate(shuffled, usecase.ConstantPrice(150)))
	}
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	trades := sampleLedger()
	snapshot := append([]tradeentity.TradeRecord(nil), trades...)

	first := usecase.Aggregate(trades, usecase.ConstantPrice(150))
	second := usecase.Aggregate(trades, usecase.ConstantPrice(150))

	assert.Equal(t, snapshot, trades)
	assert.Equal(t, first, second)
}

func TestAggregate_NilLookupUsesPlaceholder(t *testing.T) {
	t.Parallel()

	got := usecase.Aggregate([]tradeentity.TradeRecord{buy("A", 2, 1)}, nil)

	require.Len(t, got, 1)
	assert.Equal(t, 2*usecase.DefaultPlaceholderPrice, got[0].CurrentValue)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := usecase.Summarize(sampleLedger(), usecase.ConstantPrice(150))

	assert.Len(t, s.Items, 3)
	assert.Equal(t, 2250.0, s.TotalValue)
}
