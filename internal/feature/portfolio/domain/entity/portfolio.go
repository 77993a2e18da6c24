// Package entity defines the holdings derived from a trade ledger.
package entity

// PortfolioItem is the net position in one symbol.
type PortfolioItem struct {
	Symbol        string
	TotalQuantity int64   // Net BUY minus SELL quantity
	AveragePrice  float64 // Cost basis is not tracked; always 0
	CurrentValue  float64 // TotalQuantity times the reference price
	Allocation    float64 // Percent of the portfolio's total value
}

// Summary is a portfolio snapshot.
type Summary struct {
	Items      []PortfolioItem
	TotalValue float64
}
