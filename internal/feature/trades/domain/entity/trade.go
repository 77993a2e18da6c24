// Package entity defines the domain models for the trades feature.
package entity

// Side is the direction of a trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Valid reports whether s is BUY or SELL.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Status is the execution status of a trade.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// TradeRecord is an executed trade. Records are immutable once appended to a ledger.
type TradeRecord struct {
	ID        string  // Unique across the ledger
	Symbol    string  // Upper-cased ticker symbol
	Side      Side    // BUY or SELL
	Price     float64 // Execution price
	Quantity  int64   // Number of shares
	Timestamp int64   // Execution time in milliseconds since the Unix epoch
	Status    Status  // Execution status
}

// Order is a trade submitted for execution. The ledger assigns its id and status.
type Order struct {
	Symbol    string
	Side      Side
	Price     float64
	Quantity  int64
	Timestamp int64 // Zero means "now"
}
