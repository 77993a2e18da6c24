// Package entity defines the domain models for the marketdata feature.
package entity

// Candle represents one OHLCV sample of a price history.
type Candle struct {
	Time   int64   // Sample timestamp in milliseconds since the Unix epoch
	Open   float64 // Opening price
	High   float64 // Highest price during the sample period
	Low    float64 // Lowest price during the sample period
	Close  float64 // Closing price
	Volume int64   // Traded volume
}
