package entity

// Quote is a point-in-time price snapshot of a symbol.
type Quote struct {
	Current       float64 // Current price
	Change        float64 // Absolute change against the previous close
	PercentChange float64 // Change in percent of the previous close
	High          float64 // High of the day
	Low           float64 // Low of the day
	Open          float64 // Open of the day
	PreviousClose float64 // Previous close
}
