package usecase

import "errors"

var (
	// ErrPersistence is returned when the ledger's backing store is unavailable or its state is unreadable.
	ErrPersistence = errors.New("ledger persistence failure")

	// ErrOrderRejected is returned when a submitted order has an invalid symbol, side, price or quantity.
	ErrOrderRejected = errors.New("order rejected")

	// ErrDuplicateTrade is returned when a trade id already exists in the ledger.
	ErrDuplicateTrade = errors.New("trade id already exists")
)
