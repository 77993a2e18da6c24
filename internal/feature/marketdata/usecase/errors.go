package usecase

import "errors"

var (
	// ErrSourceUnavailable is returned when the remote provider cannot serve a request
	// (transport failure, HTTP error status, malformed payload or provider error status).
	ErrSourceUnavailable = errors.New("market data source unavailable")

	// ErrInvalidQuote is returned when a quote payload lacks a usable current price.
	// The service treats it as ErrSourceUnavailable.
	ErrInvalidQuote = errors.New("quote response has no valid current price")
)
