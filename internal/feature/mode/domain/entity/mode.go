// Package entity defines the operating modes of the service.
package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects between synthetic data with local persistence (MOCK) and
// live quotes with remote persistence (REAL).
type Mode string

const (
	Mock Mode = "MOCK"
	Real Mode = "REAL"
)

// ErrUnknownMode is returned by ParseMode for anything other than MOCK or REAL.
var ErrUnknownMode = errors.New("unknown mode")

// ParseMode parses s case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case Mock:
		return Mock, nil
	case Real:
		return Real, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Other returns the opposite mode.
func (m Mode) Other() Mode {
	if m == Real {
		return Mock
	}
	return Real
}

// String returns the wire name of m.
func (m Mode) String() string { return string(m) }

// ByMode holds one capability per mode. Callers pick an implementation with For
// and never branch on the mode themselves.
type ByMode[T any] map[Mode]T

// For returns the entry for m, or the MOCK entry when m has none.
func (b ByMode[T]) For(m Mode) T {
	if v, ok := b[m]; ok {
		return v
	}
	return b[Mock]
}
