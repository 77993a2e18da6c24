package entity

import (
	"strings"
	"time"
)

// Range selects the window and resolution of a price history request.
type Range string

const (
	Range1D Range = "1D"
	Range1W Range = "1W"
	Range1M Range = "1M"
)

// DefaultRange is used when the requested range is empty or unknown.
const DefaultRange = Range1M

// Ranges lists the supported ranges from finest to coarsest resolution.
var Ranges = []Range{Range1D, Range1W, Range1M}

// ParseRange accepts "1D"/"D", "1W"/"W" and "1M"/"M" in any case.
// Anything else resolves to DefaultRange.
func ParseRange(s string) Range {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1D", "D":
		return Range1D
	case "1W", "W":
		return Range1W
	case "1M", "M":
		return Range1M
	default:
		return DefaultRange
	}
}

// Days is the length of the window in days.
func (r Range) Days() int {
	switch r {
	case Range1D:
		return 1
	case Range1W:
		return 7
	default:
		return 30
	}
}

// Window is the length of the window as a duration.
func (r Range) Window() time.Duration {
	return time.Duration(r.Days()) * 24 * time.Hour
}

// Resolution is the provider resolution code for the range. Finer resolutions use shorter windows.
func (r Range) Resolution() string {
	switch r {
	case Range1D:
		return "15"
	case Range1W:
		return "60"
	default:
		return "D"
	}
}

// SyntheticSamples is the number of daily samples the synthetic generator emits for the range.
func (r Range) SyntheticSamples() int {
	return r.Days() + 1
}
