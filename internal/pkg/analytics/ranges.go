package analytics

import (
	"errors"
	"time"
)

// ErrInvalidRange is returned for a range value outside an endpoint's
// enumerated set.
var ErrInvalidRange = errors.New("invalid range")

// Range is a rolling window over order history.
type Range string

const (
	Range1D  Range = "1d"
	Range7D  Range = "7d"
	Range30D Range = "30d"
	Range90D Range = "90d"
)

// SummaryRanges is the full window set accepted by the KPI summary and
// artisan summary endpoints.
var SummaryRanges = []Range{Range1D, Range7D, Range30D, Range90D}

// TimeseriesRanges is the narrower set accepted by the timeseries endpoint.
var TimeseriesRanges = []Range{Range30D, Range90D}

// ParseRange validates a query value against an endpoint's allowed windows.
// An empty value falls back to def.
func ParseRange(value string, def Range, allowed []Range) (Range, error) {
	if value == "" {
		return def, nil
	}
	for _, r := range allowed {
		if Range(value) == r {
			return r, nil
		}
	}
	return "", ErrInvalidRange
}

func (r Range) days() int {
	switch r {
	case Range1D:
		return 1
	case Range7D:
		return 7
	case Range30D:
		return 30
	default:
		return 90
	}
}

// Start resolves the window's lower bound: local midnight, N days before now.
func (r Range) Start(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -r.days())
}
