package shopsync

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice converts a platform price string ("450.00") into integer minor
// currency units (45000). Money stays integer cents everywhere in the system;
// conversion back to decimal happens only at presentation time. Missing or
// unparseable prices yield 0.
func ParsePrice(price string) int64 {
	s := strings.TrimSpace(price)
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
