// =============================================================================
// DATANORM-AZ Processor - Rounding Policy
// =============================================================================
//
// The source format does not pin a rounding algorithm beyond a digit count,
// so the rounding rule is an explicit configuration of the resolver's output
// stage. One rule is applied uniformly to every decimal the resolver emits.
//
// =============================================================================

package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundingMode selects the tie-breaking behavior for the final digit.
type RoundingMode int

const (
	// RoundHalfUp rounds ties away from zero (commercial rounding).
	RoundHalfUp RoundingMode = iota

	// RoundHalfEven rounds ties to the even neighbor (banker's rounding).
	RoundHalfEven
)

// Rounding is the output-stage rounding rule of the resolver.
type Rounding struct {
	Digits int32
	Mode   RoundingMode
}

// DefaultRounding is two fractional digits with commercial rounding.
func DefaultRounding() Rounding {
	return Rounding{Digits: 2, Mode: RoundHalfUp}
}

// ParseRoundingMode maps a configuration string to a rounding mode.
func ParseRoundingMode(value string) (RoundingMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "half-up", "half_up", "halfup":
		return RoundHalfUp, nil
	case "half-even", "half_even", "halfeven", "bankers":
		return RoundHalfEven, nil
	default:
		return RoundHalfUp, fmt.Errorf("unknown rounding mode %q", value)
	}
}

func (r Rounding) apply(d decimal.Decimal) decimal.Decimal {
	if r.Mode == RoundHalfEven {
		return d.RoundBank(r.Digits)
	}
	return d.Round(r.Digits)
}

// applyPtr rounds through a nil-propagating pointer.
func (r Rounding) applyPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	rounded := r.apply(*d)
	return &rounded
}
