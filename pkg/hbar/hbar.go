// Package hbar implements the network's fixed-point currency amount. Values
// are stored canonically as an integer count of tinybars (1 hbar =
// 100,000,000 tinybars) so arithmetic and comparisons are exact. Construction
// from fractional magnitudes goes through shopspring/decimal and rejects
// anything that does not land on a whole tinybar.
package hbar

import (
	"fmt"
	"math"
	"regexp"

	"github.com/shopspring/decimal"
)

// Hbar is an immutable currency amount held as whole tinybars. The zero value
// is zero hbar. Hbar is a comparable value type: it can be used directly as a
// map key, and == / != compare by amount.
type Hbar struct {
	tinybars int64
}

// Boundary constants reflecting the network's representable range of
// ±50,000,000,000 hbar.
var (
	Zero = Hbar{0}
	Max  = Hbar{50_000_000_000 * tinybarsPerHbar}
	Min  = Hbar{-50_000_000_000 * tinybarsPerHbar}
)

const tinybarsPerHbar = 100_000_000

// New returns an amount of whole hbars.
func New(hbars int64) Hbar {
	return Hbar{hbars * tinybarsPerHbar}
}

// FromTinybars returns an amount directly in tinybars, the atomic unit.
func FromTinybars(tinybars int64) Hbar {
	return Hbar{tinybars}
}

// FromFloat converts an hbar magnitude given as a float. Non-finite inputs
// and amounts finer than one tinybar are rejected.
func FromFloat(hbars float64) (Hbar, error) {
	if math.IsNaN(hbars) || math.IsInf(hbars, 0) {
		return Hbar{}, fmt.Errorf("hbar amount must be finite, got %v", hbars)
	}
	return Of(decimal.NewFromFloat(hbars), UnitHbar)
}

// Of constructs an amount from a decimal magnitude in the given unit.
// The result must be a whole number of tinybars; a fractional remainder is
// an error. In particular any fractional amount in UnitTinybar is rejected,
// since tinybar is already the atomic unit.
func Of(amount decimal.Decimal, unit Unit) (Hbar, error) {
	tb := amount.Mul(decimal.NewFromInt(unit.tinybars))
	if !tb.IsInteger() {
		if unit == UnitTinybar {
			return Hbar{}, fmt.Errorf("fractional tinybar value not allowed: %s", amount)
		}
		return Hbar{}, fmt.Errorf("amount %s %s is not a whole number of tinybars", amount, unit.symbol)
	}
	return Hbar{tb.IntPart()}, nil
}

// hbarPattern accepts an optional sign, a decimal magnitude without leading
// or trailing garbage, and an optional unit symbol separated by one space.
var hbarPattern = regexp.MustCompile(`^([+-]?\d+(?:\.\d+)?)(?: (tℏ|μℏ|mℏ|ℏ|kℏ|Mℏ|Gℏ))?$`)

// FromString parses amounts like "1", "+3", "-1.5 mℏ" or "2 ℏ". A bare
// magnitude is interpreted as hbars. Whitespace variants, dangling decimal
// points and unknown unit symbols are rejected with an error naming the
// offending string.
func FromString(s string) (Hbar, error) {
	m := hbarPattern.FindStringSubmatch(s)
	if m == nil {
		return Hbar{}, fmt.Errorf("invalid hbar format: %q", s)
	}
	amount, err := decimal.NewFromString(m[1])
	if err != nil {
		return Hbar{}, fmt.Errorf("invalid hbar format: %q", s)
	}
	unit := UnitHbar
	if m[2] != "" {
		u, ok := unitBySymbol[m[2]]
		if !ok {
			return Hbar{}, fmt.Errorf("invalid hbar format: %q", s)
		}
		unit = u
	}
	out, err := Of(amount, unit)
	if err != nil {
		return Hbar{}, fmt.Errorf("invalid hbar format: %q: %v", s, err)
	}
	return out, nil
}

// FromMicrobars constructs an amount in microbars (100 tinybars each).
func FromMicrobars(amount decimal.Decimal) (Hbar, error) { return Of(amount, UnitMicrobar) }

// FromMillibars constructs an amount in millibars (100,000 tinybars each).
func FromMillibars(amount decimal.Decimal) (Hbar, error) { return Of(amount, UnitMillibar) }

// FromHbars constructs an amount in hbars.
func FromHbars(amount decimal.Decimal) (Hbar, error) { return Of(amount, UnitHbar) }

// FromKilobars constructs an amount in kilobars (1,000 hbars each).
func FromKilobars(amount decimal.Decimal) (Hbar, error) { return Of(amount, UnitKilobar) }

// FromMegabars constructs an amount in megabars (1,000,000 hbars each).
func FromMegabars(amount decimal.Decimal) (Hbar, error) { return Of(amount, UnitMegabar) }

// FromGigabars constructs an amount in gigabars (1,000,000,000 hbars each).
func FromGigabars(amount decimal.Decimal) (Hbar, error) { return Of(amount, UnitGigabar) }

// ToTinybars returns the amount as whole tinybars.
func (h Hbar) ToTinybars() int64 {
	return h.tinybars
}

// ToHbars returns the amount expressed in hbars.
func (h Hbar) ToHbars() decimal.Decimal {
	return h.To(UnitHbar)
}

// To converts the amount into the given unit without mutating the receiver.
func (h Hbar) To(unit Unit) decimal.Decimal {
	return decimal.NewFromInt(h.tinybars).Div(decimal.NewFromInt(unit.tinybars))
}

// Negated returns a new amount with the sign flipped. Negating twice yields
// the original value.
func (h Hbar) Negated() Hbar {
	return Hbar{-h.tinybars}
}

// IsNegative reports whether the amount is below zero.
func (h Hbar) IsNegative() bool {
	return h.tinybars < 0
}

// Cmp returns -1, 0 or +1 depending on whether h is less than, equal to or
// greater than other.
func (h Hbar) Cmp(other Hbar) int {
	switch {
	case h.tinybars < other.tinybars:
		return -1
	case h.tinybars > other.tinybars:
		return 1
	}
	return 0
}

// String renders the amount in hbars with a fixed 8 decimal places and the
// ℏ suffix, preserving the sign for negative values.
func (h Hbar) String() string {
	return h.To(UnitHbar).StringFixed(8) + " ℏ"
}
