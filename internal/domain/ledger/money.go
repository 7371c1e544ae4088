// Package ledger implements the transaction ledger engine: the pure state
// transition that validates and applies a sale, return, or payment against a
// store snapshot while preserving money and stock conservation invariants.
//
// Every function in this package is a pure function over explicit inputs.
// The package performs no I/O and holds no state; the caller owns the single
// mutable reference to the snapshot it passes in.
package ledger

import "math"

// ToleranceMinor is the comparison tolerance for money amounts, in minor
// units. Transaction totals are recomputed rather than trusted verbatim, so
// equality checks allow one minor unit of rounding drift (0.01 major).
const ToleranceMinor int64 = 1

// ToMinor converts a major-unit decimal amount to integer minor units
// (cents/paise), rounding half away from zero. The small epsilon compensates
// for binary representation of decimal inputs: 1.005 scales to 100.4999...,
// which plain rounding would truncate to 100 instead of 101. All internal
// balance and settlement arithmetic happens in minor units to eliminate
// cumulative floating-point error.
func ToMinor(amount float64) int64 {
	scaled := amount * 100
	if scaled >= 0 {
		return int64(math.Floor(scaled + 0.5 + 1e-9))
	}
	return int64(math.Ceil(scaled - 0.5 - 1e-9))
}

// FromMinor converts minor units back to a 2-decimal major-unit amount.
func FromMinor(minor int64) float64 {
	return math.Round(float64(minor)) / 100
}

// WithinTolerance reports whether two minor-unit amounts are equal within
// the money comparison tolerance.
func WithinTolerance(a, b int64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= ToleranceMinor
}
