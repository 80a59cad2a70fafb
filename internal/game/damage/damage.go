// Package damage implements the combat damage pipeline: attack variance,
// linear defense mitigation, and the unconditional scratch floor.
package damage

import "github.com/kharback/damagecalc/internal/game/rng"

// AttackRating is a character's base offensive strength, the starting
// magnitude for a damage calculation. Non-negative by domain convention;
// negative values are not rejected and propagate arithmetically.
type AttackRating float64

// DefenseRating is a character's mitigation strength. Domain-conventional
// range is [0, DefenseCap]; values outside it are never clamped and
// extrapolate linearly through the mitigation factor.
type DefenseRating float64

const (
	// DefenseCap is the defense rating that reduces the multiplicative
	// damage term to exactly zero.
	DefenseCap = 256.0
	// ScratchFloor is the unconditional minimum added after mitigation so
	// an attack is never fully negated.
	ScratchFloor = 1.0
	// VarianceLow and VarianceHigh bound the default attack variance
	// interval: every attack deals between 90% and 100% of its base rating
	// before mitigation. The interval is closed at both ends.
	VarianceLow  = 0.9
	VarianceHigh = 1.0
)

// Randomize applies attack variance, scaling atk by a drawn factor.
func Randomize(atk AttackRating, draw float64) float64 {
	return float64(atk) * draw
}

// Mitigate applies the linear defense factor (DefenseCap - def) / DefenseCap.
// Zero defense leaves dmg untouched; DefenseCap zeroes it; out-of-range
// defense extrapolates with no clamping, so def > DefenseCap yields a
// negative term.
func Mitigate(dmg float64, def DefenseRating) float64 {
	return dmg * (DefenseCap - float64(def)) / DefenseCap
}

// Scratch adds the minimum-damage floor. The addition is unconditional,
// applied after all multiplicative steps, never gated by a check.
func Scratch(dmg float64) float64 {
	return dmg + ScratchFloor
}

// Compute runs the three-step pipeline for one attack event using the
// default variance interval: randomize, mitigate, scratch.
//
// Precondition: src must be non-nil.
// Postcondition: exactly one draw from src; result >= 1 for atk >= 0 and
// def <= DefenseCap.
func Compute(atk AttackRating, def DefenseRating, src rng.Source) float64 {
	draw := src.UniformFloat64(VarianceLow, VarianceHigh)
	return Scratch(Mitigate(Randomize(atk, draw), def))
}
