package damage

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/kharback/damagecalc/internal/config"
	"github.com/kharback/damagecalc/internal/game/rng"
)

// ErrInvalidInput is returned by strict-mode computations when a rating is
// outside its domain-conventional range. The default path never returns it;
// strict mode fails fast rather than clamping.
var ErrInvalidInput = errors.New("damage: invalid input")

// Validate checks the ratings against their domain-conventional ranges:
// atk finite and >= 0, def finite and in [0, DefenseCap].
//
// Postcondition: returns nil or an error wrapping ErrInvalidInput.
func Validate(atk AttackRating, def DefenseRating) error {
	a, d := float64(atk), float64(def)
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return fmt.Errorf("%w: attack rating %v is not finite", ErrInvalidInput, a)
	}
	if a < 0 {
		return fmt.Errorf("%w: attack rating %v is negative", ErrInvalidInput, a)
	}
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return fmt.Errorf("%w: defense rating %v is not finite", ErrInvalidInput, d)
	}
	if d < 0 || d > DefenseCap {
		return fmt.Errorf("%w: defense rating %v is outside [0, %g]", ErrInvalidInput, d, float64(DefenseCap))
	}
	return nil
}

// Calculator computes damage with configurable variance bounds, optional
// strict input validation, and debug-level logging of every computation.
//
// Immutable after construction; safe for concurrent use when its Source is.
type Calculator struct {
	varianceLow  float64
	varianceHigh float64
	strict       bool
	src          rng.Source
	logger       *zap.Logger
}

// NewCalculator creates a non-strict Calculator with the default variance
// interval [VarianceLow, VarianceHigh].
//
// Precondition: src and logger must be non-nil.
func NewCalculator(src rng.Source, logger *zap.Logger) *Calculator {
	return &Calculator{
		varianceLow:  VarianceLow,
		varianceHigh: VarianceHigh,
		strict:       false,
		src:          src,
		logger:       logger,
	}
}

// NewCalculatorFromConfig creates a Calculator from the given damage
// configuration.
//
// Precondition: cfg must have passed config validation; src and logger must
// be non-nil.
func NewCalculatorFromConfig(cfg config.DamageConfig, src rng.Source, logger *zap.Logger) *Calculator {
	return &Calculator{
		varianceLow:  cfg.VarianceLow,
		varianceHigh: cfg.VarianceHigh,
		strict:       cfg.Strict,
		src:          src,
		logger:       logger,
	}
}

// Compute runs the three-step pipeline with the calculator's variance bounds.
// In strict mode, out-of-range ratings fail fast with ErrInvalidInput.
//
// Postcondition: exactly one draw from the Source on the success path; no
// draw when strict validation rejects the inputs.
func (c *Calculator) Compute(atk AttackRating, def DefenseRating) (float64, error) {
	if c.strict {
		if err := Validate(atk, def); err != nil {
			return 0, err
		}
	}

	draw := c.src.UniformFloat64(c.varianceLow, c.varianceHigh)
	total := Scratch(Mitigate(Randomize(atk, draw), def))

	c.logger.Debug("damage computed",
		zap.Float64("attack", float64(atk)),
		zap.Float64("defense", float64(def)),
		zap.Float64("draw", draw),
		zap.Float64("total", total),
	)
	return total, nil
}

// Resolve computes damage for attacker vs target and returns the full audit
// breakdown, identified with a fresh ID.
//
// Postcondition: exactly one draw from the Source on the success path;
// breakdown logged at debug level.
func (c *Calculator) Resolve(attackerID, targetID string, atk AttackRating, def DefenseRating) (Breakdown, error) {
	if c.strict {
		if err := Validate(atk, def); err != nil {
			return Breakdown{}, err
		}
	}

	draw := c.src.UniformFloat64(c.varianceLow, c.varianceHigh)
	b := newBreakdown(atk, def, draw)
	b.AttackerID = attackerID
	b.TargetID = targetID

	c.logger.Debug("attack resolved",
		zap.String("id", b.ID.String()),
		zap.String("attacker", b.AttackerID),
		zap.String("target", b.TargetID),
		zap.Float64("draw", b.Draw),
		zap.Float64("total", b.Total),
	)
	return b, nil
}
