package damage

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kharback/damagecalc/internal/game/rng"
)

// Breakdown holds the full audit trail for a single damage computation.
//
// Postcondition: Total == Scratch(Mitigated).
type Breakdown struct {
	// ID uniquely identifies this computation.
	ID uuid.UUID
	// AttackerID is the attacking combatant's ID, when known.
	AttackerID string
	// TargetID is the defending combatant's ID, when known.
	TargetID string
	// Attack is the input attack rating.
	Attack AttackRating
	// Defense is the input defense rating.
	Defense DefenseRating
	// Draw is the variance factor drawn for this computation.
	Draw float64
	// Randomized is the attack rating after variance.
	Randomized float64
	// Factor is the linear mitigation factor (DefenseCap - Defense) / DefenseCap.
	Factor float64
	// Mitigated is the damage after the defense factor, before the floor.
	Mitigated float64
	// Total is the final damage including the scratch floor.
	Total float64
}

// String returns a human-readable audit string in the format:
//
//	"atk 100 × 0.95 → 95 × 0.5 = 47.5 +1 = 48.5"
func (b Breakdown) String() string {
	return fmt.Sprintf("atk %g × %g → %g × %g = %g %+g = %g",
		float64(b.Attack), b.Draw, b.Randomized, b.Factor, b.Mitigated,
		float64(ScratchFloor), b.Total)
}

// ComputeBreakdown runs the same pipeline as Compute and records every
// intermediate value.
//
// Precondition: src must be non-nil.
// Postcondition: exactly one draw from src; returns a fully populated
// Breakdown with a fresh ID.
func ComputeBreakdown(atk AttackRating, def DefenseRating, src rng.Source) Breakdown {
	draw := src.UniformFloat64(VarianceLow, VarianceHigh)
	return newBreakdown(atk, def, draw)
}

// newBreakdown runs the pipeline on an already-drawn variance factor and
// records every intermediate value.
func newBreakdown(atk AttackRating, def DefenseRating, draw float64) Breakdown {
	randomized := Randomize(atk, draw)
	factor := (DefenseCap - float64(def)) / DefenseCap
	mitigated := Mitigate(randomized, def)

	return Breakdown{
		ID:         uuid.New(),
		Attack:     atk,
		Defense:    def,
		Draw:       draw,
		Randomized: randomized,
		Factor:     factor,
		Mitigated:  mitigated,
		Total:      Scratch(mitigated),
	}
}
