package damage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/kharback/damagecalc/internal/game/damage"
	"github.com/kharback/damagecalc/internal/testutil"
)

// TestCompute_WorkedExample verifies the reference computation:
// atk 100, def 128, draw 0.95 -> 95 randomized, 0.5 factor, 47.5 mitigated,
// 48.5 total.
func TestCompute_WorkedExample(t *testing.T) {
	src := testutil.NewFixedSource(0.95)
	got := damage.Compute(100, 128, src)
	assert.InDelta(t, 48.5, got, 1e-9)
}

// TestCompute_NoMitigation verifies that zero defense reduces the pipeline
// to randomize-then-floor: atk 50, def 0, draw 1.0 -> 51.
func TestCompute_NoMitigation(t *testing.T) {
	src := testutil.NewFixedSource(1.0)
	got := damage.Compute(50, 0, src)
	assert.Equal(t, 51.0, got)
}

// TestCompute_FullMitigation verifies that defense at the cap yields exactly
// the scratch floor, for any attack rating and any draw.
func TestCompute_FullMitigation(t *testing.T) {
	for _, atk := range []damage.AttackRating{0, 1, 50, 100, 9999} {
		for _, draw := range []float64{0.9, 0.95, 1.0} {
			src := testutil.NewFixedSource(draw)
			got := damage.Compute(atk, damage.DefenseCap, src)
			assert.Equal(t, 1.0, got,
				"full mitigation must yield exactly the scratch floor for atk=%v draw=%v", atk, draw)
		}
	}
}

// TestCompute_OneDrawPerInvocation verifies the side-effect contract: exactly
// one draw per call, fresh each time, never cached.
func TestCompute_OneDrawPerInvocation(t *testing.T) {
	fixed := testutil.NewFixedSource(0.95)
	damage.Compute(100, 0, fixed)
	require.Equal(t, 1, fixed.Draws)

	scripted := testutil.NewScriptedSource(t, 0.9, 1.0)
	first := damage.Compute(100, 0, scripted)
	second := damage.Compute(100, 0, scripted)
	assert.NotEqual(t, first, second, "each invocation must use a fresh draw")
	assert.Equal(t, 2, scripted.Draws())
}

// TestCompute_DrawInterval verifies the variance interval handed to the
// source is the closed [0.9, 1.0].
func TestCompute_DrawInterval(t *testing.T) {
	fixed := testutil.NewFixedSource(0.95)
	damage.Compute(100, 0, fixed)
	assert.Equal(t, damage.VarianceLow, fixed.LastLow)
	assert.Equal(t, damage.VarianceHigh, fixed.LastHigh)
}

// TestCompute_NegativeAttackPropagates verifies that negative attack ratings
// are not rejected and flow through the arithmetic.
func TestCompute_NegativeAttackPropagates(t *testing.T) {
	src := testutil.NewFixedSource(1.0)
	got := damage.Compute(-100, 0, src)
	assert.Equal(t, -99.0, got)
}

// TestCompute_DefenseAboveCapExtrapolates verifies that defense beyond the
// cap is not clamped: the multiplicative term goes negative.
func TestCompute_DefenseAboveCapExtrapolates(t *testing.T) {
	src := testutil.NewFixedSource(1.0)
	got := damage.Compute(100, 512, src)
	assert.Equal(t, -99.0, got, "def 512 must yield factor -1, not be clamped to the cap")
}

// TestCompute_FloorProperty verifies the core invariant: for in-range inputs
// the result is always >= 1.
func TestCompute_FloorProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		atk := rapid.Float64Range(0, 1e6).Draw(rt, "atk")
		def := rapid.Float64Range(0, damage.DefenseCap).Draw(rt, "def")
		draw := rapid.Float64Range(0.9, 1.0).Draw(rt, "draw")

		src := testutil.NewFixedSource(draw)
		got := damage.Compute(damage.AttackRating(atk), damage.DefenseRating(def), src)
		assert.GreaterOrEqual(rt, got, 1.0,
			"damage must never drop below the scratch floor")
	})
}

// TestCompute_ZeroDefenseProperty verifies that def 0 reduces the pipeline
// to atk*draw + floor exactly.
func TestCompute_ZeroDefenseProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		atk := rapid.Float64Range(0, 1e6).Draw(rt, "atk")
		draw := rapid.Float64Range(0.9, 1.0).Draw(rt, "draw")

		src := testutil.NewFixedSource(draw)
		got := damage.Compute(damage.AttackRating(atk), 0, src)
		assert.Equal(rt, atk*draw+damage.ScratchFloor, got)
	})
}

// TestCompute_MonotoneInDefense verifies that with attack and draw held
// fixed, damage is non-increasing as defense increases over [0, cap].
func TestCompute_MonotoneInDefense(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		atk := rapid.Float64Range(0, 1e6).Draw(rt, "atk")
		draw := rapid.Float64Range(0.9, 1.0).Draw(rt, "draw")
		defLo := rapid.Float64Range(0, damage.DefenseCap).Draw(rt, "defLo")
		defHi := rapid.Float64Range(defLo, damage.DefenseCap).Draw(rt, "defHi")

		lo := damage.Compute(damage.AttackRating(atk), damage.DefenseRating(defLo), testutil.NewFixedSource(draw))
		hi := damage.Compute(damage.AttackRating(atk), damage.DefenseRating(defHi), testutil.NewFixedSource(draw))
		assert.LessOrEqual(rt, hi, lo,
			"raising defense from %v to %v must not raise damage", defLo, defHi)
	})
}

// TestPipelineSteps verifies each pure transformation in isolation.
func TestPipelineSteps(t *testing.T) {
	assert.InDelta(t, 95.0, damage.Randomize(100, 0.95), 1e-9)
	assert.Equal(t, 47.5, damage.Mitigate(95, 128))
	assert.Equal(t, 0.0, damage.Mitigate(95, damage.DefenseCap))
	assert.Equal(t, 95.0, damage.Mitigate(95, 0))
	assert.Equal(t, 48.5, damage.Scratch(47.5))
}
