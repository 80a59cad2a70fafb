// Package testutil provides deterministic randomness sources for tests.
package testutil

import "testing"

// FixedSource is a Source that always returns the same value and records
// how it was called. It makes damage computations fully reproducible.
type FixedSource struct {
	// Value is returned from every draw.
	Value float64
	// Draws counts the number of draws made.
	Draws int
	// LastLow and LastHigh record the interval of the most recent draw.
	LastLow  float64
	LastHigh float64
}

// NewFixedSource returns a FixedSource that always draws value.
func NewFixedSource(value float64) *FixedSource {
	return &FixedSource{Value: value}
}

// UniformFloat64 records the call and returns the fixed value.
func (s *FixedSource) UniformFloat64(low, high float64) float64 {
	s.Draws++
	s.LastLow = low
	s.LastHigh = high
	return s.Value
}

// ScriptedSource is a Source that returns a queued sequence of values and
// fails the test if drawn from more times than values were scripted.
type ScriptedSource struct {
	t      *testing.T
	values []float64
	next   int
}

// NewScriptedSource returns a ScriptedSource that yields values in order.
//
// Precondition: at least one value must be scripted.
func NewScriptedSource(t *testing.T, values ...float64) *ScriptedSource {
	t.Helper()
	if len(values) == 0 {
		t.Fatal("testutil: ScriptedSource requires at least one value")
	}
	return &ScriptedSource{t: t, values: values}
}

// UniformFloat64 returns the next scripted value.
func (s *ScriptedSource) UniformFloat64(low, high float64) float64 {
	s.t.Helper()
	if s.next >= len(s.values) {
		s.t.Fatalf("testutil: ScriptedSource exhausted after %d draws", len(s.values))
	}
	v := s.values[s.next]
	s.next++
	return v
}

// Draws returns the number of draws made so far.
func (s *ScriptedSource) Draws() int {
	return s.next
}
