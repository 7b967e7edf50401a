// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAutomation_ValueAt(t *testing.T) {
	t.Parallel()

	a := NewAutomation(1)
	a.SetValueAt(1, 2)
	a.LinearRampTo(0.5, 3)
	a.SetValueAt(0.25, 4)

	tests := []struct {
		at   float64
		want float64
	}{
		{-1, 1},
		{0, 1},
		{2, 1},
		{2.5, 0.75},
		{3, 0.5},
		{3.5, 0.5},
		{4, 0.25},
		{100, 0.25},
	}

	for _, tt := range tests {
		if got := a.ValueAt(tt.at); !near(got, tt.want) {
			t.Errorf("ValueAt(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
}

func TestAutomation_RampWithoutStart(t *testing.T) {
	t.Parallel()

	a := NewAutomation(0)
	a.LinearRampTo(1, 2)

	if got := a.ValueAt(1); !near(got, 0.5) {
		t.Errorf("ValueAt(1) = %v, want 0.5", got)
	}
	if got := a.ValueAt(-1); got != 0 {
		t.Errorf("ValueAt(-1) = %v, want 0", got)
	}
}

func TestAutomation_Hold(t *testing.T) {
	t.Parallel()

	a := NewAutomation(1)
	a.SetValueAt(1, 0)
	a.LinearRampTo(0, 2)

	// Interrupt the ramp halfway and head back up.
	a.Hold(1)
	a.LinearRampTo(1, 1.5)

	if len(a.Events) != 3 {
		t.Fatalf("events = %+v, want the ramp to 0 cut", a.Events)
	}
	for _, tt := range []struct{ at, want float64 }{{0.5, 0.75}, {1, 0.5}, {1.25, 0.75}, {2, 1}} {
		if got := a.ValueAt(tt.at); !near(got, tt.want) {
			t.Errorf("ValueAt(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
}

func TestAutomation_OutOfOrderEvent(t *testing.T) {
	t.Parallel()

	a := NewAutomation(0)
	a.SetValueAt(1, 5)
	a.SetValueAt(2, 3)

	if a.Events[1].Time != 5 {
		t.Errorf("late event time = %v, want 5", a.Events[1].Time)
	}
}

func TestCursor_MatchesValueAt(t *testing.T) {
	t.Parallel()

	a := NewAutomation(0.8)
	a.Hold(1)
	a.LinearRampTo(0.16, 1.05)
	a.Hold(3)
	a.LinearRampTo(0.8, 3.5)

	c := a.Cursor()
	for i := range 441 {
		at := float64(i) / 100
		if got, want := c.Value(at), a.ValueAt(at); !near(got, want) {
			t.Fatalf("cursor at %v = %v, ValueAt = %v", at, got, want)
		}
	}
}

func BenchmarkCursor(b *testing.B) {
	a := BuildDuckingCurve(benchVoice(200), DefaultDucking()).Automation(0.8, 0)
	step := 1.0 / 44100

	for b.Loop() {
		c := a.Cursor()
		for i := range 44100 {
			c.Value(float64(i) * step)
		}
	}
}
