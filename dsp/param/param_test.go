package param

import (
	"math"
	"testing"
)

func near(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestParamHoldsInitialValue(t *testing.T) {
	p := New(0.55)
	for _, at := range []float64{0, 1, 100} {
		if got := p.ValueAt(at); got != 0.55 {
			t.Fatalf("ValueAt(%g) = %g, want 0.55", at, got)
		}
	}
}

func TestParamLinearRamp(t *testing.T) {
	p := New(0)
	p.SetValueAtTime(0, 1)
	p.LinearRampToValueAtTime(1, 2)

	tests := []struct {
		at, want float64
	}{
		{0.5, 0},
		{1, 0},
		{1.25, 0.25},
		{1.5, 0.5},
		{2, 1},
		{3, 1},
	}
	for _, tt := range tests {
		if got := p.ValueAt(tt.at); !near(got, tt.want, 1e-12) {
			t.Errorf("ValueAt(%g) = %g, want %g", tt.at, got, tt.want)
		}
	}
}

func TestParamSetTargetApproachesExponentially(t *testing.T) {
	p := New(1)
	p.SetTargetAtTime(0, 0.5, 0.1)

	if got := p.ValueAt(0.5); !near(got, 1, 1e-12) {
		t.Fatalf("value at start = %g, want 1", got)
	}
	if got, want := p.ValueAt(0.6), math.Exp(-1); !near(got, want, 1e-12) {
		t.Fatalf("value after one time constant = %g, want %g", got, want)
	}
	if got := p.ValueAt(5); !near(got, 0, 1e-9) {
		t.Fatalf("value long after = %g, want ~0", got)
	}
}

func TestParamRampAfterTargetStartsFromEventValue(t *testing.T) {
	p := New(0)
	p.SetTargetAtTime(1, 0, 0.1)
	p.LinearRampToValueAtTime(0, 1)

	// the ramp interpolates from the target event's start value
	if got := p.ValueAt(0.5); !near(got, 0, 1e-12) {
		t.Fatalf("ValueAt(0.5) = %g, want 0", got)
	}
}

func TestParamCancelScheduledValues(t *testing.T) {
	p := New(0.2)
	p.SetValueAtTime(0.5, 1)
	p.LinearRampToValueAtTime(1, 2)
	p.SetValueAtTime(0.1, 3)

	p.CancelScheduledValues(1.5)

	if got := p.Pending(); got != 1 {
		t.Fatalf("Pending() = %d, want 1", got)
	}
	// ramp ending at 2 was dropped, so the value holds at 0.5
	if got := p.ValueAt(2.5); got != 0.5 {
		t.Fatalf("ValueAt(2.5) = %g, want 0.5", got)
	}
}

func TestParamEqualTimesKeepInsertionOrder(t *testing.T) {
	p := New(0)
	p.SetValueAtTime(0.3, 1)
	p.SetValueAtTime(0.7, 1)
	if got := p.ValueAt(1); got != 0.7 {
		t.Fatalf("ValueAt(1) = %g, want last inserted value 0.7", got)
	}
}

func TestParamAdvancePreservesCurve(t *testing.T) {
	build := func() *Param {
		p := New(0)
		p.SetValueAtTime(0.2, 0.1)
		p.SetTargetAtTime(0.9, 0.2, 0.05)
		p.LinearRampToValueAtTime(0.4, 0.6)
		p.SetValueAtTime(0, 0.8)
		return p
	}

	ref := build()
	adv := build()
	for step := 0; step <= 100; step++ {
		at := float64(step) * 0.01
		adv.Advance(at)
		if got, want := adv.ValueAt(at), ref.ValueAt(at); !near(got, want, 1e-12) {
			t.Fatalf("t=%g: advanced %g, reference %g", at, got, want)
		}
	}
	if adv.Pending() != 0 {
		t.Fatalf("Pending() = %d after advancing past all events", adv.Pending())
	}
}

func TestParamIgnoresNonFinite(t *testing.T) {
	p := New(1)
	p.SetValueAtTime(math.NaN(), 0)
	p.LinearRampToValueAtTime(math.Inf(1), 1)
	p.SetValue(math.NaN())
	if p.Pending() != 0 || p.ValueAt(2) != 1 {
		t.Fatalf("non-finite input changed the param: pending=%d value=%g", p.Pending(), p.ValueAt(2))
	}
}
