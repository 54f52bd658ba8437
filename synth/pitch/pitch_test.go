package pitch

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-otama/internal/testutil"
)

func TestFrequencyMonotonicDecreasing(t *testing.T) {
	for _, r := range []float64{0, 0.58, 1} {
		prev := math.Inf(1)
		for i := 0; i <= 1000; i++ {
			f := Frequency(float64(i)/1000, r, 0)
			if !(f < prev) {
				t.Fatalf("range %v: f(%d/1000) = %v not below %v", r, i, f, prev)
			}
			prev = f
		}
	}
}

func TestBoundsCentredOnCenter(t *testing.T) {
	tests := []struct {
		r    float64
		span float64
	}{
		{0, 2.8},
		{0.5, 3.7},
		{1, 4.6},
	}
	for _, tt := range tests {
		fMin, fMax := Bounds(tt.r)
		testutil.RequireNear(t, "span", math.Log2(fMax/fMin), tt.span, 1e-12)
		testutil.RequireNear(t, "centre", math.Sqrt(fMin*fMax), CenterHz, 1e-9)
	}
}

func TestFrequencyEnds(t *testing.T) {
	fMin, fMax := Bounds(0.58)
	testutil.RequireNear(t, "top", Frequency(0, 0.58, 0), fMax, 1e-9)
	testutil.RequireNear(t, "bottom", Frequency(1, 0.58, 0), fMin, 1e-9)
	testutil.RequireNear(t, "clamped high", Frequency(-3, 0.58, 0), fMax, 1e-9)
	testutil.RequireNear(t, "clamped low", Frequency(7, 0.58, 0), fMin, 1e-9)
}

func TestRoundTrip(t *testing.T) {
	for _, oct := range []int{-1, 0, 1} {
		fMin, fMax := Bounds(0.58)
		fMin *= math.Exp2(float64(oct))
		fMax *= math.Exp2(float64(oct))
		for i := 0; i <= 50; i++ {
			f := ExpMap(float64(i)/50, fMin, fMax)
			got := Frequency(Position(f, 0.58, oct), 0.58, oct)
			if math.Abs(got-f) > 1e-9*f {
				t.Fatalf("octave %d: round trip %v -> %v", oct, f, got)
			}
		}
	}
}

func TestOctaveDoublesExactly(t *testing.T) {
	for i := 0; i <= 20; i++ {
		pos := float64(i) / 20
		base := Frequency(pos, 0.4, 0)
		if up := Frequency(pos, 0.4, 1); up != 2*base {
			t.Fatalf("pos %v: octave up %v != 2 * %v", pos, up, base)
		}
		if down := Frequency(pos, 0.4, -1); down != base/2 {
			t.Fatalf("pos %v: octave down %v != %v / 2", pos, down, base)
		}
	}
}

func TestPositionClamps(t *testing.T) {
	if got := Position(1e6, 0.58, 0); got != 0 {
		t.Fatalf("Position(very high) = %v, want 0", got)
	}
	if got := Position(1, 0.58, 0); got != 1 {
		t.Fatalf("Position(very low) = %v, want 1", got)
	}
	if got := Position(0, 0.58, 0); got != 1 {
		t.Fatalf("Position(0) = %v, want 1", got)
	}
}

func TestMIDIToFreq(t *testing.T) {
	testutil.RequireNear(t, "A4", MIDIToFreq(69), 440, 1e-12)
	testutil.RequireNear(t, "A5", MIDIToFreq(81), 880, 1e-9)
	testutil.RequireNear(t, "C4", MIDIToFreq(60), 261.6255653005986, 1e-9)
}

func ExampleFrequency() {
	fmt.Printf("%.1f %.1f\n", Frequency(0.5, 0.5, 0), Frequency(0.5, 0.5, 1))
	// Output:
	// 330.0 660.0
}
