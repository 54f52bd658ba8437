package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-otama/internal/testutil"
)

func TestBitCrusherDefaultIsTransparent(t *testing.T) {
	bc, err := NewBitCrusher()
	if err != nil {
		t.Fatalf("NewBitCrusher: %v", err)
	}
	in := testutil.Noise(3, 0.9, 256)
	for i, x := range in {
		if got := bc.ProcessSample(x); got != x {
			t.Fatalf("sample %d: got %v, want %v", i, got, x)
		}
	}
}

func TestBitCrusherQuantizesAndHolds(t *testing.T) {
	bc, err := NewBitCrusher(WithCrushBits(2), WithCrushDownsample(2), WithCrushMix(1))
	if err != nil {
		t.Fatalf("NewBitCrusher: %v", err)
	}
	// 2 bits: grid of 0.5. Output refreshes every second sample.
	in := []float64{0.3, 0.9, 0.1, -0.8, -0.2}
	want := []float64{0, 1, 1, -1, -1}
	for i, x := range in {
		if got := bc.ProcessSample(x); math.Abs(got-want[i]) > 1e-12 {
			t.Fatalf("sample %d: got %v, want %v", i, got, want[i])
		}
	}
}

func TestBitCrusherValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  BitCrusherOption
	}{
		{"bits low", WithCrushBits(0.5)},
		{"bits high", WithCrushBits(25)},
		{"bits nan", WithCrushBits(math.NaN())},
		{"downsample zero", WithCrushDownsample(0)},
		{"downsample high", WithCrushDownsample(300)},
		{"mix negative", WithCrushMix(-0.1)},
		{"mix high", WithCrushMix(1.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewBitCrusher(tt.opt); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDriveCurveShape(t *testing.T) {
	for _, amount := range []float64{0, 0.25, 1} {
		c := DriveCurve(amount)
		if len(c) != DriveCurveSize {
			t.Fatalf("len = %d, want %d", len(c), DriveCurveSize)
		}
		testutil.RequireNear(t, "curve[0]", c[0], -1, 1e-12)
		testutil.RequireNear(t, "curve[last]", c[len(c)-1], 1, 1e-12)
		for i := 1; i < len(c); i++ {
			if c[i] < c[i-1] {
				t.Fatalf("amount %v: curve not monotonic at %d", amount, i)
			}
		}
		for i := range c {
			testutil.RequireNear(t, "odd symmetry", c[i], -c[len(c)-1-i], 1e-12)
		}
	}
}

func TestWaveshaperInterpolatesAndClamps(t *testing.T) {
	w := NewWaveshaper([]float64{-1, 0, 0.5})
	tests := []struct {
		in, want float64
	}{
		{-2, -1},
		{-1, -1},
		{-0.5, -0.5},
		{0, 0},
		{0.5, 0.25},
		{1, 0.5},
		{3, 0.5},
	}
	for _, tt := range tests {
		testutil.RequireNear(t, "shape", w.ProcessSample(tt.in), tt.want, 1e-12)
	}

	w.SetCurve(nil)
	testutil.RequireNear(t, "passthrough", w.ProcessSample(0.3), 0.3, 0)
}

func TestWaveshaperDriveSaturates(t *testing.T) {
	w := NewWaveshaper(DriveCurve(1))
	if got := w.ProcessSample(0.2); got < 0.99 {
		t.Fatalf("full drive at 0.2 = %v, want near 1", got)
	}
	w.SetCurve(DriveCurve(0))
	if got := w.ProcessSample(0.05); got < 0.2 || got > 0.25 {
		t.Fatalf("light drive at 0.05 = %v, want about tanh(0.25)", got)
	}
}
