package design

import (
	"math"
	"testing"
)

const sr = 48000.0

func TestLowpassResponse(t *testing.T) {
	c := Lowpass(1000, defaultQ, sr)

	if got := c.MagnitudeDB(10, sr); math.Abs(got) > 0.01 {
		t.Fatalf("passband gain = %v dB, want ~0", got)
	}
	if got := c.MagnitudeDB(1000, sr); math.Abs(got+3.0103) > 0.05 {
		t.Fatalf("gain at cutoff = %v dB, want ~-3", got)
	}
	if got := c.MagnitudeDB(10000, sr); got > -25 {
		t.Fatalf("stopband gain = %v dB, want < -25", got)
	}
}

func TestBandpassPeakIsUnity(t *testing.T) {
	for _, q := range []float64{0.7, 5, 8, 12} {
		c := Bandpass(800, q, sr)
		if got := c.MagnitudeDB(800, sr); math.Abs(got) > 1e-6 {
			t.Errorf("q=%v: centre gain = %v dB, want 0", q, got)
		}
		if got := c.MagnitudeDB(80, sr); got > -10 {
			t.Errorf("q=%v: gain a decade below = %v dB, want attenuation", q, got)
		}
	}
}

func TestInvalidFrequencyYieldsZeroCoefficients(t *testing.T) {
	for _, f := range []float64{0, -5, sr / 2, math.NaN()} {
		c := Bandpass(f, 1, sr)
		if c.B0 != 0 || c.A1 != 0 {
			t.Errorf("Bandpass(%v) = %+v, want zero", f, c)
		}
	}
}

func TestClampFrequency(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{1, 10},
		{440, 440},
		{30000, sr * 0.49},
	}
	for _, tt := range tests {
		if got := ClampFrequency(tt.in, sr); got != tt.want {
			t.Errorf("ClampFrequency(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLowpassDB(t *testing.T) {
	if got, want := LowpassDB(2000, 0, sr), Lowpass(2000, 1, sr); got != want {
		t.Fatalf("LowpassDB(0 dB) = %+v, want %+v", got, want)
	}
	// +6 dB of resonance lifts the response at the cutoff by about 6 dB.
	c := LowpassDB(2000, 6, sr)
	if got := c.MagnitudeDB(2000, sr); math.Abs(got-6) > 0.1 {
		t.Fatalf("gain at cutoff = %v dB, want ~6", got)
	}
}

func TestDesignsAreStable(t *testing.T) {
	for _, f := range []float64{20, 300, 2500, 20000} {
		for _, q := range []float64{0.3, 1, 12} {
			if c := Lowpass(f, q, sr); !c.Stable() {
				t.Errorf("Lowpass(%v, %v) unstable: %+v", f, q, c)
			}
			if c := Bandpass(f, q, sr); !c.Stable() {
				t.Errorf("Bandpass(%v, %v) unstable: %+v", f, q, c)
			}
		}
	}
}
