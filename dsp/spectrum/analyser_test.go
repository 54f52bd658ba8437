package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-otama/internal/testutil"
)

func toPCM(x []float64) []float32 {
	out := make([]float32, len(x))
	for i, v := range x {
		out[i] = float32(v)
	}
	return out
}

func TestAnalyserSilenceIsZero(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	dst := make([]byte, a.BinCount())
	a.ByteFrequencyData(dst)
	for i, v := range dst {
		if v != 0 {
			t.Fatalf("bin %d = %d, want 0", i, v)
		}
	}
}

func TestAnalyserFindsSinePeak(t *testing.T) {
	const sr = 48000.0
	a, err := New(WithSmoothing(0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// 1500 Hz lands exactly on bin 64 at 2048 points.
	a.Write(toPCM(testutil.Sine(1500, sr, 0.5, 4096)))

	db := make([]float64, a.BinCount())
	a.FloatFrequencyData(db)
	peak := 0
	for i := range db {
		if db[i] > db[peak] {
			peak = i
		}
	}
	if peak != 64 {
		t.Fatalf("peak bin = %d, want 64", peak)
	}

	bytes := make([]byte, a.BinCount())
	a.ByteFrequencyData(bytes)
	if bytes[64] == 0 {
		t.Fatal("peak bin byte is 0")
	}
	if bytes[900] != 0 {
		t.Fatalf("far bin byte = %d, want 0", bytes[900])
	}
}

func TestAnalyserSmoothingDecays(t *testing.T) {
	a, err := New(WithFFTSize(256))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.Write(toPCM(testutil.Sine(3000, 48000, 0.8, 256)))
	db := make([]float64, a.BinCount())
	a.FloatFrequencyData(db)
	first := db[16]

	a.Write(make([]float32, 256))
	a.FloatFrequencyData(db)
	// One silent frame scales the smoothed magnitude by tau.
	testutil.RequireNear(t, "decay", db[16]-first, 20*math.Log10(DefaultSmoothing), 1e-9)
}

func TestAnalyserOptionsValidate(t *testing.T) {
	bad := []Option{
		WithFFTSize(1000),
		WithFFTSize(16),
		WithSmoothing(1),
		WithSmoothing(-0.1),
		WithDecibelRange(-30, -100),
	}
	for i, opt := range bad {
		if _, err := New(opt); err == nil {
			t.Fatalf("option %d: expected error", i)
		}
	}
}

func TestAnalyserShortDestination(t *testing.T) {
	a, _ := New(WithFFTSize(64))
	dst := make([]byte, 4)
	a.ByteFrequencyData(dst)
	big := make([]float64, 100)
	a.FloatFrequencyData(big)
	if !math.IsInf(big[0], -1) || big[40] != 0 {
		t.Fatalf("unexpected writes: %v %v", big[0], big[40])
	}
}

func TestAnalyserPeakLevel(t *testing.T) {
	const (
		sr  = 48000.0
		amp = 0.5
	)
	a, err := New(WithSmoothing(0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.Write(toPCM(testutil.Sine(1500, sr, amp, a.FFTSize())))

	// A bin-centred sine of amplitude A reads A * mean(window) / 2.
	var sum float64
	for _, w := range a.win {
		sum += w
	}
	want := amp * sum / float64(a.FFTSize()) / 2

	db := make([]float64, a.BinCount())
	a.FloatFrequencyData(db)
	testutil.RequireNear(t, "peak", math.Pow(10, db[64]/20), want, want*0.01)

	// Bins far from the tone stay well below it.
	if db[600] > db[64]-60 {
		t.Fatalf("bin 600 = %.1f dB, peak %.1f dB", db[600], db[64])
	}
}

func TestAnalyserWriteWraps(t *testing.T) {
	a, err := New(WithFFTSize(64), WithSmoothing(0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Writing a tone after a longer stretch of silence must read the same
	// as writing the tone alone.
	b, _ := New(WithFFTSize(64), WithSmoothing(0))
	tone := toPCM(testutil.Sine(6000, 48000, 0.8, 64))
	a.Write(make([]float32, 100))
	a.Write(tone)
	b.Write(tone)

	got := make([]float64, a.BinCount())
	want := make([]float64, b.BinCount())
	a.FloatFrequencyData(got)
	b.FloatFrequencyData(want)
	for k := range got {
		if math.Abs(got[k]-want[k]) > 1e-9 && !(math.IsInf(got[k], -1) && math.IsInf(want[k], -1)) {
			t.Fatalf("bin %d = %v, want %v", k, got[k], want[k])
		}
	}
}
