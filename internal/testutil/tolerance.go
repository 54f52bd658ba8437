package testutil

import (
	"math"
	"testing"
)

// RequireNear fails t if got is farther than eps from want.
func RequireNear(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps || math.IsNaN(got) {
		t.Fatalf("%s = %v, want %v (eps %v)", name, got, want, eps)
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequirePCM fails t if any sample is non-finite or outside [-1, 1].
func RequirePCM(t *testing.T, pcm []float32) {
	t.Helper()
	for i, v := range pcm {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) || f < -1 || f > 1 {
			t.Fatalf("sample %d: %v is not valid PCM", i, v)
		}
	}
}

// RequireSilent fails t if any sample exceeds eps in magnitude.
func RequireSilent(t *testing.T, pcm []float32, eps float64) {
	t.Helper()
	for i, v := range pcm {
		if math.Abs(float64(v)) > eps {
			t.Fatalf("sample %d: %v, want silence (eps %v)", i, v, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}
