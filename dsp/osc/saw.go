package osc

import (
	"fmt"
	"math"
)

// Saw is a polyBLEP band-limited sawtooth. Frequency is supplied per sample
// so glides and vibrato need no extra state.
type Saw struct {
	sampleRate float64
	phase      float64
}

// NewSaw returns a sawtooth oscillator at phase 0.
func NewSaw(sampleRate float64) (*Saw, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("saw sample rate must be > 0: %f", sampleRate)
	}
	return &Saw{sampleRate: sampleRate}, nil
}

// Next returns one sample in [-1, 1] at freq Hz and advances the phase.
// Frequencies at or above Nyquist, and negative ones, produce silence.
func (s *Saw) Next(freq float64) float64 {
	dt := freq / s.sampleRate
	if !(dt > 0 && dt < 0.5) {
		return 0
	}
	out := 2*s.phase - 1 - polyBLEP(s.phase, dt)
	s.phase += dt
	if s.phase >= 1 {
		s.phase -= 1
	}
	return out
}

// Phase returns the normalized phase in [0, 1).
func (s *Saw) Phase() float64 { return s.phase }

// Reset returns the phase to 0.
func (s *Saw) Reset() { s.phase = 0 }

// polyBLEP is the two-sample polynomial residual of a unit step at the
// phase wrap. t is the phase and dt the increment, both normalized.
func polyBLEP(t, dt float64) float64 {
	switch {
	case t < dt:
		t /= dt
		return t + t - t*t - 1
	case t > 1-dt:
		t = (t - 1) / dt
		return t*t + t + t + 1
	}
	return 0
}
