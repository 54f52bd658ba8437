package osc

import (
	"fmt"
	"math"
)

// Sine is a low-frequency sine oscillator used for vibrato.
type Sine struct {
	sampleRate float64
	phase      float64
}

// NewSine returns a sine oscillator at phase 0.
func NewSine(sampleRate float64) (*Sine, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", sampleRate)
	}
	return &Sine{sampleRate: sampleRate}, nil
}

// Next returns sin(2*pi*phase) and advances by freq Hz.
func (s *Sine) Next(freq float64) float64 {
	out := math.Sin(2 * math.Pi * s.phase)
	if freq > 0 {
		s.phase += freq / s.sampleRate
		s.phase -= math.Floor(s.phase)
	}
	return out
}

// Reset returns the phase to 0.
func (s *Sine) Reset() { s.phase = 0 }
