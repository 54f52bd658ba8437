package testutil

import (
	"math"
	"math/rand"
)

// Sine returns length samples of a sine at freqHz with the given amplitude,
// starting at phase 0.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Noise returns seeded uniform white noise in [-amplitude, amplitude).
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// RMS returns the root mean square of a PCM block. Empty blocks yield 0.
func RMS(pcm []float32) float64 {
	if len(pcm) == 0 {
		return 0
	}
	var sum float64
	for _, v := range pcm {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum / float64(len(pcm)))
}

// Peak returns the largest absolute sample of a PCM block.
func Peak(pcm []float32) float64 {
	var peak float64
	for _, v := range pcm {
		if a := math.Abs(float64(v)); a > peak {
			peak = a
		}
	}
	return peak
}

// ZeroCrossings counts sign changes from negative to non-negative.
func ZeroCrossings(x []float64) int {
	n := 0
	for i := 1; i < len(x); i++ {
		if x[i-1] < 0 && x[i] >= 0 {
			n++
		}
	}
	return n
}
