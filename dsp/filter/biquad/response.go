package biquad

import "math"

// Magnitude returns |H| at freq Hz for the given sample rate.
func (c Coefficients) Magnitude(freq, sampleRate float64) float64 {
	w := 2 * math.Pi * freq / sampleRate
	s1, c1 := math.Sincos(w)
	s2, c2 := math.Sincos(2 * w)

	numRe := c.B0 + c.B1*c1 + c.B2*c2
	numIm := c.B1*s1 + c.B2*s2
	denRe := 1 + c.A1*c1 + c.A2*c2
	denIm := c.A1*s1 + c.A2*s2

	return math.Sqrt((numRe*numRe + numIm*numIm) / (denRe*denRe + denIm*denIm))
}

// MagnitudeDB is Magnitude in decibels.
func (c Coefficients) MagnitudeDB(freq, sampleRate float64) float64 {
	return 20 * math.Log10(c.Magnitude(freq, sampleRate))
}
