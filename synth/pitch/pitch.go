// Package pitch maps normalized ribbon positions to frequencies and back.
//
// Position t runs from 0 at the top of the ribbon (highest pitch) to 1 at
// the bottom. The playable span is set by a range setting in [0, 1] that
// widens the span from 2.8 to 4.6 octaves around CenterHz.
package pitch

import "math"

// CenterHz is the geometric centre of the playable span.
const CenterHz = 330.0

const (
	minSpanOctaves = 2.8
	maxSpanOctaves = 4.6
)

// Lerp interpolates linearly from a to b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}

// ExpMap interpolates exponentially: t=0 gives fMax, t=1 gives fMin.
func ExpMap(t, fMin, fMax float64) float64 {
	return fMax * math.Pow(fMin/fMax, t)
}

// Bounds returns the lowest and highest base frequency for a range setting.
func Bounds(rangeSetting float64) (fMin, fMax float64) {
	half := Lerp(minSpanOctaves, maxSpanOctaves, rangeSetting) / 2
	scale := math.Exp2(half)
	return CenterHz / scale, CenterHz * scale
}

// Frequency returns the pitch at ribbon position t, shifted by octave.
func Frequency(t, rangeSetting float64, octave int) float64 {
	fMin, fMax := Bounds(rangeSetting)
	return ExpMap(Clamp(t, 0, 1), fMin, fMax) * math.Exp2(float64(octave))
}

// Position is the inverse of Frequency, clamped to [0, 1].
func Position(freq, rangeSetting float64, octave int) float64 {
	fMin, fMax := Bounds(rangeSetting)
	f := freq / math.Exp2(float64(octave))
	t := math.Log(f/fMax) / math.Log(fMin/fMax)
	if math.IsNaN(t) {
		return 0
	}
	return Clamp(t, 0, 1)
}

// MIDIToFreq converts a MIDI note number to Hz with A4 = 440 Hz.
func MIDIToFreq(m float64) float64 {
	return 440 * math.Exp2((m-69)/12)
}
