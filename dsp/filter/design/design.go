package design

import (
	"math"

	"github.com/cwbudde/algo-otama/dsp/filter/biquad"
)

const (
	defaultQ = 1 / math.Sqrt2

	minFreq      = 10
	maxFreqRatio = 0.49
)

// Lowpass designs an RBJ lowpass at freq (Hz) with quality factor q.
// Arguments outside the usable range give zero coefficients.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	p, ok := cookbook(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	b1 := 1 - p.cos
	return p.normalize(b1/2, b1, b1/2)
}

// LowpassDB is Lowpass with the resonance given in decibels, so 0 dB
// means q = 1. The mouth filter's resonance is set in this unit.
func LowpassDB(freq, resonanceDB, sampleRate float64) biquad.Coefficients {
	return Lowpass(freq, math.Pow(10, resonanceDB/20), sampleRate)
}

// Bandpass designs a bandpass biquad with 0 dB gain at the centre
// frequency. This is the form formant filters need: raising q narrows the
// band without boosting it.
func Bandpass(freq, q, sampleRate float64) biquad.Coefficients {
	p, ok := cookbook(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	return p.normalize(p.alpha, 0, -p.alpha)
}

// ClampFrequency keeps freq between 10 Hz and just below Nyquist.
func ClampFrequency(freq, sampleRate float64) float64 {
	return math.Max(minFreq, math.Min(freq, sampleRate*maxFreqRatio))
}

// terms shared by the cookbook formulas.
type terms struct {
	cos, alpha float64
}

func cookbook(freq, q, sampleRate float64) (terms, bool) {
	if !finite(sampleRate) || sampleRate <= 0 {
		return terms{}, false
	}
	if !finite(freq) || freq <= 0 || freq >= sampleRate/2 {
		return terms{}, false
	}
	if !finite(q) || q <= 0 {
		q = defaultQ
	}
	sin, cos := math.Sincos(2 * math.Pi * freq / sampleRate)
	return terms{cos: cos, alpha: sin / (2 * q)}, true
}

// normalize divides through by a0. Lowpass and bandpass share the
// denominator 1 + alpha, -2cos, 1 - alpha.
func (p terms) normalize(b0, b1, b2 float64) biquad.Coefficients {
	a0 := 1 + p.alpha
	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: -2 * p.cos / a0,
		A2: (1 - p.alpha) / a0,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
