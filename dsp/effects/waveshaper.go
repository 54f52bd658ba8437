package effects

import "math"

// DriveCurveSize is the number of points in a drive curve.
const DriveCurveSize = 1024

// DriveCurve builds the soft-clip transfer curve for drive amount in [0, 1]:
// tanh(k*x)/tanh(k) with k = 5 + 60*amount, sampled over [-1, 1].
func DriveCurve(amount float64) []float64 {
	k := 5 + amount*60
	norm := math.Tanh(k)
	curve := make([]float64, DriveCurveSize)
	for i := range curve {
		x := float64(i)*2/float64(DriveCurveSize-1) - 1
		curve[i] = math.Tanh(k*x) / norm
	}
	return curve
}

// Waveshaper maps samples through a transfer curve spanning [-1, 1] with
// linear interpolation between points. Inputs beyond the span take the end
// values.
type Waveshaper struct {
	curve []float64
}

// NewWaveshaper returns a shaper for curve. A nil or single-point curve
// passes samples through.
func NewWaveshaper(curve []float64) *Waveshaper {
	return &Waveshaper{curve: curve}
}

// SetCurve replaces the transfer curve.
func (w *Waveshaper) SetCurve(curve []float64) {
	w.curve = curve
}

// ProcessSample shapes one sample.
func (w *Waveshaper) ProcessSample(x float64) float64 {
	n := len(w.curve)
	if n < 2 {
		return x
	}
	pos := (x + 1) * 0.5 * float64(n-1)
	if pos <= 0 {
		return w.curve[0]
	}
	if pos >= float64(n-1) {
		return w.curve[n-1]
	}
	i := int(pos)
	frac := pos - float64(i)
	return w.curve[i] + frac*(w.curve[i+1]-w.curve[i])
}
