package biquad

import "math"

// flushBelow is the delay-line magnitude treated as silence. Long decays
// of the mouth filter would otherwise drift into subnormal floats.
const flushBelow = 1e-20

// Coefficients is one second-order transfer function with a0 divided out:
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Stable reports whether both poles lie strictly inside the unit circle.
func (c Coefficients) Stable() bool {
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}

// Section filters a signal one sample at a time. The zero value has zero
// coefficients and outputs silence until SetCoefficients is called.
type Section struct {
	c      Coefficients
	z1, z2 float64
}

// NewSection returns a section with coefficients c and a silent delay line.
func NewSection(c Coefficients) *Section {
	return &Section{c: c}
}

// Coefficients returns the current transfer function.
func (s *Section) Coefficients() Coefficients { return s.c }

// SetCoefficients replaces the transfer function but keeps the delay line,
// so a cutoff or formant can move every sample without clicking.
func (s *Section) SetCoefficients(c Coefficients) {
	s.c = c
}

// ProcessSample runs one sample through the transposed direct form II
// structure.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.c.B0*x + s.z1
	s.z1 = flush(s.c.B1*x - s.c.A1*y + s.z2)
	s.z2 = flush(s.c.B2*x - s.c.A2*y)
	return y
}

// Reset silences the delay line.
func (s *Section) Reset() {
	s.z1, s.z2 = 0, 0
}

func flush(v float64) float64 {
	if math.Abs(v) < flushBelow {
		return 0
	}
	return v
}
