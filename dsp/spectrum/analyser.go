package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/window"
)

// Analyser defaults.
const (
	DefaultFFTSize   = 2048
	DefaultSmoothing = 0.85
	DefaultMinDB     = -100.0
	DefaultMaxDB     = -30.0
)

// Option configures an Analyser.
type Option func(*Analyser) error

// WithFFTSize sets the FFT length, a power of two in [32, 32768].
func WithFFTSize(n int) Option {
	return func(a *Analyser) error {
		if n < 32 || n > 32768 || n&(n-1) != 0 {
			return fmt.Errorf("analyser fft size must be a power of two in [32, 32768]: %d", n)
		}
		a.size = n
		return nil
	}
}

// WithSmoothing sets the smoothing time constant in [0, 1).
func WithSmoothing(tau float64) Option {
	return func(a *Analyser) error {
		if tau < 0 || tau >= 1 || math.IsNaN(tau) {
			return fmt.Errorf("analyser smoothing must be in [0, 1): %f", tau)
		}
		a.smoothing = tau
		return nil
	}
}

// WithDecibelRange sets the levels mapped to byte 0 and 255.
func WithDecibelRange(minDB, maxDB float64) Option {
	return func(a *Analyser) error {
		if !(minDB < maxDB) {
			return fmt.Errorf("analyser decibel range is empty: [%f, %f]", minDB, maxDB)
		}
		a.minDB, a.maxDB = minDB, maxDB
		return nil
	}
}

// Analyser observes a mono signal and reports its smoothed magnitude
// spectrum. Each call to a read method computes one analysis frame over
// the most recent FFT-size samples and updates the smoothing state.
//
// Analyser is not safe for concurrent use.
type Analyser struct {
	size      int
	smoothing float64
	minDB     float64
	maxDB     float64

	ring  []float64
	write int

	plan    *algofft.Plan[complex128]
	win     []float64
	ordered []float64
	frame   []float64
	in, out []complex128
	re, im  []float64
	mag     []float64
	smooth  []float64
}

// New returns an analyser with opts applied over the defaults.
func New(opts ...Option) (*Analyser, error) {
	a := &Analyser{
		size:      DefaultFFTSize,
		smoothing: DefaultSmoothing,
		minDB:     DefaultMinDB,
		maxDB:     DefaultMaxDB,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	plan, err := algofft.NewPlan64(a.size)
	if err != nil {
		return nil, fmt.Errorf("analyser fft plan: %w", err)
	}
	a.plan = plan

	a.ring = make([]float64, a.size)
	a.win = make([]float64, a.size)
	for i := range a.win {
		a.win[i] = 1
	}
	window.Blackman(a.win)
	a.ordered = make([]float64, a.size)
	a.frame = make([]float64, a.size)
	a.in = make([]complex128, a.size)
	a.out = make([]complex128, a.size)
	bins := a.size / 2
	a.re = make([]float64, bins)
	a.im = make([]float64, bins)
	a.mag = make([]float64, bins)
	a.smooth = make([]float64, bins)
	return a, nil
}

// FFTSize returns the analysis length.
func (a *Analyser) FFTSize() int { return a.size }

// BinCount returns the number of reported bins, half the FFT size.
func (a *Analyser) BinCount() int { return a.size / 2 }

// Write feeds samples into the ring buffer.
func (a *Analyser) Write(samples []float32) {
	for _, s := range samples {
		a.ring[a.write] = float64(s)
		a.write++
		if a.write == a.size {
			a.write = 0
		}
	}
}

// Reset clears the history and the smoothing state.
func (a *Analyser) Reset() {
	clear(a.ring)
	clear(a.smooth)
	a.write = 0
}

// FloatFrequencyData writes min(len(dst), BinCount) smoothed levels in dB.
// Silent bins report -Inf.
func (a *Analyser) FloatFrequencyData(dst []float64) {
	a.analyse()
	n := min(len(dst), len(a.smooth))
	for i := 0; i < n; i++ {
		dst[i] = 20 * math.Log10(a.smooth[i])
	}
}

// ByteFrequencyData writes min(len(dst), BinCount) smoothed levels mapped
// linearly from the decibel range to 0..255.
func (a *Analyser) ByteFrequencyData(dst []byte) {
	a.analyse()
	n := min(len(dst), len(a.smooth))
	scale := 255 / (a.maxDB - a.minDB)
	for i := 0; i < n; i++ {
		db := 20 * math.Log10(a.smooth[i])
		v := math.Floor((db - a.minDB) * scale)
		switch {
		case math.IsInf(db, -1) || v < 0:
			dst[i] = 0
		case v > 255:
			dst[i] = 255
		default:
			dst[i] = byte(v)
		}
	}
}

func (a *Analyser) analyse() {
	// oldest sample first
	n := copy(a.ordered, a.ring[a.write:])
	copy(a.ordered[n:], a.ring[:a.write])
	vecmath.MulBlock(a.frame, a.ordered, a.win)

	for i, x := range a.frame {
		a.in[i] = complex(x, 0)
	}
	if err := a.plan.Forward(a.out, a.in); err != nil {
		clear(a.smooth)
		return
	}

	for k := range a.re {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
	}
	vecmath.Magnitude(a.mag, a.re, a.im)

	norm := 1 / float64(a.size)
	tau := a.smoothing
	for k, m := range a.mag {
		v := tau*a.smooth[k] + (1-tau)*m*norm
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		a.smooth[k] = v
	}
}
