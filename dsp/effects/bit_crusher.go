package effects

import (
	"fmt"
	"math"
)

const (
	minCrushBits       = 1.0
	maxCrushBits       = 24.0
	maxCrushDownsample = 256
)

// BitCrusherOption mutates bit crusher construction parameters.
type BitCrusherOption func(*BitCrusher) error

// WithCrushBits sets the quantization depth in bits, [1, 24]. Fractional
// depths are allowed so the knob sweeps smoothly.
func WithCrushBits(bits float64) BitCrusherOption {
	return func(bc *BitCrusher) error { return bc.SetBits(bits) }
}

// WithCrushDownsample sets the sample-and-hold factor, [1, 256].
func WithCrushDownsample(factor int) BitCrusherOption {
	return func(bc *BitCrusher) error { return bc.SetDownsample(factor) }
}

// WithCrushMix sets the dry/wet mix in [0, 1].
func WithCrushMix(mix float64) BitCrusherOption {
	return func(bc *BitCrusher) error { return bc.SetMix(mix) }
}

// BitCrusher is the lo-fi stage between the waveshaper and the syllable
// gate. A held sample is refreshed every Downsample input samples and
// snapped to a 2^(Bits-1) grid. The default configuration (24 bits, no
// downsampling, mix 0) is transparent.
type BitCrusher struct {
	bits       float64
	downsample int
	mix        float64

	levels  float64
	counter int
	held    float64
}

// NewBitCrusher returns a transparent crusher with opts applied.
func NewBitCrusher(opts ...BitCrusherOption) (*BitCrusher, error) {
	bc := &BitCrusher{bits: maxCrushBits, downsample: 1}
	bc.levels = math.Exp2(bc.bits - 1)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(bc); err != nil {
			return nil, err
		}
	}
	return bc, nil
}

// SetBits sets the quantization depth.
func (bc *BitCrusher) SetBits(bits float64) error {
	if bits < minCrushBits || bits > maxCrushBits || math.IsNaN(bits) {
		return fmt.Errorf("bit crusher depth must be in [%g, %g]: %f", minCrushBits, maxCrushBits, bits)
	}
	bc.bits = bits
	bc.levels = math.Exp2(bits - 1)
	return nil
}

// SetDownsample sets the sample-and-hold factor.
func (bc *BitCrusher) SetDownsample(factor int) error {
	if factor < 1 || factor > maxCrushDownsample {
		return fmt.Errorf("bit crusher downsample must be in [1, %d]: %d", maxCrushDownsample, factor)
	}
	bc.downsample = factor
	return nil
}

// SetMix sets the dry/wet mix.
func (bc *BitCrusher) SetMix(mix float64) error {
	if mix < 0 || mix > 1 || math.IsNaN(mix) {
		return fmt.Errorf("bit crusher mix must be in [0, 1]: %f", mix)
	}
	bc.mix = mix
	return nil
}

// Bits returns the quantization depth.
func (bc *BitCrusher) Bits() float64 { return bc.bits }

// Downsample returns the sample-and-hold factor.
func (bc *BitCrusher) Downsample() int { return bc.downsample }

// Mix returns the dry/wet mix.
func (bc *BitCrusher) Mix() float64 { return bc.mix }

// Reset clears the held sample.
func (bc *BitCrusher) Reset() {
	bc.counter = 0
	bc.held = 0
}

// ProcessSample crushes one sample.
func (bc *BitCrusher) ProcessSample(x float64) float64 {
	if bc.mix == 0 {
		return x
	}
	bc.counter++
	if bc.counter >= bc.downsample {
		bc.counter = 0
		bc.held = math.Round(x*bc.levels) / bc.levels
	}
	return x*(1-bc.mix) + bc.held*bc.mix
}
