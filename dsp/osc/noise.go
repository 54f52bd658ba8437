package osc

import "math/rand"

// NoiseBuffer returns n samples of uniform white noise in [-1, 1). A nil rng
// uses a fixed seed so renders are reproducible.
func NoiseBuffer(n int, rng *rand.Rand) []float64 {
	if n <= 0 {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = rng.Float64()*2 - 1
	}
	return buf
}

// NoisePlayer loops over a noise buffer.
type NoisePlayer struct {
	buf []float64
	pos int
}

// NewNoisePlayer returns a looping reader over buf.
func NewNoisePlayer(buf []float64) *NoisePlayer {
	return &NoisePlayer{buf: buf}
}

// Next returns the next noise sample, or 0 for an empty buffer.
func (p *NoisePlayer) Next() float64 {
	if len(p.buf) == 0 {
		return 0
	}
	v := p.buf[p.pos]
	p.pos++
	if p.pos == len(p.buf) {
		p.pos = 0
	}
	return v
}
