package engine

import (
	"math"

	"github.com/cwbudde/algo-otama/dsp/filter/design"
	"github.com/cwbudde/algo-otama/dsp/osc"
	"github.com/cwbudde/algo-otama/synth/voice"
)

// Render fills dst with mono PCM in [-1, 1] and advances the clock by
// len(dst) frames. Timers that fall due inside the block run between
// sub-blocks, on the calling goroutine, without the engine lock held.
func (e *Engine) Render(dst []float32) {
	for len(dst) > 0 {
		e.mu.Lock()
		n := len(dst)
		if next, ok := e.timers.peek(); ok {
			if until := next.at - e.frames; until > 0 && until < int64(n) {
				n = int(until)
			} else if until <= 0 {
				n = 0
			}
		}
		e.renderLocked(dst[:n])
		due := e.popDueLocked()
		e.mu.Unlock()

		for _, t := range due {
			if e.live(t) {
				t.fn()
			}
		}
		dst = dst[n:]
	}
}

func (e *Engine) renderLocked(dst []float32) {
	if !e.ready {
		clear(dst)
		e.frames += int64(len(dst))
		return
	}
	for start := 0; start < len(dst); {
		end := min(len(dst), start+controlBlock-int(e.frames%controlBlock))
		e.updateFiltersLocked(e.nowLocked())
		for i := start; i < end; i++ {
			dst[i] = float32(e.nextSampleLocked())
		}
		e.analyser.Write(dst[start:end])
		start = end
	}
}

// updateFiltersLocked refreshes filter coefficients at control rate and
// drops automation that lies in the past.
func (e *Engine) updateFiltersLocked(now float64) {
	sr := e.sampleRate
	e.lowpass.SetCoefficients(design.LowpassDB(design.ClampFrequency(e.cutoff.ValueAt(now), sr), e.lowpassQ.ValueAt(now), sr))
	for i := range e.formants {
		f := &e.formants[i]
		f.filter.SetCoefficients(design.Bandpass(design.ClampFrequency(f.freq.ValueAt(now), sr), f.q.ValueAt(now), sr))
	}

	for _, p := range e.automated {
		p.Advance(now)
	}
	kept := e.bursts[:0]
	for _, b := range e.bursts {
		if b.end > e.frames {
			kept = append(kept, b)
		}
	}
	clear(e.bursts[len(kept):])
	e.bursts = kept
}

func (e *Engine) nextSampleLocked() float64 {
	t := e.nowLocked()

	hz := e.freq.ValueAt(t) + e.lfo.Next(e.lfoRate.ValueAt(t))*e.lfoDepth.ValueAt(t)
	x := e.saw.Next(hz) * e.oscGain.ValueAt(t)
	x = e.lowpass.ProcessSample(x)

	var sum float64
	for i := range e.formants {
		f := &e.formants[i]
		sum += f.filter.ProcessSample(x) * f.gain.ValueAt(t)
	}
	for i := range e.bursts {
		b := &e.bursts[i]
		if e.frames >= b.start && e.frames < b.end {
			sum += b.filter.ProcessSample(b.noise.Next()) * b.gain
		}
	}

	y := x*e.dry.ValueAt(t) + sum*e.formantMix.ValueAt(t)
	y = e.shaper.ProcessSample(y)
	y = e.crusher.ProcessSample(y)
	y *= e.syllGate.ValueAt(t) * e.master.ValueAt(t)
	if math.IsNaN(y) {
		y = 0
	}

	e.frames++
	return clamp(y, -1, 1)
}

func (e *Engine) addBurstLocked(at float64, nb voice.NoiseBurst) {
	b := burst{
		start: int64(math.Ceil(at * e.sampleRate)),
		end:   int64(math.Ceil((at + nb.Duration) * e.sampleRate)),
		gain:  nb.Gain * e.voiceMix,
		noise: osc.NewNoisePlayer(e.noiseBuf),
	}
	b.filter.SetCoefficients(design.Bandpass(design.ClampFrequency(nb.Center, e.sampleRate), nb.Q, e.sampleRate))
	e.bursts = append(e.bursts, b)
}
