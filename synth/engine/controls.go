package engine

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-otama/dsp/effects"
	"github.com/cwbudde/algo-otama/synth/voice"
)

// Control time constants in seconds.
const (
	tcVolume   = 0.02
	tcVibrato  = 0.03
	tcGlide    = 0.012
	tcMouth    = 0.02
	tcMouthNow = 0.001
	tcMix      = 0.02
	tcSyllGate = 0.01
	tcAttack   = 0.012
	tcRelease  = 0.02

	gateLevel = 0.95
)

// SetVolume glides the master gain to v.
func (e *Engine) SetVolume(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings.Volume = v
	if !e.ready {
		return
	}
	e.master.SetTargetAtTime(v, e.nowLocked(), tcVolume)
}

// SetDrive rebuilds the waveshaper curve for drive amount d.
func (e *Engine) SetDrive(d float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings.Drive = d
	if !e.ready {
		return
	}
	e.shaper.SetCurve(effects.DriveCurve(d))
}

// SetVibrato glides the LFO depth and rate.
func (e *Engine) SetVibrato(depthHz, rateHz float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings.VibDepthHz = depthHz
	e.settings.VibRateHz = rateHz
	if !e.ready {
		return
	}
	now := e.nowLocked()
	e.lfoDepth.SetTargetAtTime(depthHz, now, tcVibrato)
	e.lfoRate.SetTargetAtTime(rateHz, now, tcVibrato)
}

// SetFrequency glides the oscillator to hz. The target is remembered
// before Init and becomes the starting pitch.
func (e *Engine) SetFrequency(hz float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setFrequencyLocked(hz)
}

func (e *Engine) setFrequencyLocked(hz float64) {
	e.targetFreq = hz
	if !e.ready {
		return
	}
	now := e.nowLocked()
	e.freq.CancelScheduledValues(now)
	e.freq.SetTargetAtTime(hz, now, tcGlide)
}

// SetMouthOpen sets the mouth opening m in [0, 1] and moves the wah filter.
// An immediate change uses a 1 ms glide instead of 20 ms.
func (e *Engine) SetMouthOpen(m float64, immediate bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings.MouthOpen = clamp(m, 0, 1)
	e.applyMouthLocked(immediate)
}

// SetWah sets the wah strength and re-applies the mouth.
func (e *Engine) SetWah(strength float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings.Wah = strength
	e.applyMouthLocked(false)
}

func (e *Engine) applyMouthLocked(immediate bool) {
	if !e.ready {
		return
	}
	m := e.settings.MouthOpen
	strength := e.settings.Wah
	cutoff := lerp(380, lerp(2000, 4200, strength), m)
	q := lerp(0.8, lerp(3.2, 6.0, strength), m)

	tc := tcMouth
	if immediate {
		tc = tcMouthNow
	}
	now := e.nowLocked()
	e.cutoff.SetTargetAtTime(cutoff, now, tc)
	e.lowpassQ.SetTargetAtTime(q, now, tc)
}

// SetSyllableStyle switches the formant voice. Unknown names select off.
func (e *Engine) SetSyllableStyle(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready {
		return
	}
	e.applyStyleLocked(name)
}

func (e *Engine) applyStyleLocked(name string) {
	e.style = voice.Style(name)
	dry := e.style.DryMix * (0.9 + 0.1*(1-e.voiceMix))
	wet := e.style.FormantMix * e.voiceMix
	now := e.nowLocked()
	e.dry.SetTargetAtTime(dry, now, tcMix)
	e.formantMix.SetTargetAtTime(wet, now, tcMix)
	e.syllGate.SetTargetAtTime(1, now, tcSyllGate)
}

// SetVoiceStylePreset scales the formant voice. It is recorded before Init.
func (e *Engine) SetVoiceStylePreset(p voice.Preset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.voiceMix = p.VoiceMix()
	if e.ready {
		e.applyStyleLocked(e.style.Name)
	}
}

// SetSyllableParams sets the pulse rate in Hz [3, 12], the gap between
// pulses in ms [0, 60] and the articulation [0, 1]. Values are clamped and
// recorded before Init.
func (e *Engine) SetSyllableParams(rateHz, gapMs, artic float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.syllRate = clamp(rateHz, 3, 12)
	e.syllGapMs = clamp(gapMs, 0, 60)
	e.syllArtic = clamp(artic, 0, 1)
}

// SyllableParams returns the clamped pulse rate, gap and articulation.
func (e *Engine) SyllableParams() (rateHz, gapMs, artic float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.syllRate, e.syllGapMs, e.syllArtic
}

// SetCrusher configures the bit crusher. A mix of 0 bypasses it.
func (e *Engine) SetCrusher(bits float64, downsample int, mix float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready {
		return ErrNotReady
	}
	if err := e.crusher.SetBits(bits); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err := e.crusher.SetDownsample(downsample); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err := e.crusher.SetMix(mix); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}

// Lo-fi crusher setting used by SetLoFi.
const (
	loFiBits       = 6
	loFiDownsample = 4
)

// SetLoFi blends in a 6-bit, quarter-rate crush at mix in [0, 1].
func (e *Engine) SetLoFi(mix float64) error {
	return e.SetCrusher(loFiBits, loFiDownsample, mix)
}

// Gate opens or closes the note. Repeating the current state does nothing.
// Closing also releases the formant voice and the syllable gate.
func (e *Engine) Gate(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gateLocked(on)
}

func (e *Engine) gateLocked(on bool) {
	if !e.ready {
		return
	}
	now := e.nowLocked()
	switch {
	case on && !e.on:
		e.on = true
		e.oscGain.CancelScheduledValues(now)
		e.oscGain.SetTargetAtTime(gateLevel, now, tcAttack)
		if e.style.Name == voice.StyleOff {
			// nothing pulses the syllable gate in this style
			e.syllGate.CancelScheduledValues(now)
			e.syllGate.SetTargetAtTime(1, now, tcSyllGate)
		}
	case !on && e.on:
		e.on = false
		e.oscGain.CancelScheduledValues(now)
		e.oscGain.SetTargetAtTime(0, now, tcRelease)
		e.releaseVoiceLocked(now)
	}
}

func (e *Engine) releaseVoiceLocked(now float64) {
	e.formantMix.CancelScheduledValues(now)
	e.formantMix.SetTargetAtTime(0, now, tcRelease)
	e.syllGate.CancelScheduledValues(now)
	e.syllGate.SetTargetAtTime(0, now, tcRelease)
}

// StopAll closes the gate, relaxes the mouth, returns the pitch to 220 Hz
// and silences the formant voice.
func (e *Engine) StopAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready {
		return
	}
	e.gateLocked(false)
	e.settings.MouthOpen = 0.35
	e.applyMouthLocked(false)
	e.setFrequencyLocked(defaultFrequency)
	e.releaseVoiceLocked(e.nowLocked())
}

// TriggerSyllable schedules a train of syllable pulses starting at when
// (engine seconds, clamped to now). vel in [0, 1] scales the pulse level,
// dur bounds the number of pulses together with count, and typ names the
// syllable type. It does nothing before Init or with the off style.
func (e *Engine) TriggerSyllable(when, vel, dur float64, count int, typ string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready || e.style.Name == voice.StyleOff {
		return
	}

	p := e.style
	t0 := math.Max(when, e.nowLocked())
	attack := lerp(0.012, 0.004, e.syllArtic)
	const decay = 0.08
	release := lerp(0.03, 0.01, e.syllArtic)
	gap := math.Max(0.015, e.syllGapMs/1000)
	period := 1 / math.Max(3, e.syllRate)
	maxByRate := max(1, int(math.Floor(dur/period))+1)
	pulses := max(1, min(max(count, 1), maxByRate))
	pulseAmp := lerp(0.55, 1.0, e.syllArtic) * (0.7 + vel*0.3)
	st := voice.Type(typ)
	vowel := voice.Vowel(st.Vowel)
	seg := math.Max(0.06, period)
	mix := p.FormantMix * e.voiceMix

	e.formantMix.CancelScheduledValues(t0)
	for i := range e.formants {
		e.formants[i].freq.CancelScheduledValues(t0)
		e.formants[i].q.CancelScheduledValues(t0)
	}
	e.syllGate.CancelScheduledValues(t0)

	onsetF1, onsetF2 := 420.0, 1200.0
	if st.Nasal() {
		onsetF1, onsetF2 = 280, 900
	}
	target := [3]float64{vowel.F1, vowel.F2, vowel.F3}
	onset := [3]float64{onsetF1, onsetF2, vowel.F3}

	for i := 0; i < pulses; i++ {
		t := t0 + float64(i)*seg
		hold := math.Max(0, seg-attack-release-gap)

		e.syllGate.SetValueAtTime(0, t)
		e.syllGate.LinearRampToValueAtTime(pulseAmp, t+attack)
		e.syllGate.SetValueAtTime(pulseAmp, t+attack+hold)
		e.syllGate.LinearRampToValueAtTime(0, t+attack+hold+release)

		e.formantMix.SetValueAtTime(0, t)
		e.formantMix.LinearRampToValueAtTime(mix*(0.6+vel*0.4), t+attack)
		e.formantMix.LinearRampToValueAtTime(mix*p.Sustain, t+attack+decay)
		e.formantMix.LinearRampToValueAtTime(0, t+attack+hold+release)

		for k := range e.formants {
			f := &e.formants[k]
			f.freq.SetValueAtTime(onset[k], t)
			f.freq.LinearRampToValueAtTime(target[k], t+p.Glide)
			f.q.SetValueAtTime(p.Q, t)
		}
		g3 := e.formants[2].gain
		g3.SetValueAtTime(0.35, t)
		if st.Nasal() {
			g3.SetValueAtTime(0.18, t)
			g3.LinearRampToValueAtTime(0.35, t+0.07)
		}

		if st.Noise != nil {
			e.addBurstLocked(t, *st.Noise)
		}
	}
}
