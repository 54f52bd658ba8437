package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/cwbudde/algo-otama/dsp/effects"
	"github.com/cwbudde/algo-otama/dsp/filter/biquad"
	"github.com/cwbudde/algo-otama/dsp/osc"
	"github.com/cwbudde/algo-otama/dsp/param"
	"github.com/cwbudde/algo-otama/dsp/spectrum"
	"github.com/cwbudde/algo-otama/synth/voice"
)

// ErrNotReady is returned by calls that need the audio graph before Init.
var ErrNotReady = errors.New("engine: audio graph not initialized")

const (
	defaultFrequency = 220.0
	controlBlock     = 32
	filterQDefault   = 0.9
)

var (
	formantInitFreq = [3]float64{800, 1400, 2900}
	formantInitGain = [3]float64{0.6, 0.5, 0.35}
)

// Settings are the player-facing controls read when the graph is built.
type Settings struct {
	Volume     float64 // master gain, [0, 1]
	VibDepthHz float64 // vibrato depth in Hz
	VibRateHz  float64 // vibrato rate in Hz
	Drive      float64 // waveshaper drive, [0, 1]
	Wah        float64 // mouth filter strength, [0, 1]
	MouthOpen  float64 // [0, 1]
}

// DefaultSettings returns the stock instrument settings.
func DefaultSettings() Settings {
	return Settings{
		Volume:     0.55,
		VibDepthHz: 7.0,
		VibRateHz:  5.6,
		Drive:      0.25,
		Wah:        0.85,
		MouthOpen:  0.55,
	}
}

// Option configures an Engine.
type Option func(*Engine) error

// WithSettings sets the initial controls.
func WithSettings(s Settings) Option {
	return func(e *Engine) error {
		e.settings = s
		return nil
	}
}

// WithRand sets the source for the consonant noise buffer.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) error {
		if rng == nil {
			return errors.New("engine: nil random source")
		}
		e.rng = rng
		return nil
	}
}

type formant struct {
	filter biquad.Section
	freq   *param.Param
	q      *param.Param
	gain   *param.Param
}

type burst struct {
	start, end int64
	filter     biquad.Section
	gain       float64
	noise      *osc.NoisePlayer
}

// Engine is the monophonic voice. All methods are safe for concurrent use;
// audio is pulled from one goroutine while controls arrive from others.
type Engine struct {
	mu sync.Mutex

	sampleRate float64
	frames     int64
	rng        *rand.Rand

	settings   Settings
	ready      bool
	on         bool
	targetFreq float64

	style     voice.SyllableStyle
	voiceMix  float64
	syllRate  float64
	syllGapMs float64
	syllArtic float64

	saw      *osc.Saw
	lfo      *osc.Sine
	freq     *param.Param
	lfoDepth *param.Param
	lfoRate  *param.Param
	oscGain  *param.Param

	lowpass  biquad.Section
	cutoff   *param.Param
	lowpassQ *param.Param

	dry        *param.Param
	formants   [3]formant
	formantMix *param.Param
	noiseBuf   []float64
	bursts     []burst

	shaper   *effects.Waveshaper
	crusher  *effects.BitCrusher
	syllGate *param.Param
	master   *param.Param
	analyser *spectrum.Analyser

	automated []*param.Param

	timers timerQueue
}

// New returns an engine at sampleRate. Nothing is built until Init.
func New(sampleRate float64, opts ...Option) (*Engine, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("engine: sample rate must be > 0: %f", sampleRate)
	}
	e := &Engine{
		sampleRate: sampleRate,
		settings:   DefaultSettings(),
		targetFreq: defaultFrequency,
		style:      voice.Style(voice.StyleOff),
		voiceMix:   voice.DefaultPreset.VoiceMix(),
		syllRate:   7.5,
		syllGapMs:  25,
		syllArtic:  0.75,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(1))
	}
	return e, nil
}

// Init builds the audio graph from the current settings. Calling it again
// is a no-op.
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ready {
		return nil
	}

	saw, err := osc.NewSaw(e.sampleRate)
	if err != nil {
		return fmt.Errorf("engine init: %w", err)
	}
	lfo, err := osc.NewSine(e.sampleRate)
	if err != nil {
		return fmt.Errorf("engine init: %w", err)
	}
	crusher, err := effects.NewBitCrusher()
	if err != nil {
		return fmt.Errorf("engine init: %w", err)
	}
	analyser, err := spectrum.New()
	if err != nil {
		return fmt.Errorf("engine init: %w", err)
	}

	s := e.settings
	e.saw = saw
	e.lfo = lfo
	e.freq = param.New(e.targetFreq)
	e.lfoRate = param.New(s.VibRateHz)
	e.lfoDepth = param.New(s.VibDepthHz)
	e.oscGain = param.New(0)

	e.cutoff = param.New(350)
	e.lowpassQ = param.New(filterQDefault)
	e.dry = param.New(1)
	for i := range e.formants {
		e.formants[i] = formant{
			freq: param.New(formantInitFreq[i]),
			q:    param.New(8),
			gain: param.New(formantInitGain[i]),
		}
	}
	e.formantMix = param.New(0)
	e.noiseBuf = osc.NoiseBuffer(int(e.sampleRate), e.rng)

	e.shaper = effects.NewWaveshaper(effects.DriveCurve(s.Drive))
	e.crusher = crusher
	e.syllGate = param.New(1)
	e.master = param.New(s.Volume)
	e.analyser = analyser

	e.automated = e.params()

	e.ready = true
	e.applyMouthLocked(true)
	e.applyStyleLocked(voice.StyleOff)
	e.updateFiltersLocked(e.nowLocked())
	return nil
}

// Ready reports whether the graph has been built.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

// SampleRate returns the rendering rate in Hz.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// CurrentTime returns the engine clock in seconds.
func (e *Engine) CurrentTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nowLocked()
}

// Settings returns the recorded controls.
func (e *Engine) Settings() Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// IsOn reports whether the note gate is open.
func (e *Engine) IsOn() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.on
}

// SyllableStyle returns the active syllable style name.
func (e *Engine) SyllableStyle() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.style.Name
}

// TargetFrequency returns the last requested pitch in Hz.
func (e *Engine) TargetFrequency() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.targetFreq
}

// MouthOpen returns the recorded mouth opening.
func (e *Engine) MouthOpen() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings.MouthOpen
}

// ByteFrequencyData fills dst with the analyser's byte spectrum.
func (e *Engine) ByteFrequencyData(dst []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready {
		return ErrNotReady
	}
	e.analyser.ByteFrequencyData(dst)
	return nil
}

// BinCount returns the number of analyser bins.
func (e *Engine) BinCount() int {
	return spectrum.DefaultFFTSize / 2
}

func (e *Engine) params() []*param.Param {
	return []*param.Param{
		e.freq, e.lfoDepth, e.lfoRate, e.oscGain,
		e.cutoff, e.lowpassQ, e.dry, e.formantMix,
		e.formants[0].freq, e.formants[0].q, e.formants[0].gain,
		e.formants[1].freq, e.formants[1].q, e.formants[1].gain,
		e.formants[2].freq, e.formants[2].q, e.formants[2].gain,
		e.syllGate, e.master,
	}
}

func (e *Engine) nowLocked() float64 {
	return float64(e.frames) / e.sampleRate
}

func clamp(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
