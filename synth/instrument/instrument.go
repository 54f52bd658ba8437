package instrument

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/cwbudde/algo-otama/prefs"
	"github.com/cwbudde/algo-otama/song"
	"github.com/cwbudde/algo-otama/synth/engine"
	"github.com/cwbudde/algo-otama/synth/pitch"
	"github.com/cwbudde/algo-otama/synth/player"
	"github.com/cwbudde/algo-otama/synth/voice"
)

const (
	headDragPx       = 220.0
	ribbonSyllDur    = 0.25
	ribbonMouthLow   = 0.25
	ribbonMouthHigh  = 0.9
	noPointer        = -1
	idleReadout      = "—"
	readoutFormat    = "freq: %.1f Hz   mouth: %.2f   oct: %d"
	defaultSyllCount = 1
)

// Option configures an Instrument.
type Option func(*config)

type config struct {
	prefs  *prefs.Preferences
	timers player.Timers
	logger *slog.Logger
	player []player.Option
}

// WithPreferences sets where user choices are read from and saved to.
func WithPreferences(p *prefs.Preferences) Option {
	return func(c *config) { c.prefs = p }
}

// WithTimers replaces the player timers. The default runs them on the
// engine's audio clock.
func WithTimers(t player.Timers) Option {
	return func(c *config) { c.timers = t }
}

// WithLogger sets the logger for swallowed failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithPlayerOptions passes options to the song player.
func WithPlayerOptions(opts ...player.Option) Option {
	return func(c *config) { c.player = append(c.player, opts...) }
}

type ribbonPointer struct {
	id int
}

type mouthPointer struct {
	id        int
	startY    float64
	startOpen float64
}

type stemPointer struct {
	id             int
	startX, startY float64
	stemX, stemY   float64
}

// Instrument is safe for concurrent use.
type Instrument struct {
	engine *engine.Engine
	player *player.Player
	prefs  *prefs.Preferences
	log    *slog.Logger

	mu       sync.Mutex
	params   Params
	ribbon   ribbonPointer
	mouth    mouthPointer
	stem     stemPointer
	config   bool
	stemX    float64
	stemY    float64
	lastFreq float64
	sounding bool

	avatar       string
	style        string
	styleUserSet bool
	syllOn       bool
	syllCount    int
	syllType     string
	preset       voice.Preset
	rateHz       float64
	gapMs        float64
	artic        float64
}

// New builds an instrument around e and pushes the stored settings into
// it. The engine is not initialized until the first gesture or song.
func New(e *engine.Engine, opts ...Option) *Instrument {
	c := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	if c.prefs == nil {
		c.prefs = prefs.New(nil)
	}
	if c.timers == nil {
		c.timers = player.AudioClock(e)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}

	in := &Instrument{
		engine:    e,
		prefs:     c.prefs,
		log:       c.logger,
		params:    DefaultParams(),
		ribbon:    ribbonPointer{id: noPointer},
		mouth:     mouthPointer{id: noPointer},
		stem:      stemPointer{id: noPointer},
		syllCount: defaultSyllCount,
	}
	in.avatar = c.prefs.AvatarMode()
	in.style, in.styleUserSet = c.prefs.SyllableStyle()
	in.syllOn = c.prefs.SyllablesOn()
	in.syllType = c.prefs.SyllableType()
	in.preset = c.prefs.StylePreset()
	in.rateHz, in.gapMs, in.artic = c.prefs.SyllableParams()
	in.stemX, in.stemY = c.prefs.StemPos()

	popts := append([]player.Option{
		player.WithListener(in),
		player.WithSyllables(in.syllablesLocked()),
	}, c.player...)
	in.player = player.New(e, c.timers, popts...)

	in.applyParamsLocked(true)
	e.SetVoiceStylePreset(in.preset)
	e.SetSyllableParams(in.rateHz, in.gapMs, in.artic)
	in.rateHz, in.gapMs, in.artic = e.SyllableParams()
	return in
}

// Engine returns the audio engine.
func (in *Instrument) Engine() *engine.Engine { return in.engine }

// Player returns the song player.
func (in *Instrument) Player() *player.Player { return in.player }

// Preferences returns the preference view.
func (in *Instrument) Preferences() *prefs.Preferences { return in.prefs }

// Params returns the current setting.
func (in *Instrument) Params() Params {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.params
}

// EnsureAudio initializes the engine if needed. Failures are logged and
// reported as false.
func (in *Instrument) EnsureAudio() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.ensureAudioLocked()
}

func (in *Instrument) ensureAudioLocked() bool {
	if in.engine.Ready() {
		return true
	}
	if err := in.engine.Init(); err != nil {
		in.log.Error("audio init failed", "err", err)
		return false
	}
	in.engine.SetSyllableStyle(in.engineStyleLocked())
	return true
}

// applyParamsLocked pushes every engine-facing value.
func (in *Instrument) applyParamsLocked(immediate bool) {
	p := in.params
	in.engine.SetVolume(p.Volume)
	in.engine.SetVibrato(p.VibDepthHz, p.VibRateHz)
	in.engine.SetDrive(p.Drive)
	in.engine.SetWah(p.Wah)
	in.applyMouthLocked(p.MouthRaw, immediate)
}

// ApplyMouthOpen sets the raw mouth opening; the engine gets it scaled by
// the mouth amount.
func (in *Instrument) ApplyMouthOpen(raw float64, immediate bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.applyMouthLocked(raw, immediate)
}

func (in *Instrument) applyMouthLocked(raw float64, immediate bool) {
	in.params.MouthRaw = pitch.Clamp(raw, 0, 1)
	in.params.MouthOpen = pitch.Clamp(in.params.MouthRaw*in.params.MouthAmp, 0, 1)
	in.engine.SetMouthOpen(in.params.MouthOpen, immediate)
}

// PlaySong starts s on the player with the current syllable settings.
func (in *Instrument) PlaySong(s *song.Song, speed float64, loop bool) error {
	in.mu.Lock()
	ok := in.ensureAudioLocked()
	syll := in.syllablesLocked()
	in.mu.Unlock()
	if !ok {
		return fmt.Errorf("instrument: audio not available")
	}
	in.player.SetSyllables(syll)
	return in.player.Play(s, speed, loop)
}

// StopSong stops the player only.
func (in *Instrument) StopSong() {
	in.player.Stop()
}

// StopAll stops the player and silences the engine, resetting the mouth.
func (in *Instrument) StopAll() {
	in.player.Stop()
	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.engine.Ready() {
		return
	}
	in.engine.StopAll()
	in.applyMouthLocked(DefaultParams().MouthRaw, true)
	in.sounding = false
}

// Reset stops the player and restores the default parameters.
func (in *Instrument) Reset() {
	in.player.Stop()
	in.mu.Lock()
	defer in.mu.Unlock()
	in.params = DefaultParams()
	in.applyParamsLocked(true)
	in.sounding = false
}

// Readout is the one-line status text.
func (in *Instrument) Readout() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.sounding {
		return idleReadout
	}
	return fmt.Sprintf(readoutFormat, in.lastFreq, in.params.MouthOpen, in.params.Octave)
}

// Snapshot is what a front end needs to draw one frame.
type Snapshot struct {
	Params     Params
	Sounding   bool
	Frequency  float64
	Avatar     string
	Look       voice.Look
	ConfigMode bool
	StemX      float64
	StemY      float64
	Playing    bool
}

// Snapshot returns the current state for display.
func (in *Instrument) Snapshot() Snapshot {
	playing := in.player.Playing()
	in.mu.Lock()
	defer in.mu.Unlock()
	return Snapshot{
		Params:     in.params,
		Sounding:   in.sounding,
		Frequency:  in.lastFreq,
		Avatar:     in.avatar,
		Look:       in.preset.Look(),
		ConfigMode: in.config,
		StemX:      in.stemX,
		StemY:      in.stemY,
		Playing:    playing,
	}
}

// NoteStarted follows a programmatic note: cursor, ears and mouth move as
// if the ribbon had been played.
func (in *Instrument) NoteStarted(freqHz, mouthOpen float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.lastFreq = freqHz
	in.sounding = true
	in.params.PitchT = pitch.Position(freqHz, in.params.Range, in.params.Octave)
	in.applyMouthLocked(mouthOpen, false)
}

// NoteEnded relaxes the mouth after a released note.
func (in *Instrument) NoteEnded() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.applyMouthLocked(DefaultParams().MouthRaw, false)
}

// Stopped clears the readout when playback ends.
func (in *Instrument) Stopped() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.ribbon.id == noPointer {
		in.sounding = false
	}
}

func (in *Instrument) persist(err error) {
	if err != nil {
		in.log.Warn("saving preference failed", "err", err)
	}
}
