package player

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/cwbudde/algo-otama/song"
	"github.com/cwbudde/algo-otama/synth/pitch"
	"github.com/cwbudde/algo-otama/synth/voice"
)

// ErrEmptySong is returned when asked to play a song without notes.
var ErrEmptySong = errors.New("player: song has no notes")

// Synth is the part of the engine the player drives.
type Synth interface {
	Ready() bool
	Init() error
	CurrentTime() float64
	SetFrequency(hz float64)
	Gate(on bool)
	TriggerSyllable(when, vel, dur float64, count int, typ string)
	SetSyllableStyle(name string)
}

// Timer is a cancellable pending callback.
type Timer interface {
	Stop() bool
}

// Timers schedules callbacks.
type Timers interface {
	AfterFunc(d time.Duration, fn func()) Timer
	Every(d time.Duration, fn func()) Timer
}

// Listener observes playback. Methods are called without player locks held
// and may call back into the player.
type Listener interface {
	NoteStarted(freqHz, mouthOpen float64)
	NoteEnded()
	Stopped()
}

// Config holds the scheduler timing.
type Config struct {
	Tick        time.Duration // scan period
	Window      time.Duration // lookahead window
	LeadIn      time.Duration // delay before the first note
	ReleaseGap  time.Duration // minimum gap that gets a release
	EndGrace    time.Duration // wait after the last note end
	TrailingGap time.Duration // gap assumed after the last note
}

// DefaultConfig returns the stock scheduler timing.
func DefaultConfig() Config {
	return Config{
		Tick:        30 * time.Millisecond,
		Window:      120 * time.Millisecond,
		LeadIn:      50 * time.Millisecond,
		ReleaseGap:  40 * time.Millisecond,
		EndGrace:    100 * time.Millisecond,
		TrailingGap: 200 * time.Millisecond,
	}
}

// Syllables configures the syllable trains triggered for each note.
type Syllables struct {
	Enabled bool
	Style   string
	Count   int
	Type    string
}

// DefaultSyllables returns syllables on, style off, one "na" per note.
func DefaultSyllables() Syllables {
	return Syllables{Enabled: true, Style: voice.StyleOff, Count: 1, Type: voice.TypeNa}
}

// EffectiveStyle returns the style the engine should use.
func (s Syllables) EffectiveStyle() string {
	if !s.Enabled || s.Style == "" {
		return voice.StyleOff
	}
	return s.Style
}

// Option configures a Player.
type Option func(*Player)

// WithConfig replaces the scheduler timing.
func WithConfig(c Config) Option {
	return func(p *Player) { p.cfg = c }
}

// WithListener sets the playback observer.
func WithListener(l Listener) Option {
	return func(p *Player) { p.listener = l }
}

// WithSyllables sets the initial syllable configuration.
func WithSyllables(s Syllables) Option {
	return func(p *Player) { p.syll = s }
}

// Player schedules one song at a time. It is safe for concurrent use.
type Player struct {
	mu       sync.Mutex
	synth    Synth
	timers   Timers
	listener Listener
	cfg      Config
	syll     Syllables

	song    *song.Song
	speed   float64
	loop    bool
	index   int
	start   float64
	total   float64
	playing bool
	run     uint64

	ticker  Timer
	pending map[uint64]Timer
	nextID  uint64
}

// New returns an idle player.
func New(s Synth, timers Timers, opts ...Option) *Player {
	p := &Player{
		synth:    s,
		timers:   timers,
		listener: nopListener{},
		cfg:      DefaultConfig(),
		syll:     DefaultSyllables(),
		pending:  make(map[uint64]Timer),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// SetSyllables replaces the syllable configuration for later notes.
func (p *Player) SetSyllables(s Syllables) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.syll = s
}

// Syllables returns the syllable configuration.
func (p *Player) Syllables() Syllables {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.syll
}

// Playing reports whether a song is running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Play starts s at the given speed, replacing any running song. The synth
// is initialized first if needed.
func (p *Player) Play(s *song.Song, speed float64, loop bool) error {
	if s == nil || len(s.Notes) == 0 {
		return ErrEmptySong
	}
	if !(speed > 0) || math.IsInf(speed, 0) {
		return fmt.Errorf("player: speed must be > 0: %v", speed)
	}
	if !p.synth.Ready() {
		if err := p.synth.Init(); err != nil {
			return fmt.Errorf("player: init synth: %w", err)
		}
	}

	p.mu.Lock()
	wasPlaying := p.playing
	p.stopLocked()
	p.synth.SetSyllableStyle(p.syll.EffectiveStyle())

	p.song = s
	p.speed = speed
	p.loop = loop
	p.index = 0
	p.playing = true
	p.total = s.Duration()
	p.start = p.synth.CurrentTime() + p.cfg.LeadIn.Seconds()
	p.ticker = p.timers.Every(p.cfg.Tick, p.Tick)
	l := p.listener
	p.mu.Unlock()

	if wasPlaying {
		l.Stopped()
	}
	return nil
}

// Stop cancels the tick and every pending note callback and closes the gate.
func (p *Player) Stop() {
	p.mu.Lock()
	p.stopLocked()
	l := p.listener
	p.mu.Unlock()
	l.Stopped()
}

func (p *Player) stopLocked() {
	p.playing = false
	p.run++
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
	}
	for id, t := range p.pending {
		t.Stop()
		delete(p.pending, id)
	}
	if p.synth.Ready() {
		p.synth.Gate(false)
	}
}

// Tick schedules the notes that start within the lookahead window and
// handles the end of the song. It is driven by the periodic timer.
func (p *Player) Tick() {
	p.mu.Lock()
	if !p.playing || p.song == nil {
		p.mu.Unlock()
		return
	}
	now := p.synth.CurrentTime()
	notes := p.song.Notes

	horizon := now + p.cfg.Window.Seconds()
	for p.index < len(notes) {
		n := notes[p.index]
		if p.start+n.T/p.speed > horizon {
			break
		}
		p.scheduleNoteLocked(p.index, now)
		p.index++
	}

	end := p.start + p.total/p.speed
	stopped := false
	if now > end+p.cfg.EndGrace.Seconds() && p.index >= len(notes) {
		if p.loop {
			p.index = 0
			p.start = p.synth.CurrentTime() + p.cfg.LeadIn.Seconds()
		} else {
			p.stopLocked()
			stopped = true
		}
	}
	l := p.listener
	p.mu.Unlock()

	if stopped {
		l.Stopped()
	}
}

func (p *Player) scheduleNoteLocked(idx int, now float64) {
	notes := p.song.Notes
	n := notes[idx]
	when := p.start + n.T/p.speed
	dur := n.D / p.speed
	gap := p.cfg.TrailingGap.Seconds()
	if idx+1 < len(notes) {
		gap = (notes[idx+1].T - n.End()) / p.speed
	}

	freq := pitch.MIDIToFreq(float64(n.MIDI))
	vel := n.Velocity()
	open := pitch.Clamp(0.45+vel*0.5, 0.3, 1)

	if p.syll.Enabled {
		p.synth.TriggerSyllable(when, vel, dur, p.syll.Count, p.syll.Type)
	}

	run := p.run
	p.after(math.Max(0, when-now), func() { p.noteOn(run, freq, open) })
	if gap > p.cfg.ReleaseGap.Seconds() {
		p.after(math.Max(0, when+dur-now), func() { p.noteOff(run) })
	}
}

// after schedules fn and tracks it until it fires or playback stops.
func (p *Player) after(delay float64, fn func()) {
	p.nextID++
	id := p.nextID
	t := p.timers.AfterFunc(seconds(delay), func() {
		p.mu.Lock()
		delete(p.pending, id)
		p.mu.Unlock()
		fn()
	})
	p.pending[id] = t
}

func (p *Player) noteOn(run uint64, freq, open float64) {
	p.mu.Lock()
	if !p.playing || run != p.run {
		p.mu.Unlock()
		return
	}
	p.synth.SetFrequency(freq)
	p.synth.Gate(true)
	l := p.listener
	p.mu.Unlock()
	l.NoteStarted(freq, open)
}

func (p *Player) noteOff(run uint64) {
	p.mu.Lock()
	if !p.playing || run != p.run {
		p.mu.Unlock()
		return
	}
	p.synth.Gate(false)
	l := p.listener
	p.mu.Unlock()
	l.NoteEnded()
}

// Progress describes the playback position.
type Progress struct {
	Percent float64 // 0..100
	MIDI    int     // sounding note, valid when HasNote
	HasNote bool
}

// Progress reports how far the running song has advanced and which of the
// already scheduled notes is sounding.
func (p *Player) Progress() (Progress, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing || p.song == nil {
		return Progress{}, false
	}
	now := p.synth.CurrentTime()
	t := pitch.Clamp((now-p.start)*p.speed, 0, p.total)
	var pr Progress
	if p.total > 0 {
		pr.Percent = t / p.total * 100
	}
	notes := p.song.Notes
	for i := p.index - 1; i >= 0; i-- {
		n := notes[i]
		if t >= n.T && t <= n.End() {
			pr.MIDI = n.MIDI
			pr.HasNote = true
			break
		}
	}
	return pr, true
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

type nopListener struct{}

func (nopListener) NoteStarted(float64, float64) {}
func (nopListener) NoteEnded()                   {}
func (nopListener) Stopped()                     {}
