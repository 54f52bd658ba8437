package ui

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/cwbudde/algo-otama/internal/logging"
	"github.com/cwbudde/algo-otama/internal/viz"
	"github.com/cwbudde/algo-otama/song"
	"github.com/cwbudde/algo-otama/synth/instrument"
	"github.com/cwbudde/algo-otama/synth/voice"
)

// Action is a keyboard command.
type Action int

const (
	ActionNone Action = iota
	ActionPlayToggle
	ActionNextSong
	ActionPrevSong
	ActionOctaveUp
	ActionOctaveDown
	ActionNextFX
	ActionToggleAvatar
	ActionToggleSyllables
	ActionNextStyle
	ActionNextSyllableType
	ActionToggleConfig
	ActionNextEyeColor
	ActionToggleLoop
	ActionFaster
	ActionSlower
	ActionPresetSubtle
	ActionPresetNormal
	ActionPresetBold
	ActionStop
	ActionReset
)

const (
	minSpeed  = 0.5
	maxSpeed  = 2
	speedStep = 0.25
)

// Controller applies keyboard actions to the instrument and keeps the
// song selection and effect state of the front end.
type Controller struct {
	inst    *instrument.Instrument
	lib     *song.Library
	entries []song.Entry
	fx      *viz.FX
	log     *slog.Logger

	song  int
	speed float64
	loop  bool
}

// NewController restores the stored effect mode into fx.
func NewController(inst *instrument.Instrument, lib *song.Library, fx *viz.FX, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}
	c := &Controller{
		inst:    inst,
		lib:     lib,
		entries: lib.Entries(),
		fx:      fx,
		log:     logger,
		speed:   1,
	}
	fx.SetMode(viz.ParseMode(inst.Preferences().FXMode()))
	return c
}

// Do runs a.
func (c *Controller) Do(a Action) error {
	in := c.inst
	switch a {
	case ActionPlayToggle:
		if in.Player().Playing() {
			in.StopSong()
			return nil
		}
		return c.playSelected()
	case ActionNextSong, ActionPrevSong:
		if len(c.entries) == 0 {
			return nil
		}
		d := 1
		if a == ActionPrevSong {
			d = len(c.entries) - 1
		}
		c.song = (c.song + d) % len(c.entries)
		if in.Player().Playing() {
			return c.playSelected()
		}
	case ActionOctaveUp:
		in.SetOctave(in.Params().Octave + 1)
	case ActionOctaveDown:
		in.SetOctave(in.Params().Octave - 1)
	case ActionNextFX:
		m := c.fx.Mode().Next()
		c.fx.SetMode(m)
		c.save("fx mode", in.Preferences().SetFXMode(string(m)))
	case ActionToggleAvatar:
		in.ToggleAvatar()
	case ActionToggleSyllables:
		in.SetSyllablesOn(!in.SyllablesOn())
	case ActionNextStyle:
		in.SetSyllableStyle(next(voice.StyleNames(), in.SyllableStyle()))
	case ActionNextSyllableType:
		in.SetSyllableType(next(voice.TypeNames(), in.SyllableType()))
	case ActionToggleConfig:
		in.SetConfigMode(!in.ConfigMode())
	case ActionNextEyeColor:
		p := in.Preferences()
		c.save("eye color", p.SetEyeColor(NextEyeColor(p.EyeColor())))
	case ActionToggleLoop:
		c.loop = !c.loop
	case ActionFaster:
		c.speed = min(maxSpeed, c.speed+speedStep)
	case ActionSlower:
		c.speed = max(minSpeed, c.speed-speedStep)
	case ActionPresetSubtle:
		in.SetStylePreset(0)
	case ActionPresetNormal:
		in.SetStylePreset(1)
	case ActionPresetBold:
		in.SetStylePreset(2)
	case ActionStop:
		in.StopAll()
	case ActionReset:
		in.Reset()
	}
	return nil
}

func (c *Controller) playSelected() error {
	if len(c.entries) == 0 {
		return nil
	}
	s, err := c.lib.Song(c.entries[c.song].ID)
	if err != nil {
		return err
	}
	return c.inst.PlaySong(s, c.speed, c.loop)
}

func (c *Controller) save(what string, err error) {
	if err != nil {
		c.log.Warn("save preference", slog.String("key", what), slog.Any("error", err))
	}
}

func next(names []string, cur string) string {
	for i, n := range names {
		if n == cur {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// Song returns the selected library entry.
func (c *Controller) Song() (song.Entry, bool) {
	if len(c.entries) == 0 {
		return song.Entry{}, false
	}
	return c.entries[c.song], true
}

func (c *Controller) Speed() float64 { return c.speed }
func (c *Controller) Loop() bool     { return c.loop }

// EyeColor returns the stored eye colour.
func (c *Controller) EyeColor() color.NRGBA {
	col, err := ParseHex(c.inst.Preferences().EyeColor())
	if err != nil {
		col, _ = ParseHex(EyePalette[0])
	}
	return col
}

// Status is the one-line summary shown under the readout.
func (c *Controller) Status() string {
	title := "-"
	if e, ok := c.Song(); ok {
		title = e.Title
	}
	loop := "off"
	if c.loop {
		loop = "on"
	}
	syll := "off"
	if c.inst.SyllablesOn() {
		syll = fmt.Sprintf("%s/%s", c.inst.SyllableStyle(), c.inst.SyllableType())
	}
	return fmt.Sprintf("song: %s   speed: %.2fx   loop: %s   fx: %s   syllables: %s",
		title, c.speed, loop, c.fx.Mode(), syll)
}
