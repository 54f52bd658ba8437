package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-otama/internal/output"
	"github.com/cwbudde/algo-otama/synth/player"
	"github.com/cwbudde/algo-otama/synth/voice"
)

// Voice selects how songs are voiced by the headless commands.
type Voice struct {
	Style  string // syllable style, "off" disables syllables
	Type   string // syllable type
	Count  int    // syllables per note
	Preset int
	Speed  float64
	Crush  float64 // lo-fi mix, 0 is clean
}

// DefaultVoice returns the stock voice: syllables off, normal preset.
func DefaultVoice() Voice {
	return Voice{
		Style:  voice.StyleOff,
		Type:   voice.TypeNa,
		Count:  1,
		Preset: int(voice.DefaultPreset),
		Speed:  1,
	}
}

// RegisterFlags binds v to fs.
func (v *Voice) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&v.Style, "style", v.Style, "syllable style: "+strings.Join(voice.StyleNames(), ", "))
	fs.StringVar(&v.Type, "syllable", v.Type, "syllable type: "+strings.Join(voice.TypeNames(), ", "))
	fs.IntVar(&v.Count, "count", v.Count, "syllables per note (1-8)")
	fs.IntVar(&v.Preset, "preset", v.Preset, "style preset: 0 subtle, 1 normal, 2 bold")
	fs.Float64Var(&v.Speed, "speed", v.Speed, "playback speed factor")
	fs.Float64Var(&v.Crush, "crush", v.Crush, "lo-fi bit crusher mix (0-1)")
}

// Validate checks the voice settings.
func (v Voice) Validate() error {
	switch {
	case !voice.HasStyle(v.Style):
		return fmt.Errorf("config: unknown syllable style %q", v.Style)
	case !voice.HasType(v.Type):
		return fmt.Errorf("config: unknown syllable type %q", v.Type)
	case v.Count < 1 || v.Count > 8:
		return fmt.Errorf("config: syllable count out of range [1, 8]: %d", v.Count)
	case v.Preset < 0 || v.Preset > 2:
		return fmt.Errorf("config: preset out of range [0, 2]: %d", v.Preset)
	case !(v.Speed > 0):
		return fmt.Errorf("config: speed must be positive: %g", v.Speed)
	case !(v.Crush >= 0 && v.Crush <= 1):
		return fmt.Errorf("config: crush mix out of range [0, 1]: %g", v.Crush)
	}
	return nil
}

// Syllables returns the player syllable configuration.
func (v Voice) Syllables() player.Syllables {
	return player.Syllables{
		Enabled: v.Style != voice.StyleOff,
		Style:   v.Style,
		Count:   v.Count,
		Type:    v.Type,
	}
}

// RenderOptions returns offline render options for c and v.
func (c Config) RenderOptions(v Voice) output.RenderOptions {
	opts := output.DefaultRenderOptions()
	opts.SampleRate = c.SampleRate
	opts.Speed = v.Speed
	opts.Syllables = v.Syllables()
	opts.Preset = voice.ClampPreset(v.Preset)
	opts.Crush = v.Crush
	return opts
}
