package output

import (
	"context"
	"fmt"
	"time"

	"github.com/cwbudde/algo-otama/song"
	"github.com/cwbudde/algo-otama/synth/engine"
	"github.com/cwbudde/algo-otama/synth/player"
	"github.com/cwbudde/algo-otama/synth/voice"
)

const renderBlock = 256

// RenderOptions controls an offline render.
type RenderOptions struct {
	SampleRate int
	Speed      float64
	Syllables  player.Syllables
	Preset     voice.Preset
	Settings   engine.Settings
	Crush      float64       // lo-fi mix, see engine.SetLoFi
	Tail       time.Duration // extra audio after the player stops
	MaxLength  time.Duration // safety limit
}

// DefaultRenderOptions renders at 48 kHz, normal speed, with the stock
// voice and half a second of tail.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		SampleRate: 48000,
		Speed:      1,
		Syllables:  player.DefaultSyllables(),
		Preset:     voice.DefaultPreset,
		Settings:   engine.DefaultSettings(),
		Tail:       500 * time.Millisecond,
		MaxLength:  10 * time.Minute,
	}
}

// RenderSong plays s on a private engine whose timers run on the rendered
// audio clock, so the result does not depend on wall time.
func RenderSong(ctx context.Context, s *song.Song, opts RenderOptions) ([]float32, error) {
	e, err := engine.New(float64(opts.SampleRate), engine.WithSettings(opts.Settings))
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	e.SetVoiceStylePreset(opts.Preset)
	if err := e.Init(); err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	if opts.Crush > 0 {
		if err := e.SetLoFi(opts.Crush); err != nil {
			return nil, fmt.Errorf("output: %w", err)
		}
	}

	p := player.New(e, player.AudioClock(e), player.WithSyllables(opts.Syllables))
	if err := p.Play(s, opts.Speed, false); err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	limit := int(opts.MaxLength.Seconds() * float64(opts.SampleRate))
	tail := int(opts.Tail.Seconds() * float64(opts.SampleRate))
	out := make([]float32, 0, int((s.Duration()/opts.Speed+1)*float64(opts.SampleRate)))
	block := make([]float32, renderBlock)
	remaining := -1
	for remaining != 0 {
		if err := ctx.Err(); err != nil {
			p.Stop()
			return nil, err
		}
		if limit > 0 && len(out) >= limit {
			p.Stop()
			return nil, fmt.Errorf("output: song longer than %v", opts.MaxLength)
		}
		n := renderBlock
		if remaining > 0 {
			n = min(n, remaining)
		}
		e.Render(block[:n])
		out = append(out, block[:n]...)
		if remaining > 0 {
			remaining -= n
		} else if !p.Playing() {
			remaining = tail
		}
	}
	return out, nil
}
