//go:build js && wasm

// Command wasm exports the instrument to a browser page as the global
// Otama object. The page pulls audio with render(n) from its audio
// callback; song timers run on that rendered clock.
package main

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"syscall/js"

	"github.com/cwbudde/algo-otama/internal/logging"
	"github.com/cwbudde/algo-otama/internal/viz"
	"github.com/cwbudde/algo-otama/prefs"
	"github.com/cwbudde/algo-otama/song"
	"github.com/cwbudde/algo-otama/synth/engine"
	"github.com/cwbudde/algo-otama/synth/instrument"
	"github.com/cwbudde/algo-otama/synth/voice"
)

var (
	inst    *instrument.Instrument
	fx      *viz.FX
	library = song.Default()
	funcs   []js.Func
	sprites []viz.Sprite
	specBuf []byte
)

var logger, _ = logging.New(consoleWriter{}, "info")

// consoleWriter sends log lines to console.log.
type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	js.Global().Get("console").Call("log", string(p))
	return len(p), nil
}

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		sr := 48000.0
		if len(args) > 0 {
			sr = args[0].Float()
		}
		e, err := engine.New(sr)
		if err != nil {
			return err.Error()
		}
		p := prefs.New(newLocalStore())
		inst = instrument.New(e, instrument.WithPreferences(p), instrument.WithLogger(logger))
		fx = viz.NewFX(rand.New(rand.NewSource(int64(js.Global().Get("Date").Call("now").Float()))))
		fx.SetMode(viz.ParseMode(p.FXMode()))
		return js.Null()
	}))

	exportPointers(api)
	exportSetters(api)
	exportSongs(api)
	exportViews(api)

	api.Set("render", export(func(args []js.Value) any {
		if inst == nil || len(args) < 1 {
			return js.Global().Get("Float32Array").New(0)
		}
		n := args[0].Int()
		buf := make([]float32, n)
		inst.Engine().Render(buf)
		arr := js.Global().Get("Float32Array").New(n)
		for i := 0; i < n; i++ {
			arr.SetIndex(i, buf[i])
		}
		return arr
	}))

	js.Global().Set("Otama", api)
	select {}
}

func exportPointers(api js.Value) {
	api.Set("ribbonDown", export(func(args []js.Value) any {
		if inst != nil && len(args) >= 2 {
			inst.RibbonDown(args[0].Int(), args[1].Float())
		}
		return js.Null()
	}))
	api.Set("ribbonMove", export(func(args []js.Value) any {
		if inst != nil && len(args) >= 2 {
			inst.RibbonMove(args[0].Int(), args[1].Float())
		}
		return js.Null()
	}))
	api.Set("ribbonUp", export(func(args []js.Value) any {
		if inst != nil && len(args) >= 1 {
			inst.RibbonUp(args[0].Int())
		}
		return js.Null()
	}))
	api.Set("headDown", export(func(args []js.Value) any {
		if inst != nil && len(args) >= 2 {
			inst.HeadDown(args[0].Int(), args[1].Float())
		}
		return js.Null()
	}))
	api.Set("headMove", export(func(args []js.Value) any {
		if inst != nil && len(args) >= 2 {
			inst.HeadMove(args[0].Int(), args[1].Float())
		}
		return js.Null()
	}))
	api.Set("headUp", export(func(args []js.Value) any {
		if inst != nil && len(args) >= 1 {
			inst.HeadUp(args[0].Int())
		}
		return js.Null()
	}))
	api.Set("setConfigMode", export(func(args []js.Value) any {
		if inst != nil && len(args) >= 1 {
			inst.SetConfigMode(args[0].Bool())
		}
		return js.Null()
	}))
	api.Set("stemDown", export(func(args []js.Value) any {
		if inst == nil || len(args) < 3 {
			return false
		}
		return inst.StemDown(args[0].Int(), args[1].Float(), args[2].Float())
	}))
	api.Set("stemMove", export(func(args []js.Value) any {
		if inst != nil && len(args) >= 3 {
			inst.StemMove(args[0].Int(), args[1].Float(), args[2].Float())
		}
		return js.Null()
	}))
	api.Set("stemUp", export(func(args []js.Value) any {
		if inst != nil && len(args) >= 1 {
			inst.StemUp(args[0].Int())
		}
		return js.Null()
	}))
}

// setter exports a one-number control.
func setter(api js.Value, name string, fn func(float64)) {
	api.Set(name, export(func(args []js.Value) any {
		if inst != nil && len(args) >= 1 {
			fn(args[0].Float())
		}
		return js.Null()
	}))
}

func exportSetters(api js.Value) {
	setter(api, "setVolume", func(v float64) { inst.SetVolume(v) })
	setter(api, "setDrive", func(v float64) { inst.SetDrive(v) })
	setter(api, "setWah", func(v float64) { inst.SetWah(v) })
	setter(api, "setMouthAmp", func(v float64) { inst.SetMouthAmp(v) })
	setter(api, "setRange", func(v float64) { inst.SetRange(v) })
	setter(api, "setOctave", func(v float64) { inst.SetOctave(int(v)) })
	setter(api, "setSyllableCount", func(v float64) { inst.SetSyllableCount(int(v)) })
	setter(api, "setStylePreset", func(v float64) { inst.SetStylePreset(voice.ClampPreset(int(v))) })

	api.Set("setVibrato", export(func(args []js.Value) any {
		if inst != nil && len(args) >= 2 {
			inst.SetVibrato(args[0].Float(), args[1].Float())
		}
		return js.Null()
	}))
	api.Set("setSyllableParams", export(func(args []js.Value) any {
		if inst != nil && len(args) >= 3 {
			inst.SetSyllableParams(args[0].Float(), args[1].Float(), args[2].Float())
		}
		return js.Null()
	}))
	api.Set("setAvatar", export(func(args []js.Value) any {
		if inst != nil && len(args) >= 1 {
			inst.SetAvatarMode(args[0].String())
		}
		return js.Null()
	}))
	api.Set("toggleAvatar", export(func(args []js.Value) any {
		if inst != nil {
			inst.ToggleAvatar()
		}
		return js.Null()
	}))
	api.Set("setSyllableStyle", export(func(args []js.Value) any {
		if inst != nil && len(args) >= 1 {
			inst.SetSyllableStyle(args[0].String())
		}
		return js.Null()
	}))
	api.Set("setSyllablesOn", export(func(args []js.Value) any {
		if inst != nil && len(args) >= 1 {
			inst.SetSyllablesOn(args[0].Bool())
		}
		return js.Null()
	}))
	api.Set("setSyllableType", export(func(args []js.Value) any {
		if inst != nil && len(args) >= 1 {
			inst.SetSyllableType(args[0].String())
		}
		return js.Null()
	}))
	api.Set("setFXMode", export(func(args []js.Value) any {
		if inst == nil || len(args) < 1 {
			return js.Null()
		}
		m := viz.ParseMode(args[0].String())
		fx.SetMode(m)
		if err := inst.Preferences().SetFXMode(string(m)); err != nil {
			logger.Warn("save fx mode", slog.Any("error", err))
		}
		return string(m)
	}))
	api.Set("setEyeColor", export(func(args []js.Value) any {
		if inst == nil || len(args) < 1 {
			return js.Null()
		}
		if err := inst.Preferences().SetEyeColor(args[0].String()); err != nil {
			return err.Error()
		}
		return js.Null()
	}))
	api.Set("reset", export(func(args []js.Value) any {
		if inst != nil {
			inst.Reset()
		}
		return js.Null()
	}))
}

func exportSongs(api js.Value) {
	api.Set("songs", export(func(args []js.Value) any {
		data, err := json.Marshal(library.Entries())
		if err != nil {
			return "[]"
		}
		return string(data)
	}))
	api.Set("play", export(func(args []js.Value) any {
		if inst == nil || len(args) < 1 {
			return "not initialized"
		}
		speed, loop := 1.0, false
		if len(args) > 1 {
			speed = args[1].Float()
		}
		if len(args) > 2 {
			loop = args[2].Bool()
		}
		s, err := library.Song(args[0].String())
		if err == nil {
			err = inst.PlaySong(s, speed, loop)
		}
		if err != nil {
			return err.Error()
		}
		return js.Null()
	}))
	api.Set("stop", export(func(args []js.Value) any {
		if inst != nil {
			inst.StopSong()
		}
		return js.Null()
	}))
	api.Set("stopAll", export(func(args []js.Value) any {
		if inst != nil {
			inst.StopAll()
		}
		return js.Null()
	}))
}

// view is the per-frame UI state handed to the page as JSON.
type view struct {
	Readout  string     `json:"readout"`
	PitchT   float64    `json:"pitchT"`
	Sounding bool       `json:"sounding"`
	Playing  bool       `json:"playing"`
	Percent  float64    `json:"percent"`
	Note     int        `json:"note"` // -1 when silent
	StemX    float64    `json:"stemX"`
	StemY    float64    `json:"stemY"`
	EyeColor string     `json:"eyeColor"`
	Look     voice.Look `json:"look"`
	Face     viz.Face   `json:"face"`
}

func exportViews(api js.Value) {
	api.Set("readout", export(func(args []js.Value) any {
		if inst == nil {
			return ""
		}
		return inst.Readout()
	}))
	api.Set("state", export(func(args []js.Value) any {
		if inst == nil {
			return js.Null()
		}
		now := 0.0
		if len(args) > 0 {
			now = args[0].Float()
		}
		snap := inst.Snapshot()
		v := view{
			Readout:  inst.Readout(),
			PitchT:   snap.Params.PitchT,
			Sounding: snap.Sounding,
			Playing:  snap.Playing,
			Note:     -1,
			StemX:    snap.StemX,
			StemY:    snap.StemY,
			EyeColor: inst.Preferences().EyeColor(),
			Look:     snap.Look,
			Face:     viz.FaceAt(snap.Avatar, snap.Params.MouthOpen, snap.Params.PitchT, snap.Sounding, now),
		}
		if pr, ok := inst.Player().Progress(); ok {
			v.Percent = pr.Percent
			if pr.HasNote {
				v.Note = pr.MIDI
			}
		}
		data, err := json.Marshal(v)
		if err != nil {
			return js.Null()
		}
		return string(data)
	}))
	api.Set("spectrum", export(func(args []js.Value) any {
		if inst == nil {
			return js.Global().Get("Uint8Array").New(0)
		}
		e := inst.Engine()
		if n := e.BinCount(); len(specBuf) != n {
			specBuf = make([]byte, n)
		}
		if err := e.ByteFrequencyData(specBuf); err != nil {
			return js.Global().Get("Uint8Array").New(0)
		}
		arr := js.Global().Get("Uint8Array").New(len(specBuf))
		js.CopyBytesToJS(arr, specBuf)
		return arr
	}))
	// fx(nowMs, w, h) returns packed sprites: x, y, size, hue, sat, light,
	// alpha, round per particle.
	api.Set("fx", export(func(args []js.Value) any {
		if inst == nil || len(args) < 3 {
			return js.Global().Get("Float32Array").New(0)
		}
		snap := inst.Snapshot()
		fx.Resize(args[1].Float(), args[2].Float())
		fx.Update(args[0].Float(), snap.Params.PitchT, snap.Sounding)
		sprites = fx.Sprites(sprites)
		const stride = 8
		arr := js.Global().Get("Float32Array").New(len(sprites) * stride)
		for i, s := range sprites {
			round := 0.0
			if s.Round {
				round = 1
			}
			for j, v := range [stride]float64{s.X, s.Y, s.Size, s.Hue, s.Sat, s.Light, s.Alpha, round} {
				arr.SetIndex(i*stride+j, v)
			}
		}
		return arr
	}))
	api.Set("glow", export(func(args []js.Value) any {
		if fx == nil {
			return js.Null()
		}
		g, ok := fx.Glow()
		if !ok {
			return js.Null()
		}
		data, _ := json.Marshal(map[string]float64{
			"x": g.X, "y": g.Y, "inner": g.Inner, "r": g.R, "hue": g.Hue, "alpha": g.Alpha,
		})
		return string(data)
	}))
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
