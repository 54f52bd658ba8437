// Package app is the desktop front end: an ebiten window with the ribbon,
// the avatar head, the spectrum and the particle effects.
package app

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/cwbudde/algo-otama/internal/logging"
	"github.com/cwbudde/algo-otama/internal/output"
	"github.com/cwbudde/algo-otama/internal/ui"
	"github.com/cwbudde/algo-otama/internal/viz"
	"github.com/cwbudde/algo-otama/song"
	"github.com/cwbudde/algo-otama/synth/instrument"
)

// mouseID keeps the mouse apart from touch ids, which are never negative,
// and from the instrument's "no pointer" id.
const mouseID = -2

var keyActions = map[ebiten.Key]ui.Action{
	ebiten.KeySpace:      ui.ActionPlayToggle,
	ebiten.KeyArrowRight: ui.ActionNextSong,
	ebiten.KeyArrowLeft:  ui.ActionPrevSong,
	ebiten.KeyArrowUp:    ui.ActionOctaveUp,
	ebiten.KeyArrowDown:  ui.ActionOctaveDown,
	ebiten.KeyF:          ui.ActionNextFX,
	ebiten.KeyA:          ui.ActionToggleAvatar,
	ebiten.KeyS:          ui.ActionToggleSyllables,
	ebiten.KeyY:          ui.ActionNextStyle,
	ebiten.KeyT:          ui.ActionNextSyllableType,
	ebiten.KeyC:          ui.ActionToggleConfig,
	ebiten.KeyE:          ui.ActionNextEyeColor,
	ebiten.KeyL:          ui.ActionToggleLoop,
	ebiten.KeyEqual:      ui.ActionFaster,
	ebiten.KeyMinus:      ui.ActionSlower,
	ebiten.KeyDigit1:     ui.ActionPresetSubtle,
	ebiten.KeyDigit2:     ui.ActionPresetNormal,
	ebiten.KeyDigit3:     ui.ActionPresetBold,
	ebiten.KeyEscape:     ui.ActionStop,
	ebiten.KeyBackspace:  ui.ActionReset,
}

const helpText = "ribbon: play   head: mouth   space: song   <- ->: pick   up/down: octave   " +
	"f: fx   a: avatar   s/y/t: syllables   1-3: preset   e: eyes   c: move stem   esc: stop"

// Options configures the window.
type Options struct {
	Title   string
	Width   int
	Height  int
	Buffer  time.Duration // audio output buffer
	Logger  *slog.Logger
	Library *song.Library
}

// Game implements ebiten.Game.
type Game struct {
	inst   *instrument.Instrument
	ctrl   *ui.Controller
	router *ui.Router
	fx     *viz.FX
	log    *slog.Logger
	opts   Options

	audioCtx *audio.Context
	player   *audio.Player

	layout  ui.Layout
	start   time.Time
	touches []ebiten.TouchID
	keys    []ebiten.Key
	spec    []byte
	bars    []viz.Bar
	sprites []viz.Sprite
	errMsg  string
}

// New builds the front end for inst.
func New(inst *instrument.Instrument, opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Library == nil {
		opts.Library = song.Default()
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 960, 640
	}
	if opts.Title == "" {
		opts.Title = "otama"
	}
	fx := viz.NewFX(rand.New(rand.NewSource(time.Now().UnixNano())))
	return &Game{
		inst:   inst,
		ctrl:   ui.NewController(inst, opts.Library, fx, opts.Logger),
		router: ui.NewRouter(inst),
		fx:     fx,
		log:    opts.Logger,
		opts:   opts,
		start:  time.Now(),
	}
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run() error {
	if err := g.startAudio(); err != nil {
		return err
	}
	defer g.player.Close()

	ebiten.SetWindowTitle(g.opts.Title)
	ebiten.SetWindowSize(g.opts.Width, g.opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	return nil
}

// startAudio streams the engine through an ebiten audio player. The
// engine renders silence until the first gesture initializes it.
func (g *Game) startAudio() error {
	e := g.inst.Engine()
	g.audioCtx = audio.NewContext(int(e.SampleRate()))
	p, err := g.audioCtx.NewPlayerF32(output.NewFloat32Stream(e, 2))
	if err != nil {
		return fmt.Errorf("app: audio: %w", err)
	}
	if g.opts.Buffer > 0 {
		p.SetBufferSize(g.opts.Buffer)
	}
	p.Play()
	g.player = p
	return nil
}

func (g *Game) Update() error {
	if !ebiten.IsFocused() {
		g.router.ReleaseAll()
	}
	g.handleKeys()
	g.handlePointers()

	snap := g.inst.Snapshot()
	head := g.layout.Head()
	hx, hy := head.Center()
	g.fx.Resize(g.layout.W, g.layout.H)
	g.fx.SetGlowCenter(hx, hy)
	g.fx.Update(g.nowMs(), snap.Params.PitchT, snap.Sounding)
	return nil
}

func (g *Game) handleKeys() {
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		a, ok := keyActions[k]
		if !ok {
			continue
		}
		if err := g.ctrl.Do(a); err != nil {
			g.log.Warn("action failed", slog.Any("error", err))
			g.errMsg = err.Error()
			continue
		}
		g.errMsg = ""
	}
}

func (g *Game) handlePointers() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.router.Down(g.layout, mouseID, float64(x), float64(y))
	} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.router.Move(g.layout, mouseID, float64(x), float64(y))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.router.Up(mouseID)
	}

	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		x, y := ebiten.TouchPosition(id)
		g.router.Down(g.layout, int(id), float64(x), float64(y))
	}
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		x, y := ebiten.TouchPosition(id)
		g.router.Move(g.layout, int(id), float64(x), float64(y))
	}
	g.touches = inpututil.AppendJustReleasedTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		g.router.Up(int(id))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.layout = ui.Layout{W: float64(outsideWidth), H: float64(outsideHeight)}
	return outsideWidth, outsideHeight
}

func (g *Game) nowMs() float64 {
	return float64(time.Since(g.start)) / float64(time.Millisecond)
}
