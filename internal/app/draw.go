package app

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/cwbudde/algo-otama/internal/ui"
	"github.com/cwbudde/algo-otama/internal/viz"
	"github.com/cwbudde/algo-otama/synth/instrument"
)

var (
	background = color.NRGBA{0x14, 0x12, 0x10, 0xff}
	gridColor  = color.NRGBA{0xff, 0xff, 0xff, 0x0c}
	faceColor  = color.NRGBA{0xf3, 0xd9, 0xb1, 0xff}
	earColor   = color.NRGBA{0xe6, 0xc4, 0x96, 0xff}
	beakColor  = color.NRGBA{0xf0, 0xa0, 0x30, 0xff}
	inkColor   = color.NRGBA{0x2a, 0x1e, 0x16, 0xff}
	ribbonBody = color.NRGBA{0x2c, 0x2a, 0x28, 0xff}
	cursorCol  = color.NRGBA{0xff, 0xcc, 0x66, 0xff}
	configCol  = color.NRGBA{0xff, 0xcc, 0x66, 0xaa}

	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	snap := g.inst.Snapshot()
	w, h := g.layout.W, g.layout.H

	xs, ys := viz.Grid(w, h)
	for _, x := range xs {
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(h), 1, gridColor, false)
	}
	for _, y := range ys {
		vector.StrokeLine(screen, 0, float32(y), float32(w), float32(y), 1, gridColor, false)
	}

	if glow, ok := g.fx.Glow(); ok {
		drawGlow(screen, glow)
	}
	g.drawSpectrum(screen)
	g.drawSprites(screen)
	g.drawHead(screen, snap)
	g.drawRibbon(screen, snap)

	ebitenutil.DebugPrintAt(screen, g.inst.Readout(), 10, 10)
	ebitenutil.DebugPrintAt(screen, g.ctrl.Status(), 10, 26)
	if pr, ok := g.inst.Player().Progress(); ok {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%3.0f%%", pr.Percent), 10, 42)
	}
	if g.errMsg != "" {
		ebitenutil.DebugPrintAt(screen, g.errMsg, 10, 58)
	}
	ebitenutil.DebugPrintAt(screen, helpText, 10, int(h)-20)
}

func (g *Game) drawSpectrum(screen *ebiten.Image) {
	e := g.inst.Engine()
	if n := e.BinCount(); len(g.spec) != n {
		g.spec = make([]byte, n)
	}
	if err := e.ByteFrequencyData(g.spec); err != nil {
		return
	}
	bar := viz.HSLA(30, 0.9, 0.6, 0.35)
	g.bars = viz.Bars(g.spec, g.layout.W, g.layout.H, g.bars)
	for _, b := range g.bars {
		if b.H <= 0 {
			continue
		}
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), bar, false)
	}
}

func (g *Game) drawSprites(screen *ebiten.Image) {
	g.sprites = g.fx.Sprites(g.sprites)
	for _, s := range g.sprites {
		c := viz.HSLA(s.Hue, s.Sat, s.Light, s.Alpha)
		if s.Round {
			vector.DrawFilledCircle(screen, float32(s.X), float32(s.Y), float32(s.Size), c, true)
		} else {
			vector.DrawFilledRect(screen, float32(s.X), float32(s.Y), float32(s.Size), float32(s.Size), c, false)
		}
	}
}

// drawGlow approximates the radial gradient with stacked translucent
// discs.
func drawGlow(screen *ebiten.Image, gl viz.Glow) {
	const rings = 12
	for i := range rings {
		f := float64(i) / rings
		r := gl.R - (gl.R-gl.Inner)*f
		c := viz.HSLA(gl.Hue, 0.9, 0.6, gl.Alpha/rings*(1+f))
		vector.DrawFilledCircle(screen, float32(gl.X), float32(gl.Y), float32(r), c, true)
	}
}

func (g *Game) drawHead(screen *ebiten.Image, snap instrument.Snapshot) {
	head := g.layout.Head()
	scale := head.W / viz.ViewBox
	face := viz.FaceAt(snap.Avatar, snap.Params.MouthOpen, snap.Params.PitchT, snap.Sounding, g.nowMs())
	at := func(x, y float64) (float32, float32) {
		return float32(head.X + x*scale), float32(head.Y + y*scale)
	}
	outline := float32(3 * scale * snap.Look.Outline * 2)

	if face.Mode == viz.AvatarCat {
		drawEar(screen, head, scale, -1, face.Ears.Lift, face.Ears.Stretch, face.Ears.RotL)
		drawEar(screen, head, scale, 1, face.Ears.Lift, face.Ears.Stretch, face.Ears.RotR)
	}

	cx, cy := at(256, 256)
	r := float32(200 * scale)
	vector.DrawFilledCircle(screen, cx, cy, r, faceColor, true)
	vector.StrokeCircle(screen, cx, cy, r, outline, inkColor, true)
	if v := snap.Look.Vignette; v > 0 {
		vector.StrokeCircle(screen, cx, cy, r-outline*2, outline*3, color.NRGBA{0, 0, 0, uint8(v * 255)}, true)
	}

	eye := g.ctrl.EyeColor()
	for i, ex := range [2]float64{186, 326} {
		ecx, ecy := at(ex, 230+face.Eyes.Y)
		er := float32(26 * scale * face.Eyes.Scale)
		vector.DrawFilledCircle(screen, ecx, ecy, er, color.White, true)
		px, py := at(ex+face.Eyes.PupilX[i], 230+face.Eyes.Y+face.Eyes.PupilY)
		vector.DrawFilledCircle(screen, px, py, float32(11*scale*face.Eyes.PupilScale), eye, true)
	}

	if face.Mode == viz.AvatarCat {
		for i, rot := range face.WhiskersLeft {
			drawWhisker(screen, at, 150, 320+float64(i)*10, -1, rot)
		}
		for i, rot := range face.WhiskersRight {
			drawWhisker(screen, at, 362, 320+float64(i)*10, 1, rot)
		}
	}

	mouth := viz.MouthShape(face.Mode, snap.Params.MouthOpen)
	fill := color.NRGBA{20, 10, 6, uint8(mouth.Alpha * 255)}
	if face.Mode == viz.AvatarSaka {
		fill = beakColor
	}
	fillPath(screen, toVector(mouth.Lower, at), fill)
	fillPath(screen, toVector(mouth.Upper, at), fill)
}

func drawEar(screen *ebiten.Image, head ui.Rect, scale float64, side, lift, stretch, rotDeg float64) {
	bx, by := 256+side*120, 130.0
	tip := [2]float64{0, -90 * stretch}
	base := [2][2]float64{{-50, 20}, {50, 20}}
	rot := rotDeg * math.Pi / 180
	pt := func(p [2]float64) (float32, float32) {
		x := p[0]*math.Cos(rot) - p[1]*math.Sin(rot) + bx
		y := p[0]*math.Sin(rot) + p[1]*math.Cos(rot) + by + lift
		return float32(head.X + x*scale), float32(head.Y + y*scale)
	}
	var path vector.Path
	path.MoveTo(pt(base[0]))
	path.LineTo(pt(tip))
	path.LineTo(pt(base[1]))
	path.Close()
	fillPath(screen, &path, earColor)
}

func drawWhisker(screen *ebiten.Image, at func(x, y float64) (float32, float32), x, y, dir, rotDeg float64) {
	const length = 80
	rot := rotDeg * math.Pi / 180
	x0, y0 := at(x, y)
	x1, y1 := at(x+dir*length*math.Cos(rot), y+length*math.Sin(rot))
	vector.StrokeLine(screen, x0, y0, x1, y1, 2, inkColor, true)
}

func (g *Game) drawRibbon(screen *ebiten.Image, snap instrument.Snapshot) {
	rib := g.router.Ribbon(g.layout)
	vector.DrawFilledRect(screen, float32(rib.X), float32(rib.Y), float32(rib.W), float32(rib.H), ribbonBody, true)
	if snap.ConfigMode {
		vector.StrokeRect(screen, float32(rib.X-4), float32(rib.Y-4), float32(rib.W+8), float32(rib.H+8), 2, configCol, true)
	}
	if snap.Sounding {
		y := rib.Y + snap.Params.PitchT*rib.H
		vector.DrawFilledRect(screen, float32(rib.X+4), float32(y-4), float32(rib.W-8), 8, cursorCol, true)
	}
}

// toVector converts a view box path through the at transform.
func toVector(p viz.Path, at func(x, y float64) (float32, float32)) *vector.Path {
	var out vector.Path
	for _, s := range p {
		switch s.Op {
		case viz.MoveTo:
			out.MoveTo(at(s.X, s.Y))
		case viz.LineTo:
			out.LineTo(at(s.X, s.Y))
		case viz.QuadTo:
			x1, y1 := at(s.X1, s.Y1)
			x, y := at(s.X, s.Y)
			out.QuadTo(x1, y1, x, y)
		case viz.Close:
			out.Close()
		}
	}
	return &out
}

func fillPath(dst *ebiten.Image, p *vector.Path, clr color.Color) {
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	if len(is) == 0 {
		return
	}
	r, g, b, a := clr.RGBA()
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha, AntiAlias: true}
	dst.DrawTriangles(vs, is, whiteSubImage, op)
}
