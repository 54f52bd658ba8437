package ui

import "github.com/cwbudde/algo-otama/synth/pitch"

// Rect is an axis-aligned rectangle in screen pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Offset returns r moved by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Inset grows r by d on every side; negative d shrinks it.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// Center returns the midpoint of r.
func (r Rect) Center() (x, y float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

const (
	ribbonWidth = 56
	ribbonSlop  = 16 // extra hit margin around the ribbon
)

// Layout places the head and ribbon on a w×h screen.
type Layout struct {
	W, H float64
}

// Head is the square the avatar is drawn in.
func (l Layout) Head() Rect {
	side := min(l.W*0.5, l.H*0.6)
	cx, cy := l.W*0.4, l.H*0.42
	return Rect{X: cx - side/2, Y: cy - side/2, W: side, H: side}
}

// Ribbon is the pitch strip before the stem offset is applied.
func (l Layout) Ribbon() Rect {
	return Rect{X: l.W*0.78 - ribbonWidth/2, Y: l.H * 0.06, W: ribbonWidth, H: l.H * 0.82}
}

// RibbonT maps a y coordinate on the ribbon r to a position in [0, 1],
// 0 at the top.
func RibbonT(r Rect, y float64) float64 {
	if r.H <= 0 {
		return 0
	}
	return pitch.Clamp((y-r.Y)/r.H, 0, 1)
}
