package ui

import (
	"fmt"
	"image/color"
	"strings"
	"testing"

	"github.com/cwbudde/algo-otama/internal/testutil"
)

type fakeSink struct {
	config bool
	stemX  float64
	stemY  float64
	stemOK bool
	calls  []string
}

func (f *fakeSink) log(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeSink) RibbonDown(id int, t float64) { f.log("ribbonDown %d %.2f", id, t) }
func (f *fakeSink) RibbonMove(id int, t float64) { f.log("ribbonMove %d %.2f", id, t) }
func (f *fakeSink) RibbonUp(id int)              { f.log("ribbonUp %d", id) }
func (f *fakeSink) HeadDown(id int, y float64)   { f.log("headDown %d %.0f", id, y) }
func (f *fakeSink) HeadMove(id int, y float64)   { f.log("headMove %d %.0f", id, y) }
func (f *fakeSink) HeadUp(id int)                { f.log("headUp %d", id) }
func (f *fakeSink) ConfigMode() bool             { return f.config }
func (f *fakeSink) StemPos() (float64, float64)  { return f.stemX, f.stemY }
func (f *fakeSink) StemDown(id int, x, y float64) bool {
	f.log("stemDown %d %.0f %.0f", id, x, y)
	return f.stemOK
}
func (f *fakeSink) StemMove(id int, x, y float64) { f.log("stemMove %d %.0f %.0f", id, x, y) }
func (f *fakeSink) StemUp(id int)                 { f.log("stemUp %d", id) }

var screen = Layout{W: 1000, H: 500}

func TestLayout(t *testing.T) {
	head := screen.Head()
	if head.W != 300 || head.H != 300 {
		t.Fatalf("head = %+v", head)
	}
	cx, cy := head.Center()
	testutil.RequireNear(t, "head x", cx, 400, 1e-9)
	testutil.RequireNear(t, "head y", cy, 210, 1e-9)

	rib := screen.Ribbon()
	if rib.W != ribbonWidth || rib.X != 780-ribbonWidth/2 || rib.Y != 30 || rib.H != 410 {
		t.Fatalf("ribbon = %+v", rib)
	}
	if head.Contains(rib.X, rib.Y) {
		t.Fatal("head overlaps ribbon")
	}
}

func TestRibbonT(t *testing.T) {
	r := Rect{X: 0, Y: 100, W: 50, H: 200}
	tests := []struct {
		y, want float64
	}{
		{100, 0}, {200, 0.5}, {300, 1}, {50, 0}, {400, 1},
	}
	for _, tt := range tests {
		testutil.RequireNear(t, fmt.Sprintf("t(%v)", tt.y), RibbonT(r, tt.y), tt.want, 1e-12)
	}
	if RibbonT(Rect{}, 10) != 0 {
		t.Fatal("empty ribbon")
	}
}

func TestRouterRibbonCapture(t *testing.T) {
	s := &fakeSink{}
	r := NewRouter(s)
	rib := screen.Ribbon()
	x := rib.X + rib.W/2

	if reg := r.Down(screen, 1, x, rib.Y+rib.H/2); reg != RegionRibbon {
		t.Fatalf("region = %v", reg)
	}
	// captured moves keep going to the ribbon even off the strip
	r.Move(screen, 1, 10, rib.Y+rib.H)
	r.Move(screen, 1, 10, rib.Y+rib.H)
	r.Up(1)
	r.Up(1)

	want := []string{"ribbonDown 1 0.50", "ribbonMove 1 1.00", "ribbonUp 1"}
	if strings.Join(s.calls, "|") != strings.Join(want, "|") {
		t.Fatalf("calls = %q", s.calls)
	}
}

func TestRouterSlopAndHead(t *testing.T) {
	s := &fakeSink{}
	r := NewRouter(s)
	rib := screen.Ribbon()
	if reg := r.Down(screen, 1, rib.X-ribbonSlop+1, rib.Y); reg != RegionRibbon {
		t.Fatalf("slop region = %v", reg)
	}
	hx, hy := screen.Head().Center()
	if reg := r.Down(screen, 2, hx, hy); reg != RegionHead {
		t.Fatalf("head region = %v", reg)
	}
	r.Move(screen, 2, hx, hy+20)
	r.Up(2)
	if reg := r.Down(screen, 3, 5, 495); reg != RegionNone {
		t.Fatalf("background region = %v", reg)
	}
	r.Move(screen, 3, 6, 495)
	r.Up(3)

	want := []string{"ribbonDown 1 0.00", "headDown 2 210", "headMove 2 230", "headUp 2"}
	if strings.Join(s.calls, "|") != strings.Join(want, "|") {
		t.Fatalf("calls = %q", s.calls)
	}
}

func TestRouterIgnoresRepeatedDown(t *testing.T) {
	s := &fakeSink{}
	r := NewRouter(s)
	hx, hy := screen.Head().Center()
	r.Down(screen, 1, hx, hy)
	if reg := r.Down(screen, 1, hx, hy); reg != RegionNone {
		t.Fatalf("second down = %v", reg)
	}
	if r.Captured(1) != RegionHead {
		t.Fatalf("captured = %v", r.Captured(1))
	}
}

func TestRouterStemInConfigMode(t *testing.T) {
	s := &fakeSink{config: true, stemOK: true, stemX: -100, stemY: 20}
	r := NewRouter(s)
	rib := r.Ribbon(screen)
	if rib.X != screen.Ribbon().X-100 || rib.Y != screen.Ribbon().Y+20 {
		t.Fatalf("offset ribbon = %+v", rib)
	}
	x, y := rib.X+10, rib.Y+10
	if reg := r.Down(screen, 4, x, y); reg != RegionStem {
		t.Fatalf("region = %v", reg)
	}
	r.Move(screen, 4, x+5, y+6)
	r.ReleaseAll()
	if r.Captured(4) != RegionNone {
		t.Fatal("pointer still captured")
	}
	want := []string{
		fmt.Sprintf("stemDown 4 %.0f %.0f", x, y),
		fmt.Sprintf("stemMove 4 %.0f %.0f", x+5, y+6),
		"stemUp 4",
	}
	if strings.Join(s.calls, "|") != strings.Join(want, "|") {
		t.Fatalf("calls = %q", s.calls)
	}

	s.stemOK = false
	if reg := r.Down(screen, 5, x, y); reg != RegionNone {
		t.Fatalf("refused stem region = %v", reg)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#66c36a", color.NRGBA{0x66, 0xc3, 0x6a, 0xff}, true},
		{"#FFFFFF", color.NRGBA{0xff, 0xff, 0xff, 0xff}, true},
		{"66c36a", color.NRGBA{}, false},
		{"#66c36", color.NRGBA{}, false},
		{"#zzzzzz", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseHex(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestNextEyeColor(t *testing.T) {
	if got := NextEyeColor("#66C36A"); got != EyePalette[1] {
		t.Fatalf("next = %q", got)
	}
	if got := NextEyeColor(EyePalette[len(EyePalette)-1]); got != EyePalette[0] {
		t.Fatalf("wrap = %q", got)
	}
	if got := NextEyeColor("#123456"); got != EyePalette[0] {
		t.Fatalf("unknown = %q", got)
	}
}
