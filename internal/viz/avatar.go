package viz

import (
	"math"
	"strconv"
	"strings"
)

// Avatar modes.
const (
	AvatarCat  = "cat"
	AvatarSaka = "saka"
)

// ViewBox is the side of the square the avatar paths are drawn in.
const ViewBox = 512

// Op is a path command.
type Op byte

const (
	MoveTo Op = 'M'
	LineTo Op = 'L'
	QuadTo Op = 'Q'
	Close  Op = 'Z'
)

// Seg is one path command. QuadTo uses (X1, Y1) as the control point and
// (X, Y) as the end point; MoveTo and LineTo use (X, Y).
type Seg struct {
	Op     Op
	X1, Y1 float64
	X, Y   float64
}

// Path is a closed outline in view box units.
type Path []Seg

// SVG renders p as an SVG path "d" attribute.
func (p Path) SVG() string {
	var b strings.Builder
	for i, s := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(byte(s.Op))
		switch s.Op {
		case MoveTo, LineTo:
			writeNums(&b, s.X, s.Y)
		case QuadTo:
			writeNums(&b, s.X1, s.Y1, s.X, s.Y)
		}
	}
	return b.String()
}

func writeNums(b *strings.Builder, vs ...float64) {
	for _, v := range vs {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
}

// Mouth is the mouth outline. Lower is empty for the saka beak.
type Mouth struct {
	Upper, Lower Path
	Alpha        float64 // fill alpha over rgb(20,10,6), or (15,10,8) for saka
}

// MouthShape returns the mouth for an opening in [0, 1].
func MouthShape(mode string, open float64) Mouth {
	open = clamp(open, 0, 1)
	if mode == AvatarSaka {
		const scale = ViewBox / 100.0
		const yTop = 53.0
		yTip := yTop + lerp(10, 22, open)
		return Mouth{
			Upper: Path{
				{Op: MoveTo, X: 42 * scale, Y: yTop * scale},
				{Op: LineTo, X: 58 * scale, Y: yTop * scale},
				{Op: LineTo, X: 50 * scale, Y: yTip * scale},
				{Op: Close},
			},
			Alpha: 0.95,
		}
	}

	const cx, cy = 256.0, 338.0
	w := lerp(90, 135, open)
	h := lerp(2, 46, open)
	left, right := cx-w/2, cx+w/2
	bottom := cy + h
	dip := lerp(4, 14, open)
	bump := lerp(6, 18, open)

	return Mouth{
		// double bump with a soft dip in the middle
		Upper: Path{
			{Op: MoveTo, X: left, Y: cy},
			{Op: QuadTo, X1: left + w*0.18, Y1: cy - bump, X: cx - w*0.12, Y: cy - dip},
			{Op: QuadTo, X1: cx, Y1: cy, X: cx + w*0.12, Y: cy - dip},
			{Op: QuadTo, X1: right - w*0.18, Y1: cy - bump, X: right, Y: cy},
			{Op: Close},
		},
		Lower: Path{
			{Op: MoveTo, X: left, Y: cy},
			{Op: QuadTo, X1: cx, Y1: bottom, X: right, Y: cy},
			{Op: Close},
		},
		Alpha: lerp(0.12, 0.6, open),
	}
}

// Eyes holds the eye transform in pixels, shared by both eyes except for
// the mirrored pupil x offset.
type Eyes struct {
	Y          float64    `json:"y"`
	Scale      float64    `json:"scale"`
	PupilX     [2]float64 `json:"pupilX"` // left, right
	PupilY     float64    `json:"pupilY"`
	PupilScale float64    `json:"pupilScale"`
}

// EyeShape squints the eyes as the mouth opens and shrinks the pupils at
// high pitch. The saka pupils look up and outward with pitch instead.
func EyeShape(mode string, open, pitchT float64) Eyes {
	t := clamp(open, 0, 1)
	hi := 1 - clamp(pitchT, 0, 1)
	e := Eyes{
		Y:          lerp(0, -6, t),
		Scale:      lerp(1, 0.7, t*0.85),
		PupilY:     lerp(0, 4, t),
		PupilScale: lerp(1.15, 0.45, hi),
	}
	if mode == AvatarSaka {
		x := lerp(-3, 3, hi)
		e.PupilX = [2]float64{x, -x}
		e.PupilY = lerp(7, -7, hi)
	}
	return e
}

// Ears holds the cat ear transform.
type Ears struct {
	Lift    float64 `json:"lift"` // px
	Stretch float64 `json:"stretch"`
	RotL    float64 `json:"rotL"` // degrees
	RotR    float64 `json:"rotR"`
}

// EarShape perks the ears up at high pitch.
func EarShape(pitchT float64) Ears {
	hi := 1 - clamp(pitchT, 0, 1)
	tilt := lerp(0, 12, hi)
	return Ears{
		Lift:    lerp(0, -10, hi),
		Stretch: lerp(1, 1.45, hi),
		RotL:    -6 - tilt,
		RotR:    6 + tilt,
	}
}

var whiskerBase = [3]float64{-14, 0, 14}

// Whiskers returns the rotation in degrees of the three whiskers on each
// side. They twitch harder while sounding and at high pitch.
func Whiskers(nowMs, pitchT float64, on bool) (left, right [3]float64) {
	energy := 0.4
	if on {
		energy = 1
	}
	energy *= lerp(0.6, 1, 1-clamp(pitchT, 0, 1))
	for i := range whiskerBase {
		fi := float64(i)
		left[i] = whiskerBase[i] + math.Sin(nowMs*0.004+fi*1.7)*3*energy
		right[i] = whiskerBase[i] + math.Sin(nowMs*0.004+fi*1.9+1.4)*3*energy
	}
	return left, right
}

// Face bundles the avatar state for one frame.
type Face struct {
	Mode          string     `json:"mode"`
	MouthUpper    string     `json:"mouthUpper"`
	MouthLower    string     `json:"mouthLower"`
	MouthAlpha    float64    `json:"mouthAlpha"`
	Eyes          Eyes       `json:"eyes"`
	Ears          Ears       `json:"ears"`
	WhiskersLeft  [3]float64 `json:"whiskersLeft"`
	WhiskersRight [3]float64 `json:"whiskersRight"`
}

// FaceAt computes the whole face. Ears and whiskers stay at rest for saka.
func FaceAt(mode string, open, pitchT float64, on bool, nowMs float64) Face {
	if mode != AvatarSaka {
		mode = AvatarCat
	}
	m := MouthShape(mode, open)
	f := Face{
		Mode:       mode,
		MouthUpper: m.Upper.SVG(),
		MouthLower: m.Lower.SVG(),
		MouthAlpha: m.Alpha,
		Eyes:       EyeShape(mode, open, pitchT),
		Ears:       EarShape(1),
	}
	if mode == AvatarCat {
		f.Ears = EarShape(pitchT)
		f.WhiskersLeft, f.WhiskersRight = Whiskers(nowMs, pitchT, on)
	} else {
		f.WhiskersLeft, f.WhiskersRight = whiskerBase, whiskerBase
	}
	return f
}
