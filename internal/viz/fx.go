package viz

import (
	"math"
	"math/rand"
)

// Mode selects the particle effect.
type Mode string

const (
	ModeNone      Mode = "none"
	ModeFireworks Mode = "fireworks"
	ModeSparkles  Mode = "sparkles"
	ModeGlow      Mode = "glow"
)

var modes = []Mode{ModeNone, ModeFireworks, ModeSparkles, ModeGlow}

// Modes lists the effects in menu order.
func Modes() []Mode { return append([]Mode(nil), modes...) }

// ParseMode returns the named mode, or ModeNone for unknown names.
func ParseMode(s string) Mode {
	for _, m := range modes {
		if string(m) == s {
			return m
		}
	}
	return ModeNone
}

// Next cycles through the modes.
func (m Mode) Next() Mode {
	for i, x := range modes {
		if x == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return ModeNone
}

const (
	maxFireworks = 420
	maxSparkles  = 260
	gravity      = 160 // px/s²
	maxStep      = 0.05
)

// Particle is one firework spark or sparkle.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Age    float64
	Hue    float64
	Size   float64
}

// Sprite is a particle ready to draw.
type Sprite struct {
	X, Y, Size float64
	Hue        float64
	Sat, Light float64
	Alpha      float64
	Round      bool // circle of radius Size, else a Size square
}

// Glow is a radial gradient from Inner to R around (X, Y), fully
// transparent at R.
type Glow struct {
	X, Y     float64
	Inner, R float64
	Hue      float64
	Alpha    float64 // at Inner
}

// FX simulates the particle effects in canvas pixels. Times are in
// milliseconds on any monotonic clock. FX is not safe for concurrent use.
type FX struct {
	rng  *rand.Rand
	mode Mode
	w, h float64

	centerSet    bool
	cx, cy       float64
	last         float64
	started      bool
	lastFirework float64
	lastSparkle  float64
	pitchHi      float64
	playing      bool
	now          float64

	fireworks []Particle
	sparkles  []Particle
}

// NewFX returns an effect simulator drawing randomness from rng. A nil rng
// gets a fixed seed.
func NewFX(rng *rand.Rand) *FX {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &FX{rng: rng, mode: ModeNone}
}

func (f *FX) Mode() Mode { return f.mode }

// SetMode switches the effect. Particles of an inactive mode stay frozen
// until it is selected again.
func (f *FX) SetMode(m Mode) { f.mode = ParseMode(string(m)) }

// Resize sets the canvas size.
func (f *FX) Resize(w, h float64) {
	f.w, f.h = w, h
}

// SetGlowCenter places the glow, usually on the avatar head. Without it
// the glow sits at (w/2, 0.35h).
func (f *FX) SetGlowCenter(x, y float64) {
	f.cx, f.cy, f.centerSet = x, y, true
}

// Update advances the simulation to nowMs. pitchT is the ribbon position
// (0 high) and playing whether the gate is open.
func (f *FX) Update(nowMs, pitchT float64, playing bool) {
	dt := 0.0
	if f.started {
		dt = math.Min(maxStep, math.Max(0, nowMs-f.last)/1000)
	}
	f.started = true
	f.last = nowMs
	f.now = nowMs
	f.pitchHi = 1 - clamp(pitchT, 0, 1)
	f.playing = playing

	switch f.mode {
	case ModeFireworks:
		if playing && nowMs-f.lastFirework > lerp(1100, 520, f.pitchHi) {
			f.spawnFirework()
			f.lastFirework = nowMs
		}
		f.fireworks = step(f.fireworks, dt, gravity)
	case ModeSparkles:
		if playing && nowMs-f.lastSparkle > lerp(220, 90, f.pitchHi) {
			f.spawnSparkle()
			f.lastSparkle = nowMs
		}
		f.sparkles = step(f.sparkles, dt, 0)
	}
}

func step(ps []Particle, dt, g float64) []Particle {
	out := ps[:0]
	for _, p := range ps {
		p.Age += dt
		p.VY += g * dt
		p.X += p.VX * dt
		p.Y += p.VY * dt
		if p.Age/p.Life >= 1 {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (f *FX) spawnFirework() {
	if len(f.fireworks) > maxFireworks {
		return
	}
	r := f.rng
	cx := f.w * (0.2 + r.Float64()*0.6)
	cy := f.h * (0.08 + r.Float64()*0.32)
	count := 18 + r.Intn(10)
	hue := 20 + r.Float64()*40
	for i := 0; i < count; i++ {
		a := r.Float64() * 2 * math.Pi
		sp := 80 + r.Float64()*160
		f.fireworks = append(f.fireworks, Particle{
			X: cx, Y: cy,
			VX:   math.Cos(a) * sp,
			VY:   math.Sin(a) * sp,
			Life: 1 + r.Float64()*0.6,
			Hue:  hue,
			Size: 2 + r.Float64()*2,
		})
	}
}

func (f *FX) spawnSparkle() {
	if len(f.sparkles) > maxSparkles {
		return
	}
	r := f.rng
	f.sparkles = append(f.sparkles, Particle{
		X:    r.Float64() * f.w,
		Y:    f.h + 10,
		VX:   -10 + r.Float64()*20,
		VY:   -24 - r.Float64()*40,
		Life: 3 + r.Float64()*2.5,
		Size: 1 + r.Float64()*2,
	})
}

// Len returns the number of live particles of the active mode.
func (f *FX) Len() int {
	switch f.mode {
	case ModeFireworks:
		return len(f.fireworks)
	case ModeSparkles:
		return len(f.sparkles)
	}
	return 0
}

// Sprites appends the particles of the active mode to dst.
func (f *FX) Sprites(dst []Sprite) []Sprite {
	dst = dst[:0]
	switch f.mode {
	case ModeFireworks:
		for _, p := range f.fireworks {
			dst = append(dst, Sprite{
				X: p.X, Y: p.Y, Size: p.Size,
				Hue: p.Hue + f.pitchHi*40, Sat: 0.9, Light: 0.65,
				Alpha: math.Max(0, 1-p.Age/p.Life),
				Round: true,
			})
		}
	case ModeSparkles:
		for _, p := range f.sparkles {
			dst = append(dst, Sprite{
				X: p.X, Y: p.Y, Size: p.Size,
				Hue: 28 + f.pitchHi*35, Sat: 0.9, Light: 0.7,
				Alpha: 0.6 * math.Sin(p.Age/p.Life*math.Pi),
			})
		}
	}
	return dst
}

// Glow returns the glow gradient, or false outside glow mode.
func (f *FX) Glow() (Glow, bool) {
	if f.mode != ModeGlow {
		return Glow{}, false
	}
	base, swing := 0.25, 0.2
	if f.playing {
		base, swing = 0.6, 0.4
	}
	pulse := base + swing*math.Sin(f.now/900)
	r := math.Min(f.w, f.h) * (0.28 + 0.08*pulse)
	cx, cy := f.w*0.5, f.h*0.35
	if f.centerSet {
		cx, cy = f.cx, f.cy
	}
	return Glow{
		X: cx, Y: cy,
		Inner: r * 0.2, R: r,
		Hue:   25 + f.pitchHi*35,
		Alpha: 0.35 * pulse,
	}, true
}
