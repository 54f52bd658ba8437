package prefs

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/cwbudde/algo-otama/synth/voice"
)

// Keys used in the store.
const (
	KeyAvatarMode    = "otama_avatar_mode"
	KeySyllableStyle = "otama_syllable_style"
	KeySyllableOn    = "otama_syllable_on"
	KeyStylePreset   = "otama_style_preset"
	KeySyllRateHz    = "otama_syll_rate_hz"
	KeySyllGapMs     = "otama_syll_gap_ms"
	KeySyllArtic     = "otama_syll_artic"
	KeySyllableType  = "otama_syllable_type"
	KeyEyeColor      = "otama_eye_color"
	KeyStemPos       = "otama_stem_pos"
	KeyFXMode        = "otama_fx_mode"
)

// Avatar modes.
const (
	AvatarCat  = "cat"
	AvatarSaka = "saka"
)

// Defaults for values that are missing or malformed.
const (
	DefaultAvatar    = AvatarCat
	DefaultRateHz    = 7.5
	DefaultGapMs     = 25.0
	DefaultArtic     = 0.75
	DefaultEyeColor  = "#66c36a"
	DefaultFXMode    = "none"
	DefaultSyllables = true
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Preferences is a typed view over a Store.
type Preferences struct {
	store Store
}

// New wraps s. A nil store is replaced by an empty MemStore.
func New(s Store) *Preferences {
	if s == nil {
		s = NewMemStore(nil)
	}
	return &Preferences{store: s}
}

// Store returns the underlying store.
func (p *Preferences) Store() Store { return p.store }

// AvatarMode returns "cat" or "saka".
func (p *Preferences) AvatarMode() string {
	v, _ := p.store.Get(KeyAvatarMode)
	if v == AvatarCat || v == AvatarSaka {
		return v
	}
	return DefaultAvatar
}

func (p *Preferences) SetAvatarMode(mode string) error {
	if mode != AvatarSaka {
		mode = AvatarCat
	}
	return p.store.Set(KeyAvatarMode, mode)
}

// SyllableStyle returns the style the user picked, and false when none was
// picked yet.
func (p *Preferences) SyllableStyle() (string, bool) {
	v, ok := p.store.Get(KeySyllableStyle)
	if !ok || v == "" || !voice.HasStyle(v) {
		return "", false
	}
	return v, true
}

func (p *Preferences) SetSyllableStyle(name string) error {
	return p.store.Set(KeySyllableStyle, name)
}

// SyllablesOn reports whether syllables are enabled. Missing means on.
func (p *Preferences) SyllablesOn() bool {
	v, ok := p.store.Get(KeySyllableOn)
	if !ok {
		return DefaultSyllables
	}
	return v == "1"
}

func (p *Preferences) SetSyllablesOn(on bool) error {
	v := "0"
	if on {
		v = "1"
	}
	return p.store.Set(KeySyllableOn, v)
}

// StylePreset returns the stored voice preset, clamped to the known range.
func (p *Preferences) StylePreset() voice.Preset {
	v := p.number(KeyStylePreset, float64(voice.DefaultPreset))
	return voice.ClampPreset(int(math.Round(v)))
}

func (p *Preferences) SetStylePreset(preset voice.Preset) error {
	return p.store.Set(KeyStylePreset, strconv.Itoa(int(voice.ClampPreset(int(preset)))))
}

// SyllableParams returns the syllable rate (Hz), gap (ms) and articulation.
func (p *Preferences) SyllableParams() (rateHz, gapMs, artic float64) {
	return p.number(KeySyllRateHz, DefaultRateHz),
		p.number(KeySyllGapMs, DefaultGapMs),
		p.number(KeySyllArtic, DefaultArtic)
}

func (p *Preferences) SetSyllableParams(rateHz, gapMs, artic float64) error {
	for _, kv := range []struct {
		key string
		v   float64
	}{{KeySyllRateHz, rateHz}, {KeySyllGapMs, gapMs}, {KeySyllArtic, artic}} {
		if err := p.store.Set(kv.key, formatFloat(kv.v)); err != nil {
			return err
		}
	}
	return nil
}

// SyllableType returns the stored syllable type, or "na".
func (p *Preferences) SyllableType() string {
	v, _ := p.store.Get(KeySyllableType)
	if voice.HasType(v) {
		return v
	}
	return voice.TypeNa
}

func (p *Preferences) SetSyllableType(name string) error {
	return p.store.Set(KeySyllableType, name)
}

// EyeColor returns the iris colour as #rrggbb.
func (p *Preferences) EyeColor() string {
	v, _ := p.store.Get(KeyEyeColor)
	if hexColor.MatchString(v) {
		return v
	}
	return DefaultEyeColor
}

func (p *Preferences) SetEyeColor(c string) error {
	return p.store.Set(KeyEyeColor, c)
}

type stemPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StemPos returns the stem offset in pixels. Each coordinate falls back to
// zero on its own.
func (p *Preferences) StemPos() (x, y float64) {
	v, ok := p.store.Get(KeyStemPos)
	if !ok {
		return 0, 0
	}
	var raw map[string]any
	if json.Unmarshal([]byte(v), &raw) != nil {
		return 0, 0
	}
	if f, ok := raw["x"].(float64); ok {
		x = f
	}
	if f, ok := raw["y"].(float64); ok {
		y = f
	}
	return x, y
}

func (p *Preferences) SetStemPos(x, y float64) error {
	if !finite(x) || !finite(y) {
		return fmt.Errorf("prefs: stem position must be finite: %v,%v", x, y)
	}
	data, err := json.Marshal(stemPos{X: x, Y: y})
	if err != nil {
		return err
	}
	return p.store.Set(KeyStemPos, string(data))
}

// FXMode returns the stored particle effect name. Unknown names are left to
// the caller.
func (p *Preferences) FXMode() string {
	v, ok := p.store.Get(KeyFXMode)
	if !ok || v == "" {
		return DefaultFXMode
	}
	return v
}

func (p *Preferences) SetFXMode(mode string) error {
	return p.store.Set(KeyFXMode, mode)
}

func (p *Preferences) number(key string, def float64) float64 {
	v, ok := p.store.Get(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || !finite(f) {
		return def
	}
	return f
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
