package voice

// SyllableStyle shapes the formant voice that articulates syllables.
type SyllableStyle struct {
	Name       string
	DryMix     float64 // level of the unformanted path
	FormantMix float64 // peak level of the formant path
	Sustain    float64 // formant level after the decay, relative to FormantMix
	AF1, AF2   float64 // open vowel formants, Hz
	NF1, NF2   float64 // nasal onset formants, Hz
	Q          float64 // formant band-pass Q
	Glide      float64 // onset-to-vowel glide time, seconds
	NoiseGain  float64
}

// StyleOff is the neutral style with no formant voice.
const StyleOff = "off"

var styleOrder = []string{StyleOff, "soft", "cute", "robot", "opera"}

var styles = map[string]SyllableStyle{
	StyleOff: {Name: StyleOff, DryMix: 1.0, FormantMix: 0, Sustain: 0, AF1: 800, AF2: 1400, NF1: 300, NF2: 1000, Q: 8, Glide: 0.04, NoiseGain: 0},
	"soft":   {Name: "soft", DryMix: 0.9, FormantMix: 0.45, Sustain: 0.65, AF1: 650, AF2: 1200, NF1: 300, NF2: 1000, Q: 6, Glide: 0.05, NoiseGain: 0},
	"cute":   {Name: "cute", DryMix: 0.6, FormantMix: 0.8, Sustain: 0.75, AF1: 750, AF2: 1550, NF1: 320, NF2: 1050, Q: 8, Glide: 0.04, NoiseGain: 0.015},
	"robot":  {Name: "robot", DryMix: 0.5, FormantMix: 0.9, Sustain: 0.7, AF1: 500, AF2: 1100, NF1: 250, NF2: 900, Q: 12, Glide: 0.025, NoiseGain: 0.03},
	"opera":  {Name: "opera", DryMix: 0.75, FormantMix: 0.7, Sustain: 0.7, AF1: 900, AF2: 1400, NF1: 320, NF2: 1000, Q: 5, Glide: 0.06, NoiseGain: 0},
}

// Style returns the named style, or the off style for unknown names.
func Style(name string) SyllableStyle {
	if s, ok := styles[name]; ok {
		return s
	}
	return styles[StyleOff]
}

// HasStyle reports whether name is a known style.
func HasStyle(name string) bool {
	_, ok := styles[name]
	return ok
}

// StyleNames lists the styles in display order.
func StyleNames() []string {
	return append([]string(nil), styleOrder...)
}

// VowelFormant holds the first three formant frequencies of a vowel in Hz.
type VowelFormant struct {
	F1, F2, F3 float64
}

var vowels = map[string]VowelFormant{
	"a": {800, 1150, 2900},
	"i": {300, 2200, 3000},
	"u": {350, 600, 2700},
	"o": {450, 800, 2830},
	"e": {400, 2000, 2600},
}

// Vowel returns the formants of v, or those of "a" for unknown vowels.
func Vowel(v string) VowelFormant {
	if f, ok := vowels[v]; ok {
		return f
	}
	return vowels["a"]
}

// NoiseBurst is a band-passed noise click that marks a consonant.
type NoiseBurst struct {
	Center   float64 // Hz
	Q        float64
	Gain     float64
	Duration float64 // seconds
}

// SyllableType pairs a consonant onset with a vowel.
type SyllableType struct {
	Name      string
	Vowel     string
	Consonant string
	Noise     *NoiseBurst
}

// Nasal reports whether the consonant is n or m.
func (s SyllableType) Nasal() bool {
	return s.Consonant == "n" || s.Consonant == "m"
}

// TypeNa is the default syllable type.
const TypeNa = "na"

var typeOrder = []string{TypeNa, "da", "sa", "shi", "ma", "la"}

var types = map[string]SyllableType{
	TypeNa: {Name: TypeNa, Vowel: "a", Consonant: "n"},
	"da":   {Name: "da", Vowel: "a", Consonant: "d", Noise: &NoiseBurst{Center: 2200, Q: 8, Gain: 0.07, Duration: 0.03}},
	"sa":   {Name: "sa", Vowel: "a", Consonant: "s", Noise: &NoiseBurst{Center: 7200, Q: 8, Gain: 0.08, Duration: 0.06}},
	"shi":  {Name: "shi", Vowel: "i", Consonant: "sh", Noise: &NoiseBurst{Center: 3800, Q: 7, Gain: 0.07, Duration: 0.07}},
	"ma":   {Name: "ma", Vowel: "a", Consonant: "m"},
	"la":   {Name: "la", Vowel: "e", Consonant: "l"},
}

// Type returns the named syllable type, or "na" for unknown names.
func Type(name string) SyllableType {
	if s, ok := types[name]; ok {
		return s
	}
	return types[TypeNa]
}

// HasType reports whether name is a known syllable type.
func HasType(name string) bool {
	_, ok := types[name]
	return ok
}

// TypeNames lists the syllable types in display order.
func TypeNames() []string {
	return append([]string(nil), typeOrder...)
}
