package voice

// Preset is a style preset in {0, 1, 2}: subtle, normal, bold. It scales
// the formant voice and the avatar decoration together.
type Preset int

// DefaultPreset is the normal preset.
const DefaultPreset Preset = 1

// ClampPreset limits p to the valid presets.
func ClampPreset(p int) Preset {
	switch {
	case p < 0:
		return 0
	case p > 2:
		return 2
	}
	return Preset(p)
}

// VoiceMix returns the formant voice multiplier.
func (p Preset) VoiceMix() float64 {
	switch p {
	case 0:
		return 0.35
	case 2:
		return 1.25
	}
	return 1.0
}

// Look is the avatar decoration for a preset.
type Look struct {
	Pattern   float64 // fur pattern opacity
	Outline   float64 // outline width multiplier
	Highlight float64 // highlight opacity
	Vignette  float64 // vignette opacity
}

// Look returns the avatar decoration.
func (p Preset) Look() Look {
	switch p {
	case 0:
		return Look{Pattern: 0.10, Outline: 0.6, Highlight: 0.08, Vignette: 0.10}
	case 2:
		return Look{Pattern: 0.28, Outline: 1.1, Highlight: 0.16, Vignette: 0.18}
	}
	return Look{Pattern: 0.18, Outline: 0.9, Highlight: 0.12, Vignette: 0.14}
}
