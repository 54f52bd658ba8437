package instrument

import "github.com/cwbudde/algo-otama/synth/pitch"

// Params is the live instrument setting.
type Params struct {
	Volume     float64
	Octave     int // -1, 0, +1
	VibDepthHz float64
	VibRateHz  float64
	Drive      float64
	Wah        float64
	Range      float64 // pitch span, 0..1
	MouthOpen  float64 // after MouthAmp
	MouthRaw   float64
	MouthAmp   float64 // 0.5..1.6
	PitchT     float64 // 0 high, 1 low
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		Volume:     0.55,
		Octave:     0,
		VibDepthHz: 7.0,
		VibRateHz:  5.6,
		Drive:      0.25,
		Wah:        0.85,
		Range:      0.58,
		MouthOpen:  0.55,
		MouthRaw:   0.55,
		MouthAmp:   1.0,
		PitchT:     0.5,
	}
}

// Slider limits.
const (
	MinMouthAmp   = 0.5
	MaxMouthAmp   = 1.6
	MaxVibDepthHz = 30
	MaxVibRateHz  = 12
	MinSyllables  = 1
	MaxSyllables  = 8
)

// Frequency maps a ribbon position to Hz with the current range and octave.
func (p Params) Frequency(t float64) float64 {
	return pitch.Frequency(t, p.Range, p.Octave)
}
