package instrument

import (
	"github.com/cwbudde/algo-otama/prefs"
	"github.com/cwbudde/algo-otama/synth/pitch"
	"github.com/cwbudde/algo-otama/synth/player"
	"github.com/cwbudde/algo-otama/synth/voice"
)

// SetVolume sets the master level, clamped to [0, 1].
func (in *Instrument) SetVolume(v float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.params.Volume = pitch.Clamp(v, 0, 1)
	in.engine.SetVolume(in.params.Volume)
}

// SetVibrato sets vibrato depth and rate in Hz, clamped to the slider ranges.
func (in *Instrument) SetVibrato(depthHz, rateHz float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.params.VibDepthHz = pitch.Clamp(depthHz, 0, MaxVibDepthHz)
	in.params.VibRateHz = pitch.Clamp(rateHz, 0, MaxVibRateHz)
	in.engine.SetVibrato(in.params.VibDepthHz, in.params.VibRateHz)
}

// SetDrive sets the waveshaper drive, clamped to [0, 1].
func (in *Instrument) SetDrive(d float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.params.Drive = pitch.Clamp(d, 0, 1)
	in.engine.SetDrive(in.params.Drive)
}

// SetWah sets the wah strength; the mouth filter follows.
func (in *Instrument) SetWah(w float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.params.Wah = pitch.Clamp(w, 0, 1)
	in.engine.SetWah(in.params.Wah)
}

// SetMouthAmp rescales the current raw opening.
func (in *Instrument) SetMouthAmp(a float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.params.MouthAmp = pitch.Clamp(a, MinMouthAmp, MaxMouthAmp)
	in.applyMouthLocked(in.params.MouthRaw, false)
}

// SetRange sets the pitch span for later ribbon positions.
func (in *Instrument) SetRange(r float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.params.Range = pitch.Clamp(r, 0, 1)
}

// SetOctave shifts later ribbon notes by o octaves, clamped to -1..1.
func (in *Instrument) SetOctave(o int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.params.Octave = min(1, max(-1, o))
}

// AvatarMode returns "cat" or "saka".
func (in *Instrument) AvatarMode() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.avatar
}

// SetAvatarMode switches the avatar. Without a user-picked style the
// voice follows it: saka sings cute, cat stays plain.
func (in *Instrument) SetAvatarMode(mode string) {
	in.mu.Lock()
	if mode != prefs.AvatarSaka {
		mode = prefs.AvatarCat
	}
	in.avatar = mode
	in.persist(in.prefs.SetAvatarMode(mode))
	in.pushSyllablesLocked()
	syll := in.syllablesLocked()
	in.mu.Unlock()
	in.player.SetSyllables(syll)
}

// ToggleAvatar flips between cat and saka.
func (in *Instrument) ToggleAvatar() {
	next := prefs.AvatarSaka
	if in.AvatarMode() == prefs.AvatarSaka {
		next = prefs.AvatarCat
	}
	in.SetAvatarMode(next)
}

// SyllableStyle returns the selected style, user-picked or derived from the
// avatar.
func (in *Instrument) SyllableStyle() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.selectedStyleLocked()
}

// SetSyllableStyle picks a style and remembers that the user chose it.
func (in *Instrument) SetSyllableStyle(name string) {
	in.mu.Lock()
	if !voice.HasStyle(name) {
		name = voice.StyleOff
	}
	in.style = name
	in.styleUserSet = true
	in.persist(in.prefs.SetSyllableStyle(name))
	in.pushSyllablesLocked()
	syll := in.syllablesLocked()
	in.mu.Unlock()
	in.player.SetSyllables(syll)
}

// SyllablesOn reports whether songs are sung in syllables.
func (in *Instrument) SyllablesOn() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.syllOn
}

// SetSyllablesOn toggles syllables and persists the choice.
func (in *Instrument) SetSyllablesOn(on bool) {
	in.mu.Lock()
	in.syllOn = on
	in.persist(in.prefs.SetSyllablesOn(on))
	in.pushSyllablesLocked()
	syll := in.syllablesLocked()
	in.mu.Unlock()
	in.player.SetSyllables(syll)
}

// SetSyllableCount sets pulses per note, 1..8.
func (in *Instrument) SetSyllableCount(n int) {
	in.mu.Lock()
	in.syllCount = min(MaxSyllables, max(MinSyllables, n))
	syll := in.syllablesLocked()
	in.mu.Unlock()
	in.player.SetSyllables(syll)
}

// SetSyllableType selects the sung syllable. Unknown names fall back to "na".
func (in *Instrument) SetSyllableType(name string) {
	in.mu.Lock()
	if !voice.HasType(name) {
		name = voice.TypeNa
	}
	in.syllType = name
	in.persist(in.prefs.SetSyllableType(name))
	syll := in.syllablesLocked()
	in.mu.Unlock()
	in.player.SetSyllables(syll)
}

// SyllableType returns the selected syllable.
func (in *Instrument) SyllableType() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.syllType
}

// SyllableCount returns the pulses per note.
func (in *Instrument) SyllableCount() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.syllCount
}

// SetStylePreset changes the voice strength and the avatar look.
func (in *Instrument) SetStylePreset(p voice.Preset) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.preset = voice.ClampPreset(int(p))
	in.engine.SetVoiceStylePreset(in.preset)
	in.persist(in.prefs.SetStylePreset(in.preset))
}

// StylePreset returns the voice strength preset.
func (in *Instrument) StylePreset() voice.Preset {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.preset
}

// SetSyllableParams sets the pulse rate, gap and articulation.
func (in *Instrument) SetSyllableParams(rateHz, gapMs, artic float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.engine.SetSyllableParams(rateHz, gapMs, artic)
	in.rateHz, in.gapMs, in.artic = in.engine.SyllableParams()
	in.persist(in.prefs.SetSyllableParams(in.rateHz, in.gapMs, in.artic))
}

// SyllableParams returns the clamped pulse rate, gap and articulation.
func (in *Instrument) SyllableParams() (rateHz, gapMs, artic float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.rateHz, in.gapMs, in.artic
}

func (in *Instrument) selectedStyleLocked() string {
	if in.styleUserSet {
		return in.style
	}
	if in.avatar == prefs.AvatarSaka {
		return "cute"
	}
	return voice.StyleOff
}

// engineStyleLocked is the style the engine should run with.
func (in *Instrument) engineStyleLocked() string {
	if !in.syllOn {
		return voice.StyleOff
	}
	return in.selectedStyleLocked()
}

func (in *Instrument) pushSyllablesLocked() {
	if in.engine.Ready() {
		in.engine.SetSyllableStyle(in.engineStyleLocked())
	}
}

func (in *Instrument) syllablesLocked() player.Syllables {
	return player.Syllables{
		Enabled: in.syllOn,
		Style:   in.selectedStyleLocked(),
		Count:   in.syllCount,
		Type:    in.syllType,
	}
}
