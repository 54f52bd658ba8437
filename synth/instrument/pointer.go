package instrument

import "github.com/cwbudde/algo-otama/synth/pitch"

// RibbonDown starts a note at ribbon position t. A second pointer on the
// ribbon is ignored.
func (in *Instrument) RibbonDown(id int, t float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.ensureAudioLocked() || in.ribbon.id != noPointer {
		return
	}
	in.ribbon.id = id

	f := in.ribbonPitchLocked(t)
	in.engine.SetFrequency(f)
	if in.syllOn {
		vel := pitch.Clamp(in.params.Volume, 0.2, 1)
		in.engine.TriggerSyllable(in.engine.CurrentTime(), vel, ribbonSyllDur, in.syllCount, in.syllType)
	}
	in.engine.Gate(true)
	in.sounding = true
}

// RibbonMove glides the held note.
func (in *Instrument) RibbonMove(id int, t float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.ribbon.id != id || id == noPointer {
		return
	}
	in.engine.SetFrequency(in.ribbonPitchLocked(t))
}

// RibbonUp releases the note. Cancel and lost capture end the same way.
func (in *Instrument) RibbonUp(id int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.ribbon.id != id || id == noPointer {
		return
	}
	in.ribbon.id = noPointer
	in.engine.Gate(false)
	in.sounding = false
}

// ribbonPitchLocked updates pitch, cursor and mouth for t and returns the
// frequency.
func (in *Instrument) ribbonPitchLocked(t float64) float64 {
	t = pitch.Clamp(t, 0, 1)
	f := in.params.Frequency(t)
	in.lastFreq = f
	in.params.PitchT = t
	if in.mouth.id == noPointer {
		in.applyMouthLocked(pitch.Lerp(ribbonMouthLow, ribbonMouthHigh, 1-t), false)
	}
	return f
}

// HeadDown starts a mouth drag at y pixels.
func (in *Instrument) HeadDown(id int, y float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.ensureAudioLocked()
	if in.mouth.id != noPointer {
		return
	}
	in.mouth = mouthPointer{id: id, startY: y, startOpen: in.params.MouthRaw}
}

// HeadMove opens the mouth when dragging up and closes it when dragging
// down, 220 px for the full range.
func (in *Instrument) HeadMove(id int, y float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.mouth.id != id || id == noPointer {
		return
	}
	dy := y - in.mouth.startY
	in.applyMouthLocked(pitch.Clamp(in.mouth.startOpen-dy/headDragPx, 0, 1), false)
}

// HeadUp ends the head drag owned by id.
func (in *Instrument) HeadUp(id int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.mouth.id == id {
		in.mouth.id = noPointer
	}
}

// MouthDragging reports whether a head pointer is down.
func (in *Instrument) MouthDragging() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.mouth.id != noPointer
}

// SetConfigMode enables dragging the stem.
func (in *Instrument) SetConfigMode(on bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.config = on
	if !on {
		in.stem.id = noPointer
	}
}

// ConfigMode reports whether the stem can be dragged.
func (in *Instrument) ConfigMode() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.config
}

// StemPos returns the stem offset in pixels.
func (in *Instrument) StemPos() (x, y float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.stemX, in.stemY
}

// StemDown starts a stem drag. It reports false outside config mode.
func (in *Instrument) StemDown(id int, x, y float64) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.config || in.stem.id != noPointer {
		return false
	}
	in.stem = stemPointer{id: id, startX: x, startY: y, stemX: in.stemX, stemY: in.stemY}
	return true
}

// StemMove moves the stem with the pointer that started the drag.
func (in *Instrument) StemMove(id int, x, y float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.stem.id != id || id == noPointer {
		return
	}
	in.stemX = in.stem.stemX + x - in.stem.startX
	in.stemY = in.stem.stemY + y - in.stem.startY
}

// StemUp ends the drag and saves the position.
func (in *Instrument) StemUp(id int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.stem.id != id || id == noPointer {
		return
	}
	in.stem.id = noPointer
	in.persist(in.prefs.SetStemPos(in.stemX, in.stemY))
}
