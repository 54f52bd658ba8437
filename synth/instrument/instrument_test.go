package instrument

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cwbudde/algo-otama/internal/testutil"
	"github.com/cwbudde/algo-otama/prefs"
	"github.com/cwbudde/algo-otama/song"
	"github.com/cwbudde/algo-otama/synth/engine"
	"github.com/cwbudde/algo-otama/synth/pitch"
	"github.com/cwbudde/algo-otama/synth/voice"
)

const eps = 1e-9

func newTestInstrument(t *testing.T, stored map[string]string) (*Instrument, *engine.Engine, *prefs.MemStore) {
	t.Helper()
	e, err := engine.New(48000)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	store := prefs.NewMemStore(stored)
	return New(e, WithPreferences(prefs.New(store))), e, store
}

func TestDefaults(t *testing.T) {
	in, e, _ := newTestInstrument(t, nil)
	if in.Params() != DefaultParams() {
		t.Fatalf("params = %+v", in.Params())
	}
	if in.Readout() != "—" {
		t.Fatalf("idle readout = %q", in.Readout())
	}
	if e.Ready() {
		t.Fatal("engine initialized before any gesture")
	}
	s := e.Settings()
	if s.Volume != 0.55 || s.VibDepthHz != 7 || s.VibRateHz != 5.6 || s.Drive != 0.25 || s.Wah != 0.85 {
		t.Fatalf("engine settings = %+v", s)
	}
	testutil.RequireNear(t, "mouth", e.MouthOpen(), 0.55, eps)
}

func TestRibbonPlaysNote(t *testing.T) {
	in, e, _ := newTestInstrument(t, nil)
	in.RibbonDown(1, 0.5)
	if !e.Ready() || !e.IsOn() {
		t.Fatalf("ready %v on %v after ribbon down", e.Ready(), e.IsOn())
	}
	want := pitch.Frequency(0.5, 0.58, 0)
	testutil.RequireNear(t, "frequency", e.TargetFrequency(), want, eps)
	testutil.RequireNear(t, "pitchT", in.Params().PitchT, 0.5, eps)
	testutil.RequireNear(t, "mouth", e.MouthOpen(), 0.575, eps)

	wantText := fmt.Sprintf("freq: %.1f Hz   mouth: 0.57   oct: 0", want)
	if got := in.Readout(); got != wantText && got != strings.Replace(wantText, "0.57", "0.58", 1) {
		t.Fatalf("readout = %q", got)
	}

	in.RibbonMove(1, 0)
	testutil.RequireNear(t, "top frequency", e.TargetFrequency(), pitch.Frequency(0, 0.58, 0), eps)
	testutil.RequireNear(t, "top mouth", e.MouthOpen(), 0.9, eps)

	in.RibbonUp(1)
	if e.IsOn() {
		t.Fatal("gate still open after release")
	}
	if in.Readout() != "—" {
		t.Fatalf("readout after release = %q", in.Readout())
	}
}

func TestSecondRibbonPointerIgnored(t *testing.T) {
	in, e, _ := newTestInstrument(t, nil)
	in.RibbonDown(1, 0.5)
	f := e.TargetFrequency()
	in.RibbonDown(2, 0.9)
	in.RibbonMove(2, 0.9)
	in.RibbonUp(2)
	if !e.IsOn() || e.TargetFrequency() != f {
		t.Fatal("second pointer took over the ribbon")
	}
	in.RibbonUp(1)
	if e.IsOn() {
		t.Fatal("gate open after owner released")
	}
}

func TestMouthDragWinsOverRibbon(t *testing.T) {
	in, e, _ := newTestInstrument(t, nil)
	in.HeadDown(7, 300)
	if !in.MouthDragging() {
		t.Fatal("head drag not active")
	}
	in.RibbonDown(1, 0)
	testutil.RequireNear(t, "mouth during drag", e.MouthOpen(), 0.55, eps)

	in.HeadMove(7, 300-44) // 44/220 = 0.2 more open
	testutil.RequireNear(t, "dragged mouth", in.Params().MouthRaw, 0.75, eps)
	in.HeadMove(7, 1000)
	testutil.RequireNear(t, "closed mouth", in.Params().MouthRaw, 0, eps)

	in.HeadUp(7)
	in.RibbonMove(1, 1)
	testutil.RequireNear(t, "ribbon mouth", e.MouthOpen(), 0.25, eps)
}

func TestMouthAmpScales(t *testing.T) {
	in, e, _ := newTestInstrument(t, nil)
	in.SetMouthAmp(1.6)
	testutil.RequireNear(t, "scaled", e.MouthOpen(), 0.88, eps)
	in.ApplyMouthOpen(0.9, true)
	testutil.RequireNear(t, "clamped", e.MouthOpen(), 1, eps)
	if in.Params().MouthRaw != 0.9 {
		t.Fatalf("raw = %v", in.Params().MouthRaw)
	}
	in.SetMouthAmp(0)
	if in.Params().MouthAmp != MinMouthAmp {
		t.Fatalf("amp = %v", in.Params().MouthAmp)
	}
}

func TestOctaveDoublesRibbon(t *testing.T) {
	in, e, _ := newTestInstrument(t, nil)
	in.RibbonDown(1, 0.3)
	base := e.TargetFrequency()
	in.RibbonUp(1)
	in.SetOctave(5)
	if in.Params().Octave != 1 {
		t.Fatalf("octave = %d", in.Params().Octave)
	}
	in.RibbonDown(1, 0.3)
	testutil.RequireNear(t, "octave up", e.TargetFrequency(), 2*base, 1e-9)
}

func TestAvatarDecidesStyle(t *testing.T) {
	in, e, store := newTestInstrument(t, nil)
	in.EnsureAudio()
	if in.SyllableStyle() != voice.StyleOff || e.SyllableStyle() != voice.StyleOff {
		t.Fatalf("cat style = %q / %q", in.SyllableStyle(), e.SyllableStyle())
	}
	in.ToggleAvatar()
	if in.AvatarMode() != prefs.AvatarSaka || e.SyllableStyle() != "cute" {
		t.Fatalf("saka: avatar %q style %q", in.AvatarMode(), e.SyllableStyle())
	}
	if v, _ := store.Get(prefs.KeyAvatarMode); v != prefs.AvatarSaka {
		t.Fatalf("stored avatar = %q", v)
	}

	in.SetSyllableStyle("robot")
	in.ToggleAvatar()
	if e.SyllableStyle() != "robot" {
		t.Fatalf("user style replaced by avatar: %q", e.SyllableStyle())
	}

	in.SetSyllablesOn(false)
	if e.SyllableStyle() != voice.StyleOff {
		t.Fatalf("syllables off but style %q", e.SyllableStyle())
	}
	if in.Player().Syllables().EffectiveStyle() != voice.StyleOff {
		t.Fatal("player still uses a syllable style")
	}
}

func TestStoredPreferencesApplied(t *testing.T) {
	in, e, _ := newTestInstrument(t, map[string]string{
		prefs.KeyAvatarMode:   "saka",
		prefs.KeyStylePreset:  "2",
		prefs.KeySyllRateHz:   "20",
		prefs.KeySyllableType: "shi",
		prefs.KeyStemPos:      `{"x":3,"y":-4}`,
	})
	if in.SyllableStyle() != "cute" {
		t.Fatalf("style = %q", in.SyllableStyle())
	}
	if in.StylePreset() != 2 || in.Snapshot().Look.Outline != 1.1 {
		t.Fatalf("preset = %v", in.StylePreset())
	}
	if r, _, _ := e.SyllableParams(); r != 12 {
		t.Fatalf("engine rate = %v, want clamped 12", r)
	}
	if x, y := in.StemPos(); x != 3 || y != -4 {
		t.Fatalf("stem = %v,%v", x, y)
	}
	if in.Player().Syllables().Type != "shi" {
		t.Fatalf("player type = %q", in.Player().Syllables().Type)
	}
}

func TestSyllableParamsPersistClamped(t *testing.T) {
	in, _, store := newTestInstrument(t, nil)
	in.SetSyllableParams(1, 100, 0.5)
	r, g, a := in.SyllableParams()
	if r != 3 || g != 60 || a != 0.5 {
		t.Fatalf("params = %v %v %v", r, g, a)
	}
	if v, _ := store.Get(prefs.KeySyllGapMs); v != "60" {
		t.Fatalf("stored gap = %q", v)
	}
}

func TestStemDrag(t *testing.T) {
	in, _, store := newTestInstrument(t, nil)
	if in.StemDown(1, 0, 0) {
		t.Fatal("stem drag outside config mode")
	}
	in.SetConfigMode(true)
	if !in.StemDown(1, 10, 10) {
		t.Fatal("stem drag refused in config mode")
	}
	in.StemMove(1, 25, 5)
	if x, y := in.StemPos(); x != 15 || y != -5 {
		t.Fatalf("stem = %v,%v", x, y)
	}
	if _, ok := store.Get(prefs.KeyStemPos); ok {
		t.Fatal("saved before the drag ended")
	}
	in.StemUp(1)
	if v, _ := store.Get(prefs.KeyStemPos); v != `{"x":15,"y":-5}` {
		t.Fatalf("stored stem = %q", v)
	}
}

func TestListenerFollowsPlayback(t *testing.T) {
	in, _, _ := newTestInstrument(t, nil)
	in.NoteStarted(440, 0.9)
	if got := in.Readout(); got != "freq: 440.0 Hz   mouth: 0.90   oct: 0" {
		t.Fatalf("readout = %q", got)
	}
	testutil.RequireNear(t, "pitchT", in.Params().PitchT, pitch.Position(440, 0.58, 0), eps)
	in.NoteEnded()
	testutil.RequireNear(t, "relaxed", in.Params().MouthRaw, 0.55, eps)
	in.Stopped()
	if in.Readout() != "—" {
		t.Fatalf("readout after stop = %q", in.Readout())
	}
}

func TestResetAndStopAll(t *testing.T) {
	in, e, _ := newTestInstrument(t, nil)
	in.SetVolume(0.9)
	in.SetDrive(2)
	in.RibbonDown(1, 0.2)
	in.StopAll()
	if e.IsOn() {
		t.Fatal("gate open after StopAll")
	}
	if e.TargetFrequency() != 220 {
		t.Fatalf("frequency = %v", e.TargetFrequency())
	}
	testutil.RequireNear(t, "mouth", e.MouthOpen(), 0.55, eps)

	if in.Params().Drive != 1 {
		t.Fatalf("drive not clamped: %v", in.Params().Drive)
	}
	in.Reset()
	if in.Params() != DefaultParams() {
		t.Fatalf("params after Reset = %+v", in.Params())
	}
	if e.Settings().Volume != 0.55 {
		t.Fatalf("engine volume = %v", e.Settings().Volume)
	}
}

func TestPlaySong(t *testing.T) {
	in, e, _ := newTestInstrument(t, nil)
	s, err := song.Default().Song("arpeggio")
	if err != nil {
		t.Fatal(err)
	}
	if err := in.PlaySong(s, 2, false); err != nil {
		t.Fatalf("PlaySong: %v", err)
	}
	block := make([]float32, 480)
	sawNote := false
	for i := 0; i < 200; i++ { // 2 s
		e.Render(block)
		if in.Readout() != "—" {
			sawNote = true
		}
	}
	if !sawNote {
		t.Fatal("readout never followed the song")
	}
	if in.Snapshot().Playing {
		t.Fatal("still playing after the song")
	}
	if in.Readout() != "—" {
		t.Fatalf("readout after the song = %q", in.Readout())
	}
}

func ExampleParams_Frequency() {
	p := DefaultParams()
	fmt.Printf("%.0f\n", p.Frequency(0.5))
	// Output: 330
}
