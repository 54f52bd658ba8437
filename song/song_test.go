package song

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const small = `{
  "index": [{"id": "a", "title": "Song A"}, {"id": "b", "title": "歌 B"}],
  "songs": {
    "a": {"notes": [{"t": 0.5, "d": 0.25, "midi": 64}, {"t": 0, "d": 0.5, "midi": 60, "vel": 0.4}]},
    "b": {"notes": []}
  }
}`

func TestParseSortsAndIndexes(t *testing.T) {
	lib, err := Parse([]byte(small))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	entries := lib.Entries()
	if len(entries) != 2 || entries[0].ID != "a" || entries[1].Title != "歌 B" {
		t.Fatalf("Entries = %+v", entries)
	}
	s, err := lib.Song("a")
	if err != nil {
		t.Fatalf("Song: %v", err)
	}
	if s.Notes[0].MIDI != 60 || s.Notes[1].MIDI != 64 {
		t.Fatalf("notes not sorted by start: %+v", s.Notes)
	}
	if s.Title != "Song A" {
		t.Fatalf("Title = %q", s.Title)
	}
	if got := s.Duration(); got != 0.75 {
		t.Fatalf("Duration = %v, want 0.75", got)
	}
	if got := s.Notes[0].Velocity(); got != 0.4 {
		t.Fatalf("Velocity = %v, want 0.4", got)
	}
	if got := s.Notes[1].Velocity(); got != DefaultVelocity {
		t.Fatalf("default Velocity = %v", got)
	}
}

func TestParseScriptWrapper(t *testing.T) {
	lib, err := Parse([]byte("const SONGS_DATA = " + small + ";\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lib.Len() != 2 {
		t.Fatalf("Len = %d", lib.Len())
	}
}

func TestParseRejectsBadNotes(t *testing.T) {
	tests := []struct {
		name, notes, want string
	}{
		{"negative start", `[{"t": -1, "d": 1, "midi": 60}]`, "note 0"},
		{"negative duration", `[{"t": 0, "d": 1, "midi": 60}, {"t": 1, "d": -0.1, "midi": 60}]`, "note 1"},
		{"midi high", `[{"t": 0, "d": 1, "midi": 128}]`, "midi 128"},
		{"midi low", `[{"t": 0, "d": 1, "midi": -1}]`, "midi -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"index": [], "songs": {"x": {"notes": ` + tt.notes + `}}}`
			_, err := Parse([]byte(doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestParseRejectsDanglingIndex(t *testing.T) {
	_, err := Parse([]byte(`{"index": [{"id": "ghost", "title": "G"}], "songs": {}}`))
	if err == nil || !strings.Contains(err.Error(), "ghost") {
		t.Fatalf("err = %v", err)
	}
	if _, err := Parse([]byte(`not json`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestUnknownSong(t *testing.T) {
	lib, _ := Parse([]byte(small))
	_, err := lib.Song("zzz")
	if !errors.Is(err, ErrUnknownSong) {
		t.Fatalf("err = %v, want ErrUnknownSong", err)
	}
}

func TestVelocityClamped(t *testing.T) {
	hi, lo := 3.0, -2.0
	if (Note{Vel: &hi}).Velocity() != 1 || (Note{Vel: &lo}).Velocity() != 0 {
		t.Fatal("velocity not clamped")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.js")
	if err := os.WriteFile(path, []byte("window.SONGS_DATA = "+small), 0o600); err != nil {
		t.Fatal(err)
	}
	lib, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if lib.Len() != 2 {
		t.Fatalf("Len = %d", lib.Len())
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefaultLibrary(t *testing.T) {
	lib := Default()
	if lib.Len() == 0 {
		t.Fatal("bundled library is empty")
	}
	for _, e := range lib.Entries() {
		s, err := lib.Song(e.ID)
		if err != nil {
			t.Fatalf("Song(%q): %v", e.ID, err)
		}
		if len(s.Notes) == 0 || s.Duration() <= 0 {
			t.Fatalf("song %q is empty", e.ID)
		}
	}
}
