// Package song loads the song library played by the automatic player.
//
// A library is JSON of the form
//
//	{"index": [{"id": "...", "title": "..."}],
//	 "songs": {"<id>": {"notes": [{"t": 0, "d": 0.5, "midi": 60, "vel": 0.9}]}}}
//
// Times are in seconds at speed 1. The same document wrapped in a script
// assignment such as `const SONGS_DATA = {...};` is accepted too.
package song

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

// ErrUnknownSong is returned when a song id is not in the library.
var ErrUnknownSong = errors.New("song: unknown song")

// DefaultVelocity is used for notes without a velocity.
const DefaultVelocity = 0.9

// Note is one timed pitch.
type Note struct {
	T    float64  `json:"t"`
	D    float64  `json:"d"`
	MIDI int      `json:"midi"`
	Vel  *float64 `json:"vel,omitempty"`
}

// Velocity returns the note velocity clamped to [0, 1], or DefaultVelocity
// when none was given.
func (n Note) Velocity() float64 {
	if n.Vel == nil {
		return DefaultVelocity
	}
	return min(1, max(0, *n.Vel))
}

// End returns the release time of the note.
func (n Note) End() float64 { return n.T + n.D }

// Song is a validated note sequence ordered by start time.
type Song struct {
	ID    string
	Title string
	Notes []Note
}

// Duration returns the latest note end, or 0 for an empty song.
func (s *Song) Duration() float64 {
	var d float64
	for _, n := range s.Notes {
		d = max(d, n.End())
	}
	return d
}

// Entry is one row of the library index.
type Entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Library is an immutable set of songs with a display order.
type Library struct {
	index []Entry
	songs map[string]*Song
}

type document struct {
	Index []Entry `json:"index"`
	Songs map[string]struct {
		Notes []Note `json:"notes"`
	} `json:"songs"`
}

//go:embed songs.json
var defaultLibrary []byte

// Default returns the library bundled with the instrument.
func Default() *Library {
	lib, err := Parse(defaultLibrary)
	if err != nil {
		panic(fmt.Sprintf("song: bundled library: %v", err))
	}
	return lib
}

// LoadFile reads a library from path.
func LoadFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("song: %w", err)
	}
	defer f.Close()
	lib, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}

// Load reads a library from r.
func Load(r io.Reader) (*Library, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("song: read: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a library document.
func Parse(data []byte) (*Library, error) {
	data = unwrapScript(data)

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("song: decode: %w", err)
	}

	lib := &Library{songs: make(map[string]*Song, len(doc.Songs))}
	titles := make(map[string]string, len(doc.Index))
	for _, e := range doc.Index {
		titles[e.ID] = e.Title
	}
	for id, raw := range doc.Songs {
		notes := append([]Note(nil), raw.Notes...)
		for i, n := range notes {
			if err := validateNote(n); err != nil {
				return nil, fmt.Errorf("song %q note %d: %w", id, i, err)
			}
		}
		sort.SliceStable(notes, func(i, j int) bool { return notes[i].T < notes[j].T })
		title, ok := titles[id]
		if !ok {
			title = id
		}
		lib.songs[id] = &Song{ID: id, Title: title, Notes: notes}
	}
	for _, e := range doc.Index {
		if _, ok := lib.songs[e.ID]; !ok {
			return nil, fmt.Errorf("song: index entry %q has no song", e.ID)
		}
		lib.index = append(lib.index, e)
	}
	return lib, nil
}

func validateNote(n Note) error {
	switch {
	case n.T < 0:
		return fmt.Errorf("negative start %g", n.T)
	case n.D < 0:
		return fmt.Errorf("negative duration %g", n.D)
	case n.MIDI < 0 || n.MIDI > 127:
		return fmt.Errorf("midi %d outside 0..127", n.MIDI)
	}
	return nil
}

// unwrapScript strips a `const X = ...;` style wrapper around the object.
func unwrapScript(data []byte) []byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] == '{' {
		return trimmed
	}
	start := bytes.IndexByte(trimmed, '{')
	end := bytes.LastIndexByte(trimmed, '}')
	if start < 0 || end < start {
		return trimmed
	}
	return trimmed[start : end+1]
}

// Song returns the song with the given id.
func (l *Library) Song(id string) (*Song, error) {
	s, ok := l.songs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSong, id)
	}
	return s, nil
}

// Entries returns the index in display order.
func (l *Library) Entries() []Entry {
	return append([]Entry(nil), l.index...)
}

// Len returns the number of indexed songs.
func (l *Library) Len() int { return len(l.index) }
