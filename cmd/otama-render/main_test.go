package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cwbudde/algo-otama/internal/logging"
	"github.com/cwbudde/algo-otama/internal/output"
	"github.com/cwbudde/algo-otama/song"
)

func TestRenderAll(t *testing.T) {
	dir := t.TempDir()
	opts := output.DefaultRenderOptions()
	opts.SampleRate = 22050
	opts.Tail = 50 * time.Millisecond

	ids := []string{"arpeggio", "twinkle"}
	results, err := renderAll(context.Background(), logging.Discard(), song.Default(), ids, dir, opts, 2)
	if err != nil {
		t.Fatalf("renderAll: %v", err)
	}
	for i, r := range results {
		if r.id != ids[i] {
			t.Fatalf("result %d = %q", i, r.id)
		}
		info, err := os.Stat(filepath.Join(dir, ids[i]+".wav"))
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() != r.bytes || r.frames == 0 {
			t.Fatalf("%s: size %d, result %+v", r.id, info.Size(), r)
		}
	}
	if results[1].frames <= results[0].frames {
		t.Fatalf("twinkle (%d frames) not longer than arpeggio (%d)", results[1].frames, results[0].frames)
	}
}

func TestRenderAllUnknownSong(t *testing.T) {
	_, err := renderAll(context.Background(), logging.Discard(), song.Default(), []string{"nope"}, t.TempDir(), output.DefaultRenderOptions(), 1)
	if err == nil {
		t.Fatal("unknown song rendered")
	}
}
