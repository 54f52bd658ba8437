// Command otama-render renders songs from the library to 16-bit mono WAV
// files. Timers run on the rendered audio clock, so the output does not
// depend on machine speed.
//
// Usage:
//
//	otama-render [flags] [song-id ...]
//
// Examples:
//
//	otama-render twinkle
//	otama-render -style cute -syllable ma -count 2 ode
//	otama-render -all -o out -jobs 4
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-otama/internal/config"
	"github.com/cwbudde/algo-otama/internal/logging"
	"github.com/cwbudde/algo-otama/internal/output"
	"github.com/cwbudde/algo-otama/song"
)

type result struct {
	id     string
	path   string
	frames int
	bytes  int64
}

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	v := config.DefaultVoice()
	v.RegisterFlags(flag.CommandLine)
	outDir := flag.String("o", ".", "output directory")
	all := flag.Bool("all", false, "render every song in the library")
	jobs := flag.Int("jobs", runtime.GOMAXPROCS(0), "songs rendered in parallel")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: otama-render [flags] [song-id ...]\n\n")
		fmt.Fprintf(os.Stderr, "Renders songs to <id>.wav in the output directory.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fatal(err)
	}
	if err := v.Validate(); err != nil {
		fatal(err)
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		fatal(err)
	}
	lib, err := cfg.Library()
	if err != nil {
		fatal(err)
	}

	ids := flag.Args()
	if *all {
		ids = nil
		for _, e := range lib.Entries() {
			ids = append(ids, e.ID)
		}
	}
	if len(ids) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := renderAll(ctx, logger, lib, ids, *outDir, cfg.RenderOptions(v), *jobs)
	if err != nil {
		fatal(err)
	}
	printResults(results, cfg.SampleRate)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

// renderAll renders ids into dir with at most jobs renders in flight.
// Results keep the order of ids.
func renderAll(ctx context.Context, logger *slog.Logger, lib *song.Library, ids []string, dir string, opts output.RenderOptions, jobs int) ([]result, error) {
	results := make([]result, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, jobs))
	for i, id := range ids {
		g.Go(func() error {
			s, err := lib.Song(id)
			if err != nil {
				return err
			}
			start := time.Now()
			path := filepath.Join(dir, id+".wav")
			frames, err := renderFile(ctx, s, path, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			logger.Debug("rendered", slog.String("song", id), slog.Duration("elapsed", time.Since(start)))
			results[i] = result{id: id, path: path, frames: frames, bytes: output.WAVSize(frames)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func renderFile(ctx context.Context, s *song.Song, path string, opts output.RenderOptions) (int, error) {
	pcm, err := output.RenderSong(ctx, s, opts)
	if err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if err := output.WriteWAV(f, pcm, opts.SampleRate); err != nil {
		f.Close()
		return 0, err
	}
	return len(pcm), f.Close()
}

func printResults(results []result, sampleRate int) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Song\tLength\tSize\tFile\n")
	fmt.Fprintf(tw, "----\t------\t----\t----\n")
	var total int64
	for _, r := range results {
		length := time.Duration(float64(r.frames) / float64(sampleRate) * float64(time.Second))
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.id,
			durafmt.Parse(length.Round(10*time.Millisecond)).LimitFirstN(2),
			humanize.Bytes(uint64(r.bytes)),
			r.path,
		)
		total += r.bytes
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
		return
	}
	if len(results) > 1 {
		fmt.Printf("\n%d files, %s\n", len(results), humanize.Bytes(uint64(total)))
	}
}
