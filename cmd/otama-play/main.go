// Command otama-play plays songs from the library on the default audio
// output.
//
// Usage:
//
//	otama-play [flags] song-id
//	otama-play -list
//
// Examples:
//
//	otama-play twinkle
//	otama-play -loop -speed 1.25 -style cute -syllable la -count 2 ode
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/hako/durafmt"
	"golang.org/x/text/width"

	"github.com/cwbudde/algo-otama/internal/config"
	"github.com/cwbudde/algo-otama/internal/device"
	"github.com/cwbudde/algo-otama/internal/logging"
	"github.com/cwbudde/algo-otama/song"
	"github.com/cwbudde/algo-otama/synth/engine"
	"github.com/cwbudde/algo-otama/synth/player"
	"github.com/cwbudde/algo-otama/synth/voice"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	v := config.DefaultVoice()
	v.RegisterFlags(flag.CommandLine)
	list := flag.Bool("list", false, "list the songs in the library")
	loop := flag.Bool("loop", false, "repeat until interrupted")
	quiet := flag.Bool("q", false, "do not print progress")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: otama-play [flags] song-id\n\n")
		fmt.Fprintf(os.Stderr, "Plays a song from the library. Ctrl-C stops.\n\n")
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

	if *list {
		printList(os.Stdout, lib)
		return
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	s, err := lib.Song(flag.Arg(0))
	if err != nil {
		fatal(fmt.Errorf("%w (use -list to see available)", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var progress io.Writer = os.Stdout
	if *quiet {
		progress = io.Discard
	}
	if err := play(ctx, logger, cfg, v, s, *loop, progress); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

// stopSignal closes done when the player stops.
type stopSignal struct {
	done chan struct{}
	once sync.Once
}

func (s *stopSignal) NoteStarted(float64, float64) {}
func (s *stopSignal) NoteEnded()                   {}
func (s *stopSignal) Stopped()                     { s.once.Do(func() { close(s.done) }) }

func play(ctx context.Context, logger *slog.Logger, cfg config.Config, v config.Voice, s *song.Song, loop bool, out io.Writer) error {
	dev, err := device.Open(cfg.SampleRate, cfg.Buffer)
	if err != nil {
		return err
	}
	defer dev.Close()

	e, err := engine.New(float64(cfg.SampleRate))
	if err != nil {
		return err
	}
	e.SetVoiceStylePreset(voice.ClampPreset(v.Preset))
	if err := e.Init(); err != nil {
		return err
	}
	if err := e.SetLoFi(v.Crush); err != nil {
		return err
	}

	sig := &stopSignal{done: make(chan struct{})}
	p := player.New(e, player.AudioClock(e), player.WithSyllables(v.Syllables()), player.WithListener(sig))
	if err := p.Play(s, v.Speed, loop); err != nil {
		return err
	}
	dev.Play(e)
	logger.Info("playing",
		slog.String("song", s.ID),
		slog.Float64("speed", v.Speed),
		slog.Bool("loop", loop),
		slog.String("style", v.Style),
	)

	total := time.Duration(s.Duration() / v.Speed * float64(time.Second))
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			p.Stop()
			fmt.Fprintln(out)
			return nil
		case <-sig.done:
			fmt.Fprintln(out)
			// let the release ring out
			time.Sleep(cfg.Buffer + 300*time.Millisecond)
			return dev.Err()
		case <-tick.C:
			if err := dev.Err(); err != nil {
				p.Stop()
				return err
			}
			if pr, ok := p.Progress(); ok {
				fmt.Fprintf(out, "\r%s", progressLine(s.Title, pr, total))
			}
		}
	}
}

func progressLine(title string, pr player.Progress, total time.Duration) string {
	note := "--"
	if pr.HasNote {
		note = noteName(pr.MIDI)
	}
	elapsed := time.Duration(pr.Percent / 100 * float64(total)).Round(100 * time.Millisecond)
	return fmt.Sprintf("%s  [%3.0f%%]  %-4s %s / %s   ",
		title, pr.Percent, note,
		durafmt.Parse(elapsed).LimitFirstN(2).Format(shortUnits),
		durafmt.Parse(total.Round(100*time.Millisecond)).LimitFirstN(2).Format(shortUnits),
	)
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func noteName(midi int) string {
	return fmt.Sprintf("%s%d", noteNames[midi%12], midi/12-1)
}

// printList writes id, title and length columns. Titles may contain wide
// CJK runes, so columns are padded by display width rather than rune count.
func printList(w io.Writer, lib *song.Library) {
	entries := lib.Entries()
	idW, titleW := len("ID"), len("Title")
	for _, e := range entries {
		idW = max(idW, displayWidth(e.ID))
		titleW = max(titleW, displayWidth(e.Title))
	}
	fmt.Fprintf(w, "%s  %s  %s\n", pad("ID", idW), pad("Title", titleW), "Length")
	for _, e := range entries {
		s, err := lib.Song(e.ID)
		if err != nil {
			continue
		}
		length := time.Duration(s.Duration() * float64(time.Second)).Round(100 * time.Millisecond)
		fmt.Fprintf(w, "%s  %s  %s\n", pad(e.ID, idW), pad(e.Title, titleW),
			durafmt.Parse(length).LimitFirstN(2).Format(shortUnits))
	}
}

func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func pad(s string, w int) string {
	return s + strings.Repeat(" ", max(0, w-displayWidth(s)))
}
