// Command otama is the desktop instrument.
//
// Drag on the ribbon to play, drag the head up and down to open the mouth.
// Keyboard shortcuts are listed at the bottom of the window.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cwbudde/algo-otama/internal/app"
	"github.com/cwbudde/algo-otama/internal/config"
	"github.com/cwbudde/algo-otama/internal/logging"
	"github.com/cwbudde/algo-otama/prefs"
	"github.com/cwbudde/algo-otama/synth/engine"
	"github.com/cwbudde/algo-otama/synth/instrument"
)

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	width := flag.Int("width", 960, "window width")
	height := flag.Int("height", 640, "window height")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fatal(err)
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		fatal(err)
	}
	if err := run(cfg, logger, *width, *height); err != nil {
		fatal(err)
	}
}

func run(cfg config.Config, logger *slog.Logger, width, height int) error {
	lib, err := cfg.Library()
	if err != nil {
		return err
	}

	var store prefs.Store = prefs.NewMemStore(nil)
	if fileStore, err := cfg.OpenPrefs(); err != nil {
		logger.Warn("preferences unavailable, using defaults", slog.Any("error", err))
	} else {
		defer func() {
			if err := fileStore.Close(); err != nil {
				logger.Warn("save preferences", slog.Any("error", err))
			}
		}()
		logger.Debug("preferences", slog.String("path", fileStore.Path()))
		store = fileStore
	}

	e, err := engine.New(float64(cfg.SampleRate))
	if err != nil {
		return err
	}
	inst := instrument.New(e,
		instrument.WithPreferences(prefs.New(store)),
		instrument.WithLogger(logger),
	)

	game := app.New(inst, app.Options{
		Width:   width,
		Height:  height,
		Buffer:  cfg.Buffer,
		Logger:  logger,
		Library: lib,
	})
	return game.Run()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
