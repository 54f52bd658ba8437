// Package config holds the settings shared by the commands and binds them
// to command-line flags.
package config

import (
	"flag"
	"fmt"
	"math"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/cwbudde/algo-otama/internal/logging"
	"github.com/cwbudde/algo-otama/prefs"
	"github.com/cwbudde/algo-otama/song"
)

// Config is the common command configuration.
type Config struct {
	SampleRate int
	Buffer     time.Duration
	SongsFile  string // empty uses the embedded library
	PrefsPath  string // empty uses prefs.DefaultPath
	LogLevel   string
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		SampleRate: 48000,
		Buffer:     20 * time.Millisecond,
		LogLevel:   "info",
	}
}

// RegisterFlags binds c to fs. Current values become the flag defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.SampleRate, "rate", c.SampleRate, "sample rate in Hz")
	fs.DurationVar(&c.Buffer, "buffer", c.Buffer, "audio output buffer length")
	fs.StringVar(&c.SongsFile, "songs", c.SongsFile, "song library JSON (default: built-in songs)")
	fs.StringVar(&c.PrefsPath, "prefs", c.PrefsPath, "preferences file (default: user config dir)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
}

// Validate checks ranges and expands ~ in paths.
func (c *Config) Validate() error {
	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		return fmt.Errorf("config: sample rate out of range [8000, 192000]: %d", c.SampleRate)
	}
	if c.Buffer <= 0 || c.Buffer > time.Second {
		return fmt.Errorf("config: buffer out of range (0, 1s]: %v", c.Buffer)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	var err error
	if c.SongsFile, err = homedir.Expand(c.SongsFile); err != nil {
		return fmt.Errorf("config: songs path: %w", err)
	}
	if c.PrefsPath, err = homedir.Expand(c.PrefsPath); err != nil {
		return fmt.Errorf("config: prefs path: %w", err)
	}
	return nil
}

// BufferFrames is the output buffer length in frames.
func (c Config) BufferFrames() int {
	return max(1, int(math.Round(c.Buffer.Seconds()*float64(c.SampleRate))))
}

// Library loads the configured song library.
func (c Config) Library() (*song.Library, error) {
	if c.SongsFile == "" {
		return song.Default(), nil
	}
	return song.LoadFile(c.SongsFile)
}

// OpenPrefs opens the configured preference file.
func (c Config) OpenPrefs() (*prefs.FileStore, error) {
	path := c.PrefsPath
	if path == "" {
		var err error
		if path, err = prefs.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return prefs.OpenFile(path)
}
