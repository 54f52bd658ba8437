// Command otama-web serves the browser front end and the song library.
//
// Build the wasm bridge into the static directory first:
//
//	GOOS=js GOARCH=wasm go build -o web/static/otama.wasm ./web/wasm
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" web/static/
//	otama-web -addr :8080 -static web/static
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/algo-otama/internal/config"
	"github.com/cwbudde/algo-otama/internal/logging"
	"github.com/cwbudde/algo-otama/internal/server"
)

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	v := config.DefaultVoice()
	v.RegisterFlags(flag.CommandLine)
	addr := flag.String("addr", ":8080", "listen address")
	static := flag.String("static", "web/static", "front end directory, empty to serve only the API")
	maxRenders := flag.Int("max-renders", server.DefaultMaxRenders, "concurrent WAV renders")
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

	var assets fs.FS
	if *static != "" {
		if info, err := os.Stat(*static); err != nil || !info.IsDir() {
			logger.Warn("static directory missing, serving API only", slog.String("dir", *static))
		} else {
			assets = os.DirFS(*static)
		}
	}

	srv, err := server.New(lib, server.Config{
		Addr:       *addr,
		Static:     assets,
		MaxRenders: *maxRenders,
		Render:     cfg.RenderOptions(v),
		Logger:     logger,
	})
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	fmt.Printf("\n  otama running at: http://localhost%s\n\n", *addr)
	if err := srv.Run(ctx); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
