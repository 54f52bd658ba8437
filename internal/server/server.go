// Package server serves the song library and rendered songs to the browser
// front end.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/remeh/sizedwaitgroup"

	"github.com/cwbudde/algo-otama/internal/logging"
	"github.com/cwbudde/algo-otama/internal/output"
	"github.com/cwbudde/algo-otama/song"
)

// DefaultMaxRenders bounds the number of WAV renders running at once.
const DefaultMaxRenders = 2

// Config holds server configuration.
type Config struct {
	Addr       string
	Static     fs.FS // optional front end assets served at /
	MaxRenders int
	Render     output.RenderOptions
	Logger     *slog.Logger
}

// Server is the HTTP server.
type Server struct {
	config  Config
	lib     *song.Library
	router  *chi.Mux
	logger  *slog.Logger
	renders sizedwaitgroup.SizedWaitGroup
}

// New creates a server for lib.
func New(lib *song.Library, cfg Config) (*Server, error) {
	if lib == nil {
		return nil, errors.New("server: nil library")
	}
	if cfg.MaxRenders <= 0 {
		cfg.MaxRenders = DefaultMaxRenders
	}
	if cfg.Render.SampleRate <= 0 {
		cfg.Render = output.DefaultRenderOptions()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}

	s := &Server{
		config:  cfg,
		lib:     lib,
		router:  chi.NewRouter(),
		logger:  cfg.Logger,
		renders: sizedwaitgroup.New(cfg.MaxRenders),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Route("/api/songs", func(r chi.Router) {
		r.Get("/", s.handleSongs)
		r.Get("/{id}", s.handleSong)
	})

	if s.config.Static != nil {
		r.Handle("/*", http.FileServer(http.FS(s.config.Static)))
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // long renders
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("addr", s.config.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.renders.Wait()
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("id", middleware.GetReqID(r.Context())),
		)
	})
}
