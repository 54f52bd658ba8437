package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"

	"github.com/cwbudde/algo-otama/internal/output"
	"github.com/cwbudde/algo-otama/song"
)

const wavSuffix = ".wav"

// SongInfo is one row of /api/songs.
type SongInfo struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
	Notes    int     `json:"notes"`
}

// SongDetail is the body of /api/songs/{id}.
type SongDetail struct {
	SongInfo
	Data []song.Note `json:"data"`
}

func info(s *song.Song) SongInfo {
	return SongInfo{ID: s.ID, Title: s.Title, Duration: s.Duration(), Notes: len(s.Notes)}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleSongs(w http.ResponseWriter, r *http.Request) {
	entries := s.lib.Entries()
	out := make([]SongInfo, 0, len(entries))
	for _, e := range entries {
		sg, err := s.lib.Song(e.ID)
		if err != nil {
			continue
		}
		row := info(sg)
		row.Title = e.Title
		out = append(out, row)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSong(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if base, ok := strings.CutSuffix(id, wavSuffix); ok {
		if _, err := s.lib.Song(id); err != nil {
			s.handleWAV(w, r, base)
			return
		}
	}
	sg, err := s.lib.Song(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, SongDetail{SongInfo: info(sg), Data: sg.Notes})
}

func (s *Server) handleWAV(w http.ResponseWriter, r *http.Request, id string) {
	sg, err := s.lib.Song(id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.renders.AddWithContext(r.Context()); err != nil {
		return
	}
	defer s.renders.Done()

	start := time.Now()
	pcm, err := output.RenderSong(r.Context(), sg, s.config.Render)
	if err != nil {
		if r.Context().Err() == nil {
			s.logger.Error("render failed", slog.String("song", id), slog.Any("error", err))
			http.Error(w, "render failed", http.StatusInternalServerError)
		}
		return
	}

	f, err := os.CreateTemp("", "otama-*.wav")
	if err != nil {
		s.logger.Error("render failed", slog.String("song", id), slog.Any("error", err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if err := output.WriteWAV(f, pcm, s.config.Render.SampleRate); err != nil {
		s.logger.Error("encode failed", slog.String("song", id), slog.Any("error", err))
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	s.logger.Info("rendered",
		slog.String("song", id),
		slog.String("size", humanize.Bytes(uint64(output.WAVSize(len(pcm))))),
		slog.Duration("elapsed", time.Since(start)),
	)

	w.Header().Set("Content-Type", "audio/wav")
	http.ServeContent(w, r, id+wavSuffix, start, f)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", slog.Any("error", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, song.ErrUnknownSong) {
		status = http.StatusNotFound
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
