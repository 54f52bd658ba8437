package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Store is a string key/value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// MemStore is an in-memory Store. The zero value is ready to use.
type MemStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemStore returns a MemStore seeded with values.
func NewMemStore(values map[string]string) *MemStore {
	m := &MemStore{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *MemStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

// DefaultWriteInterval is the minimum spacing between file writes.
const DefaultWriteInterval = 500 * time.Millisecond

// FileOption configures a FileStore.
type FileOption func(*FileStore) error

// WithWriteInterval sets the minimum spacing between file writes. Zero
// writes on every Set.
func WithWriteInterval(d time.Duration) FileOption {
	return func(f *FileStore) error {
		if d < 0 {
			return fmt.Errorf("prefs: write interval must be >= 0: %v", d)
		}
		if d == 0 {
			f.limiter = rate.NewLimiter(rate.Inf, 1)
		} else {
			f.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
		return nil
	}
}

// FileStore is a Store backed by a JSON object in a file. Writes are
// coalesced: a Set inside the write interval marks the store dirty and
// schedules one trailing write.
type FileStore struct {
	path    string
	limiter *rate.Limiter

	mu      sync.Mutex
	values  map[string]string
	dirty   bool
	pending *time.Timer
	closed  bool
}

// DefaultPath returns prefs.json under the user configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("prefs: %w", err)
	}
	return filepath.Join(dir, "algo-otama", "prefs.json"), nil
}

// OpenFile loads path into a FileStore. A missing file starts empty, and so
// does an unreadable JSON document; the next write replaces it.
func OpenFile(path string, opts ...FileOption) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("prefs: empty path")
	}
	f := &FileStore{
		path:    path,
		limiter: rate.NewLimiter(rate.Every(DefaultWriteInterval), 1),
		values:  make(map[string]string),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(f); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("prefs: read %s: %w", path, err)
	default:
		var values map[string]string
		if json.Unmarshal(data, &values) == nil && values != nil {
			f.values = values
		}
	}
	return f, nil
}

// Path returns the backing file.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errors.New("prefs: store closed")
	}
	if old, ok := f.values[key]; ok && old == value {
		return nil
	}
	f.values[key] = value
	f.dirty = true
	if f.pending != nil {
		return nil
	}

	r := f.limiter.Reserve()
	delay := r.Delay()
	if delay == 0 {
		return f.writeLocked()
	}
	f.pending = time.AfterFunc(delay, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.pending = nil
		if f.dirty && !f.closed {
			// nowhere to report; the next Set or Flush retries
			_ = f.writeLocked()
		}
	})
	return nil
}

// Flush writes pending changes now.
func (f *FileStore) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
	if !f.dirty {
		return nil
	}
	return f.writeLocked()
}

// Close flushes and rejects later writes.
func (f *FileStore) Close() error {
	err := f.Flush()
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return err
}

func (f *FileStore) writeLocked() error {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*.json")
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("prefs: write %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("prefs: write %s: %w", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("prefs: write %s: %w", f.path, err)
	}
	f.dirty = false
	return nil
}
