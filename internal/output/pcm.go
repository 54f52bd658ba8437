package output

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
)

// Renderer produces mono float samples in [-1, 1].
type Renderer interface {
	Render(dst []float32)
}

// ToInt16 converts a float sample to 16-bit, clipping at full scale.
func ToInt16(v float32) int16 {
	f := math.Max(-1, math.Min(1, float64(v)))
	return int16(math.Round(f * math.MaxInt16))
}

// Stream is an io.Reader of little-endian PCM pulled from a Renderer,
// for players that read on their own goroutine.
type Stream struct {
	mu       sync.Mutex
	src      Renderer
	channels int
	float    bool
	buf      []float32
}

// NewInt16Stream returns signed 16-bit PCM with the mono signal copied to
// every channel.
func NewInt16Stream(src Renderer, channels int) *Stream {
	return &Stream{src: src, channels: max(1, channels)}
}

// NewFloat32Stream returns 32-bit float PCM.
func NewFloat32Stream(src Renderer, channels int) *Stream {
	return &Stream{src: src, channels: max(1, channels), float: true}
}

func (s *Stream) frameBytes() int {
	if s.float {
		return 4 * s.channels
	}
	return 2 * s.channels
}

// Read fills p with whole frames. It never reports io.EOF.
func (s *Stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fb := s.frameBytes()
	frames := len(p) / fb
	if frames == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.ErrShortBuffer
	}
	if cap(s.buf) < frames {
		s.buf = make([]float32, frames)
	}
	buf := s.buf[:frames]
	s.src.Render(buf)

	off := 0
	for _, v := range buf {
		for c := 0; c < s.channels; c++ {
			if s.float {
				binary.LittleEndian.PutUint32(p[off:], math.Float32bits(v))
				off += 4
			} else {
				binary.LittleEndian.PutUint16(p[off:], uint16(ToInt16(v)))
				off += 2
			}
		}
	}
	return off, nil
}
