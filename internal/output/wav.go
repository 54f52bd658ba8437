package output

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV encodes mono samples as a 16-bit PCM WAV file.
func WriteWAV(w io.WriteSeeker, pcm []float32, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("output: sample rate must be > 0: %d", sampleRate)
	}
	enc := wav.NewEncoder(w, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, len(pcm)),
		SourceBitDepth: 16,
	}
	for i, v := range pcm {
		buf.Data[i] = int(ToInt16(v))
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("output: write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("output: close wav: %w", err)
	}
	return nil
}

// WAVSize is the byte size of a 16-bit mono WAV holding n samples.
func WAVSize(n int) int64 {
	return 44 + 2*int64(n)
}
