// Package device plays a Renderer on the system audio output through oto.
package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-otama/internal/output"
)

// Device is an open audio output. oto allows one context per process.
type Device struct {
	ctx        *oto.Context
	sampleRate int
	buffer     time.Duration

	mu      sync.Mutex
	players []*oto.Player
}

// Open starts the audio output and waits until it is ready.
func Open(sampleRate int, buffer time.Duration) (*Device, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   buffer,
	})
	if err != nil {
		return nil, fmt.Errorf("device: %w", err)
	}
	<-ready
	return &Device{ctx: ctx, sampleRate: sampleRate, buffer: buffer}, nil
}

// SampleRate returns the output rate in Hz.
func (d *Device) SampleRate() int { return d.sampleRate }

// Play streams src until Close.
func (d *Device) Play(src output.Renderer) {
	p := d.ctx.NewPlayer(output.NewFloat32Stream(src, 2))
	frames := int(d.buffer.Seconds() * float64(d.sampleRate))
	p.SetBufferSize(max(256, frames) * 2 * 4)
	p.Play()
	d.mu.Lock()
	d.players = append(d.players, p)
	d.mu.Unlock()
}

// Err reports an asynchronous device error.
func (d *Device) Err() error { return d.ctx.Err() }

// Close stops every player.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var first error
	for _, p := range d.players {
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
	}
	d.players = nil
	return first
}
