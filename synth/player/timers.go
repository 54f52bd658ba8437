package player

import (
	"sync"
	"time"

	"github.com/cwbudde/algo-otama/synth/engine"
)

// RealTime returns Timers backed by wall-clock timers. Callbacks run on
// their own goroutines.
func RealTime() Timers { return realTimers{} }

type realTimers struct{}

func (realTimers) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

func (realTimers) Every(d time.Duration, fn func()) Timer {
	t := &ticker{done: make(chan struct{})}
	tk := time.NewTicker(d)
	go func() {
		defer tk.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-tk.C:
				fn()
			}
		}
	}()
	return t
}

type ticker struct {
	once sync.Once
	done chan struct{}
}

func (t *ticker) Stop() bool {
	stopped := false
	t.once.Do(func() {
		close(t.done)
		stopped = true
	})
	return stopped
}

// AudioClock returns Timers that run on the engine's rendered-audio clock.
// Callbacks fire from inside Render, so playback is sample-deterministic
// when rendering offline.
func AudioClock(e *engine.Engine) Timers { return audioClock{e} }

type audioClock struct{ e *engine.Engine }

func (c audioClock) AfterFunc(d time.Duration, fn func()) Timer {
	return c.e.AfterFunc(d, fn)
}

func (c audioClock) Every(d time.Duration, fn func()) Timer {
	return c.e.Every(d, fn)
}
