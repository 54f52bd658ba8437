package player

import (
	"errors"
	"sort"
	"sync"
	"time"
)

// fakeClock is a manual clock implementing Timers.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*fakeTimer
	leaky  bool // Stop does not prevent firing
}

type fakeTimer struct {
	c       *fakeClock
	at      time.Duration
	period  time.Duration
	seq     int
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (c *fakeClock) add(d, period time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTimer{c: c, at: c.now + max(0, d), period: period, seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer { return c.add(d, 0, fn) }

func (c *fakeClock) Every(d time.Duration, fn func()) Timer { return c.add(d, d, fn) }

func (c *fakeClock) seconds() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Seconds()
}

// live returns the number of timers that can still fire.
func (c *fakeClock) live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward, firing due timers in time order.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()
	for {
		c.mu.Lock()
		sort.SliceStable(c.timers, func(i, j int) bool {
			if c.timers[i].at != c.timers[j].at {
				return c.timers[i].at < c.timers[j].at
			}
			return c.timers[i].seq < c.timers[j].seq
		})
		var next *fakeTimer
		idx := -1
		for i, t := range c.timers {
			if t.stopped && !c.leaky {
				continue
			}
			if t.at <= target {
				next, idx = t, i
			}
			break
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.at
		if next.period > 0 && !next.stopped {
			next.at += next.period
		} else {
			c.timers = append(c.timers[:idx], c.timers[idx+1:]...)
		}
		c.mu.Unlock()
		next.fn()
	}
}

type synthCall struct {
	at   float64
	kind string
	f    float64
	on   bool
	when float64
	vel  float64
	dur  float64
	n    int
	typ  string
}

// fakeSynth records what the player asks for.
type fakeSynth struct {
	mu      sync.Mutex
	clock   *fakeClock
	ready   bool
	initErr error
	inits   int
	style   string
	calls   []synthCall
}

func (s *fakeSynth) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

func (s *fakeSynth) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inits++
	if s.initErr != nil {
		return s.initErr
	}
	s.ready = true
	return nil
}

func (s *fakeSynth) CurrentTime() float64 { return s.clock.seconds() }

func (s *fakeSynth) record(c synthCall) {
	c.at = s.clock.seconds()
	s.mu.Lock()
	s.calls = append(s.calls, c)
	s.mu.Unlock()
}

func (s *fakeSynth) SetFrequency(hz float64) { s.record(synthCall{kind: "freq", f: hz}) }

func (s *fakeSynth) Gate(on bool) { s.record(synthCall{kind: "gate", on: on}) }

func (s *fakeSynth) TriggerSyllable(when, vel, dur float64, count int, typ string) {
	s.record(synthCall{kind: "syll", when: when, vel: vel, dur: dur, n: count, typ: typ})
}

func (s *fakeSynth) SetSyllableStyle(name string) {
	s.mu.Lock()
	s.style = name
	s.mu.Unlock()
}

func (s *fakeSynth) filter(kind string, pred func(synthCall) bool) []synthCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []synthCall
	for _, c := range s.calls {
		if c.kind == kind && (pred == nil || pred(c)) {
			out = append(out, c)
		}
	}
	return out
}

func (s *fakeSynth) gateOns() []synthCall {
	return s.filter("gate", func(c synthCall) bool { return c.on })
}

type recordingListener struct {
	mu      sync.Mutex
	started []float64 // mouth opening per note
	ended   int
	stopped int
}

func (l *recordingListener) NoteStarted(_, open float64) {
	l.mu.Lock()
	l.started = append(l.started, open)
	l.mu.Unlock()
}

func (l *recordingListener) NoteEnded() {
	l.mu.Lock()
	l.ended++
	l.mu.Unlock()
}

func (l *recordingListener) Stopped() {
	l.mu.Lock()
	l.stopped++
	l.mu.Unlock()
}

var errInit = errors.New("no audio device")
