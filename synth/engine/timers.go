package engine

import (
	"container/heap"
	"math"
	"time"
)

// Timer is a callback scheduled on the engine clock.
type Timer struct {
	e      *Engine
	at     int64 // due frame
	period int64 // 0 for one-shot
	fn     func()
	seq    uint64
	index  int

	stopped bool
	fired   bool
}

// Stop cancels the timer. It reports whether the call prevented a run; it
// returns false if a one-shot timer already fired or Stop was called
// before. A callback already running is not interrupted.
func (t *Timer) Stop() bool {
	t.e.mu.Lock()
	defer t.e.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	if t.index >= 0 {
		heap.Remove(&t.e.timers, t.index)
	}
	return true
}

// AfterFunc runs fn once after d of rendered audio.
func (e *Engine) AfterFunc(d time.Duration, fn func()) *Timer {
	return e.schedule(d, 0, fn)
}

// Every runs fn each period of rendered audio, first after one period.
func (e *Engine) Every(period time.Duration, fn func()) *Timer {
	frames := max(1, e.durationFrames(period))
	return e.schedule(period, frames, fn)
}

func (e *Engine) schedule(d time.Duration, period int64, fn func()) *Timer {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.timers.seq++
	t := &Timer{
		e:      e,
		at:     e.frames + max(0, e.durationFrames(d)),
		period: period,
		fn:     fn,
		seq:    e.timers.seq,
	}
	heap.Push(&e.timers, t)
	return t
}

func (e *Engine) durationFrames(d time.Duration) int64 {
	return int64(math.Round(d.Seconds() * e.sampleRate))
}

// popDueLocked removes the timers due at the current frame. Periodic
// timers are re-armed.
func (e *Engine) popDueLocked() []*Timer {
	var due []*Timer
	for {
		t, ok := e.timers.peek()
		if !ok || t.at > e.frames {
			return due
		}
		heap.Pop(&e.timers)
		due = append(due, t)
		if t.period > 0 {
			t.at += t.period
			heap.Push(&e.timers, t)
		}
	}
}

// live reports whether a popped timer should still run; a callback earlier
// in the same batch may have stopped it.
func (e *Engine) live(t *Timer) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if t.stopped {
		return false
	}
	if t.period == 0 {
		t.fired = true
	}
	return true
}

// timerQueue orders timers by due frame, then by creation.
type timerQueue struct {
	items []*Timer
	seq   uint64
}

func (q *timerQueue) Len() int { return len(q.items) }

func (q *timerQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.at != b.at {
		return a.at < b.at
	}
	return a.seq < b.seq
}

func (q *timerQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].index = i
	q.items[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(q.items)
	q.items = append(q.items, t)
}

func (q *timerQueue) Pop() any {
	n := len(q.items)
	t := q.items[n-1]
	q.items[n-1] = nil
	q.items = q.items[:n-1]
	t.index = -1
	return t
}

func (q *timerQueue) peek() (*Timer, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	return q.items[0], true
}
