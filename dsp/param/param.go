package param

import (
	"math"
	"sort"
)

type eventKind uint8

const (
	kindSetValue eventKind = iota
	kindLinearRamp
	kindSetTarget
)

// event is one scheduled automation step. For ramps time is the end time;
// for the other kinds it is the start time.
type event struct {
	kind  eventKind
	time  float64
	value float64
	tc    float64
}

// anchor is the state in effect before the first pending event.
type anchor struct {
	time   float64
	value  float64
	target bool
	goal   float64
	tc     float64
}

// Param is a time-automated control value. Values are scheduled against an
// external clock in seconds and read back with [Param.ValueAt].
//
// Param is not safe for concurrent use; the owning engine serializes access.
type Param struct {
	events []event
	base   anchor
}

// New returns a Param that holds v until something is scheduled.
func New(v float64) *Param {
	return &Param{base: anchor{value: v}}
}

// SetValue replaces the resting value. Scheduled events are kept.
func (p *Param) SetValue(v float64) {
	if !finite(v) {
		return
	}
	p.base = anchor{time: p.base.time, value: v}
}

// SetValueAtTime jumps to v at time t.
func (p *Param) SetValueAtTime(v, t float64) {
	if !finite(v) || !finite(t) {
		return
	}
	p.insert(event{kind: kindSetValue, time: t, value: v})
}

// LinearRampToValueAtTime ramps linearly from the previous event so that the
// value reaches v at time t.
func (p *Param) LinearRampToValueAtTime(v, t float64) {
	if !finite(v) || !finite(t) {
		return
	}
	p.insert(event{kind: kindLinearRamp, time: t, value: v})
}

// SetTargetAtTime starts an exponential approach to target at time t with
// the given time constant in seconds.
func (p *Param) SetTargetAtTime(target, t, timeConstant float64) {
	if !finite(target) || !finite(t) || !finite(timeConstant) {
		return
	}
	if timeConstant <= 0 {
		p.SetValueAtTime(target, t)
		return
	}
	p.insert(event{kind: kindSetTarget, time: t, value: target, tc: timeConstant})
}

// CancelScheduledValues drops every event at or after t. A ramp whose end
// lies at or after t is dropped as well.
func (p *Param) CancelScheduledValues(t float64) {
	i := sort.Search(len(p.events), func(i int) bool { return p.events[i].time >= t })
	p.events = p.events[:i]
}

// Pending reports how many events are still scheduled.
func (p *Param) Pending() int { return len(p.events) }

// ValueAt evaluates the automation curve at time t.
func (p *Param) ValueAt(t float64) float64 {
	cur := p.base
	for _, ev := range p.events {
		switch ev.kind {
		case kindLinearRamp:
			if t < ev.time {
				span := ev.time - cur.time
				if span <= 0 {
					return ev.value
				}
				return cur.value + (ev.value-cur.value)*(t-cur.time)/span
			}
			cur = anchor{time: ev.time, value: ev.value}
		case kindSetValue:
			if ev.time > t {
				return cur.eval(t)
			}
			cur = anchor{time: ev.time, value: ev.value}
		case kindSetTarget:
			if ev.time > t {
				return cur.eval(t)
			}
			cur = anchor{time: ev.time, value: cur.eval(ev.time), target: true, goal: ev.value, tc: ev.tc}
		}
	}
	return cur.eval(t)
}

// Advance folds events that can no longer influence values at or after t
// into the resting state.
func (p *Param) Advance(t float64) {
	n := 0
	for n < len(p.events) && p.events[n].time <= t {
		ev := p.events[n]
		switch ev.kind {
		case kindLinearRamp, kindSetValue:
			p.base = anchor{time: ev.time, value: ev.value}
		case kindSetTarget:
			p.base = anchor{time: ev.time, value: p.base.eval(ev.time), target: true, goal: ev.value, tc: ev.tc}
		}
		n++
	}
	if n == 0 {
		return
	}
	p.events = append(p.events[:0], p.events[n:]...)
}

func (p *Param) insert(ev event) {
	// after any event with the same time
	i := sort.Search(len(p.events), func(i int) bool { return p.events[i].time > ev.time })
	p.events = append(p.events, event{})
	copy(p.events[i+1:], p.events[i:])
	p.events[i] = ev
}

func (a anchor) eval(t float64) float64 {
	if !a.target || t <= a.time {
		return a.value
	}
	return a.goal + (a.value-a.goal)*math.Exp(-(t-a.time)/a.tc)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
