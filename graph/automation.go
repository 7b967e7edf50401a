// SPDX-License-Identifier: EPL-2.0

package graph

import "math"

// EventKind selects how an automation event reaches its value.
type EventKind int

const (
	// SetValue jumps to Value at Time.
	SetValue EventKind = iota
	// LinearRamp moves linearly from the previous event to Value, arriving at Time.
	LinearRamp
)

// Event is one point of an automation timeline. Times are in seconds of the
// render's local clock, so they may be negative when an event happened
// before the render origin.
type Event struct {
	Kind  EventKind
	Time  float64
	Value float64
}

// Automation is the timeline of a single parameter. Events are kept sorted;
// an event appended before the last one is moved to the last one's time.
type Automation struct {
	Initial float64
	Events  []Event
}

// NewAutomation returns a timeline that holds initial until the first event.
func NewAutomation(initial float64) *Automation {
	return &Automation{Initial: initial}
}

func (a *Automation) add(e Event) {
	if n := len(a.Events); n > 0 && e.Time < a.Events[n-1].Time {
		e.Time = a.Events[n-1].Time
	}
	a.Events = append(a.Events, e)
}

// SetValueAt jumps to v at t.
func (a *Automation) SetValueAt(v, t float64) {
	a.add(Event{Kind: SetValue, Time: t, Value: v})
}

// LinearRampTo ramps from the previous event to v, reaching it at t.
func (a *Automation) LinearRampTo(v, t float64) {
	a.add(Event{Kind: LinearRamp, Time: t, Value: v})
}

// Hold drops every event after t and pins the value the timeline had at t,
// so a following ramp starts from there. A ramp cut by Hold keeps its shape
// up to t.
func (a *Automation) Hold(t float64) {
	v := a.ValueAt(t)
	i := len(a.Events)
	for i > 0 && a.Events[i-1].Time > t {
		i--
	}
	ramping := i < len(a.Events) && a.Events[i].Kind == LinearRamp
	a.Events = a.Events[:i]
	if ramping {
		a.LinearRampTo(v, t)
		return
	}
	a.SetValueAt(v, t)
}

// ValueAt evaluates the timeline at t.
func (a *Automation) ValueAt(t float64) float64 {
	c := a.Cursor()
	return c.Value(t)
}

// Cursor returns an evaluator for non-decreasing times, which is how the
// renderer walks a timeline sample by sample.
func (a *Automation) Cursor() *Cursor {
	return &Cursor{a: a, prevTime: math.Inf(-1), prevValue: a.Initial}
}

// Cursor evaluates an Automation at monotonically increasing times in
// amortised constant time.
type Cursor struct {
	a         *Automation
	next      int
	prevTime  float64
	prevValue float64
}

// Value returns the automation value at t. t must not be smaller than the
// time passed to the previous call.
func (c *Cursor) Value(t float64) float64 {
	events := c.a.Events
	for c.next < len(events) && events[c.next].Time <= t {
		c.prevTime = events[c.next].Time
		c.prevValue = events[c.next].Value
		c.next++
	}
	if c.next == len(events) {
		return c.prevValue
	}

	e := events[c.next]
	if e.Kind != LinearRamp {
		return c.prevValue
	}

	// A ramp with nothing before it starts from the initial value at the
	// render origin.
	from := c.prevTime
	if math.IsInf(from, -1) {
		from = min(0, e.Time)
		if t < from {
			return c.prevValue
		}
	}
	if e.Time <= from {
		return e.Value
	}
	return c.prevValue + (e.Value-c.prevValue)*(t-from)/(e.Time-from)
}
