package engine

import (
	"math"
	"sort"
)

// Immediately schedules an event to fire on the first drain, before
// anything else.
var Immediately = math.Inf(-1)

// Event is a choreography callback bound to a beat-time.
type Event struct {
	At     float64
	Action Action
}

// At is shorthand for Event{At: t, Action: a}.
func At(t float64, a Action) Event {
	return Event{At: t, Action: a}
}

// Clone copies the event with a cloned action.
func (e Event) Clone() Event {
	return Event{At: e.At, Action: e.Action.Clone()}
}

// Scheduler holds the pending events of a session. Events must be sorted
// with Sort after bulk loading and before the first Drain; Insert keeps the
// order for events added later.
type Scheduler struct {
	events []Event
}

// Add appends an event without keeping order.
func (s *Scheduler) Add(at float64, a Action) {
	s.events = append(s.events, Event{At: at, Action: a})
}

// AddAll appends events without keeping order.
func (s *Scheduler) AddAll(events ...Event) {
	s.events = append(s.events, events...)
}

// Instantly adds an event that fires on the first drain.
func (s *Scheduler) Instantly(a Action) {
	s.Add(Immediately, a)
}

// Insert adds an event at its sorted position, after any events with the
// same time.
func (s *Scheduler) Insert(e Event) {
	i := sort.Search(len(s.events), func(i int) bool {
		return s.events[i].At > e.At
	})
	s.events = append(s.events, Event{})
	copy(s.events[i+1:], s.events[i:])
	s.events[i] = e
}

// Sort orders events by time. The sort is stable: events sharing a time
// fire in the order they were added.
func (s *Scheduler) Sort() {
	sort.SliceStable(s.events, func(i, j int) bool {
		return s.events[i].At < s.events[j].At
	})
}

// Snip drops every event strictly earlier than t, so starting partway
// through a track does not fire stale choreography all at once. Immediately
// events are setup and always survive.
func (s *Scheduler) Snip(t float64) {
	for i := len(s.events) - 1; i >= 0; i-- {
		at := s.events[i].At
		if at < t && !math.IsInf(at, -1) {
			s.events = append(s.events[:i], s.events[i+1:]...)
		}
	}
}

// Drain fires every event due at or before now, in ascending order, and
// returns how many fired. The accumulator's time is set to each event's
// trigger time while it runs; Immediately events run at now.
func (s *Scheduler) Drain(now float64, acc *Accumulator) int {
	fired := 0
	for len(s.events) > 0 && s.events[0].At <= now {
		e := s.events[0]
		s.events[0] = Event{}
		s.events = s.events[1:]

		t := e.At
		if math.IsInf(t, -1) {
			t = now
		}
		acc.SetTime(t)
		e.Action.Run(acc, NewArgs(t))
		fired++
	}
	return fired
}

// Len returns the number of pending events.
func (s *Scheduler) Len() int {
	return len(s.events)
}

// Peek returns the next pending event.
func (s *Scheduler) Peek() (Event, bool) {
	if len(s.events) == 0 {
		return Event{}, false
	}
	return s.events[0], true
}

// Clear drops all pending events.
func (s *Scheduler) Clear() {
	s.events = nil
}

// Events returns a copy of the pending events.
func (s *Scheduler) Events() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
