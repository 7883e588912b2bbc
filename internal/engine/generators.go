package engine

// Helpers for building event lists in choreography code.

// RepeatPeriodic returns count clones of a, the i-th at offset + i*spacing.
func RepeatPeriodic(a Action, count int, offset, spacing float64) []Event {
	out := make([]Event, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, Event{At: float64(i)*spacing + offset, Action: a.Clone()})
	}
	return out
}

// CloneOffset returns cloned events shifted by offset. The input is untouched.
func CloneOffset(events []Event, offset float64) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = Event{At: e.At + offset, Action: e.Action.Clone()}
	}
	return out
}

// Offset shifts events in place by offset and returns them.
func Offset(events []Event, offset float64) []Event {
	for i := range events {
		events[i].At += offset
	}
	return events
}

// RemoveRange returns the events whose time is outside [from, to].
func RemoveRange(events []Event, from, to float64) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if e.At >= from && e.At <= to {
			continue
		}
		out = append(out, e)
	}
	return out
}

// RepeatEvents returns times copies of events, each copy shifted by spacing
// more than the previous one. The first copy is unshifted.
func RepeatEvents(events []Event, times int, spacing float64) []Event {
	out := make([]Event, 0, len(events)*times)
	for n := 0; n < times; n++ {
		out = append(out, CloneOffset(events, float64(n)*spacing)...)
	}
	return out
}
