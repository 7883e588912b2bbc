package engine

import (
	"math"
	"reflect"
	"testing"
)

// recorder returns an action that appends its trigger time to log.
func recorder(log *[]float64) Action {
	return ActionFunc(func(acc *Accumulator, args Args) {
		*log = append(*log, args.Time)
	})
}

func TestSchedulerDrainOrder(t *testing.T) {
	var fired []float64
	var s Scheduler
	for _, at := range []float64{3, 1, 5, 2} {
		s.Add(at, recorder(&fired))
	}
	s.Sort()
	acc := NewAccumulator(0, testConfig().World, nil)

	if n := s.Drain(2.5, acc); n != 2 {
		t.Errorf("Drain(2.5) = %d, expected 2", n)
	}
	if n := s.Drain(2.5, acc); n != 0 {
		t.Errorf("second Drain(2.5) = %d, expected 0", n)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", s.Len())
	}
	s.Drain(100, acc)

	expected := []float64{1, 2, 3, 5}
	if !reflect.DeepEqual(fired, expected) {
		t.Errorf("fired = %v, expected %v", fired, expected)
	}
}

func TestSchedulerDrainBoundaryInclusive(t *testing.T) {
	var fired []float64
	var s Scheduler
	s.Add(4, recorder(&fired))
	acc := NewAccumulator(0, testConfig().World, nil)

	s.Drain(3.999, acc)
	if len(fired) != 0 {
		t.Fatalf("event fired before its time")
	}
	s.Drain(4, acc)
	if len(fired) != 1 {
		t.Errorf("event at 4 should fire when the clock reads 4")
	}
}

func TestSchedulerDrainSetsAccumulatorTime(t *testing.T) {
	var times []float64
	var s Scheduler
	s.Add(2, ActionFunc(func(acc *Accumulator, _ Args) { times = append(times, acc.Time()) }))
	s.Instantly(ActionFunc(func(acc *Accumulator, _ Args) { times = append(times, acc.Time()) }))
	s.Sort()

	s.Drain(3, NewAccumulator(0, testConfig().World, nil))

	expected := []float64{3, 2}
	if !reflect.DeepEqual(times, expected) {
		t.Errorf("accumulator times = %v, expected %v", times, expected)
	}
}

func TestSchedulerImmediatelyFiresFirst(t *testing.T) {
	var fired []float64
	var s Scheduler
	s.Add(-50, recorder(&fired))
	s.Instantly(recorder(&fired))
	s.Sort()

	e, ok := s.Peek()
	if !ok || !math.IsInf(e.At, -1) {
		t.Fatalf("Peek() = %v, %v, expected the Immediately event", e.At, ok)
	}
	s.Drain(-100, NewAccumulator(0, testConfig().World, nil))
	if len(fired) != 1 {
		t.Errorf("only the Immediately event should fire at -100, fired %v", fired)
	}
}

func TestSchedulerSnip(t *testing.T) {
	var s Scheduler
	for _, at := range []float64{1, 5, 10} {
		s.Add(at, ActionFunc(func(*Accumulator, Args) {}))
	}
	s.Snip(6)

	events := s.Events()
	if len(events) != 1 || events[0].At != 10 {
		t.Errorf("Snip(6) left %v, expected only 10", events)
	}
}

func TestSchedulerSnipKeepsSetupAndBoundary(t *testing.T) {
	var s Scheduler
	s.Instantly(ActionFunc(func(*Accumulator, Args) {}))
	s.Add(0, ActionFunc(func(*Accumulator, Args) {}))
	s.Add(6, ActionFunc(func(*Accumulator, Args) {}))
	s.Sort()
	s.Snip(6)

	events := s.Events()
	if len(events) != 2 {
		t.Fatalf("Snip(6) left %d events, expected 2", len(events))
	}
	if !math.IsInf(events[0].At, -1) || events[1].At != 6 {
		t.Errorf("Snip(6) left %v, expected [-Inf 6]", []float64{events[0].At, events[1].At})
	}
}

func TestSchedulerSortStable(t *testing.T) {
	var order []int
	var s Scheduler
	for i := 0; i < 5; i++ {
		i := i
		s.Add(1, ActionFunc(func(*Accumulator, Args) { order = append(order, i) }))
	}
	s.Add(0, ActionFunc(func(*Accumulator, Args) { order = append(order, -1) }))
	s.Sort()
	s.Sort()
	s.Drain(1, NewAccumulator(0, testConfig().World, nil))

	expected := []int{-1, 0, 1, 2, 3, 4}
	if !reflect.DeepEqual(order, expected) {
		t.Errorf("order = %v, expected %v", order, expected)
	}
}

func TestSchedulerInsert(t *testing.T) {
	var s Scheduler
	noop := ActionFunc(func(*Accumulator, Args) {})
	s.AddAll(At(1, noop), At(3, noop), At(5, noop))
	s.Insert(At(4, noop))
	s.Insert(At(0, noop))
	s.Insert(At(9, noop))
	s.Insert(At(3, noop))

	var got []float64
	for _, e := range s.Events() {
		got = append(got, e.At)
	}
	expected := []float64{0, 1, 3, 3, 4, 5, 9}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("times after Insert = %v, expected %v", got, expected)
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() after Clear = %d, expected 0", s.Len())
	}
	if _, ok := s.Peek(); ok {
		t.Error("Peek() on empty scheduler should report false")
	}
}

func TestSchedulerDrainSplitAcrossFrames(t *testing.T) {
	times := []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5}
	var fired []float64
	var s Scheduler
	for _, at := range times {
		s.Add(at, recorder(&fired))
	}
	s.Sort()
	acc := NewAccumulator(0, testConfig().World, nil)
	for clock := 0.0; clock <= 4; clock += 0.3 {
		s.Drain(clock, acc)
		for _, f := range fired {
			if f > clock {
				t.Fatalf("event %v fired at clock %v", f, clock)
			}
		}
	}

	if !reflect.DeepEqual(fired, times) {
		t.Errorf("fired = %v, expected %v", fired, times)
	}
}
