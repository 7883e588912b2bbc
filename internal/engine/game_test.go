package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/beatdodge/internal/core"
)

// fakeMusic is a scripted clock that records calls.
type fakeMusic struct {
	calls   []string
	beat    float64
	playing bool
	speed   float64
	length  float64
	loadErr error
	seekErr error
}

func (m *fakeMusic) Load(track string) error {
	m.calls = append(m.calls, "load "+track)
	return m.loadErr
}

func (m *fakeMusic) Replace(bpm, offset float64) error {
	m.calls = append(m.calls, "replace")
	m.playing = true
	return nil
}

func (m *fakeMusic) Seek(beats float64) error {
	m.calls = append(m.calls, "seek")
	if m.seekErr != nil {
		return m.seekErr
	}
	m.beat = beats
	return nil
}

func (m *fakeMusic) SetSpeed(speed float64) {
	m.calls = append(m.calls, "speed")
	m.speed = speed
}

func (m *fakeMusic) Speed() float64 { return m.speed }

func (m *fakeMusic) IsPlaying() bool { return m.playing }

func (m *fakeMusic) CurrentBeat() (float64, bool) {
	return m.beat, m.playing
}

func (m *fakeMusic) Stop() {
	m.calls = append(m.calls, "stop")
	m.playing = false
}

func (m *fakeMusic) SetLength(beats float64) {
	m.length = beats
}

func testLoader(events ...float64) Loader {
	return func(s *Session) LevelInfo {
		for _, at := range events {
			s.Schedule(at, ActionFunc(func(*Accumulator, Args) {}))
		}
		return LevelInfo{BPM: 120, Offset: 2, Track: "music/test.mp3", Length: 64}
	}
}

func TestGameLoadOrder(t *testing.T) {
	m := &fakeMusic{}
	g := NewGame(m, testConfig())

	if err := g.Load(testLoader(1, 5, 9, 12), 4, 1.5); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"stop", "load music/test.mp3", "replace", "speed", "seek"}
	if !reflect.DeepEqual(m.calls, expected) {
		t.Errorf("calls = %v, expected %v", m.calls, expected)
	}
	if m.speed != 1.5 || m.length != 64 {
		t.Errorf("speed = %v, length = %v", m.speed, m.length)
	}

	// start + offset = 6 drops events at 1 and 5.
	if p := g.Session().Pending(); p != 2 {
		t.Errorf("Pending() = %d, expected 2", p)
	}
	bpm, speed := g.Session().Tempo()
	if bpm != 120 || speed != 1.5 {
		t.Errorf("Tempo() = %v, %v, expected 120, 1.5", bpm, speed)
	}
}

func TestGameLoadErrors(t *testing.T) {
	m := &fakeMusic{loadErr: errors.New("no such file")}
	g := NewGame(m, testConfig())

	err := g.Load(testLoader(), 0, 1)
	if !errors.Is(err, ErrTrackLoad) {
		t.Errorf("Load() error = %v, expected ErrTrackLoad", err)
	}
	if g.Session() != nil {
		t.Error("failed Load() should not install a session")
	}

	seekErr := errors.New("past end")
	m = &fakeMusic{seekErr: seekErr}
	g = NewGame(m, testConfig())
	err = g.Load(testLoader(), 1000, 1)
	if !errors.Is(err, seekErr) {
		t.Errorf("Load() error = %v, expected the seek error", err)
	}
	if m.playing {
		t.Error("failed seek should stop playback")
	}
}

func TestGameFrameUntilTrackEnds(t *testing.T) {
	m := &fakeMusic{}
	g := NewGame(m, testConfig())
	if err := g.Load(testLoader(), 0, 1); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	m.beat = 3
	res := g.Frame(1.0/60, core.NewInputFrame())
	if res.State.Finished || g.Finished() {
		t.Fatal("game finished while the track plays")
	}
	if res.State.Beat != 3 || res.State.Length != 64 {
		t.Errorf("state = %+v, expected beat 3 of 64", res.State)
	}

	m.playing = false
	res = g.Frame(1.0/60, core.NewInputFrame())
	if !res.State.Finished || !res.State.Cleared {
		t.Errorf("state after track end = %+v, expected finished and cleared", res.State)
	}

	r, err := g.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if !r.Cleared || r.HitsLeft != 3 || r.ReachedBeat != 3 || r.Speed != 1 {
		t.Errorf("Result() = %+v", r)
	}
}

func TestGameAbortStopsMusic(t *testing.T) {
	m := &fakeMusic{}
	g := NewGame(m, testConfig())
	if err := g.Load(testLoader(), 0, 1); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	in := core.NewInputFrame()
	in.Set(core.ActionBack)
	res := g.Frame(1.0/60, in)

	if !res.State.Aborted || !res.State.Finished || res.State.Cleared {
		t.Errorf("state = %+v, expected aborted, finished, not cleared", res.State)
	}
	if m.playing {
		t.Error("abort should stop the music")
	}
}

func TestGameWithoutLevel(t *testing.T) {
	g := NewGame(&fakeMusic{}, testConfig())

	if !g.Finished() {
		t.Error("Finished() should be true without a level")
	}
	if _, err := g.Result(); !errors.Is(err, ErrNoLevel) {
		t.Errorf("Result() error = %v, expected ErrNoLevel", err)
	}
	res := g.Frame(1.0/60, core.NewInputFrame())
	if !res.State.Finished {
		t.Error("Frame() without a level should report finished")
	}
}
