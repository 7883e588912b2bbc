package formats

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
	"github.com/vovakirdan/beatdodge/internal/hazard"
)

const sampleLevel = `
id: sample
name: Sample
bpm: 120
offset: 0.5
track: sample.mp3
length: 32
finished: true
foreground: "#ff0080"
background: "#101010"
setup:
  - float: 4
events:
  - at: 0
    spawn:
      kind: pellet
      pos: [0, 450]
      vel: [200, 0]
      rad: 8
  - at: 2
    repeat: 4
    every: 0.5
    spawn:
      kind: laser
      axis: horizontal
      thickness: 20
      warning: 1
      show: 1
  - at: 8
    shake: 12
    jerk: [10, 0]
    colors:
      bg: "#200020"
  - at: 10
    spawn:
      kind: smoke
      center: [800, 450]
      events:
        - {at: 0, kind: pulse}
        - {at: 1, kind: pellet_ring, count: 8, speed: 100, rad: 6}
  - at: 12
    spawn:
      kind: rotating_rect
      center: [800, 450]
      size: [1000, 20]
      rpb: 0.25
      warning: 1
      show: 4
      ease: in
metadata:
  author: test
`

func TestParseYAML(t *testing.T) {
	lvl, err := ParseYAML([]byte(sampleLevel))
	if err != nil {
		t.Fatalf("ParseYAML() error: %v", err)
	}

	if lvl.ID != "sample" || lvl.Name != "Sample" {
		t.Errorf("ID, Name = %q, %q, expected sample, Sample", lvl.ID, lvl.Name)
	}
	if lvl.BPM != 120 || lvl.Offset != 0.5 || lvl.Length != 32 || !lvl.Finished {
		t.Errorf("unexpected header: %+v", lvl)
	}
	if lvl.Metadata["author"] != "test" {
		t.Errorf("Metadata[author] = %q, expected test", lvl.Metadata["author"])
	}

	// colors + setup + pellet + 4 lasers + jerk/shake/colors + smoke + rect
	if len(lvl.Events) != 10 {
		t.Fatalf("len(Events) = %d, expected 10", len(lvl.Events))
	}
	for i := 0; i < 2; i++ {
		if !math.IsInf(lvl.Events[i].At, -1) {
			t.Errorf("Events[%d].At = %v, expected start", i, lvl.Events[i].At)
		}
	}
	expected := []float64{2, 2.5, 3, 3.5}
	for i, at := range expected {
		if got := lvl.Events[3+i].At; got != at {
			t.Errorf("repeated event %d At = %v, expected %v", i, got, at)
		}
	}
}

func TestParseYAMLRunsInSession(t *testing.T) {
	lvl, err := ParseYAML([]byte(sampleLevel))
	if err != nil {
		t.Fatalf("ParseYAML() error: %v", err)
	}

	s := engine.NewSession(engine.DefaultSessionConfig())
	s.SetTempo(lvl.BPM, 1)
	s.ScheduleEvents(engine.CloneOffset(lvl.Events, 0)...)
	s.Sort()

	s.Update(0, 1.0/60, core.NewInputFrame())
	if n := len(s.Obstacles()); n != 1 {
		t.Fatalf("after beat 0: %d obstacles, expected 1", n)
	}
	if _, ok := s.Obstacles()[0].Obstacle.(*hazard.Pellet); !ok {
		t.Errorf("obstacle is %T, expected *hazard.Pellet", s.Obstacles()[0].Obstacle)
	}
	fg, _ := core.ParseHex("#ff0080")
	if s.Foreground() != fg {
		t.Errorf("Foreground() = %v, expected %v", s.Foreground(), fg)
	}
	if s.Camera().Float != 4 {
		t.Errorf("Camera().Float = %v, expected 4", s.Camera().Float)
	}

	s.Update(12, 1.0/60, core.NewInputFrame())
	var smoke, eased bool
	for _, h := range s.Obstacles() {
		switch h.Obstacle.(type) {
		case *hazard.Smoke:
			smoke = true
		case *hazard.Ease:
			eased = true
		}
	}
	if !smoke || !eased {
		t.Errorf("smoke spawned %v, eased rect spawned %v, expected both", smoke, eased)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"missing id", "bpm: 120\ntrack: a.mp3\n", "missing id"},
		{"bad bpm", "id: x\nbpm: 0\ntrack: a.mp3\n", "bpm must be positive"},
		{"missing track", "id: x\nbpm: 120\n", "missing track"},
		{"unknown kind", "id: x\nbpm: 120\ntrack: a.mp3\nevents:\n  - at: 1\n    spawn: {kind: meteor}\n", "unknown hazard kind"},
		{"bad vector", "id: x\nbpm: 120\ntrack: a.mp3\nevents:\n  - at: 1\n    spawn: {kind: pellet, pos: [1, 2, 3]}\n", "expected [x, y]"},
		{"bad color", "id: x\nbpm: 120\ntrack: a.mp3\nforeground: nope\n", "level \"x\""},
		{"no action", "id: x\nbpm: 120\ntrack: a.mp3\nevents:\n  - at: 1\n", "no action"},
		{"bad time", "id: x\nbpm: 120\ntrack: a.mp3\nevents:\n  - at: soon\n    shake: 1\n", "invalid time"},
		{"repeat at start", "id: x\nbpm: 120\ntrack: a.mp3\nevents:\n  - at: start\n    repeat: 2\n    shake: 1\n", "numeric time"},
		{"smoke event", "id: x\nbpm: 120\ntrack: a.mp3\nevents:\n  - at: 1\n    spawn: {kind: smoke, events: [{at: 0, kind: boom}]}\n", "unknown kind"},
		{"life rule", "id: x\nbpm: 120\ntrack: a.mp3\nevents:\n  - at: 1\n    spawn: {kind: life, rule: B9/S1}\n", "invalid life rule"},
		{"laser axis", "id: x\nbpm: 120\ntrack: a.mp3\nevents:\n  - at: 1\n    spawn: {kind: laser, axis: diagonal}\n", "unknown axis"},
		{"bomb without life", "id: x\nbpm: 120\ntrack: a.mp3\nevents:\n  - at: 1\n    spawn: {kind: bomb, start: [10, 10], target: [20, 20]}\n", "life must be positive"},
		{"side bomb zero life", "id: x\nbpm: 120\ntrack: a.mp3\nevents:\n  - at: 1\n    spawn: {kind: side_bomb, life: 0}\n", "life must be positive"},
		{"nan time", "id: x\nbpm: 120\ntrack: a.mp3\nevents:\n  - at: nan\n    shake: 1\n", "invalid time"},
		{"infinite time", "id: x\nbpm: 120\ntrack: a.mp3\nevents:\n  - at: +Inf\n    shake: 1\n", "invalid time"},
		{"ease", "id: x\nbpm: 120\ntrack: a.mp3\nevents:\n  - at: 1\n    spawn: {kind: rect, ease: bounce}\n", "unknown ease"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tc.doc))
			if err == nil {
				t.Fatalf("ParseYAML() should fail")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("ParseYAML() error = %q, expected it to contain %q", err, tc.want)
			}
		})
	}
}

func TestLifeSpawnPopulates(t *testing.T) {
	doc := `
id: life
bpm: 120
track: a.mp3
events:
  - at: 0
    spawn:
      kind: life
      width: 4
      height: 4
      cells: [[1, 1], [1, 2], [2, 1], [2, 2]]
      max_ticks: 1
`
	lvl, err := ParseYAML([]byte(doc))
	if err != nil {
		t.Fatalf("ParseYAML() error: %v", err)
	}
	acc := engine.NewAccumulator(0, core.V(400, 400), nil)
	lvl.Events[0].Action.Run(acc, engine.NewArgs(0))
	g, ok := acc.Spawned()[0].Obstacle.(*hazard.LifeGrid)
	if !ok {
		t.Fatalf("spawned %T, expected *hazard.LifeGrid", acc.Spawned()[0].Obstacle)
	}
	if g.Count() != 4 || !g.Alive(1, 1) {
		t.Errorf("grid has %d live cells, expected the 2x2 block", g.Count())
	}
}

func TestEasingsIncrease(t *testing.T) {
	for name, f := range easings {
		prev := f(0)
		for i := 1; i <= 100; i++ {
			x := f(float64(i) * 0.05)
			if x < prev {
				t.Errorf("ease %q decreases at t=%v", name, float64(i)*0.05)
			}
			prev = x
		}
	}
}
