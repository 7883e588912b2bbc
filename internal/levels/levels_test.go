package levels

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
	"github.com/vovakirdan/beatdodge/internal/registry"
)

func testdataPath() string {
	return filepath.Join("testdata", "levels")
}

func TestLoaderLoadAll(t *testing.T) {
	loader := NewLoader(testdataPath())

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(lvls) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(lvls))
	}

	// Should be sorted by ID
	for i := 1; i < len(lvls); i++ {
		if lvls[i-1].ID >= lvls[i].ID {
			t.Errorf("levels not sorted: %s >= %s", lvls[i-1].ID, lvls[i].ID)
		}
	}
}

func TestLoaderLoadByID(t *testing.T) {
	loader := NewLoader(testdataPath())

	lvl, err := loader.LoadByID("alpha")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.Name != "Alpha" || lvl.BPM != 120 || !lvl.Finished {
		t.Errorf("unexpected level: %+v", lvl)
	}
	if expected := filepath.Join(testdataPath(), "alpha.mp3"); lvl.Track != expected {
		t.Errorf("Track = %q, expected %q", lvl.Track, expected)
	}
	if len(lvl.Events) != 5 {
		t.Errorf("expected 5 events, got %d", len(lvl.Events))
	}

	beta, err := loader.LoadByID("beta")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if beta.Track != "/abs/beta.wav" {
		t.Errorf("absolute Track = %q, expected it unchanged", beta.Track)
	}

	if _, err := loader.LoadByID("broken"); err == nil {
		t.Error("LoadByID of an invalid level should fail")
	}
}

func TestLoaderListIDs(t *testing.T) {
	ids, err := NewLoader(testdataPath()).ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}
	if strings.Join(ids, ",") != "alpha,beta" {
		t.Errorf("ListIDs() = %v, expected [alpha beta]", ids)
	}
}

func TestLoaderValidate(t *testing.T) {
	problems, err := NewLoader(testdataPath()).Validate()
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(problems) != 1 {
		t.Fatalf("expected 1 problem, got %d: %v", len(problems), problems)
	}
	if filepath.Base(problems[0].Path) != "broken.yaml" {
		t.Errorf("problem path = %q, expected broken.yaml", problems[0].Path)
	}
	if !strings.Contains(problems[0].Error(), "bpm must be positive") {
		t.Errorf("problem = %q, expected a bpm error", problems[0].Error())
	}
}

func TestLoaderMissingRoot(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "none")).LoadAll(); err == nil {
		t.Error("LoadAll of a missing directory should fail")
	}
}

func TestLevelLoaderClonesEvents(t *testing.T) {
	lvl, err := NewLoader(testdataPath()).LoadByID("alpha")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	load := lvl.Loader()

	for run := 0; run < 2; run++ {
		s := engine.NewSession(engine.DefaultSessionConfig())
		info := load(s)
		if info.BPM != 120 || info.Length != 16 {
			t.Errorf("run %d: info = %+v", run, info)
		}
		if s.Pending() != 5 {
			t.Errorf("run %d: Pending() = %d, expected 5", run, s.Pending())
		}
	}
}

func TestRegisterDir(t *testing.T) {
	n, problems, err := RegisterDir(testdataPath())
	if err != nil {
		t.Fatalf("RegisterDir failed: %v", err)
	}
	defer registry.Unregister("alpha")
	defer registry.Unregister("beta")

	if n != 2 {
		t.Errorf("registered %d levels, expected 2", n)
	}
	if len(problems) != 1 {
		t.Errorf("expected 1 problem, got %d", len(problems))
	}

	l, err := registry.Get("beta")
	if err != nil {
		t.Fatalf("registry.Get failed: %v", err)
	}
	if !strings.HasSuffix(l.Source, "beta.yml") {
		t.Errorf("Source = %q, expected the file path", l.Source)
	}

	// A second pass clashes with the first.
	n, problems, err = RegisterDir(testdataPath())
	if err != nil {
		t.Fatalf("RegisterDir failed: %v", err)
	}
	if n != 0 || len(problems) != 3 {
		t.Errorf("second pass: registered %d, %d problems, expected 0, 3", n, len(problems))
	}
}

func TestRegisterDirMissing(t *testing.T) {
	n, problems, err := RegisterDir(filepath.Join(t.TempDir(), "none"))
	if err != nil || n != 0 || len(problems) != 0 {
		t.Errorf("RegisterDir(missing) = %d, %v, %v, expected 0, none, nil", n, problems, err)
	}
}

func TestFileErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	fe := FileError{Path: "x.yaml", Err: inner}
	if !errors.Is(fe, inner) {
		t.Error("FileError should unwrap to its cause")
	}
}

func TestBuiltinsRegistered(t *testing.T) {
	for _, id := range []string{"pulse", "drift", "lattice"} {
		l, err := registry.Get(id)
		if err != nil {
			t.Errorf("built-in level %q not registered: %v", id, err)
			continue
		}
		if l.Source != Builtin {
			t.Errorf("%s: Source = %q, expected %q", id, l.Source, Builtin)
		}
	}
}

// TestBuiltinsPlayThrough runs every built-in level from start to end with
// a stationary player, checking that the whole schedule fires.
func TestBuiltinsPlayThrough(t *testing.T) {
	for _, id := range []string{"pulse", "drift", "lattice"} {
		t.Run(id, func(t *testing.T) {
			l, err := registry.Get(id)
			if err != nil {
				t.Fatalf("registry.Get failed: %v", err)
			}

			cfg := engine.DefaultSessionConfig()
			cfg.ConsumeHits = false
			s := engine.NewSession(cfg)
			info := l.Loader(s)
			if info.BPM <= 0 || info.Length <= 0 {
				t.Fatalf("info = %+v, expected positive bpm and length", info)
			}
			if info.Track != TrackPath(id) {
				t.Errorf("Track = %q, expected %q", info.Track, TrackPath(id))
			}
			s.SetTempo(info.BPM, 1)
			s.Sort()

			const step = 0.25
			frame := step * 60 / info.BPM
			peak := 0
			for b := 0.0; b <= info.Length; b += step {
				s.Update(b, frame, core.NewInputFrame())
				if n := len(s.Obstacles()); n > peak {
					peak = n
				}
			}
			if s.Pending() != 0 {
				t.Errorf("%d events still pending at the end", s.Pending())
			}
			if peak == 0 {
				t.Error("no obstacle was ever on the field")
			}
			if s.HitsLeft() != cfg.HitPoints {
				t.Errorf("HitsLeft() = %d with hits not consumed, expected %d", s.HitsLeft(), cfg.HitPoints)
			}
		})
	}
}
