package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/beatdodge/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, r Result) {
	t.Helper()
	if _, err := store.SaveResult(r); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreTopResultsOrder(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Result{LevelID: "pulse", HitsLeft: 0, MaxHits: 3, ReachedBeat: 90, Speed: 1})
	mustSave(t, store, Result{LevelID: "pulse", HitsLeft: 1, MaxHits: 3, Cleared: true, ReachedBeat: 116, Speed: 1})
	mustSave(t, store, Result{LevelID: "pulse", HitsLeft: 0, MaxHits: 3, ReachedBeat: 40, Speed: 1})
	mustSave(t, store, Result{LevelID: "pulse", HitsLeft: 3, MaxHits: 3, Cleared: true, ReachedBeat: 116, Speed: 0.8})
	mustSave(t, store, Result{LevelID: "drift", HitsLeft: 2, MaxHits: 3, Cleared: true, ReachedBeat: 70, Speed: 1})

	results, err := store.TopResults("pulse", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("TopResults() returned %d results, expected 4", len(results))
	}

	expected := []struct {
		hits    int
		cleared bool
		beat    float64
	}{
		{3, true, 116},
		{1, true, 116},
		{0, false, 90},
		{0, false, 40},
	}
	for i, e := range expected {
		r := results[i]
		if r.HitsLeft != e.hits || r.Cleared != e.cleared || r.ReachedBeat != e.beat {
			t.Errorf("results[%d] = %+v, expected hits %d cleared %v beat %v", i, r, e.hits, e.cleared, e.beat)
		}
	}
	if results[0].Speed != 0.8 {
		t.Errorf("results[0].Speed = %v, expected 0.8", results[0].Speed)
	}
	if results[0].LevelID != "pulse" || results[0].MaxHits != 3 {
		t.Errorf("results[0] = %+v", results[0])
	}
}

func TestStoreTopResultsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		mustSave(t, store, Result{LevelID: "test", MaxHits: 3, ReachedBeat: float64((i + 1) * 10)})
	}

	results, err := store.TopResults("test", 3)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results with limit, got %d", len(results))
	}
	if results[0].ReachedBeat != 50 || results[1].ReachedBeat != 40 || results[2].ReachedBeat != 30 {
		t.Errorf("Results not in expected order: %v", results)
	}
}

func TestStoreBestResult(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.BestResult("pulse"); err != nil || ok {
		t.Errorf("BestResult() on empty level = ok %v, err %v, expected no result", ok, err)
	}

	mustSave(t, store, Result{LevelID: "pulse", HitsLeft: 0, MaxHits: 3, ReachedBeat: 50})
	mustSave(t, store, Result{LevelID: "pulse", HitsLeft: 2, MaxHits: 3, Cleared: true, ReachedBeat: 116})

	best, ok, err := store.BestResult("pulse")
	if err != nil || !ok {
		t.Fatalf("BestResult() = ok %v, err %v", ok, err)
	}
	if !best.Cleared || best.HitsLeft != 2 {
		t.Errorf("BestResult() = %+v, expected the cleared run", best)
	}
	if best.CreatedAt.IsZero() {
		t.Error("BestResult().CreatedAt should be set")
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Result{LevelID: "pulse", MaxHits: 3})
	mustSave(t, store, Result{LevelID: "pulse", MaxHits: 3})
	mustSave(t, store, Result{LevelID: "drift", MaxHits: 3})

	if err := store.ClearResults("pulse"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	pulse, _ := store.AllResults("pulse")
	if len(pulse) != 0 {
		t.Errorf("Expected 0 pulse results after clear, got %d", len(pulse))
	}
	drift, _ := store.AllResults("drift")
	if len(drift) != 1 {
		t.Errorf("Drift results should not be affected by clearing pulse")
	}
}

func TestStoreAllResults(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		mustSave(t, store, Result{LevelID: "test", MaxHits: 3, ReachedBeat: float64(i)})
	}

	results, err := store.AllResults("test")
	if err != nil {
		t.Fatalf("AllResults() failed: %v", err)
	}
	if len(results) != 20 {
		t.Errorf("Expected 20 results, got %d", len(results))
	}
}

func TestStoreSaveRejectsEmptyLevel(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveResult(Result{}); err == nil {
		t.Error("SaveResult() without level id should fail")
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.LevelStats("pulse")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.ClearRate() != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("LevelStats() on empty level = %+v", empty)
	}

	mustSave(t, store, Result{LevelID: "pulse", HitsLeft: 0, MaxHits: 3, ReachedBeat: 60})
	mustSave(t, store, Result{LevelID: "pulse", HitsLeft: 2, MaxHits: 3, Cleared: true, ReachedBeat: 116})
	mustSave(t, store, Result{LevelID: "drift", HitsLeft: 1, MaxHits: 3, Cleared: true, ReachedBeat: 70})

	st, err := store.LevelStats("pulse")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if st.Runs != 2 || st.Clears != 1 || st.BestHitsLeft != 2 || st.FurthestBeat != 116 {
		t.Errorf("LevelStats() = %+v", st)
	}
	if st.ClearRate() != 0.5 {
		t.Errorf("ClearRate() = %v, expected 0.5", st.ClearRate())
	}

	all, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("AllLevelStats() returned %d levels, expected 2", len(all))
	}
	if all["drift"] == nil || all["drift"].Runs != 1 || all["drift"].Clears != 1 {
		t.Errorf("AllLevelStats()[drift] = %+v", all["drift"])
	}
}

func TestNewResult(t *testing.T) {
	run := engine.RunResult{HitsLeft: 2, MaxHits: 3, Cleared: true, ReachedBeat: 64, Speed: 1.2}
	r := NewResult("lattice", run)
	if r.LevelID != "lattice" || r.HitsLeft != 2 || r.MaxHits != 3 || !r.Cleared || r.ReachedBeat != 64 || r.Speed != 1.2 {
		t.Errorf("NewResult() = %+v", r)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
