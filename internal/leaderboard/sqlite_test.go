package leaderboard

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestSubmitAndTopN(t *testing.T) {
	store := openTestStore(t)

	for _, e := range []Entry{
		{Name: "ava", Score: 100, SurvivalSecs: 12.5, WeekKey: "2026-W35"},
		{Name: "ben", Score: 300, SurvivalSecs: 31.0, WeekKey: "2026-W35"},
		{Name: "", Score: 200, SurvivalSecs: 20.0, WeekKey: "2026-W35"},
		{Name: "old", Score: 999, SurvivalSecs: 90.0, WeekKey: "2026-W34"},
	} {
		if _, err := store.Submit(e); err != nil {
			t.Fatalf("Submit() failed: %v", err)
		}
	}

	top, err := store.TopN("2026-W35", 10)
	if err != nil {
		t.Fatalf("TopN() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("got %d entries, want 3 (other weeks must not leak in)", len(top))
	}
	if top[0].Score != 300 || top[1].Score != 200 || top[2].Score != 100 {
		t.Errorf("entries not sorted by score: %+v", top)
	}
	if top[1].Name != "" {
		t.Errorf("anonymous entry name = %q, want empty", top[1].Name)
	}
	if top[0].SurvivalSecs != 31.0 {
		t.Errorf("survival_secs round trip = %v, want 31.0", top[0].SurvivalSecs)
	}
}

func TestTopNLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.Submit(Entry{Score: (i + 1) * 100, WeekKey: "2026-W35"})
	}

	top, err := store.TopN("2026-W35", 3)
	if err != nil {
		t.Fatalf("TopN() failed: %v", err)
	}
	if len(top) != 3 {
		t.Errorf("got %d entries with limit 3, want 3", len(top))
	}
	if top[0].Score != 500 || top[2].Score != 300 {
		t.Errorf("unexpected top entries: %+v", top)
	}
}

func TestRank(t *testing.T) {
	store := openTestStore(t)

	// Empty board: any score ranks first
	rank, err := store.Rank("2026-W35", 50)
	if err != nil {
		t.Fatalf("Rank() failed: %v", err)
	}
	if rank != 1 {
		t.Errorf("rank on empty board = %d, want 1", rank)
	}

	store.Submit(Entry{Score: 300, WeekKey: "2026-W35"})
	store.Submit(Entry{Score: 100, WeekKey: "2026-W35"})

	if rank, _ = store.Rank("2026-W35", 200); rank != 2 {
		t.Errorf("rank(200) = %d, want 2", rank)
	}
	if rank, _ = store.Rank("2026-W35", 400); rank != 1 {
		t.Errorf("rank(400) = %d, want 1", rank)
	}
	// A tie does not push the new run below the existing one
	if rank, _ = store.Rank("2026-W35", 300); rank != 1 {
		t.Errorf("rank(300) on tie = %d, want 1", rank)
	}
}

func TestHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("2026-W35")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("high score on empty week = %d, want 0", high)
	}

	store.Submit(Entry{Score: 100, WeekKey: "2026-W35"})
	store.Submit(Entry{Score: 300, WeekKey: "2026-W35"})
	store.Submit(Entry{Score: 200, WeekKey: "2026-W35"})

	if high, _ = store.HighScore("2026-W35"); high != 300 {
		t.Errorf("high score = %d, want 300", high)
	}
}

func TestClearWeek(t *testing.T) {
	store := openTestStore(t)

	store.Submit(Entry{Score: 100, WeekKey: "2026-W35"})
	store.Submit(Entry{Score: 200, WeekKey: "2026-W35"})
	store.Submit(Entry{Score: 300, WeekKey: "2026-W34"})

	if err := store.ClearWeek("2026-W35"); err != nil {
		t.Fatalf("ClearWeek() failed: %v", err)
	}

	cleared, _ := store.TopN("2026-W35", 10)
	if len(cleared) != 0 {
		t.Errorf("got %d entries after clear, want 0", len(cleared))
	}

	kept, _ := store.TopN("2026-W34", 10)
	if len(kept) != 1 {
		t.Error("clearing one week should not touch another")
	}
}
