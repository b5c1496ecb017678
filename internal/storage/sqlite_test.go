package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vovakirdan/samegame/internal/games/samegame/core"
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

func saveScore(t *testing.T, store *Store, boardID string, score int) int64 {
	t.Helper()
	id, err := store.SaveRun(Run{BoardID: boardID, Variant: "samegame", Score: score, End: core.EndStuck})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveRunWithMoves(t *testing.T) {
	store := openTestStore(t)

	moves := []core.Move{
		{Number: 1, Row: 1, Column: 1, Removed: 4, Color: core.Red, Score: 4},
		{Number: 2, Row: 1, Column: 1, Removed: 2, Color: core.Green, Score: 0},
		{Number: 3, Row: 1, Column: 1, Removed: 2, Color: core.Blue, Score: 0},
	}
	id, err := store.SaveRun(Run{
		BoardID:   "intro",
		Variant:   "samegame",
		Score:     4,
		Remaining: 1,
		End:       core.EndStuck,
		Moves:     moves,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.RunMoves(id)
	if err != nil {
		t.Fatalf("RunMoves() failed: %v", err)
	}
	if len(got) != len(moves) {
		t.Fatalf("RunMoves() returned %d moves, expected %d", len(got), len(moves))
	}
	for i := range moves {
		if got[i] != moves[i] {
			t.Errorf("move %d = %+v, expected %+v", i, got[i], moves[i])
		}
	}

	entries, err := store.TopScores("intro", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.ID != id || e.MoveCount != 3 || e.Remaining != 1 || e.End != "stuck" || e.Variant != "samegame" {
		t.Errorf("unexpected entry %+v", e)
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}
}

func TestStoreRunMovesUnknownRun(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.RunMoves(42); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("RunMoves(42) error = %v, expected ErrRunNotFound", err)
	}

	id := saveScore(t, store, "empty", 0)
	moves, err := store.RunMoves(id)
	if err != nil {
		t.Fatalf("RunMoves() failed: %v", err)
	}
	if len(moves) != 0 {
		t.Errorf("Expected no moves, got %d", len(moves))
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	saveScore(t, store, "alpha", 100)
	saveScore(t, store, "alpha", 50)
	saveScore(t, store, "alpha", 200)
	saveScore(t, store, "beta", 500)

	scores, err := store.TopScores("alpha", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	betaScores, err := store.TopScores("beta", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(betaScores) != 1 {
		t.Errorf("Expected 1 beta score, got %d", len(betaScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		saveScore(t, store, "test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	first := saveScore(t, store, "a", 1)
	second := saveScore(t, store, "b", 2)

	runs, err := store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != second || runs[1].ID != first {
		t.Errorf("RecentRuns() = %v, expected newest first", runs)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("alpha")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty board, got %d", high)
	}

	saveScore(t, store, "alpha", 100)
	saveScore(t, store, "alpha", 300)
	saveScore(t, store, "alpha", 200)

	high, err = store.HighScore("alpha")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{
		BoardID: "alpha",
		Variant: "samegame",
		Score:   4,
		End:     core.EndCleared,
		Moves:   []core.Move{{Number: 1, Row: 1, Column: 1, Removed: 4, Color: core.Red, Score: 4}},
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	saveScore(t, store, "beta", 300)

	if err := store.ClearScores("alpha"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	alphaScores, _ := store.TopScores("alpha", 10)
	if len(alphaScores) != 0 {
		t.Errorf("Expected 0 alpha scores after clear, got %d", len(alphaScores))
	}
	if _, err := store.RunMoves(id); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("RunMoves() after clear error = %v, expected ErrRunNotFound", err)
	}

	betaScores, _ := store.TopScores("beta", 10)
	if len(betaScores) != 1 {
		t.Errorf("Beta scores should not be affected by clearing alpha")
	}
}

func TestStoreBoardStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetBoardStats("none")
	if err != nil {
		t.Fatalf("GetBoardStats() failed: %v", err)
	}
	if empty.RunsCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for empty board: %+v", empty)
	}

	if _, err := store.SaveRun(Run{BoardID: "alpha", Variant: "samegame", Score: 1004, End: core.EndCleared}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	saveScore(t, store, "alpha", 10)
	saveScore(t, store, "beta", 7)

	stats, err := store.GetBoardStats("alpha")
	if err != nil {
		t.Fatalf("GetBoardStats() failed: %v", err)
	}
	if stats.RunsCount != 2 || stats.HighScore != 1004 || stats.Cleared != 1 || stats.AvgScore != 507 {
		t.Errorf("unexpected stats %+v", stats)
	}

	all, err := store.GetAllBoardsStats()
	if err != nil {
		t.Fatalf("GetAllBoardsStats() failed: %v", err)
	}
	if len(all) != 2 || all["beta"].HighScore != 7 {
		t.Errorf("unexpected all stats %v", all)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	const workers = 32
	moves := []core.Move{{Number: 1, Row: 1, Column: 1, Removed: 2, Color: core.Red, Score: 0}}

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			_, err := store.SaveRun(Run{
				BoardID: "busy",
				Variant: "samegame",
				Score:   score,
				End:     core.EndStuck,
				Moves:   moves,
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("SaveRun() failed: %v", err)
		}
	}

	stats, err := store.GetBoardStats("busy")
	if err != nil {
		t.Fatalf("GetBoardStats() failed: %v", err)
	}
	if stats.RunsCount != workers {
		t.Errorf("RunsCount = %d, expected %d", stats.RunsCount, workers)
	}
}
