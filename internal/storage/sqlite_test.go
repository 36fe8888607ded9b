package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
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

func save(t *testing.T, store *Store, gameID string, score, lines int) {
	t.Helper()
	_, err := store.SaveResult(gameID, RoundRecord{
		Score:    score,
		Lines:    lines,
		Level:    1 + lines/10,
		Duration: 90 * time.Second,
	})
	if err != nil {
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

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "meltris", 100, 1)
	save(t, store, "meltris", 50, 0)
	save(t, store, "meltris", 2500, 12)
	save(t, store, "meltris_ultra", 500, 4)

	scores, err := store.TopScores("meltris", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{2500, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d].Score = %d, want %d", i, scores[i].Score, w)
		}
	}

	top := scores[0]
	if top.Lines != 12 || top.Level != 2 {
		t.Errorf("top entry lines/level = %d/%d, want 12/2", top.Lines, top.Level)
	}
	if top.Duration != 90*time.Second {
		t.Errorf("top entry duration = %v, want 1m30s", top.Duration)
	}
	if top.CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}

	ultra, err := store.TopScores("meltris_ultra", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(ultra) != 1 {
		t.Errorf("Expected 1 ultra score, got %d", len(ultra))
	}
}

func TestStoreTopScoresTieBreaksOnLines(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "meltris", 400, 2)
	save(t, store, "meltris", 400, 5)

	scores, err := store.TopScores("meltris", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if scores[0].Lines != 5 {
		t.Errorf("tie should rank more lines first, got lines %d", scores[0].Lines)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		save(t, store, "test", (i+1)*100, i)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("meltris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty mode, got %d", high)
	}

	save(t, store, "meltris", 100, 1)
	save(t, store, "meltris", 300, 2)
	save(t, store, "meltris", 200, 1)

	high, err = store.HighScore("meltris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "meltris", 100, 1)
	save(t, store, "meltris", 200, 2)
	save(t, store, "meltris_ultra", 300, 3)

	if err := store.ClearScores("meltris"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("meltris", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}

	ultra, _ := store.TopScores("meltris_ultra", 10)
	if len(ultra) != 1 {
		t.Errorf("ultra scores should not be affected by clearing marathon")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("meltris")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	save(t, store, "meltris", 100, 3)
	save(t, store, "meltris", 800, 9)

	stats, err = store.GetGameStats("meltris")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, want 2", stats.GamesCount)
	}
	if stats.HighScore != 800 || stats.BestLines != 9 || stats.TotalLines != 12 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.PlayTime != 3*time.Minute {
		t.Errorf("PlayTime = %v, want 3m", stats.PlayTime)
	}
}

func TestStoreAllGamesStats(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "meltris", 100, 1)
	save(t, store, "meltris_ultra", 300, 3)
	save(t, store, "meltris_ultra", 200, 2)

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 modes, got %d", len(all))
	}
	if all["meltris_ultra"].GamesCount != 2 || all["meltris_ultra"].HighScore != 300 {
		t.Errorf("ultra stats = %+v", all["meltris_ultra"])
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
