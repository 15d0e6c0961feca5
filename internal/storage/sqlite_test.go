package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "a", "b", "scores.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.arcade/scores.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".arcade", "scores.db")); err != nil {
		t.Errorf("database not created under HOME: %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveScore("pachinko", 70)
	store.Close()

	// Second open must not re-run migrations destructively
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	var version int
	if err := store.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		t.Fatal(err)
	}
	if version != len(migrations) {
		t.Errorf("user_version = %d, want %d", version, len(migrations))
	}
	if hs, _ := store.HighScore("pachinko"); hs != 70 {
		t.Errorf("high score after reopen = %d, want 70", hs)
	}
}

func TestTopScoresOrderAndIsolation(t *testing.T) {
	store := openTestStore(t)
	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("pachinko", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	store.SaveScore("peggle", 500)

	scores, err := store.TopScores("pachinko", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	want := []int{200, 100, 50}
	if len(scores) != len(want) {
		t.Fatalf("got %d scores, want %d", len(scores), len(want))
	}
	for i, w := range want {
		if scores[i].Score != w || scores[i].GameID != "pachinko" {
			t.Errorf("scores[%d] = %+v, want score %d", i, scores[i], w)
		}
		if scores[i].CreatedAt.IsZero() {
			t.Errorf("scores[%d] has no timestamp", i)
		}
	}
}

func TestTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	for i := range 20 {
		store.SaveScore("pachinko", i*10)
	}

	tests := []struct {
		limit int
		want  int
	}{
		{5, 5},
		{0, 10}, // default
		{50, 20},
	}
	for _, tt := range tests {
		scores, err := store.TopScores("pachinko", tt.limit)
		if err != nil {
			t.Fatalf("TopScores(%d) failed: %v", tt.limit, err)
		}
		if len(scores) != tt.want {
			t.Errorf("TopScores(%d) = %d rows, want %d", tt.limit, len(scores), tt.want)
		}
	}

	all, _ := store.AllScores("pachinko")
	if len(all) != 20 {
		t.Errorf("AllScores = %d rows, want 20", len(all))
	}
}

func TestHighScore(t *testing.T) {
	store := openTestStore(t)

	if hs, err := store.HighScore("pachinko"); err != nil || hs != 0 {
		t.Errorf("empty HighScore = %d, %v; want 0, nil", hs, err)
	}

	store.SaveScore("pachinko", 30)
	store.SaveScore("pachinko", 90)
	store.SaveScore("pachinko", 60)
	if hs, _ := store.HighScore("pachinko"); hs != 90 {
		t.Errorf("HighScore = %d, want 90", hs)
	}
}

func TestClearScoresOnlyThatGame(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("pachinko", 10)
	store.SaveScore("peggle", 20)

	if err := store.ClearScores("pachinko"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if left, _ := store.AllScores("pachinko"); len(left) != 0 {
		t.Errorf("pachinko scores left: %d", len(left))
	}
	if other, _ := store.AllScores("peggle"); len(other) != 1 {
		t.Errorf("peggle scores = %d, want 1", len(other))
	}
}
