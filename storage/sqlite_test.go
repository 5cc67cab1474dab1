package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "tanks.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "a", "b", "tanks.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatalf("database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tanks.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SaveRound(RoundResult{MatchID: "m1", Round: 1, Winner: 1, WinnerName: "Blue", PlayedAt: time.Now()}); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	totals, err := store.WinsByPlayer()
	if err != nil {
		t.Fatalf("WinsByPlayer() failed: %v", err)
	}
	if len(totals) != 1 || totals[0].RoundWins != 1 {
		t.Fatalf("expected one round win after reopen, got %+v", totals)
	}
}

func TestStoreRecentMatches(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)

	for i, winner := range []string{"Blue", "Red", "Blue"} {
		m := MatchResult{
			MatchID:    "m" + string(rune('1'+i)),
			Winner:     1,
			WinnerName: winner,
			Rounds:     7 + i,
			PlayedAt:   base.Add(time.Duration(i) * time.Minute),
			Scores: []PlayerScore{
				{Player: 2, Name: "Red", Wins: 2},
				{Player: 1, Name: "Blue", Wins: 5},
			},
		}
		if err := store.SaveMatch(m); err != nil {
			t.Fatalf("SaveMatch(%d) failed: %v", i, err)
		}
	}

	matches, err := store.RecentMatches(2)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].MatchID != "m3" || matches[1].MatchID != "m2" {
		t.Fatalf("expected newest first, got %s, %s", matches[0].MatchID, matches[1].MatchID)
	}
	if !matches[0].PlayedAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("played_at round trip: got %v", matches[0].PlayedAt)
	}
	if len(matches[0].Scores) != 2 || matches[0].Scores[0].Player != 1 || matches[0].Scores[0].Wins != 5 {
		t.Fatalf("unexpected scores: %+v", matches[0].Scores)
	}
}

func TestStoreSaveMatchDuplicateID(t *testing.T) {
	store := openTestStore(t)

	m := MatchResult{MatchID: "dup", Winner: 1, WinnerName: "Blue", Rounds: 5, PlayedAt: time.Now()}
	if err := store.SaveMatch(m); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if err := store.SaveMatch(m); err == nil {
		t.Fatalf("expected error saving a match id twice")
	}
}

func TestStoreWinsByPlayer(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()

	rounds := []RoundResult{
		{MatchID: "m1", Round: 1, Winner: 1, WinnerName: "Blue"},
		{MatchID: "m1", Round: 2, Winner: 2, WinnerName: "Red"},
		{MatchID: "m1", Round: 3, Winner: 0},
		{MatchID: "m1", Round: 4, Winner: 1, WinnerName: "Blue"},
	}
	for _, r := range rounds {
		r.PlayedAt = now
		if err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}
	if err := store.SaveMatch(MatchResult{MatchID: "m1", Winner: 1, WinnerName: "Blue", Rounds: 4, PlayedAt: now}); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}

	totals, err := store.WinsByPlayer()
	if err != nil {
		t.Fatalf("WinsByPlayer() failed: %v", err)
	}

	want := []PlayerTotal{
		{Name: "Blue", MatchWins: 1, RoundWins: 2},
		{Name: "Red", MatchWins: 0, RoundWins: 1},
	}
	if len(totals) != len(want) {
		t.Fatalf("expected %d totals, got %+v", len(want), totals)
	}
	for i := range want {
		if totals[i] != want[i] {
			t.Fatalf("total %d: expected %+v, got %+v", i, want[i], totals[i])
		}
	}
}

func TestStoreEmpty(t *testing.T) {
	store := openTestStore(t)

	matches, err := store.RecentMatches(0)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(matches))
	}

	totals, err := store.WinsByPlayer()
	if err != nil {
		t.Fatalf("WinsByPlayer() failed: %v", err)
	}
	if len(totals) != 0 {
		t.Fatalf("expected no totals, got %d", len(totals))
	}
}
