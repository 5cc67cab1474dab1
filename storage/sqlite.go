// Package storage keeps match history in SQLite using the pure-Go
// modernc.org/sqlite driver.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages the SQLite connection for round and match results.
type Store struct {
	db *sql.DB
}

// RoundResult is the outcome of one round. Winner is a player number, zero
// for a draw.
type RoundResult struct {
	MatchID    string
	Round      int
	Winner     int
	WinnerName string
	Duration   float64 // seconds
	PlayedAt   time.Time
}

// MatchResult is the outcome of a finished match.
type MatchResult struct {
	MatchID    string
	Winner     int
	WinnerName string
	Rounds     int
	Scores     []PlayerScore
	PlayedAt   time.Time
}

// PlayerScore is one player's round wins at the end of a match.
type PlayerScore struct {
	Player int
	Name   string
	Wins   int
}

// PlayerTotal sums a player's history across every stored match.
type PlayerTotal struct {
	Name      string
	MatchWins int
	RoundWins int
}

// Open creates or opens a SQLite database at the given path, creating parent
// directories and running migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL,
			round INTEGER NOT NULL,
			winner INTEGER NOT NULL DEFAULT 0,
			winner_name TEXT NOT NULL DEFAULT '',
			duration_secs REAL NOT NULL DEFAULT 0,
			played_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_match_id ON rounds(match_id);

		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			winner INTEGER NOT NULL,
			winner_name TEXT NOT NULL,
			rounds INTEGER NOT NULL,
			played_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS match_scores (
			match_id TEXT NOT NULL,
			player INTEGER NOT NULL,
			name TEXT NOT NULL,
			wins INTEGER NOT NULL,
			PRIMARY KEY (match_id, player)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRound records one finished round.
func (s *Store) SaveRound(r RoundResult) error {
	_, err := s.db.Exec(
		`INSERT INTO rounds (match_id, round, winner, winner_name, duration_secs, played_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.MatchID, r.Round, r.Winner, r.WinnerName, r.Duration, r.PlayedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save round: %w", err)
	}
	return nil
}

// SaveMatch records a finished match and its final scores.
func (s *Store) SaveMatch(m MatchResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO matches (match_id, winner, winner_name, rounds, played_at)
		 VALUES (?, ?, ?, ?, ?)`,
		m.MatchID, m.Winner, m.WinnerName, m.Rounds, m.PlayedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save match: %w", err)
	}

	for _, score := range m.Scores {
		_, err = tx.Exec(
			"INSERT INTO match_scores (match_id, player, name, wins) VALUES (?, ?, ?, ?)",
			m.MatchID, score.Player, score.Name, score.Wins,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save score for player %d: %w", score.Player, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return nil
}

// RecentMatches returns the latest matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT match_id, winner, winner_name, rounds, played_at
		 FROM matches
		 ORDER BY played_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}

	var matches []MatchResult
	for rows.Next() {
		var m MatchResult
		var playedAt int64
		if err := rows.Scan(&m.MatchID, &m.Winner, &m.WinnerName, &m.Rounds, &playedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan match: %w", err)
		}
		m.PlayedAt = time.UnixMilli(playedAt)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	rows.Close()

	for i := range matches {
		scores, err := s.matchScores(matches[i].MatchID)
		if err != nil {
			return nil, err
		}
		matches[i].Scores = scores
	}

	return matches, nil
}

func (s *Store) matchScores(matchID string) ([]PlayerScore, error) {
	rows, err := s.db.Query(
		"SELECT player, name, wins FROM match_scores WHERE match_id = ? ORDER BY player",
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var scores []PlayerScore
	for rows.Next() {
		var p PlayerScore
		if err := rows.Scan(&p.Player, &p.Name, &p.Wins); err != nil {
			return nil, fmt.Errorf("storage: cannot scan score: %w", err)
		}
		scores = append(scores, p)
	}
	return scores, rows.Err()
}

// WinsByPlayer totals match and round wins per player name, best first.
// Draws are not counted.
func (s *Store) WinsByPlayer() ([]PlayerTotal, error) {
	rows, err := s.db.Query(`
		SELECT name, SUM(match_wins), SUM(round_wins) FROM (
			SELECT winner_name AS name, 1 AS match_wins, 0 AS round_wins
			FROM matches WHERE winner <> 0
			UNION ALL
			SELECT winner_name, 0, 1
			FROM rounds WHERE winner <> 0
		)
		GROUP BY name
		ORDER BY SUM(match_wins) DESC, SUM(round_wins) DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query wins: %w", err)
	}
	defer rows.Close()

	var totals []PlayerTotal
	for rows.Next() {
		var t PlayerTotal
		if err := rows.Scan(&t.Name, &t.MatchWins, &t.RoundWins); err != nil {
			return nil, fmt.Errorf("storage: cannot scan wins: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return totals, nil
}
