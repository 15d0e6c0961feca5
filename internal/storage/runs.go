package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one finished play session with its counters.
type Run struct {
	ID        uuid.UUID
	GameID    string
	Player    string // SSH/WebSocket user, empty for local play
	Seed      int64
	Score     int
	Stats     map[string]int
	Duration  time.Duration
	CreatedAt time.Time
}

// SaveRun records a run. A zero ID is replaced with a fresh random UUID,
// which is returned.
func (s *Store) SaveRun(run Run) (uuid.UUID, error) {
	return insertRun(s.db, run)
}

func insertRun(db execer, run Run) (uuid.UUID, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	stats := run.Stats
	if stats == nil {
		stats = map[string]int{}
	}
	encoded, err := json.Marshal(stats)
	if err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot encode run stats: %w", err)
	}

	_, err = db.Exec(
		`INSERT INTO runs (run_id, game_id, player, seed, score, stats, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.GameID, run.Player, run.Seed, run.Score, string(encoded), run.Duration.Milliseconds(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.ID, nil
}

// RunByID returns a run, or nil if it does not exist.
func (s *Store) RunByID(id uuid.UUID) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT run_id, game_id, player, seed, score, stats, duration_ms, created_at
		 FROM runs WHERE run_id = ?`,
		id.String(),
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// RecentRuns returns the latest runs of a game, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT run_id, game_id, player, seed, score, stats, duration_ms, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run        Run
		id         string
		stats      string
		durationMs int64
		createdAt  any
	)
	if err := row.Scan(&id, &run.GameID, &run.Player, &run.Seed, &run.Score, &stats, &durationMs, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("storage: cannot scan run: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("storage: bad run id %q: %w", id, err)
	}
	run.ID = parsed

	if err := json.Unmarshal([]byte(stats), &run.Stats); err != nil {
		return nil, fmt.Errorf("storage: bad stats for run %s: %w", id, err)
	}
	run.Duration = time.Duration(durationMs) * time.Millisecond
	run.CreatedAt = parseTimestamp(createdAt)
	return &run, nil
}

// RecordRun stores a finished run and, when it scored, its scoreboard entry.
// Both rows are written in one transaction.
func (s *Store) RecordRun(run Run) (uuid.UUID, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if run.Score > 0 {
		if _, err := insertScore(tx, run.GameID, run.Score); err != nil {
			return uuid.Nil, err
		}
	}
	id, err := insertRun(tx, run)
	if err != nil {
		return uuid.Nil, err
	}
	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}
