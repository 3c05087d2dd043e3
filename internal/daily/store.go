// internal/daily/store.go
//
// SQLite cache of daily replays, one row per (date, solver key).
//   - Lookup/Insert serve a replay without re-running the solver.
//   - Leaderboard compares the solvers cached for one date.

package daily

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotCached is returned by Lookup when no replay is stored.
var ErrNotCached = errors.New("daily: not cached")

// Store caches replays in the daily_solves table. Only replays that ran to
// the end of the game within their context are stored; Solve refuses to
// return the others, so a cached row matches a fresh full replay for the
// same date, salt, word lists and solver key.
type Store struct{ db *sql.DB }

// NewStore wraps a DB opened with results.Open, which creates daily_solves.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Lookup returns the cached replay for date and solver key.
func (s *Store) Lookup(ctx context.Context, date, solverKey string) (*Result, error) {
	var (
		r    Result
		won  int
		path string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT date, solver, word_index, secret, won, guesses, path
         FROM daily_solves WHERE date=? AND solver=?`,
		date, solverKey,
	).Scan(&r.Date, &r.Solver, &r.WordIndex, &r.Secret, &won, &r.Guesses, &path)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotCached
	}
	if err != nil {
		return nil, err
	}
	r.Won = won == 1
	if err := json.Unmarshal([]byte(path), &r.Path); err != nil {
		return nil, fmt.Errorf("decode path: %w", err)
	}
	return &r, nil
}

// Insert stores a replay; an existing row for the same key is kept.
func (s *Store) Insert(ctx context.Context, r Result) error {
	path, err := json.Marshal(r.Path)
	if err != nil {
		return err
	}
	won := 0
	if r.Won {
		won = 1
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_solves(date, solver, word_index, secret, won, guesses, path)
         VALUES(?,?,?,?,?,?,?)`,
		r.Date, r.Solver, r.WordIndex, r.Secret, won, r.Guesses, string(path),
	)
	return err
}

// Row is one line of the per-day solver comparison.
type Row struct {
	Solver  string `json:"solver"`
	Won     bool   `json:"won"`
	Guesses int    `json:"guesses"`
}

// Leaderboard lists the cached solvers for date, fewest guesses first.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT solver, won, guesses
         FROM daily_solves
         WHERE date=?
         ORDER BY won DESC, guesses ASC, created_at ASC
         LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Row{}
	for rows.Next() {
		var (
			r   Row
			won int
		)
		if err := rows.Scan(&r.Solver, &won, &r.Guesses); err != nil {
			return nil, err
		}
		r.Won = won == 1
		out = append(out, r)
	}
	return out, rows.Err()
}
