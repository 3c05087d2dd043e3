// internal/results/store.go
//
// Persistence for benchmark runs.
// Responsibilities:
//   - Label a bench report with the solver that produced it.
//   - Insert a run and its guess histogram in one transaction.
//   - List runs for the leaderboard and load one run back.

package results

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/go-solver/internal/bench"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// Run is one persisted benchmark run.
type Run struct {
	ID         string      `json:"id"`
	Solver     string      `json:"solver"` // solver.Config.Key
	Strategy   string      `json:"strategy"`
	Scoring    string      `json:"scoring"`
	Depth      int         `json:"depth"`
	Games      int         `json:"games"`
	Wins       int         `json:"wins"`
	Losses     int         `json:"losses"`
	Errors     int         `json:"errors"`
	Mean       float64     `json:"mean"`
	DurationMs int64       `json:"durationMs"`
	Histogram  map[int]int `json:"histogram,omitempty"`
	StartedBy  string      `json:"startedBy,omitempty"`
	CreatedAt  string      `json:"createdAt"`
}

// NewRun labels a bench report with the solver configuration that produced it.
func NewRun(cfg solver.Config, rep bench.Report) Run {
	return Run{
		ID:         uuid.NewString(),
		Solver:     cfg.Key(),
		Strategy:   string(cfg.Strategy),
		Scoring:    string(cfg.Scoring),
		Depth:      cfg.Depth,
		Games:      rep.Games,
		Wins:       rep.Wins,
		Losses:     rep.Losses,
		Errors:     rep.Errors,
		Mean:       rep.Mean,
		DurationMs: rep.Duration.Milliseconds(),
		Histogram:  rep.Histogram,
	}
}

// Store reads and writes bench_runs and bench_histogram.
type Store struct{ db *sql.DB }

// NewStore wraps a DB opened with Open.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert stores a run and its histogram in one transaction.
func (s *Store) Insert(ctx context.Context, r Run) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO bench_runs
            (id, solver, strategy, scoring, depth, games, wins, losses, errors, mean, duration_ms, started_by, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Solver, r.Strategy, r.Scoring, r.Depth, r.Games, r.Wins, r.Losses, r.Errors, r.Mean, r.DurationMs,
		r.StartedBy, time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	guesses := make([]int, 0, len(r.Histogram))
	for g := range r.Histogram {
		guesses = append(guesses, g)
	}
	sort.Ints(guesses)
	for _, g := range guesses {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO bench_histogram (run_id, guesses, games) VALUES (?, ?, ?)`,
			r.ID, g, r.Histogram[g],
		); err != nil {
			return fmt.Errorf("insert histogram: %w", err)
		}
	}
	return tx.Commit()
}

// Leaderboard returns runs ordered by mean guesses, then more games, then age.
// Runs with errors are excluded. Default limit is 20.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, solver, strategy, scoring, depth, games, wins, losses, errors, mean, duration_ms, started_by, created_at
        FROM bench_runs
        WHERE errors = 0 AND wins > 0
        ORDER BY mean ASC, games DESC, created_at ASC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Run, 0, limit)
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Solver, &r.Strategy, &r.Scoring, &r.Depth, &r.Games, &r.Wins,
			&r.Losses, &r.Errors, &r.Mean, &r.DurationMs, &r.StartedBy, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Get loads one run with its histogram.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	var r Run
	err := s.db.QueryRowContext(ctx, `
        SELECT id, solver, strategy, scoring, depth, games, wins, losses, errors, mean, duration_ms, started_by, created_at
        FROM bench_runs WHERE id=?`, id,
	).Scan(&r.ID, &r.Solver, &r.Strategy, &r.Scoring, &r.Depth, &r.Games, &r.Wins,
		&r.Losses, &r.Errors, &r.Mean, &r.DurationMs, &r.StartedBy, &r.CreatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT guesses, games FROM bench_histogram WHERE run_id=?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	r.Histogram = make(map[int]int)
	for rows.Next() {
		var g, n int
		if err := rows.Scan(&g, &n); err != nil {
			return nil, err
		}
		r.Histogram[g] = n
	}
	return &r, rows.Err()
}
