// internal/daily/daily.go
//
// Daily puzzle replay.
// Responsibilities:
//   - Pick the day's secret deterministically from date + salt (HMAC).
//   - Replay a solver against it and return the full guess path.

// Package daily picks the puzzle of the day and replays the solver on it.
package daily

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

const dateLayout = "2006-01-02"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD key; empty means today.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", words.ErrInvalidInput, s)
	}
	return t, nil
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes for the modulus
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// Secret returns the possible word for date and its index.
func Secret(date time.Time, salt string, possible words.List) (string, int, error) {
	if possible.Len() == 0 {
		return "", 0, fmt.Errorf("%w: empty possible list", words.ErrInvalidInput)
	}
	idx := WordIndex(date, salt, possible.Len())
	return possible.At(idx), idx, nil
}

// Result is the solver's replay of one day's puzzle.
type Result struct {
	Date      string        `json:"date"`
	Solver    string        `json:"solver"`
	WordIndex int           `json:"wordIndex"`
	Secret    string        `json:"secret"`
	Won       bool          `json:"won"`
	Guesses   int           `json:"guesses"`
	Path      []solver.Turn `json:"path"`
}

// Solve plays the day's puzzle with s and returns every turn.
// A loss is a result, not an error. If ctx ends before the game does, Solve
// fails with ctx's error so a truncated replay is never cached.
func Solve(ctx context.Context, s *solver.Solver, possible words.List, date time.Time, salt string, maxTurns int) (Result, error) {
	secret, idx, err := Secret(date, salt, possible)
	if err != nil {
		return Result{}, err
	}
	g, err := game.New(possible, secret, maxTurns)
	if err != nil {
		return Result{}, err
	}
	if err := g.Play(ctx, s); err != nil {
		return Result{}, fmt.Errorf("daily %s: %w", DateKey(date), err)
	}
	// Guesses chosen after ctx ended are fallbacks, not real picks.
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("daily %s: replay cut short: %w", DateKey(date), err)
	}
	return Result{
		Date:      DateKey(date),
		Solver:    s.Config().Key(),
		WordIndex: idx,
		Secret:    secret,
		Won:       g.Won,
		Guesses:   g.Turns(),
		Path:      g.History,
	}, nil
}
