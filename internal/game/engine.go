// internal/game/engine.go
//
// Game driver for a single solver game.
// Responsibilities:
//   - Create games over a possible-word list, with or without a known secret.
//   - Apply the turn transition: choose → feedback → filter.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - Exceeding MaxTurns is a loss, not an error.
//   - Feedback that empties the candidate set is rejected with
//     solver.ErrEmptyCandidateSet and leaves the game unchanged.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/go-solver/internal/candidates"
	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// DefaultMaxTurns is the classic six rows.
const DefaultMaxTurns = 6

// ErrFinished is returned when a finished game is advanced.
var ErrFinished = errors.New("game finished")

// New starts a game over the possible list. secret may be empty; otherwise it
// must be a possible word. maxTurns <= 0 uses DefaultMaxTurns.
func New(possible words.List, secret string, maxTurns int) (*Game, error) {
	if possible.Len() == 0 {
		return nil, fmt.Errorf("%w: empty possible list", words.ErrInvalidInput)
	}
	if secret != "" && !possible.Contains(secret) {
		return nil, fmt.Errorf("%w: secret %q is not a possible word", words.ErrInvalidInput, secret)
	}
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Game{
		ID:         uuid.NewString(),
		Secret:     secret,
		MaxTurns:   maxTurns,
		Candidates: candidates.FromList(possible),
		History:    []solver.Turn{},
	}, nil
}

// State reports the coarse game state.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// Turns reports the number of guesses made.
func (g *Game) Turns() int { return len(g.History) }

// Next asks chooser for the next guess without playing it.
func (g *Game) Next(ctx context.Context, chooser Chooser) (string, error) {
	if g.Finished {
		return "", ErrFinished
	}
	return chooser.Choose(ctx, g.Candidates, g.History)
}

// Step plays one full turn against the known secret.
func (g *Game) Step(ctx context.Context, chooser Chooser) (solver.Turn, error) {
	if g.Secret == "" {
		return solver.Turn{}, fmt.Errorf("%w: game has no secret", words.ErrInvalidInput)
	}
	guess, err := g.Next(ctx, chooser)
	if err != nil {
		return solver.Turn{}, err
	}
	pattern, err := feedback.Compute(guess, g.Secret)
	if err != nil {
		return solver.Turn{}, err
	}
	t := solver.Turn{Guess: guess, Pattern: pattern}
	if err := g.Apply(guess, pattern); err != nil {
		return solver.Turn{}, err
	}
	return t, nil
}

// Apply records an observed (guess, pattern) and narrows the candidates.
//
// State transitions:
//   - A solved pattern → Finished = true, Won = true.
//   - Else if the number of guesses reaches MaxTurns → Finished = true (loss).
func (g *Game) Apply(guess string, pattern feedback.Pattern) error {
	if g.Finished {
		return ErrFinished
	}
	next, err := g.Candidates.Filter(guess, pattern)
	if err != nil {
		return err
	}
	if next.Empty() {
		return fmt.Errorf("%w: no candidate fits %s=%s", solver.ErrEmptyCandidateSet, guess, pattern)
	}

	g.Candidates = next
	g.History = append(g.History, solver.Turn{Guess: guess, Pattern: pattern})

	if pattern.Solved() {
		g.Finished, g.Won = true, true
	} else if len(g.History) >= g.MaxTurns {
		g.Finished = true
	}
	return nil
}

// Play steps until the game is won or lost.
func (g *Game) Play(ctx context.Context, chooser Chooser) error {
	for !g.Finished {
		if _, err := g.Step(ctx, chooser); err != nil {
			return err
		}
	}
	return nil
}
