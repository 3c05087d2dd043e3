// internal/game/types.go
//
// Core type definitions for the game driver.
// Defines:
//   - State: coarse game state (playing/won/lost).
//   - Game:  candidate set and history of a single game.
//   - Chooser: anything that picks the next guess.

package game

import (
	"context"

	"github.com/robalobadob/wordle/apps/go-solver/internal/candidates"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// State is the coarse state of a game.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Chooser picks the next guess for a candidate set. *solver.Solver implements it.
type Chooser interface {
	Choose(ctx context.Context, set candidates.Set, history []solver.Turn) (string, error)
}

// Game holds the state of a single game.
// Secret is empty when feedback comes from outside (a real game being played
// elsewhere); such games advance through Apply only.
type Game struct {
	ID         string         // Unique game identifier.
	Secret     string         // The hidden word, or "" when unknown.
	MaxTurns   int            // Guesses allowed before the game is lost.
	Candidates candidates.Set // Words still consistent with History.
	History    []solver.Turn  // Guesses and their feedback, oldest first.
	Finished   bool           // True once the game is over (won or lost).
	Won        bool           // True if the game was finished with a win.
}
