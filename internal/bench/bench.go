// Package bench plays the solver against many secrets and aggregates the
// number of guesses it needed.
package bench

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/metrics"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Options controls a benchmark run.
type Options struct {
	// MaxTurns per game; <= 0 uses game.DefaultMaxTurns.
	MaxTurns int
	// Workers is the number of games played concurrently; <= 0 means GOMAXPROCS.
	Workers int
	// Secrets limits the run to these words; empty plays every possible word.
	Secrets []string
}

// Report aggregates a benchmark run.
type Report struct {
	Games     int           `json:"games"`
	Wins      int           `json:"wins"`
	Losses    int           `json:"losses"`
	Errors    int           `json:"errors"`
	Histogram map[int]int   `json:"histogram"` // guesses → won games
	Mean      float64       `json:"mean"`      // mean guesses over won games
	Lost      []string      `json:"lost,omitempty"`
	Duration  time.Duration `json:"durationNs"`
}

// WinRate is the share of games won.
func (r Report) WinRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Games)
}

// Run plays one game per secret with chooser. Game errors are counted, not
// returned; a cancelled ctx stops the run and returns the partial report.
func Run(ctx context.Context, chooser game.Chooser, possible words.List, opts Options) (Report, error) {
	secrets := opts.Secrets
	if len(secrets) == 0 {
		secrets = possible.Words()
	}
	for _, s := range secrets {
		if !possible.Contains(s) {
			return Report{}, fmt.Errorf("%w: secret %q is not a possible word", words.ErrInvalidInput, s)
		}
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	rep := Report{Histogram: make(map[int]int)}
	var mu sync.Mutex
	var guesses int

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, secret := range secrets {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			gm, err := game.New(possible, secret, opts.MaxTurns)
			if err == nil {
				err = gm.Play(gctx, chooser)
			}

			mu.Lock()
			defer mu.Unlock()
			rep.Games++
			switch {
			case err != nil:
				rep.Errors++
				metrics.GamesPlayed.WithLabelValues("error").Inc()
				log.Error().Err(err).Str("secret", secret).Msg("bench game failed")
			case gm.Won:
				rep.Wins++
				rep.Histogram[gm.Turns()]++
				guesses += gm.Turns()
				metrics.GamesPlayed.WithLabelValues(string(game.StateWon)).Inc()
				metrics.GuessesPerGame.Observe(float64(gm.Turns()))
			default:
				rep.Losses++
				rep.Lost = append(rep.Lost, secret)
				metrics.GamesPlayed.WithLabelValues(string(game.StateLost)).Inc()
			}
			return nil
		})
	}
	_ = g.Wait()

	if rep.Wins > 0 {
		rep.Mean = float64(guesses) / float64(rep.Wins)
	}
	slices.Sort(rep.Lost)
	rep.Duration = time.Since(start)

	log.Info().
		Int("games", rep.Games).
		Int("wins", rep.Wins).
		Int("losses", rep.Losses).
		Int("errors", rep.Errors).
		Float64("mean", rep.Mean).
		Dur("took", rep.Duration).
		Msg("bench run complete")

	if err := ctx.Err(); err != nil {
		return rep, err
	}
	if rep.Errors > 0 {
		return rep, errors.New("bench: some games failed")
	}
	return rep, nil
}
