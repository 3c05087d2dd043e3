// internal/solver/config.go
//
// Solver configuration, its defaults and the cache key derived from it.

// Package solver picks guesses.
//
// Strategies:
//   - random:    uniform draw from the remaining candidates.
//   - greedy:    one-ply minimum of the scoring function over the allowed list.
//   - lookahead: greedy extended with depth-bounded expected-cost search.
//
// Scoring policies (lower is better):
//   - expected_count: expected number of candidates left after the guess.
//   - entropy:        negated Shannon entropy of the feedback distribution.
package solver

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// ErrEmptyCandidateSet means no word fits the feedback seen so far: the
// feedback was inconsistent with every possible secret.
var ErrEmptyCandidateSet = errors.New("empty candidate set")

// Strategy selects the guess-picking implementation.
type Strategy string

const (
	StrategyRandom    Strategy = "random"
	StrategyGreedy    Strategy = "greedy"
	StrategyLookahead Strategy = "lookahead"
)

// Scoring selects the one-ply scoring policy.
type Scoring string

const (
	ScoringExpectedCount Scoring = "expected_count"
	ScoringEntropy       Scoring = "entropy"
)

// ParseStrategy accepts a strategy name, case-insensitively.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case StrategyRandom, StrategyGreedy, StrategyLookahead:
		return st, nil
	case "":
		return StrategyGreedy, nil
	}
	return "", fmt.Errorf("%w: unknown strategy %q", words.ErrInvalidInput, s)
}

// ParseScoring accepts a scoring name, case-insensitively.
func ParseScoring(s string) (Scoring, error) {
	switch sc := Scoring(strings.ToLower(strings.TrimSpace(s))); sc {
	case ScoringExpectedCount, ScoringEntropy:
		return sc, nil
	case "", "expected", "count":
		return ScoringExpectedCount, nil
	}
	return "", fmt.Errorf("%w: unknown scoring %q", words.ErrInvalidInput, s)
}

// OpenerFrequency picks the first guess by positional letter frequency.
const OpenerFrequency = "frequency"

// Config parameterizes a Solver.
type Config struct {
	Strategy Strategy
	Scoring  Scoring

	// Depth is the lookahead depth; 0 behaves as greedy.
	Depth int

	// Seed feeds the random strategy.
	Seed int64

	// Workers shards scoring across goroutines; <= 0 means GOMAXPROCS.
	Workers int

	// Breadth caps the guesses expanded per lookahead level.
	Breadth int

	// MaxEvaluations is a step budget on scored guesses per choice; 0 is unlimited.
	MaxEvaluations int

	// Opener is the first guess of a game: a fixed allowed word,
	// OpenerFrequency, or empty to search as usual.
	Opener string

	// CacheSize bounds the decision cache; 0 uses the default, < 0 disables it.
	CacheSize int
}

// DefaultConfig returns the greedy expected-count solver.
func DefaultConfig() Config {
	return Config{
		Strategy: StrategyGreedy,
		Scoring:  ScoringExpectedCount,
		Depth:    1,
		Breadth:  16,
	}
}

const defaultCacheSize = 4096

// normalize fills defaults and validates the config against the allowed list.
func (c Config) normalize(allowed words.List) (Config, error) {
	var err error
	if c.Strategy, err = ParseStrategy(string(c.Strategy)); err != nil {
		return c, err
	}
	if c.Scoring, err = ParseScoring(string(c.Scoring)); err != nil {
		return c, err
	}
	if c.Depth < 0 {
		return c, fmt.Errorf("%w: negative depth %d", words.ErrInvalidInput, c.Depth)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Breadth <= 0 {
		c.Breadth = 16
	}
	if c.MaxEvaluations < 0 {
		c.MaxEvaluations = 0
	}
	if c.CacheSize == 0 {
		c.CacheSize = defaultCacheSize
	}
	c.Opener = strings.ToLower(strings.TrimSpace(c.Opener))
	if c.Opener != "" && c.Opener != OpenerFrequency && !allowed.Contains(c.Opener) {
		return c, fmt.Errorf("%w: opener %q is not an allowed word", words.ErrInvalidInput, c.Opener)
	}
	return c, nil
}

// Key identifies the decisions a normalized config makes: two solvers with
// equal keys over the same allowed list choose the same guesses.
func (c Config) Key() string {
	k := fmt.Sprintf("%s/%s/d%d/b%d", c.Strategy, c.Scoring, c.Depth, c.Breadth)
	if c.Opener != "" {
		k += "/" + c.Opener
	}
	if c.Strategy == StrategyRandom {
		k += fmt.Sprintf("/s%d", c.Seed)
	}
	return k
}
