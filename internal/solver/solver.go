// internal/solver/solver.go
//
// Solver entry point.
// Responsibilities:
//   - Validate the candidate set and history before any search.
//   - Short-circuit singletons, random draws and configured openers.
//   - Cache complete decisions by candidate-set fingerprint.
//
// Notes:
//   - Concurrent callers on one fingerprint share a single search. A result
//     cut short by the leader's budget is recomputed by callers whose own
//     context is still live, and only complete results are cached.

package solver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/robalobadob/wordle/apps/go-solver/internal/candidates"
	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/metrics"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Turn is one entry of a game's guess history.
type Turn struct {
	Guess   string           `json:"guess"`
	Pattern feedback.Pattern `json:"pattern"`
}

// Solver chooses guesses from a fixed allowed list with a fixed Config.
// Safe for concurrent use; concurrent games may share one Solver.
type Solver struct {
	cfg     Config
	allowed words.List

	greedy    *greedy
	lookahead *lookahead
	random    *random

	cache *decisionCache
}

// New validates cfg against allowed and builds a Solver.
func New(allowed words.List, cfg Config) (*Solver, error) {
	if allowed.Len() == 0 {
		return nil, fmt.Errorf("%w: empty allowed list", words.ErrInvalidInput)
	}
	cfg, err := cfg.normalize(allowed)
	if err != nil {
		return nil, err
	}
	g := &greedy{allowed: allowed, scoring: cfg.Scoring, workers: cfg.Workers}
	s := &Solver{
		cfg:     cfg,
		allowed: allowed,
		greedy:  g,
		lookahead: &lookahead{
			greedy:  *g,
			depth:   cfg.Depth,
			breadth: cfg.Breadth,
			memo:    newMemo(1 << 16),
		},
		random: newRandom(cfg.Seed),
	}
	if cfg.CacheSize > 0 && cfg.Strategy != StrategyRandom {
		s.cache = newDecisionCache(cfg.CacheSize)
	}
	return s, nil
}

// ChooseGuess builds a one-off Solver and asks it for a guess. Use New and
// Choose to keep caches across turns and games.
func ChooseGuess(ctx context.Context, set candidates.Set, allowed words.List, history []Turn, cfg Config) (string, error) {
	s, err := New(allowed, cfg)
	if err != nil {
		return "", err
	}
	return s.Choose(ctx, set, history)
}

// Config returns the normalized configuration.
func (s *Solver) Config() Config { return s.cfg }

// Allowed returns the allowed list guesses are drawn from.
func (s *Solver) Allowed() words.List { return s.allowed }

// Choose returns the next guess for the candidate set.
//
// A singleton set returns its member. An empty set fails with
// ErrEmptyCandidateSet. When ctx ends or the step budget runs out the best
// guess found so far is returned.
func (s *Solver) Choose(ctx context.Context, set candidates.Set, history []Turn) (string, error) {
	if set.Empty() {
		return "", ErrEmptyCandidateSet
	}
	n := set.WordLength()
	if n != s.allowed.WordLength() {
		return "", fmt.Errorf("%w: candidates have length %d, allowed words %d", words.ErrInvalidInput, n, s.allowed.WordLength())
	}
	for i, t := range history {
		if len(t.Guess) != n || len(t.Pattern) != n {
			return "", fmt.Errorf("%w: history turn %d does not match word length %d", words.ErrInvalidInput, i, n)
		}
		if err := t.Pattern.Validate(); err != nil {
			return "", fmt.Errorf("history turn %d: %w", i, err)
		}
	}
	if set.Len() == 1 {
		return set.At(0), nil
	}

	start := time.Now()
	strategy := string(s.cfg.Strategy)
	defer func() {
		metrics.ChooseDuration.WithLabelValues(strategy).Observe(time.Since(start).Seconds())
	}()

	if s.cfg.Strategy == StrategyRandom {
		return s.random.choose(set)
	}

	if len(history) == 0 && s.cfg.Opener != "" {
		if s.cfg.Opener == OpenerFrequency {
			return frequencyOpener(set), nil
		}
		return s.cfg.Opener, nil
	}

	if s.cache == nil {
		best, _ := s.search(ctx, set)
		return best.word, nil
	}

	key := set.Fingerprint()
	if w, ok := s.cache.get(key); ok {
		metrics.CacheLookups.WithLabelValues("decision", "hit").Inc()
		return w, nil
	}
	metrics.CacheLookups.WithLabelValues("decision", "miss").Inc()

	led := false
	res, _, _ := s.cache.flight.Do(key, func() (any, error) {
		led = true
		best, complete := s.search(ctx, set)
		if complete {
			s.cache.put(key, best.word)
		}
		return decision{word: best.word, complete: complete}, nil
	})
	d := res.(decision)
	if !d.complete && !led && ctx.Err() == nil {
		// Shared with a caller whose budget ran out; redo under ours.
		best, complete := s.search(ctx, set)
		if complete {
			s.cache.put(key, best.word)
		}
		return best.word, nil
	}
	return d.word, nil
}

// decision is what a shared decision-cache search hands to every waiter.
type decision struct {
	word     string
	complete bool
}

// search dispatches to the configured strategy. complete is false when the
// budget cut the search short.
func (s *Solver) search(ctx context.Context, set candidates.Set) (scored, bool) {
	bud := newBudget(ctx, s.cfg.MaxEvaluations)

	var best scored
	switch s.cfg.Strategy {
	case StrategyLookahead:
		best = s.lookahead.choose(set, bud)
	default:
		best = s.greedy.choose(set, bud)
	}

	strategy := string(s.cfg.Strategy)
	metrics.GuessesScored.WithLabelValues(strategy).Add(float64(bud.evaluations()))
	if bud.exhausted() {
		metrics.BudgetExhausted.WithLabelValues(strategy).Inc()
		log.Warn().
			Str("strategy", strategy).
			Int("candidates", set.Len()).
			Str("guess", best.word).
			Msg("solver budget exhausted, returning best so far")
	}
	log.Debug().
		Str("strategy", strategy).
		Int("candidates", set.Len()).
		Str("guess", best.word).
		Float64("score", best.score).
		Msg("guess chosen")
	return best, !bud.exhausted()
}

// decisionCache maps candidate-set fingerprints to chosen guesses.
type decisionCache struct {
	mu      sync.RWMutex
	entries map[string]string
	max     int
	flight  singleflight.Group
}

func newDecisionCache(limit int) *decisionCache {
	return &decisionCache{entries: make(map[string]string), max: limit}
}

func (c *decisionCache) get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	w, ok := c.entries[key]
	return w, ok
}

func (c *decisionCache) put(key, w string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.max {
		clear(c.entries)
	}
	c.entries[key] = w
}
