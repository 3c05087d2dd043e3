// internal/solver/greedy.go
//
// One-ply greedy search and the evaluation budget shared by all strategies.
//   - scoreAll shards the allowed list over an errgroup.
//   - Ties prefer candidates, then the lexicographically smaller word.

package solver

import (
	"context"
	"slices"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/go-solver/internal/candidates"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// budget tracks the time and step allowance of one choice. Once exhausted
// it stays exhausted; callers return the best answer found so far.
type budget struct {
	ctx  context.Context
	max  int64
	used atomic.Int64
	hit  atomic.Bool
}

func newBudget(ctx context.Context, maxEvaluations int) *budget {
	return &budget{ctx: ctx, max: int64(maxEvaluations)}
}

// take reserves one guess evaluation.
func (b *budget) take() bool {
	if b.hit.Load() {
		return false
	}
	if b.ctx.Err() != nil {
		b.hit.Store(true)
		return false
	}
	if n := b.used.Add(1); b.max > 0 && n > b.max {
		b.hit.Store(true)
		return false
	}
	return true
}

func (b *budget) exhausted() bool { return b.hit.Load() }

// evaluations reports how many evaluations were granted.
func (b *budget) evaluations() int64 {
	n := b.used.Load()
	if b.max > 0 && n > b.max {
		return b.max
	}
	return n
}

// scoreAll scores every allowed word against set, sharded over workers.
// Words refused by the budget are left out of the result, which is
// returned in allowed-list order.
func scoreAll(allowed words.List, set candidates.Set, sc Scoring, workers int, bud *budget) []scored {
	n := allowed.Len()
	if n == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	results := make([]scored, n)
	done := make([]bool, n)

	var g errgroup.Group
	chunk := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			s := newScorer(sc, set.WordLength())
			for i := lo; i < hi; i++ {
				if !bud.take() {
					return nil
				}
				w := allowed.At(i)
				results[i] = scored{word: w, score: s.score(w, set), member: set.Contains(w)}
				done[i] = true
			}
			return nil
		})
	}
	_ = g.Wait()

	out := results[:0]
	for i := range results {
		if done[i] {
			out = append(out, results[i])
		}
	}
	return out
}

// bestOf returns the best entry by the tie-break order.
func bestOf(ss []scored) (scored, bool) {
	if len(ss) == 0 {
		return scored{}, false
	}
	best := ss[0]
	for _, s := range ss[1:] {
		if better(s, best) {
			best = s
		}
	}
	return best, true
}

// rank sorts ss best first.
func rank(ss []scored) {
	slices.SortFunc(ss, compareScored)
}

// greedy is the one-ply selector.
type greedy struct {
	allowed words.List
	scoring Scoring
	workers int
}

// choose returns the allowed word minimizing the score against set. With no
// evaluation granted it falls back to the smallest candidate.
func (g *greedy) choose(set candidates.Set, bud *budget) scored {
	if set.Len() == 1 {
		return scored{word: set.At(0), member: true}
	}
	best, ok := bestOf(scoreAll(g.allowed, set, g.scoring, g.workers, bud))
	if !ok {
		return scored{word: set.At(0), member: true, score: float64(set.Len())}
	}
	return best
}
