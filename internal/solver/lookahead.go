// internal/solver/lookahead.go
//
// Depth-bounded expected-cost search with a fingerprint-keyed memo.

package solver

import (
	"slices"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/robalobadob/wordle/apps/go-solver/internal/candidates"
	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/metrics"
)

// lookahead extends greedy with depth-bounded search:
//
//	value(S, d)   = min over g of eval(g, S, d)
//	eval(g, S, 0) = Score(g, S)
//	eval(g, S, d) = Σ over unsolved buckets B of |B|/|S| · (1 + value(B, d-1))
//
// Each level expands only the breadth best guesses by one-ply score.
type lookahead struct {
	greedy
	depth   int
	breadth int
	memo    *memo
}

// choose evaluates the shortlisted root guesses in parallel.
func (l *lookahead) choose(set candidates.Set, bud *budget) scored {
	if set.Len() <= 2 {
		return scored{word: set.At(0), member: true, score: trivialValue(set)}
	}
	if l.depth == 0 {
		return l.greedy.choose(set, bud)
	}

	ranked := scoreAll(l.allowed, set, l.scoring, l.workers, bud)
	if len(ranked) == 0 {
		return scored{word: set.At(0), member: true, score: float64(set.Len())}
	}
	rank(ranked)
	top := shortlist(ranked, l.breadth)

	results := make([]scored, len(top))
	var g errgroup.Group
	g.SetLimit(l.workers)
	for i, cand := range top {
		g.Go(func() error {
			results[i] = scored{word: cand.word, member: cand.member, score: l.eval(cand.word, set, l.depth, bud)}
			return nil
		})
	}
	_ = g.Wait()

	if bud.exhausted() {
		// Deeper values may be partial; trust the one-ply ranking.
		return ranked[0]
	}
	best, _ := bestOf(results)
	return best
}

// eval is the expected cost of guessing g against set with depth d left.
func (l *lookahead) eval(g string, set candidates.Set, d int, bud *budget) float64 {
	if d == 0 {
		return newScorer(l.scoring, set.WordLength()).score(g, set)
	}
	parts := set.Partition(g)
	codes := make([]uint64, 0, len(parts))
	for c := range parts {
		codes = append(codes, c)
	}
	// Fixed order keeps the float sum deterministic.
	slices.Sort(codes)

	solved := feedback.SolvedCode(set.WordLength())
	n := float64(set.Len())
	var total float64
	for _, c := range codes {
		if c == solved {
			continue
		}
		part := parts[c]
		total += float64(part.Len()) / n * (1 + l.value(part, d-1, bud))
	}
	return total
}

// value is the cost of the best guess for set with depth d left.
func (l *lookahead) value(set candidates.Set, d int, bud *budget) float64 {
	if set.Len() <= 2 {
		return trivialValue(set)
	}
	key := set.Fingerprint() + "/" + strconv.Itoa(d)
	if v, ok := l.memo.get(key); ok {
		metrics.CacheLookups.WithLabelValues("memo", "hit").Inc()
		return v
	}
	metrics.CacheLookups.WithLabelValues("memo", "miss").Inc()

	res, _, _ := l.memo.flight.Do(key, func() (any, error) {
		v, complete := l.compute(set, d, bud)
		if complete {
			l.memo.put(key, v)
		}
		return memoResult{value: v, complete: complete}, nil
	})
	r := res.(memoResult)
	if !r.complete && !bud.exhausted() {
		// Shared with a search whose budget ran out; redo under ours.
		v, _ := l.compute(set, d, bud)
		return v
	}
	return r.value
}

// compute runs one search level sequentially; the root already fans out.
func (l *lookahead) compute(set candidates.Set, d int, bud *budget) (float64, bool) {
	ranked := scoreAll(l.allowed, set, l.scoring, 1, bud)
	if len(ranked) == 0 {
		return float64(set.Len()), false
	}
	rank(ranked)
	if d == 0 {
		return ranked[0].score, !bud.exhausted()
	}
	best := ranked[0].score
	first := true
	for _, cand := range shortlist(ranked, l.breadth) {
		v := l.eval(cand.word, set, d, bud)
		if first || v < best {
			best, first = v, false
		}
		if bud.exhausted() {
			return best, false
		}
	}
	return best, true
}

// shortlist keeps the breadth best guesses and, when none of them is a
// candidate, the best-ranked candidate as well.
func shortlist(ranked []scored, breadth int) []scored {
	if breadth >= len(ranked) {
		return ranked
	}
	top := slices.Clone(ranked[:breadth])
	if slices.ContainsFunc(top, func(s scored) bool { return s.member }) {
		return top
	}
	for _, s := range ranked[breadth:] {
		if s.member {
			return append(top, s)
		}
	}
	return top
}

// trivialValue is the cost of a set of one or two words: guess the first,
// which fails only when the secret is the second.
func trivialValue(set candidates.Set) float64 {
	if set.Len() <= 1 {
		return 0
	}
	return float64(set.Len()-1) / float64(set.Len())
}

type memoResult struct {
	value    float64
	complete bool
}

// memo caches search values by candidate-set fingerprint and depth.
type memo struct {
	mu      sync.RWMutex
	entries map[string]float64
	max     int
	flight  singleflight.Group
}

func newMemo(limit int) *memo {
	return &memo{entries: make(map[string]float64), max: limit}
}

func (m *memo) get(key string) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

// put stores a value; a full memo is reset rather than evicted entry by entry.
func (m *memo) put(key string, v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.max > 0 && len(m.entries) >= m.max {
		clear(m.entries)
	}
	m.entries[key] = v
}
