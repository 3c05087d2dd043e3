package solver

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/candidates"
	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func mustList(t *testing.T, ws ...string) words.List {
	t.Helper()
	l, err := words.NewList(ws)
	require.NoError(t, err)
	return l
}

func embedded(t *testing.T) (candidates.Set, words.List) {
	t.Helper()
	p, a, err := words.Load("", "")
	require.NoError(t, err)
	return candidates.FromList(p), a
}

func TestScoreExpectedCount(t *testing.T) {
	set := candidates.FromList(mustList(t, "abc", "abd", "aef"))

	s, err := Score("abc", set, ScoringExpectedCount)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, s, 1e-12)

	s, err = Score("aef", set, ScoringExpectedCount)
	require.NoError(t, err)
	assert.InDelta(t, 4.0/3.0, s, 1e-12)
}

func TestScoreEntropy(t *testing.T) {
	set := candidates.FromList(mustList(t, "abc", "abd", "aef"))

	s, err := Score("abc", set, ScoringEntropy)
	require.NoError(t, err)
	assert.InDelta(t, -math.Log2(3), s, 1e-12)

	s, err = Score("aef", set, ScoringEntropy)
	require.NoError(t, err)
	want := 2.0/3.0*math.Log2(2.0/3.0) + 1.0/3.0*math.Log2(1.0/3.0)
	assert.InDelta(t, want, s, 1e-12)
}

func TestScoreErrors(t *testing.T) {
	set := candidates.FromList(mustList(t, "abc", "abd"))

	_, err := Score("abc", candidates.Set{}, ScoringExpectedCount)
	assert.ErrorIs(t, err, ErrEmptyCandidateSet)
	_, err = Score("abcd", set, ScoringExpectedCount)
	assert.ErrorIs(t, err, words.ErrInvalidInput)
	_, err = Score("abc", set, "bogus")
	assert.ErrorIs(t, err, words.ErrInvalidInput)
}

func TestBetterOrdering(t *testing.T) {
	low := scored{word: "zzz", score: 1}
	high := scored{word: "aaa", score: 2}
	assert.True(t, better(low, high))

	member := scored{word: "zzz", score: 1, member: true}
	other := scored{word: "aaa", score: 1 + scoreEpsilon/10}
	assert.True(t, better(member, other), "candidate members win ties")

	a := scored{word: "abc", score: 1}
	b := scored{word: "abd", score: 1}
	assert.True(t, better(a, b), "lexicographic order breaks remaining ties")
	assert.False(t, better(a, a))
}

func TestScenarioGame(t *testing.T) {
	list := mustList(t, "abc", "abd", "aef")
	set := candidates.FromList(list)
	ctx := context.Background()

	for _, st := range []Strategy{StrategyGreedy, StrategyLookahead} {
		t.Run(string(st), func(t *testing.T) {
			s, err := New(list, Config{Strategy: st, Depth: 1})
			require.NoError(t, err)

			g, err := s.Choose(ctx, set, nil)
			require.NoError(t, err)
			assert.Equal(t, "abc", g)

			p, err := feedback.Compute(g, "abd")
			require.NoError(t, err)
			assert.Equal(t, feedback.Pattern("220"), p)

			next, err := set.Filter(g, p)
			require.NoError(t, err)
			assert.Equal(t, []string{"abd"}, next.Words())

			g, err = s.Choose(ctx, next, []Turn{{Guess: "abc", Pattern: p}})
			require.NoError(t, err)
			assert.Equal(t, "abd", g)
		})
	}
}

func TestChooseSingletonSkipsScoring(t *testing.T) {
	list := mustList(t, "abc", "abd", "aef")
	set := candidates.FromList(mustList(t, "aef"))

	for _, st := range []Strategy{StrategyRandom, StrategyGreedy, StrategyLookahead} {
		g, err := ChooseGuess(context.Background(), set, list, nil, Config{Strategy: st, Opener: "abc"})
		require.NoError(t, err)
		assert.Equal(t, "aef", g, string(st))
	}
}

func TestChooseEmptySet(t *testing.T) {
	list := mustList(t, "abc", "abd")
	for _, st := range []Strategy{StrategyRandom, StrategyGreedy, StrategyLookahead} {
		_, err := ChooseGuess(context.Background(), candidates.Set{}, list, nil, Config{Strategy: st})
		assert.ErrorIs(t, err, ErrEmptyCandidateSet, string(st))
	}
}

func TestChooseRejectsMismatchedInput(t *testing.T) {
	list := mustList(t, "abc", "abd")
	set := candidates.FromList(mustList(t, "abcd", "abce"))
	_, err := ChooseGuess(context.Background(), set, list, nil, DefaultConfig())
	assert.ErrorIs(t, err, words.ErrInvalidInput)

	set = candidates.FromList(list)
	_, err = ChooseGuess(context.Background(), set, list, []Turn{{Guess: "ab", Pattern: "22"}}, DefaultConfig())
	assert.ErrorIs(t, err, words.ErrInvalidInput)

	for _, p := range []feedback.Pattern{"204", "2y0"} {
		_, err = ChooseGuess(context.Background(), set, list, []Turn{{Guess: "abc", Pattern: p}}, DefaultConfig())
		assert.ErrorIs(t, err, words.ErrInvalidInput, p)
	}
}

func TestConfigValidation(t *testing.T) {
	list := mustList(t, "abc", "abd")

	_, err := New(list, Config{Strategy: "minimax"})
	assert.ErrorIs(t, err, words.ErrInvalidInput)
	_, err = New(list, Config{Scoring: "gini"})
	assert.ErrorIs(t, err, words.ErrInvalidInput)
	_, err = New(list, Config{Depth: -1})
	assert.ErrorIs(t, err, words.ErrInvalidInput)
	_, err = New(list, Config{Opener: "zzz"})
	assert.ErrorIs(t, err, words.ErrInvalidInput)
	_, err = New(words.List{}, DefaultConfig())
	assert.ErrorIs(t, err, words.ErrInvalidInput)

	s, err := New(list, Config{Strategy: " Lookahead ", Scoring: "ENTROPY"})
	require.NoError(t, err)
	assert.Equal(t, StrategyLookahead, s.Config().Strategy)
	assert.Equal(t, ScoringEntropy, s.Config().Scoring)
	assert.Positive(t, s.Config().Workers)
}

// narrowed returns the candidate sets seen while guessing toward secret.
func narrowed(t *testing.T, set candidates.Set, secret string, guesses ...string) []candidates.Set {
	t.Helper()
	out := []candidates.Set{set}
	for _, g := range guesses {
		p, err := feedback.Compute(g, secret)
		require.NoError(t, err)
		set, err = set.Filter(g, p)
		require.NoError(t, err)
		out = append(out, set)
	}
	return out
}

func TestGreedyNoWorseThanLastAllowedWord(t *testing.T) {
	all, allowed := embedded(t)
	last := allowed.At(allowed.Len() - 1)
	for _, w := range allowed.Words() {
		if w > last {
			last = w
		}
	}

	s, err := New(allowed, Config{Strategy: StrategyGreedy})
	require.NoError(t, err)

	for _, secret := range []string{"smile", "mouse", "fifty", "queen"} {
		for _, set := range narrowed(t, all, secret, "stern", "audio") {
			if set.Len() < 2 {
				continue
			}
			g, err := s.Choose(context.Background(), set, nil)
			require.NoError(t, err)

			got, err := Score(g, set, ScoringExpectedCount)
			require.NoError(t, err)
			bound, err := Score(last, set, ScoringExpectedCount)
			require.NoError(t, err)
			assert.LessOrEqual(t, got, bound+scoreEpsilon)
		}
	}
}

func TestGreedyIndependentOfWorkerCount(t *testing.T) {
	all, allowed := embedded(t)
	one, err := New(allowed, Config{Strategy: StrategyGreedy, Workers: 1, CacheSize: -1})
	require.NoError(t, err)
	many, err := New(allowed, Config{Strategy: StrategyGreedy, Workers: 7, CacheSize: -1})
	require.NoError(t, err)

	for _, set := range narrowed(t, all, "sharp", "plate", "round") {
		if set.Empty() {
			continue
		}
		a, err := one.Choose(context.Background(), set, nil)
		require.NoError(t, err)
		b, err := many.Choose(context.Background(), set, nil)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestLookaheadDepthZeroMatchesGreedy(t *testing.T) {
	all, allowed := embedded(t)
	g, err := New(allowed, Config{Strategy: StrategyGreedy})
	require.NoError(t, err)
	l, err := New(allowed, Config{Strategy: StrategyLookahead, Depth: 0})
	require.NoError(t, err)

	for _, set := range narrowed(t, all, "guest", "crane", "toils") {
		if set.Empty() {
			continue
		}
		a, err := g.Choose(context.Background(), set, nil)
		require.NoError(t, err)
		b, err := l.Choose(context.Background(), set, nil)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestLookaheadPicksAllowedWord(t *testing.T) {
	all, allowed := embedded(t)
	sets := narrowed(t, all, "brown", "stare")
	set := sets[len(sets)-1]
	require.Greater(t, set.Len(), 2)

	s, err := New(allowed, Config{Strategy: StrategyLookahead, Depth: 1, Breadth: 4})
	require.NoError(t, err)
	g, err := s.Choose(context.Background(), set, nil)
	require.NoError(t, err)
	assert.True(t, allowed.Contains(g))

	// Cached on the second call.
	again, err := s.Choose(context.Background(), set, nil)
	require.NoError(t, err)
	assert.Equal(t, g, again)
}

func TestBudgetReturnsBestSoFar(t *testing.T) {
	all, allowed := embedded(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, st := range []Strategy{StrategyGreedy, StrategyLookahead} {
		g, err := ChooseGuess(ctx, all, allowed, nil, Config{Strategy: st})
		require.NoError(t, err)
		assert.Equal(t, all.At(0), g, "nothing scored falls back to the first candidate")
	}

	g, err := ChooseGuess(context.Background(), all, allowed, nil, Config{Strategy: StrategyGreedy, MaxEvaluations: 3, Workers: 1})
	require.NoError(t, err)
	assert.Contains(t, allowed.Words()[:3], g)
}

func TestTruncatedDecisionNotSharedWithUnboundedCaller(t *testing.T) {
	if testing.Short() {
		t.Skip("full lookahead over the embedded lists")
	}
	all, allowed := embedded(t)
	cfg := Config{Strategy: StrategyLookahead, Depth: 1}

	s, err := New(allowed, cfg)
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		unbounded string
		boundErr  error
		freeErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()
		_, boundErr = s.Choose(ctx, all, nil)
	}()
	go func() {
		defer wg.Done()
		time.Sleep(2 * time.Millisecond)
		unbounded, freeErr = s.Choose(context.Background(), all, nil)
	}()
	wg.Wait()
	require.NoError(t, boundErr)
	require.NoError(t, freeErr)

	want, err := ChooseGuess(context.Background(), all, allowed, nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, want, unbounded)

	// Only the complete answer reaches the cache.
	cached, err := s.Choose(context.Background(), all, nil)
	require.NoError(t, err)
	assert.Equal(t, want, cached)
}

func TestRandomIsSeededAndStaysInSet(t *testing.T) {
	all, allowed := embedded(t)

	draw := func(seed int64) []string {
		s, err := New(allowed, Config{Strategy: StrategyRandom, Seed: seed})
		require.NoError(t, err)
		var out []string
		for i := 0; i < 10; i++ {
			g, err := s.Choose(context.Background(), all, nil)
			require.NoError(t, err)
			assert.True(t, all.Contains(g))
			out = append(out, g)
		}
		return out
	}
	assert.Equal(t, draw(42), draw(42))
	assert.NotEqual(t, draw(1), draw(2))
}

func TestOpener(t *testing.T) {
	all, allowed := embedded(t)

	s, err := New(allowed, Config{Opener: "salet"})
	require.NoError(t, err)
	g, err := s.Choose(context.Background(), all, nil)
	require.NoError(t, err)
	assert.Equal(t, "salet", g)

	set := candidates.FromList(mustList(t, "aab", "abb", "abc", "bbc"))
	list := mustList(t, "aab", "abb", "abc", "bbc")
	s, err = New(list, Config{Opener: OpenerFrequency})
	require.NoError(t, err)
	g, err = s.Choose(context.Background(), set, nil)
	require.NoError(t, err)
	assert.Equal(t, "abb", g)

	// The opener only applies to the first turn.
	g, err = s.Choose(context.Background(), set, []Turn{{Guess: "abb", Pattern: "000"}})
	require.NoError(t, err)
	assert.NotEmpty(t, g)
}
