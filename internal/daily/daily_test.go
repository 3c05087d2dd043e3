package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func TestWordIndexDeterministic(t *testing.T) {
	d := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)
	a := WordIndex(d, "salt", 477)
	assert.Equal(t, a, WordIndex(d.Add(-time.Hour), "salt", 477), "same UTC day")
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 477)
	assert.Zero(t, WordIndex(d, "salt", 0))

	spread := map[int]bool{}
	for i := 0; i < 30; i++ {
		spread[WordIndex(d.AddDate(0, 0, i), "salt", 477)] = true
	}
	assert.Greater(t, len(spread), 20)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-09")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09", DateKey(d))

	_, err = ParseDate("09/03/2024")
	assert.ErrorIs(t, err, words.ErrInvalidInput)

	today, err := ParseDate("")
	require.NoError(t, err)
	assert.Equal(t, DateKey(time.Now()), DateKey(today))
}

func TestSolveAndCache(t *testing.T) {
	ctx := context.Background()
	possible, allowed, err := words.Load("", "")
	require.NoError(t, err)
	s, err := solver.New(allowed, solver.DefaultConfig())
	require.NoError(t, err)

	d, err := ParseDate("2024-03-09")
	require.NoError(t, err)
	res, err := Solve(ctx, s, possible, d, "salt", 10)
	require.NoError(t, err)

	secret, idx, err := Secret(d, "salt", possible)
	require.NoError(t, err)
	assert.Equal(t, secret, res.Secret)
	assert.Equal(t, idx, res.WordIndex)
	assert.True(t, res.Won)
	require.Len(t, res.Path, res.Guesses)
	assert.Equal(t, secret, res.Path[len(res.Path)-1].Guess)

	db, err := results.Open(filepath.Join(t.TempDir(), "solver.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	st := NewStore(db)

	_, err = st.Lookup(ctx, res.Date, res.Solver)
	assert.ErrorIs(t, err, ErrNotCached)

	require.NoError(t, st.Insert(ctx, res))
	require.NoError(t, st.Insert(ctx, res))

	got, err := st.Lookup(ctx, res.Date, res.Solver)
	require.NoError(t, err)
	assert.Equal(t, res, *got)

	lb, err := st.Leaderboard(ctx, res.Date, 10)
	require.NoError(t, err)
	assert.Equal(t, []Row{{Solver: res.Solver, Won: true, Guesses: res.Guesses}}, lb)
}

func TestSolveRefusesTruncatedReplay(t *testing.T) {
	possible, allowed, err := words.Load("", "")
	require.NoError(t, err)
	s, err := solver.New(allowed, solver.DefaultConfig())
	require.NoError(t, err)
	d, err := ParseDate("2024-03-09")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Solve(ctx, s, possible, d, "salt", 10)
	assert.ErrorIs(t, err, context.Canceled)
}
