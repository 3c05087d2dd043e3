package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	l, err := words.NewList([]string{"abc", "abd"})
	require.NoError(t, err)
	g, err := game.New(l, "", 0)
	require.NoError(t, err)
	return &Session{Game: g, Config: solver.DefaultConfig()}
}

func TestSaveGet(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession(t)

	require.NoError(t, st.Save(ctx, s))
	assert.False(t, s.UpdatedAt.IsZero())

	got, err := st.Get(ctx, s.Game.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = st.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, st.Save(ctx, nil))
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	old, fresh := newSession(t), newSession(t)
	require.NoError(t, st.Save(ctx, old))
	cutoff := time.Now().Add(time.Millisecond)
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, st.Save(ctx, fresh))

	n, err := st.Prune(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = st.Get(ctx, old.Game.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get(ctx, fresh.Game.ID)
	assert.NoError(t, err)
}
