package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

func TestDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "SOLVER_STRATEGY", "SOLVER_SCORING", "SOLVER_DEPTH", "SOLVER_TIMEOUT_MS", "MAX_TURNS", "JWT_EXPIRES_DAYS"} {
		t.Setenv(k, "")
	}
	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, 6, c.MaxTurns)
	assert.Equal(t, 14, c.JWTExpiresDays)
	assert.Equal(t, 5*time.Second, c.SolverTimeout)

	sc, err := c.SolverConfig()
	require.NoError(t, err)
	assert.Equal(t, solver.StrategyGreedy, sc.Strategy)
	assert.Equal(t, solver.ScoringExpectedCount, sc.Scoring)
	assert.Equal(t, 1, sc.Depth)
}

func TestOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SOLVER_STRATEGY", "Lookahead")
	t.Setenv("SOLVER_SCORING", "entropy")
	t.Setenv("SOLVER_DEPTH", "2")
	t.Setenv("SOLVER_TIMEOUT_MS", "250")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, 250*time.Millisecond, c.SolverTimeout)

	sc, err := c.SolverConfig()
	require.NoError(t, err)
	assert.Equal(t, solver.StrategyLookahead, sc.Strategy)
	assert.Equal(t, solver.ScoringEntropy, sc.Scoring)
	assert.Equal(t, 2, sc.Depth)
}

func TestInvalid(t *testing.T) {
	t.Setenv("SOLVER_DEPTH", "deep")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "SOLVER_DEPTH")

	t.Setenv("SOLVER_DEPTH", "1")
	t.Setenv("SOLVER_STRATEGY", "minimax")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "SOLVER_STRATEGY")
}
