package candidates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

var sample = []string{
	"crane", "slate", "trace", "crate", "react", "cater", "stale", "least",
	"abbey", "babes", "ebbed", "geese", "eerie", "there", "hello", "llama",
}

func mustSet(t *testing.T, ws ...string) Set {
	t.Helper()
	s, err := New(ws)
	require.NoError(t, err)
	return s
}

func TestNewSortsAndDedups(t *testing.T) {
	s := mustSet(t, "slate", "crane", "slate")
	assert.Equal(t, []string{"crane", "slate"}, s.Words())
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("slate"))
	assert.False(t, s.Contains("trace"))

	_, err := New([]string{"crane", "abc"})
	assert.ErrorIs(t, err, words.ErrInvalidInput)
}

func TestFilterScenario(t *testing.T) {
	s := mustSet(t, "abc", "abd", "aef")
	got, err := s.Filter("abc", "220")
	require.NoError(t, err)
	assert.Equal(t, []string{"abd"}, got.Words())
	assert.Equal(t, 3, s.Len(), "filter must not mutate its input")
}

func TestFilterProperties(t *testing.T) {
	all := mustSet(t, sample...)
	for _, guess := range sample {
		for _, secret := range sample {
			p, err := feedback.Compute(guess, secret)
			require.NoError(t, err)

			once, err := all.Filter(guess, p)
			require.NoError(t, err)
			twice, err := once.Filter(guess, p)
			require.NoError(t, err)

			assert.True(t, once.Contains(secret), "secret %s dropped after %s", secret, guess)
			assert.True(t, once.Equal(twice), "filter not idempotent for %s/%s", guess, secret)
			for _, w := range once.Words() {
				assert.True(t, all.Contains(w))
				q, err := feedback.Compute(guess, w)
				require.NoError(t, err)
				assert.Equal(t, p, q)
			}
		}
	}
}

func TestFilterRejectsMismatchedInput(t *testing.T) {
	s := mustSet(t, "crane", "slate")
	_, err := s.Filter("crane", "222")
	assert.ErrorIs(t, err, words.ErrInvalidInput)
	_, err = s.Filter("abc", "222")
	assert.ErrorIs(t, err, words.ErrInvalidInput)
}

func TestFilterRejectsMalformedPattern(t *testing.T) {
	s := mustSet(t, "ab", "ba", "cc", "ac")

	want, err := s.Filter("ab", "11")
	require.NoError(t, err)
	assert.Equal(t, []string{"ba"}, want.Words())

	// "04" packs to the same code as "11" if marks go unchecked.
	for _, p := range []feedback.Pattern{"04", "1y", "2?"} {
		_, err := s.Filter("ab", p)
		assert.ErrorIs(t, err, words.ErrInvalidInput, p)
	}
}

func TestPartitionCoversSet(t *testing.T) {
	s := mustSet(t, sample...)
	parts := s.Partition("crane")

	total := 0
	for code, part := range parts {
		total += part.Len()
		for i, w := range part.Words() {
			assert.Equal(t, code, feedback.Code("crane", w))
			if i > 0 {
				assert.Less(t, part.At(i-1), w)
			}
		}
	}
	assert.Equal(t, s.Len(), total)
	assert.Equal(t, 1, parts[feedback.SolvedCode(5)].Len())
}

func TestFingerprintIsContentBased(t *testing.T) {
	a := mustSet(t, "crane", "slate", "trace")
	b := mustSet(t, "trace", "crane", "slate", "crane")
	c := mustSet(t, "crane", "slate")

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
