package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListKeepsOrderAndDropsDuplicates(t *testing.T) {
	l, err := NewList([]string{"crane", "slate", "crane", "adieu"})
	require.NoError(t, err)

	assert.Equal(t, []string{"crane", "slate", "adieu"}, l.Words())
	assert.Equal(t, 5, l.WordLength())
	assert.True(t, l.Contains("slate"))
	assert.False(t, l.Contains("stale"))
}

func TestNewListRejectsBadInput(t *testing.T) {
	cases := map[string][]string{
		"empty":          nil,
		"mixed lengths":  {"crane", "cran"},
		"uppercase":      {"Crane"},
		"non letter":     {"cr4ne"},
		"blank word":     {""},
		"unicode letter": {"crâne"},
	}
	for name, ws := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewList(ws)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestWordsReturnsCopy(t *testing.T) {
	l, err := NewList([]string{"abc", "abd"})
	require.NoError(t, err)

	ws := l.Words()
	ws[0] = "zzz"
	assert.Equal(t, "abc", l.At(0))
}

func TestUnion(t *testing.T) {
	a, err := NewList([]string{"abc", "abd"})
	require.NoError(t, err)
	b, err := NewList([]string{"abd", "aef"})
	require.NoError(t, err)

	u, err := Union(a, b)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "abd", "aef"}, u.Words())

	c, err := NewList([]string{"abcd"})
	require.NoError(t, err)
	_, err = Union(a, c)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoadEmbedded(t *testing.T) {
	p, a, err := Load("", "")
	require.NoError(t, err)

	assert.Greater(t, p.Len(), 100)
	assert.Greater(t, a.Len(), p.Len())
	assert.Equal(t, 5, p.WordLength())
	for _, w := range p.Words() {
		assert.True(t, a.Contains(w), "allowed list must contain %q", w)
	}
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	answers := filepath.Join(dir, "answers.txt")
	allowed := filepath.Join(dir, "allowed.txt")
	require.NoError(t, os.WriteFile(answers, []byte("# secrets\nABC\nabd\n\naef\n"), 0o644))
	require.NoError(t, os.WriteFile(allowed, []byte("xyz\n"), 0o644))

	p, a, err := Load(answers, allowed)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "abd", "aef"}, p.Words())
	assert.Equal(t, []string{"abc", "abd", "aef", "xyz"}, a.Words())

	p, a, err = Load("", allowed)
	require.NoError(t, err)
	assert.Equal(t, []string{"xyz"}, p.Words())
	assert.Equal(t, p.Words(), a.Words())

	_, _, err = Load(filepath.Join(dir, "missing.txt"), allowed)
	assert.Error(t, err)
}
