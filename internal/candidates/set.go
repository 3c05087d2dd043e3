// internal/candidates/set.go
//
// Candidate sets for a game in progress.
// Responsibilities:
//   - Hold the sorted, duplicate-free words still consistent with the feedback.
//   - Filter by an observed (guess, pattern) and partition by pattern.
//   - Fingerprint a set so caches can key on its content.
//
// Notes:
//   - Sets are values; Filter and Partition never touch the receiver.

// Package candidates holds the set of words still consistent with the
// feedback seen so far, and the filter that narrows it.
package candidates

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"sort"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Set is an immutable, sorted, duplicate-free set of equal-length words.
// Filtering and partitioning return new sets; the receiver never changes.
type Set struct {
	words []string
}

// FromList builds the initial set from a word list.
func FromList(l words.List) Set {
	return fromUnsorted(l.Words())
}

// New validates ws and builds a set from it.
func New(ws []string) (Set, error) {
	if len(ws) == 0 {
		return Set{}, nil
	}
	l, err := words.NewList(ws)
	if err != nil {
		return Set{}, err
	}
	return FromList(l), nil
}

// fromUnsorted takes ownership of ws.
func fromUnsorted(ws []string) Set {
	sort.Strings(ws)
	return Set{words: slices.Compact(ws)}
}

// Len reports the number of words.
func (s Set) Len() int { return len(s.words) }

// Empty reports whether no word is left.
func (s Set) Empty() bool { return len(s.words) == 0 }

// At returns the i-th word in sorted order.
func (s Set) At(i int) string { return s.words[i] }

// WordLength reports the length shared by every word, 0 when empty.
func (s Set) WordLength() int {
	if len(s.words) == 0 {
		return 0
	}
	return len(s.words[0])
}

// Words returns a sorted copy of the set.
func (s Set) Words() []string { return slices.Clone(s.words) }

// Contains reports whether w is in the set.
func (s Set) Contains(w string) bool {
	_, ok := slices.BinarySearch(s.words, w)
	return ok
}

// Filter keeps the words that would have produced pattern for guess.
func (s Set) Filter(guess string, pattern feedback.Pattern) (Set, error) {
	if err := words.Validate(guess); err != nil {
		return Set{}, err
	}
	if err := pattern.Validate(); err != nil {
		return Set{}, err
	}
	if len(pattern) != len(guess) {
		return Set{}, fmt.Errorf("%w: pattern %q does not match guess %q", words.ErrInvalidInput, pattern, guess)
	}
	if n := s.WordLength(); n != 0 && n != len(guess) {
		return Set{}, fmt.Errorf("%w: guess %q has length %d, candidates have %d", words.ErrInvalidInput, guess, len(guess), n)
	}
	want := pattern.Code()
	out := make([]string, 0, len(s.words))
	for _, w := range s.words {
		if feedback.Code(guess, w) == want {
			out = append(out, w)
		}
	}
	return Set{words: slices.Clip(out)}, nil
}

// Partition groups the set by the pattern each word yields for guess. Each
// part keeps sorted order. guess must be a valid word of the set's length.
func (s Set) Partition(guess string) map[uint64]Set {
	groups := make(map[uint64][]string)
	for _, w := range s.words {
		c := feedback.Code(guess, w)
		groups[c] = append(groups[c], w)
	}
	out := make(map[uint64]Set, len(groups))
	for c, ws := range groups {
		out[c] = Set{words: ws}
	}
	return out
}

// Fingerprint is a content hash of the set, stable across processes.
func (s Set) Fingerprint() string {
	h := sha256.New()
	for _, w := range s.words {
		h.Write([]byte(w))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}

// Equal reports whether both sets hold the same words.
func (s Set) Equal(o Set) bool { return slices.Equal(s.words, o.words) }
