// internal/feedback/feedback.go
//
// Feedback model: scores a guess against a secret.
//
// A Pattern holds one Mark per letter:
//   '2' = correct (right letter, right position)
//   '1' = present (letter is in the secret elsewhere)
//   '0' = absent
//
// Scoring is the classic two-pass algorithm, so repeated letters never earn
// more non-absent marks than the secret holds.
package feedback

import (
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Mark is the evaluation of a single guess letter.
type Mark byte

const (
	MarkAbsent  Mark = '0'
	MarkPresent Mark = '1'
	MarkCorrect Mark = '2'
)

// String returns the lowercase name of the mark.
func (m Mark) String() string {
	switch m {
	case MarkCorrect:
		return "correct"
	case MarkPresent:
		return "present"
	case MarkAbsent:
		return "absent"
	}
	return fmt.Sprintf("mark(%d)", byte(m))
}

// digit maps a mark to its base-3 value.
func (m Mark) digit() uint64 { return uint64(m - MarkAbsent) }

// Pattern is the per-position feedback for one guess. Comparable and usable as a map key.
type Pattern string

// Marks returns the pattern as a slice of marks.
func (p Pattern) Marks() []Mark {
	out := make([]Mark, len(p))
	for i := 0; i < len(p); i++ {
		out[i] = Mark(p[i])
	}
	return out
}

// Solved reports whether every position is correct.
func (p Pattern) Solved() bool {
	if p == "" {
		return false
	}
	for i := 0; i < len(p); i++ {
		if Mark(p[i]) != MarkCorrect {
			return false
		}
	}
	return true
}

// Validate checks that p is a non-empty run of '0', '1' and '2' of at most
// words.MaxLength marks. Use Parse for player-typed input.
func (p Pattern) Validate() error {
	if p == "" || len(p) > words.MaxLength {
		return fmt.Errorf("%w: pattern %q", words.ErrInvalidInput, string(p))
	}
	for i := 0; i < len(p); i++ {
		switch Mark(p[i]) {
		case MarkAbsent, MarkPresent, MarkCorrect:
		default:
			return fmt.Errorf("%w: pattern %q has unknown mark %q", words.ErrInvalidInput, string(p), p[i])
		}
	}
	return nil
}

// Code packs the pattern into base 3, most significant digit first.
// p must be valid.
func (p Pattern) Code() uint64 {
	var c uint64
	for i := 0; i < len(p); i++ {
		c = c*3 + Mark(p[i]).digit()
	}
	return c
}

// AllCorrect returns the solved pattern for words of length n.
func AllCorrect(n int) Pattern {
	return Pattern(strings.Repeat(string(MarkCorrect), n))
}

// SolvedCode returns the base-3 code of the solved pattern for length n.
func SolvedCode(n int) uint64 {
	var c uint64
	for i := 0; i < n; i++ {
		c = c*3 + MarkCorrect.digit()
	}
	return c
}

// FromCode unpacks a base-3 code into a pattern of length n.
func FromCode(c uint64, n int) Pattern {
	b := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		b[i] = byte(MarkAbsent) + byte(c%3)
		c /= 3
	}
	return Pattern(b)
}

// Compute scores guess against secret.
// Fails with words.ErrInvalidInput on mismatched lengths or malformed words.
func Compute(guess, secret string) (Pattern, error) {
	if err := words.Validate(guess); err != nil {
		return "", err
	}
	if err := words.Validate(secret); err != nil {
		return "", err
	}
	if len(guess) != len(secret) {
		return "", fmt.Errorf("%w: guess %q and secret %q differ in length", words.ErrInvalidInput, guess, secret)
	}
	var buf [words.MaxLength]byte
	res := buf[:len(guess)]
	score(res, guess, secret)
	return Pattern(res), nil
}

// Code scores guess against secret and returns the packed pattern without
// allocating. Inputs must already be valid words of equal length.
func Code(guess, secret string) uint64 {
	var buf [words.MaxLength]byte
	res := buf[:len(guess)]
	score(res, guess, secret)
	var c uint64
	for _, m := range res {
		c = c*3 + Mark(m).digit()
	}
	return c
}

// score writes the marks for guess vs. secret into res.
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Count remaining (non-correct) secret letters.
//
// Pass 2:
//   - For each non-correct guess letter: if the letter has a remaining count,
//     mark present and decrement; otherwise mark absent.
func score(res []byte, guess, secret string) {
	var counts [26]uint8
	n := len(guess)

	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			res[i] = byte(MarkCorrect)
		} else {
			res[i] = 0
			counts[secret[i]-'a']++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == byte(MarkCorrect) {
			continue
		}
		j := guess[i] - 'a'
		if counts[j] > 0 {
			res[i] = byte(MarkPresent)
			counts[j]--
		} else {
			res[i] = byte(MarkAbsent)
		}
	}
}

// Parse reads a pattern typed by a player. Accepted per letter:
//   2, g, G       correct
//   1, y, Y       present
//   0, b, B, x, X, -, .  absent
func Parse(s string) (Pattern, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > words.MaxLength {
		return "", fmt.Errorf("%w: pattern %q", words.ErrInvalidInput, s)
	}
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '2', 'g', 'G':
			b[i] = byte(MarkCorrect)
		case '1', 'y', 'Y':
			b[i] = byte(MarkPresent)
		case '0', 'b', 'B', 'x', 'X', '-', '.':
			b[i] = byte(MarkAbsent)
		default:
			return "", fmt.Errorf("%w: pattern %q has unknown mark %q", words.ErrInvalidInput, s, s[i])
		}
	}
	return Pattern(b), nil
}
