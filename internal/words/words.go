// internal/words/words.go
//
// Word lists for the solver.
//
// Responsibilities:
//   - Validate words (lowercase a–z, one fixed length per list).
//   - Hold the possible list (secrets) and the allowed list (guesses) as
//     immutable, ordered, duplicate-free collections.
//   - Load both lists once per process from env-configured files or fall back
//     to the embedded defaults in assets/.
//
// Initialization behavior (Init):
//  1. If WORDS_ANSWERS_FILE and WORDS_ALLOWED_FILE are both set,
//     load possible words from the first and extra guesses from the second.
//  2. If only WORDS_ALLOWED_FILE is set,
//     load that file and use it for both lists.
//  3. If neither is set, use the embedded assets.
//
// The allowed list always contains every possible word.
package words

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
)

// ErrInvalidInput marks malformed words, mismatched lengths and empty lists.
var ErrInvalidInput = errors.New("invalid input")

// MaxLength bounds word length so a feedback pattern packs into a uint64.
const MaxLength = 40

// List is an immutable, ordered, duplicate-free word list of one length.
// The zero value is an empty list.
type List struct {
	words  []string
	index  map[string]int
	length int
}

// NewList validates ws and builds a List. Duplicates keep their first position.
func NewList(ws []string) (List, error) {
	if len(ws) == 0 {
		return List{}, fmt.Errorf("%w: empty word list", ErrInvalidInput)
	}
	l := List{
		words:  make([]string, 0, len(ws)),
		index:  make(map[string]int, len(ws)),
		length: len(ws[0]),
	}
	for _, w := range ws {
		if err := Validate(w); err != nil {
			return List{}, err
		}
		if len(w) != l.length {
			return List{}, fmt.Errorf("%w: %q has length %d, want %d", ErrInvalidInput, w, len(w), l.length)
		}
		if _, dup := l.index[w]; dup {
			continue
		}
		l.index[w] = len(l.words)
		l.words = append(l.words, w)
	}
	return l, nil
}

// Union returns a List holding every word of a followed by the words of b not in a.
func Union(a, b List) (List, error) {
	if a.Len() == 0 {
		return b, nil
	}
	if b.Len() == 0 {
		return a, nil
	}
	all := make([]string, 0, a.Len()+b.Len())
	all = append(all, a.words...)
	all = append(all, b.words...)
	return NewList(all)
}

// Len reports the number of words.
func (l List) Len() int { return len(l.words) }

// WordLength reports the shared length of every word, 0 for an empty list.
func (l List) WordLength() int { return l.length }

// At returns the i-th word in list order.
func (l List) At(i int) string { return l.words[i] }

// Contains reports whether w is in the list.
func (l List) Contains(w string) bool {
	_, ok := l.index[w]
	return ok
}

// Words returns a copy of the words in list order.
func (l List) Words() []string { return slices.Clone(l.words) }

// Validate checks that w is a non-empty run of lowercase a–z of at most MaxLength letters.
func Validate(w string) error {
	if w == "" {
		return fmt.Errorf("%w: empty word", ErrInvalidInput)
	}
	if len(w) > MaxLength {
		return fmt.Errorf("%w: %q longer than %d letters", ErrInvalidInput, w, MaxLength)
	}
	if !IsAlpha(w) {
		return fmt.Errorf("%w: %q has letters outside a-z", ErrInvalidInput, w)
	}
	return nil
}

// IsAlpha reports whether s is all lowercase ASCII letters.
func IsAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// --- process-wide lists -------------------------------------------------------

var (
	initOnce   sync.Once
	possible   List
	allowed    List
	initialErr error
)

// Init loads the process-wide word lists exactly once; see Load for the paths.
func Init(answersPath, allowedPath string) error {
	initOnce.Do(func() {
		possible, allowed, initialErr = Load(answersPath, allowedPath)
	})
	return initialErr
}

// Load builds the possible and allowed lists from files, or from the embedded
// assets when both paths are empty.
func Load(answersPath, allowedPath string) (possibleList, allowedList List, err error) {
	var ansWords, extraWords []string

	switch {
	case answersPath != "" && allowedPath != "":
		if ansWords, err = readWordFile(answersPath); err != nil {
			return List{}, List{}, err
		}
		if extraWords, err = readWordFile(allowedPath); err != nil {
			return List{}, List{}, err
		}

	case answersPath == "" && allowedPath != "":
		if ansWords, err = readWordFile(allowedPath); err != nil {
			return List{}, List{}, err
		}

	case answersPath != "" && allowedPath == "":
		if ansWords, err = readWordFile(answersPath); err != nil {
			return List{}, List{}, err
		}

	default:
		if ansWords, err = assets.PossibleWords(); err != nil {
			return List{}, List{}, err
		}
		if extraWords, err = assets.AllowedWords(); err != nil {
			return List{}, List{}, err
		}
	}

	possibleList, err = NewList(ansWords)
	if err != nil {
		return List{}, List{}, fmt.Errorf("possible list: %w", err)
	}
	allowedList = possibleList
	if len(extraWords) > 0 {
		extra, err := NewList(extraWords)
		if err != nil {
			return List{}, List{}, fmt.Errorf("allowed list: %w", err)
		}
		if allowedList, err = Union(possibleList, extra); err != nil {
			return List{}, List{}, fmt.Errorf("allowed list: %w", err)
		}
	}
	return possibleList, allowedList, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ws, err := assets.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ws, nil
}

// Possible returns the process-wide possible list. Init must have succeeded.
func Possible() List { return possible }

// Allowed returns the process-wide allowed list. Init must have succeeded.
func Allowed() List { return allowed }

// Stats returns counts of loaded words: (possible, allowed).
func Stats() (possibleCount int, allowedCount int) {
	return possible.Len(), allowed.Len()
}
