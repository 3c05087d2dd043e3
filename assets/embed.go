// assets/embed.go
//
// Embedded default word lists.
//   - answers.txt: words that can be the hidden secret (the possible list).
//   - allowed.txt: extra words accepted as guesses only.
//
// Lines are trimmed and lowercased; blank lines and "#" comments are skipped.
// Validation (length, alphabet) is left to the words package.
package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

// ReadLines parses a word-per-line stream.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

func readEmbedded(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// PossibleWords returns the embedded secret list.
func PossibleWords() ([]string, error) {
	return readEmbedded("answers.txt")
}

// AllowedWords returns the embedded guess-only list.
func AllowedWords() ([]string, error) {
	return readEmbedded("allowed.txt")
}
