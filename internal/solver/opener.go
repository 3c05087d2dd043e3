// internal/solver/opener.go

package solver

import "github.com/robalobadob/wordle/apps/go-solver/internal/candidates"

// frequencyOpener picks the candidate whose letters are most common at their
// positions across the set. Ties go to the earliest word in sorted order.
func frequencyOpener(set candidates.Set) string {
	n := set.WordLength()
	freq := make([][26]int, n)
	for i := 0; i < set.Len(); i++ {
		w := set.At(i)
		for p := 0; p < n; p++ {
			freq[p][w[p]-'a']++
		}
	}

	best, bestScore := "", -1
	for i := 0; i < set.Len(); i++ {
		w := set.At(i)
		s := 0
		for p := 0; p < n; p++ {
			s += freq[p][w[p]-'a']
		}
		if s > bestScore {
			best, bestScore = w, s
		}
	}
	return best
}
