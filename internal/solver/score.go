// internal/solver/score.go
//
// Scoring policies over feedback buckets and the tie-break order.

package solver

import (
	"fmt"
	"math"
	"slices"

	"github.com/robalobadob/wordle/apps/go-solver/internal/candidates"
	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// scoreEpsilon is the tolerance under which two scores tie.
const scoreEpsilon = 1e-9

// Score rates guess against the candidate set; lower is better.
//
// expected_count: Σ nᵢ² / N over the feedback buckets, where the solved bucket
// counts as 0 because the game ends there.
// entropy: Σ (nᵢ/N)·log₂(nᵢ/N), the negated information gain.
func Score(guess string, set candidates.Set, scoring Scoring) (float64, error) {
	if set.Empty() {
		return 0, ErrEmptyCandidateSet
	}
	if err := words.Validate(guess); err != nil {
		return 0, err
	}
	if len(guess) != set.WordLength() {
		return 0, fmt.Errorf("%w: guess %q does not match candidate length %d", words.ErrInvalidInput, guess, set.WordLength())
	}
	sc, err := ParseScoring(string(scoring))
	if err != nil {
		return 0, err
	}
	return newScorer(sc, len(guess)).score(guess, set), nil
}

// scorer partitions a set by feedback code and scores the bucket sizes.
// Not safe for concurrent use; each worker owns one.
type scorer struct {
	scoring Scoring
	solved  uint64
	counts  map[uint64]int
	sizes   []int
}

func newScorer(sc Scoring, wordLen int) *scorer {
	return &scorer{
		scoring: sc,
		solved:  feedback.SolvedCode(wordLen),
		counts:  make(map[uint64]int, 256),
	}
}

func (s *scorer) score(guess string, set candidates.Set) float64 {
	clear(s.counts)
	for i := 0; i < set.Len(); i++ {
		s.counts[feedback.Code(guess, set.At(i))]++
	}
	n := float64(set.Len())

	switch s.scoring {
	case ScoringEntropy:
		// Summed in size order so equal partitions give bit-identical scores.
		s.sizes = s.sizes[:0]
		for _, c := range s.counts {
			s.sizes = append(s.sizes, c)
		}
		slices.Sort(s.sizes)
		var h float64
		for _, c := range s.sizes {
			p := float64(c) / n
			h += p * math.Log2(p)
		}
		return h

	default:
		var sq int
		for code, c := range s.counts {
			if code == s.solved {
				continue
			}
			sq += c * c
		}
		return float64(sq) / n
	}
}

// scored is one evaluated guess.
type scored struct {
	word   string
	score  float64
	member bool
}

// better orders guesses: lower score, then candidate members, then
// lexicographically smaller words.
func better(a, b scored) bool {
	if d := a.score - b.score; d < -scoreEpsilon {
		return true
	} else if d > scoreEpsilon {
		return false
	}
	if a.member != b.member {
		return a.member
	}
	return a.word < b.word
}

func compareScored(a, b scored) int {
	switch {
	case better(a, b):
		return -1
	case better(b, a):
		return 1
	}
	return 0
}
