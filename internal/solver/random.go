// internal/solver/random.go
//
// Seeded uniform draw over the remaining candidates.

package solver

import (
	"math/rand"
	"sync"

	"github.com/robalobadob/wordle/apps/go-solver/internal/candidates"
)

// random draws uniformly from the remaining candidates.
type random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newRandom(seed int64) *random {
	return &random{rng: rand.New(rand.NewSource(seed))}
}

func (r *random) choose(set candidates.Set) (string, error) {
	if set.Empty() {
		return "", ErrEmptyCandidateSet
	}
	r.mu.Lock()
	i := r.rng.Intn(set.Len())
	r.mu.Unlock()
	return set.At(i), nil
}
