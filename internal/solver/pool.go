// apps/go-solver/internal/solver/pool.go
//
// Candidate pool: the words still consistent with every feedback received in
// the current game. Pools are immutable values; Filter returns a new, never
// larger pool. Letter statistics are computed lazily and cached per pool.

package solver

import (
	"sort"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// Pool is a sorted, duplicate-free set of words with optional weights.
type Pool struct {
	words   []string
	weights map[string]float64
	stats   *Stats
}

// Stats are the letter distributions of a pool. Weighted pools count each
// word with its weight (default 1).
type Stats struct {
	Total      float64                      // total weight of the pool
	Positional [game.WordLength][26]float64 // letter weight at each slot
	Letters    [26]float64                  // weight of words containing the letter at least once
}

// NewPool builds a pool from words. Words are assumed valid; duplicates are
// removed and the result is sorted for deterministic iteration.
func NewPool(words []string, weights map[string]float64) *Pool {
	out := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return &Pool{words: out, weights: weights}
}

// Len returns the number of words in the pool.
func (p *Pool) Len() int { return len(p.words) }

// Words returns a copy of the pool's words in lexicographic order.
func (p *Pool) Words() []string { return append([]string(nil), p.words...) }

// Contains reports whether w is in the pool.
func (p *Pool) Contains(w string) bool {
	i := sort.SearchStrings(p.words, w)
	return i < len(p.words) && p.words[i] == w
}

// Weight returns the frequency weight of w, 1 when the pool is unweighted or
// w has no weight. Non-positive weights are treated as 1.
func (p *Pool) Weight(w string) float64 {
	if p.weights == nil {
		return 1
	}
	if v, ok := p.weights[w]; ok && v > 0 {
		return v
	}
	return 1
}

// Filter keeps exactly the words w for which Score(w, guess) == fb, i.e. the
// words that could have been the secret given the observed feedback.
func (p *Pool) Filter(guess string, fb game.Feedback) *Pool {
	kept := make([]string, 0, len(p.words))
	for _, w := range p.words {
		if game.Score(w, guess) == fb {
			kept = append(kept, w)
		}
	}
	return &Pool{words: kept, weights: p.weights}
}

// Stats returns the cached letter statistics, computing them on first use.
// A Pool is owned by one engine, so the lazy cache needs no locking.
func (p *Pool) Stats() *Stats {
	if p.stats != nil {
		return p.stats
	}
	s := &Stats{}
	for _, w := range p.words {
		wt := p.Weight(w)
		s.Total += wt
		var seen [26]bool
		for i := 0; i < game.WordLength; i++ {
			c := w[i] - 'a'
			s.Positional[i][c] += wt
			if !seen[c] {
				seen[c] = true
				s.Letters[c] += wt
			}
		}
	}
	p.stats = s
	return s
}
