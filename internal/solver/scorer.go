// apps/go-solver/internal/solver/scorer.go
//
// Pluggable guess-scoring heuristics. The engine ranks candidates by
// Scorer.Score (higher is better) and breaks ties lexicographically, so
// scorers only need to be deterministic.
//
// Implementations:
//   - PositionalScorer: letter-at-slot frequency plus weighted letter presence.
//   - LetterScorer:     letter presence only (distinct letters).
//   - EntropyScorer:    Shannon entropy of the feedback-pattern distribution.
//   - HybridScorer:     LetterScorer on large pools, EntropyScorer on small ones.

package solver

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// Scorer rates a candidate guess against the current pool.
type Scorer interface {
	Score(word string, pool *Pool) float64
}

// DefaultLetterWeight balances presence frequency against positional
// frequency in PositionalScorer.
const DefaultLetterWeight = 1.0

// PositionalScorer sums, for each letter of the word, the share of pool words
// with that letter at the same slot, plus LetterWeight times the share of pool
// words containing the letter anywhere.
//
// With RepeatPenalty, a repeated letter earns nothing after its first
// occurrence: feedback on a repeat only says "at least one more", which is
// rarely worth a slot. Without it, repeats still earn their positional share
// but the presence term is counted once per distinct letter.
type PositionalScorer struct {
	LetterWeight  float64
	RepeatPenalty bool
}

func (s PositionalScorer) Score(word string, pool *Pool) float64 {
	st := pool.Stats()
	if st.Total == 0 {
		return 0
	}
	var seen [26]bool
	score := 0.0
	for i := 0; i < game.WordLength; i++ {
		c := word[i] - 'a'
		if seen[c] {
			if !s.RepeatPenalty {
				score += st.Positional[i][c]
			}
			continue
		}
		seen[c] = true
		score += st.Positional[i][c] + s.LetterWeight*st.Letters[c]
	}
	return score / st.Total
}

// LetterScorer counts, per distinct letter, the share of pool words that
// contain it. It ignores positions entirely.
type LetterScorer struct{}

func (LetterScorer) Score(word string, pool *Pool) float64 {
	st := pool.Stats()
	if st.Total == 0 {
		return 0
	}
	var seen [26]bool
	score := 0.0
	for i := 0; i < game.WordLength; i++ {
		c := word[i] - 'a'
		if seen[c] {
			continue
		}
		seen[c] = true
		score += st.Letters[c]
	}
	return score / st.Total
}

// EntropyScorer returns the expected information, in bits, revealed by
// guessing word: the entropy of the distribution of feedback patterns it
// produces over the (weighted) pool.
type EntropyScorer struct{}

func (EntropyScorer) Score(word string, pool *Pool) float64 {
	var hist [243]float64
	total := 0.0
	for _, w := range pool.words {
		wt := pool.Weight(w)
		hist[game.Score(w, word).Index()] += wt
		total += wt
	}
	if total == 0 {
		return 0
	}
	h := 0.0
	for _, n := range hist {
		if n == 0 {
			continue
		}
		p := n / total
		h -= p * math.Log2(p)
	}
	return h
}

// DefaultHybridThreshold is the pool size above which HybridScorer stops
// paying for entropy.
const DefaultHybridThreshold = 100

// HybridScorer ranks by letter presence while the pool has more than
// Threshold words and by entropy once it is small enough for the quadratic
// pass to be cheap.
type HybridScorer struct {
	Threshold int
}

func (s HybridScorer) Score(word string, pool *Pool) float64 {
	if pool.Len() > s.Threshold {
		return LetterScorer{}.Score(word, pool)
	}
	return EntropyScorer{}.Score(word, pool)
}

// Scorer names accepted by ScorerFor.
const (
	ScorerPositional = "positional"
	ScorerLetters    = "letters"
	ScorerEntropy    = "entropy"
	ScorerHybrid     = "hybrid"
)

// ScorerNames lists the registered scorers in a stable order.
func ScorerNames() []string {
	names := []string{ScorerPositional, ScorerLetters, ScorerEntropy, ScorerHybrid}
	sort.Strings(names)
	return names
}

// ScorerFor returns the named scorer configured from cfg. An empty name
// selects the positional scorer.
func ScorerFor(name string, cfg Config) (Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ScorerPositional:
		return PositionalScorer{LetterWeight: DefaultLetterWeight, RepeatPenalty: cfg.RepeatLetterPenalty}, nil
	case ScorerLetters:
		return LetterScorer{}, nil
	case ScorerEntropy:
		return EntropyScorer{}, nil
	case ScorerHybrid:
		th := cfg.HybridThreshold
		if th <= 0 {
			th = DefaultHybridThreshold
		}
		return HybridScorer{Threshold: th}, nil
	default:
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownScorer, name, strings.Join(ScorerNames(), ", "))
	}
}
