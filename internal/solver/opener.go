package solver

import (
	"sort"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// knownOpeners are openers that tend to do well on common English lists.
// They compete with the list's own best words and need not be in the list.
var knownOpeners = []string{
	"crane", "lares", "raise", "ranes", "saner", "saret",
	"slate", "stale", "tales", "tares", "arise", "roate",
}

// Ranked is a word with its score.
type Ranked struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// Rank scores every word of pool with s and returns them best first, ties in
// lexicographic order.
func Rank(pool *Pool, s Scorer) []Ranked {
	out := make([]Ranked, 0, pool.Len())
	for _, w := range pool.words {
		out = append(out, Ranked{Word: w, Score: s.Score(w, pool)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// SuggestOpener picks a first guess for list: the top limit words by
// positional score plus the known openers are compared by the entropy of
// their feedback distribution over the whole list.
func SuggestOpener(list []string, weights map[string]float64, limit int) (Ranked, error) {
	if len(list) == 0 {
		return Ranked{}, ErrEmptyWordList
	}
	if limit <= 0 {
		limit = 50
	}
	pool := NewPool(list, weights)
	ranked := Rank(pool, PositionalScorer{LetterWeight: DefaultLetterWeight, RepeatPenalty: true})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	shortlist := make(map[string]struct{}, len(ranked)+len(knownOpeners))
	for _, r := range ranked {
		shortlist[r.Word] = struct{}{}
	}
	for _, w := range knownOpeners {
		if game.ValidWord(w) {
			shortlist[w] = struct{}{}
		}
	}
	words := make([]string, 0, len(shortlist))
	for w := range shortlist {
		words = append(words, w)
	}
	sort.Strings(words)

	var best Ranked
	entropy := EntropyScorer{}
	for _, w := range words {
		if s := entropy.Score(w, pool); best.Word == "" || s > best.Score {
			best = Ranked{Word: w, Score: s}
		}
	}
	return best, nil
}
