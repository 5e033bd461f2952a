// apps/go-solver/internal/solver/engine.go
//
// Guess strategy engine for a single game.
// Responsibilities:
//   - Own the candidate pool and the (guess, feedback) history.
//   - Propose the next guess (opener, forced single candidate, letter scout,
//     distinct-letter bias, then scorer ranking with lexicographic tie-break).
//   - Filter the pool with each feedback and report an empty pool as an error.
//
// Notes:
//   - An Engine is not safe for concurrent use; batch runs build one per game.
//   - The engine never sees the secret, only feedback.

package solver

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// Engine selects guesses for one game at a time.
type Engine struct {
	cfg     Config
	scorer  Scorer
	weights map[string]float64

	all     *Pool
	pool    *Pool
	round   int
	history []game.Turn
	tried   map[string]struct{}
}

// Option customises an Engine at construction.
type Option func(*Engine)

// WithScorer replaces the default positional scorer.
func WithScorer(s Scorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.scorer = s
		}
	}
}

// WithWeights attaches per-word frequency weights used by the scorers.
func WithWeights(w map[string]float64) Option {
	return func(e *Engine) { e.weights = w }
}

// New validates cfg and returns an engine reset to list.
func New(cfg Config, list []string, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	def, _ := ScorerFor(ScorerPositional, cfg)
	e := &Engine{cfg: cfg, scorer: def}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.Reset(list); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset reinitialises the pool to the full deduplicated list, clears the
// history and sets the round to 0.
func (e *Engine) Reset(list []string) error {
	norm := make([]string, 0, len(list))
	for _, w := range list {
		w = game.Normalize(w)
		if !game.ValidWord(w) {
			return fmt.Errorf("%w: %q", game.ErrInvalidWord, w)
		}
		norm = append(norm, w)
	}
	if len(norm) == 0 {
		return ErrEmptyWordList
	}
	e.all = NewPool(norm, e.weights)
	e.pool = e.all
	e.round = 0
	e.history = nil
	e.tried = make(map[string]struct{})
	return nil
}

// Restart starts a new game over the same full list.
func (e *Engine) Restart() {
	e.pool = e.all
	e.round = 0
	e.history = nil
	e.tried = make(map[string]struct{})
}

// NextGuess returns the next guess without mutating the pool.
func (e *Engine) NextGuess() (string, error) {
	if e.round >= game.MaxAttempts {
		return "", ErrAttemptsExhausted
	}
	if e.pool.Len() == 0 {
		return "", ErrPoolExhausted
	}

	if e.round == 0 && e.cfg.Opener != "" {
		return e.cfg.Opener, nil
	}
	if e.pool.Len() == 1 {
		return e.pool.words[0], nil
	}
	if e.cfg.LetterScout {
		if p, ok := e.letterScout(); ok {
			log.Debug().Int("round", e.round).Int("pool", e.pool.Len()).Str("guess", p).Msg("letter scout")
			return p, nil
		}
	}

	candidates := e.candidates()
	if e.round == 1 && e.cfg.DistinctLetterBias {
		candidates = e.mostDistinct(candidates)
	}
	guess, score := e.best(candidates)
	log.Debug().
		Int("round", e.round).
		Int("pool", e.pool.Len()).
		Int("candidates", len(candidates)).
		Str("guess", guess).
		Float64("score", score).
		Msg("next guess")
	return guess, nil
}

// ApplyFeedback keeps only the pool words consistent with fb for guess,
// records the turn and advances the round.
func (e *Engine) ApplyFeedback(guess string, fb game.Feedback) error {
	guess = game.Normalize(guess)
	if !game.ValidWord(guess) {
		return fmt.Errorf("%w: guess %q", game.ErrInvalidWord, guess)
	}
	if e.round >= game.MaxAttempts {
		return ErrAttemptsExhausted
	}
	before := e.pool.Len()
	e.pool = e.pool.Filter(guess, fb)
	e.history = append(e.history, game.Turn{Guess: guess, Feedback: fb})
	e.tried[guess] = struct{}{}
	e.round++

	log.Debug().
		Str("guess", guess).
		Str("feedback", fb.String()).
		Int("before", before).
		Int("after", e.pool.Len()).
		Msg("pool filtered")

	// A solved game ends with the secret, even when it is not in the list.
	if e.pool.Len() == 0 && !fb.Solved() {
		return fmt.Errorf("%w after %s=%s", ErrPoolExhausted, guess, fb)
	}
	return nil
}

// Round returns the number of feedbacks applied so far.
func (e *Engine) Round() int { return e.round }

// Pool returns the current candidate pool.
func (e *Engine) Pool() *Pool { return e.pool }

// History returns a copy of the turns applied so far.
func (e *Engine) History() []game.Turn { return append([]game.Turn(nil), e.history...) }

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Solved reports whether the last feedback was all Correct.
func (e *Engine) Solved() bool {
	return len(e.history) > 0 && e.history[len(e.history)-1].Feedback.Solved()
}

// candidates returns the words eligible as the next guess. Exploratory mode
// widens the set to untried words of the full list while at least two
// attempts remain and the pool still has more than two words.
func (e *Engine) candidates() []string {
	if !e.cfg.ExploratoryScoring || e.round >= game.MaxAttempts-1 || e.pool.Len() <= 2 {
		return e.pool.words
	}
	out := make([]string, 0, e.all.Len())
	for _, w := range e.all.words {
		if _, done := e.tried[w]; !done {
			out = append(out, w)
		}
	}
	return out
}

// Limits of a letter scout.
const (
	scoutMaxOpen    = 2 // unsolved slots
	scoutMinLetters = 3 // distinct letters competing for the first open slot
)

// letterScout builds a throwaway guess out of the letters competing for the
// first unsolved slot, most common first, padded with 'a'. It fires when the
// last feedback has no Present marks and one or two Absent ones, at least two
// attempts remain and that feedback was not seen before in this game. Words
// like fight/light/might/night/sight are told apart in one scout instead of
// one guess each.
func (e *Engine) letterScout() (string, bool) {
	if len(e.history) == 0 || e.round >= game.MaxAttempts-1 {
		return "", false
	}
	last := e.history[len(e.history)-1].Feedback
	open := -1
	absent := 0
	for i, m := range last {
		switch m {
		case game.Present:
			return "", false
		case game.Absent:
			if open < 0 {
				open = i
			}
			absent++
		}
	}
	if absent == 0 || absent > scoutMaxOpen {
		return "", false
	}
	for _, t := range e.history[:len(e.history)-1] {
		if t.Feedback == last {
			return "", false
		}
	}

	var counts [26]int
	for _, w := range e.untried() {
		counts[w[open]-'a']++
	}
	letters := make([]byte, 0, 26)
	for c, n := range counts {
		if n > 0 {
			letters = append(letters, byte('a'+c))
		}
	}
	if len(letters) < scoutMinLetters {
		return "", false
	}
	sort.SliceStable(letters, func(i, j int) bool {
		return counts[letters[i]-'a'] > counts[letters[j]-'a']
	})
	if len(letters) > game.WordLength {
		letters = letters[:game.WordLength]
	}
	for len(letters) < game.WordLength {
		letters = append(letters, 'a')
	}
	return string(letters), true
}

// untried returns the pool words not guessed yet, or the whole pool when
// every one of them has been tried.
func (e *Engine) untried() []string {
	out := make([]string, 0, e.pool.Len())
	for _, w := range e.pool.words {
		if _, done := e.tried[w]; !done {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return e.pool.words
	}
	return out
}

// mostDistinct keeps the candidates with the largest number of distinct
// letters not used in any earlier guess.
func (e *Engine) mostDistinct(candidates []string) []string {
	var used [26]bool
	for _, t := range e.history {
		for i := 0; i < game.WordLength; i++ {
			used[t.Guess[i]-'a'] = true
		}
	}
	best := -1
	var out []string
	for _, w := range candidates {
		n := freshLetters(w, &used)
		switch {
		case n > best:
			best = n
			out = append(out[:0:0], w)
		case n == best:
			out = append(out, w)
		}
	}
	return out
}

func freshLetters(w string, used *[26]bool) int {
	var seen [26]bool
	n := 0
	for i := 0; i < game.WordLength; i++ {
		c := w[i] - 'a'
		if seen[c] || used[c] {
			continue
		}
		seen[c] = true
		n++
	}
	return n
}

// best returns the highest scoring candidate. Candidates are iterated in
// lexicographic order, so keeping only strict improvements breaks ties
// toward the smallest word.
func (e *Engine) best(candidates []string) (string, float64) {
	guess, top := "", 0.0
	for _, w := range candidates {
		s := e.scorer.Score(w, e.pool)
		if guess == "" || s > top {
			guess, top = w, s
		}
	}
	return guess, top
}
