package solver

import (
	"errors"
	"fmt"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

var (
	ErrEmptyWordList     = errors.New("empty word list")
	ErrPoolExhausted     = errors.New("candidate pool exhausted")
	ErrAttemptsExhausted = errors.New("attempts exhausted")
	ErrUnknownScorer     = errors.New("unknown scorer")
)

// Config selects the engine's heuristics. It is fixed for the engine's
// lifetime.
type Config struct {
	// Opener is returned as the first guess when set.
	Opener string `yaml:"opener" json:"opener,omitempty"`
	// RepeatLetterPenalty gives repeated letters no credit in the default scorer.
	RepeatLetterPenalty bool `yaml:"repeat_letter_penalty" json:"repeatLetterPenalty"`
	// DistinctLetterBias steers the guess after the opener toward words with
	// the most distinct, not yet tried letters.
	DistinctLetterBias bool `yaml:"distinct_letter_bias" json:"distinctLetterBias"`
	// ExploratoryScoring lets non-pool words from the full list be guessed
	// while there is room to spare.
	ExploratoryScoring bool `yaml:"exploratory_scoring" json:"exploratoryScoring"`
	// LetterScout spends a guess on a non-word built from the letters still
	// competing for an open slot when only one or two slots are unsolved.
	LetterScout bool `yaml:"letter_scout" json:"letterScout"`
	// HybridThreshold is the pool size above which the hybrid scorer ranks by
	// letter presence instead of entropy. 0 selects DefaultHybridThreshold.
	HybridThreshold int `yaml:"hybrid_threshold" json:"hybridThreshold,omitempty"`
}

// DefaultConfig is the configuration used by the CLI and the bench runner
// when nothing else is set.
func DefaultConfig() Config {
	return Config{
		Opener:              "slate",
		RepeatLetterPenalty: true,
	}
}

// Validate normalises the opener and checks it is a word.
func (c *Config) Validate() error {
	if c.HybridThreshold < 0 {
		return fmt.Errorf("hybrid threshold must not be negative: %d", c.HybridThreshold)
	}
	if c.Opener == "" {
		return nil
	}
	c.Opener = game.Normalize(c.Opener)
	if !game.ValidWord(c.Opener) {
		return fmt.Errorf("%w: opener %q", game.ErrInvalidWord, c.Opener)
	}
	return nil
}
