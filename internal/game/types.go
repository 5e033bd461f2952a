// apps/go-solver/internal/game/types.go
//
// Core type definitions for the feedback oracle.
// Defines:
//   - Mark: per-letter result of a guess (correct/present/absent).
//   - Feedback: the five marks returned for one guess.
//   - Game: state for a single in-progress or finished game.

package game

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// WordLength is the number of letters in every word.
	WordLength = 5
	// MaxAttempts bounds the number of guesses in one game.
	MaxAttempts = 6
)

var (
	ErrInvalidWord     = errors.New("invalid word")
	ErrInvalidFeedback = errors.New("invalid feedback")
	ErrGameFinished    = errors.New("game finished")
)

// Mark represents the evaluation result for a single letter in a guess.
//   - Absent:  letter is not in the secret (or all its instances are used up).
//   - Present: letter exists in the secret but in a different position.
//   - Correct: letter is in the correct position.
type Mark uint8

const (
	Absent Mark = iota
	Present
	Correct
)

func (m Mark) String() string {
	switch m {
	case Correct:
		return "correct"
	case Present:
		return "present"
	default:
		return "absent"
	}
}

// Symbol is the one-character code used in textual feedback.
func (m Mark) Symbol() byte {
	switch m {
	case Correct:
		return 'G'
	case Present:
		return 'Y'
	default:
		return '.'
	}
}

// Feedback is the ordered per-position result of a guess. It is a value type
// and therefore comparable, which the solver relies on for filtering.
type Feedback [WordLength]Mark

// AllCorrect is the feedback of a solved game.
var AllCorrect = Feedback{Correct, Correct, Correct, Correct, Correct}

// Solved reports whether every position is Correct.
func (f Feedback) Solved() bool { return f == AllCorrect }

// String renders the feedback as a five character code, e.g. "G.Y..".
func (f Feedback) String() string {
	var b [WordLength]byte
	for i, m := range f {
		b[i] = m.Symbol()
	}
	return string(b[:])
}

// Index maps the feedback to 0..242 (base-3 digits, position 0 most
// significant). Used for dense pattern histograms.
func (f Feedback) Index() int {
	n := 0
	for _, m := range f {
		n = n*3 + int(m)
	}
	return n
}

// MarshalText implements encoding.TextMarshaler so feedback is a plain
// string in JSON payloads.
func (f Feedback) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Feedback) UnmarshalText(b []byte) error {
	parsed, err := ParseFeedback(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseFeedback reads a five character code. Accepted symbols:
//
//	correct: G g 2
//	present: Y y 1
//	absent:  . - _ x X 0
func ParseFeedback(s string) (Feedback, error) {
	var f Feedback
	s = strings.TrimSpace(s)
	if len(s) != WordLength {
		return f, fmt.Errorf("%w: %q must have %d symbols", ErrInvalidFeedback, s, WordLength)
	}
	for i := 0; i < WordLength; i++ {
		switch s[i] {
		case 'G', 'g', '2':
			f[i] = Correct
		case 'Y', 'y', '1':
			f[i] = Present
		case '.', '-', '_', 'x', 'X', '0':
			f[i] = Absent
		default:
			return Feedback{}, fmt.Errorf("%w: unknown symbol %q at %d", ErrInvalidFeedback, s[i], i)
		}
	}
	return f, nil
}

// Status is the coarse state of a game.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Turn is one guess together with the feedback it produced.
type Turn struct {
	Guess    string   `json:"guess"`
	Feedback Feedback `json:"feedback"`
}

// Game holds the state of a single round loop against a hidden secret.
// The secret is unexported so it never leaks through JSON or logging.
type Game struct {
	ID     string // Unique game identifier (random hex string).
	Rows   int    // Maximum number of guesses allowed (MaxAttempts).
	Turns  []Turn // Guesses made so far with their feedback.
	Status Status

	secret string
}
