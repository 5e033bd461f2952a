// apps/go-solver/internal/game/engine.go
//
// Feedback oracle and single-game state machine.
// Responsibilities:
//   - Validate words (exactly five lowercase a–z letters).
//   - Score guesses using the classic two‑pass Wordle algorithm.
//   - Track state transitions: in_progress → won/lost.
//
// Notes:
//   - Evaluate validates its inputs; Score is the unchecked form used in the
//     solver's hot loops once words are known to be valid.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// New constructs a game around secret. The secret is normalised to lowercase
// and must be a valid word.
func New(secret string) (*Game, error) {
	secret = Normalize(secret)
	if !ValidWord(secret) {
		return nil, fmt.Errorf("%w: secret %q", ErrInvalidWord, secret)
	}
	return &Game{
		ID:     randomID(),
		Rows:   MaxAttempts,
		Turns:  []Turn{},
		Status: StatusInProgress,
		secret: secret,
	}, nil
}

// Guess validates and scores a guess, mutating the game state.
//
// State transitions:
//   - All tiles Correct → won.
//   - Else if the number of guesses reaches g.Rows → lost.
func (g *Game) Guess(word string) (Feedback, Status, error) {
	if g.Status != StatusInProgress {
		return Feedback{}, g.Status, ErrGameFinished
	}
	fb, err := Evaluate(g.secret, Normalize(word))
	if err != nil {
		return Feedback{}, g.Status, err
	}
	g.Turns = append(g.Turns, Turn{Guess: Normalize(word), Feedback: fb})

	if fb.Solved() {
		g.Status = StatusWon
	} else if len(g.Turns) >= g.Rows {
		g.Status = StatusLost
	}
	return fb, g.Status, nil
}

// Attempts returns the number of guesses made so far.
func (g *Game) Attempts() int { return len(g.Turns) }

// Reveal returns the secret once the game is over, and "" before that.
func (g *Game) Reveal() string {
	if g.Status == StatusInProgress {
		return ""
	}
	return g.secret
}

// Evaluate classifies every position of guess against secret.
// Both words must be valid; otherwise ErrInvalidWord is returned.
func Evaluate(secret, guess string) (Feedback, error) {
	if !ValidWord(secret) {
		return Feedback{}, fmt.Errorf("%w: secret %q", ErrInvalidWord, secret)
	}
	if !ValidWord(guess) {
		return Feedback{}, fmt.Errorf("%w: guess %q", ErrInvalidWord, guess)
	}
	return Score(secret, guess), nil
}

// Score implements the standard two‑pass scoring without validation.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non‑correct) secret letters.
//
// Pass 2:
//   - For each non‑correct guess letter, left to right: if the count for
//     that letter is positive, mark Present and decrement; otherwise Absent.
//
// This ensures repeated letters are credited at most as often as they occur
// in the secret.
func Score(secret, guess string) Feedback {
	var res Feedback
	var counts [26]int

	for i := 0; i < WordLength; i++ {
		if guess[i] == secret[i] {
			res[i] = Correct
		} else {
			counts[secret[i]-'a']++
		}
	}

	for i := 0; i < WordLength; i++ {
		if res[i] == Correct {
			continue
		}
		j := guess[i] - 'a'
		if counts[j] > 0 {
			res[i] = Present
			counts[j]--
		}
	}
	return res
}

// ValidWord reports whether w is exactly five lowercase ASCII letters.
func ValidWord(w string) bool {
	if len(w) != WordLength {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}

// Normalize trims and lowercases a word.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
