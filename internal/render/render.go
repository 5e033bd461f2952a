// Package render draws guesses and their feedback for humans: coloured tiles
// on a terminal, or the plain five-character code elsewhere.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/TwiN/go-color"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// tileColor maps marks to terminal colours.
func tileColor(m game.Mark) string {
	switch m {
	case game.Correct:
		return color.Green
	case game.Present:
		return color.Yellow
	default:
		return color.Gray
	}
}

// Row renders guess with one coloured, upper-cased letter per mark.
func Row(guess string, fb game.Feedback) string {
	var b strings.Builder
	for i := 0; i < len(guess) && i < game.WordLength; i++ {
		letter := strings.ToUpper(guess[i : i+1])
		b.WriteString(color.Ize(color.Bold, color.Ize(tileColor(fb[i]), letter)))
	}
	return b.String()
}

// Plain renders guess and its code without escape sequences, e.g.
// "SLATE ..G.G".
func Plain(guess string, fb game.Feedback) string {
	return strings.ToUpper(guess) + " " + fb.String()
}

// Printer writes turns either coloured or plain.
type Printer struct {
	W     io.Writer
	Color bool
}

// Turn writes one numbered row.
func (p Printer) Turn(n int, t game.Turn) {
	if p.Color {
		fmt.Fprintf(p.W, "%d. %s  %s\n", n, Row(t.Guess, t.Feedback), t.Feedback)
		return
	}
	fmt.Fprintf(p.W, "%d. %s\n", n, Plain(t.Guess, t.Feedback))
}

// Legend explains the feedback code.
func Legend() string {
	return "feedback code: G = correct spot, Y = wrong spot, . = not in word"
}
