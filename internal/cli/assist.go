package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/render"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

func (a *App) newAssistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assist",
		Short: "Suggest guesses for a game played elsewhere",
		Long: `Suggest a guess, then read the feedback you got for it. Each input line is
either a feedback code for the suggested word, or "word code" when you
played a different word.

Example session:
  suggest: SLATE
  > ..G.G
  suggest: BRAVE
  > crane GGGGG`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAssist(cmd.Context())
		},
	}
}

func (a *App) runAssist(ctx context.Context) error {
	e, err := a.load()
	if err != nil {
		return err
	}
	eng, err := e.engine()
	if err != nil {
		return err
	}

	p := a.printer()
	fmt.Fprintln(a.stdout, render.Legend())
	sc := bufio.NewScanner(a.stdin)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		suggestion, err := eng.NextGuess()
		if errors.Is(err, solver.ErrAttemptsExhausted) {
			fmt.Fprintln(a.stdout, "out of attempts")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "suggest: %s (%d candidates)\n", strings.ToUpper(suggestion), eng.Pool().Len())

		var guess string
		var fb game.Feedback
		for {
			fmt.Fprint(a.stdout, "> ")
			if !sc.Scan() {
				fmt.Fprintln(a.stdout)
				return sc.Err()
			}
			guess, fb, err = parseAssistLine(sc.Text(), suggestion)
			if err == nil {
				break
			}
			fmt.Fprintln(a.stdout, err)
		}

		if err := eng.ApplyFeedback(guess, fb); err != nil {
			return err
		}
		p.Turn(eng.Round(), game.Turn{Guess: guess, Feedback: fb})
		if eng.Solved() {
			fmt.Fprintf(a.stdout, "solved in %d/%d\n", eng.Round(), game.MaxAttempts)
			return nil
		}
	}
}

// parseAssistLine reads "code" or "word code".
func parseAssistLine(line, suggestion string) (string, game.Feedback, error) {
	fields := strings.Fields(line)
	guess := suggestion
	switch len(fields) {
	case 1:
	case 2:
		guess = game.Normalize(fields[0])
		if !game.ValidWord(guess) {
			return "", game.Feedback{}, fmt.Errorf("%w: %q", game.ErrInvalidWord, fields[0])
		}
	default:
		return "", game.Feedback{}, fmt.Errorf("%w: expected \"code\" or \"word code\"", game.ErrInvalidFeedback)
	}
	fb, err := game.ParseFeedback(fields[len(fields)-1])
	if err != nil {
		return "", game.Feedback{}, err
	}
	return guess, fb, nil
}
