package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/bench"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/render"
)

type playOptions struct {
	secret string
	manual bool
}

func (a *App) newPlayCmd() *cobra.Command {
	opts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one game against a secret word",
		Long: `Play one game. By default the solver plays against the secret and every
guess is printed with its feedback. With --manual you type the guesses.

Examples:
  wordle-solver play --secret crane
  wordle-solver play --guesser entropy
  wordle-solver play --manual`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlay(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.secret, "secret", "s", "", "Secret word (random word from the list when empty)")
	cmd.Flags().BoolVar(&opts.manual, "manual", false, "Type the guesses yourself")
	return cmd
}

func (a *App) runPlay(ctx context.Context, opts *playOptions) error {
	e, err := a.load()
	if err != nil {
		return err
	}
	secret := game.Normalize(opts.secret)
	if secret == "" {
		secret = e.list.Words[rand.Intn(len(e.list.Words))]
	}
	g, err := game.New(secret)
	if err != nil {
		return err
	}
	if opts.manual {
		return a.playManual(ctx, g)
	}

	eng, err := e.engine()
	if err != nil {
		return err
	}
	out := bench.PlayGame(eng, secret)
	p := a.printer()
	for i, guess := range out.Guesses {
		p.Turn(i+1, game.Turn{Guess: guess, Feedback: game.Score(secret, guess)})
	}
	switch out.Status {
	case game.StatusWon:
		fmt.Fprintf(a.stdout, "solved %s in %d/%d\n", strings.ToUpper(secret), out.Attempts, game.MaxAttempts)
	case game.StatusLost:
		fmt.Fprintf(a.stdout, "lost, the word was %s\n", strings.ToUpper(secret))
	default:
		return fmt.Errorf("game failed: %s", out.Err)
	}
	return nil
}

// playManual reads guesses line by line until the game ends or input runs out.
func (a *App) playManual(ctx context.Context, g *game.Game) error {
	p := a.printer()
	fmt.Fprintln(a.stdout, render.Legend())
	sc := bufio.NewScanner(a.stdin)
	for g.Status == game.StatusInProgress {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "guess %d/%d: ", g.Attempts()+1, g.Rows)
		if !sc.Scan() {
			fmt.Fprintln(a.stdout)
			return sc.Err()
		}
		word := game.Normalize(sc.Text())
		fb, _, err := g.Guess(word)
		if errors.Is(err, game.ErrInvalidWord) {
			fmt.Fprintf(a.stdout, "%q is not a five letter word\n", word)
			continue
		}
		if err != nil {
			return err
		}
		p.Turn(g.Attempts(), game.Turn{Guess: word, Feedback: fb})
	}
	if g.Status == game.StatusWon {
		fmt.Fprintf(a.stdout, "solved in %d/%d\n", g.Attempts(), g.Rows)
		return nil
	}
	fmt.Fprintf(a.stdout, "lost, the word was %s\n", strings.ToUpper(g.Reveal()))
	return nil
}
