package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

func (a *App) newOpenerCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "opener",
		Short: "Suggest a first guess for the word list",
		Long: `Rank the best positional words of the list together with a few well known
openers by the entropy of their feedback over the whole list, and print the
winner. Use the result as "solver.opener" in the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.load()
			if err != nil {
				return err
			}
			best, err := solver.SuggestOpener(e.list.Words, e.list.Weights, limit)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%s %.3f bits\n", strings.ToUpper(best.Word), best.Score)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Positional shortlist size")
	return cmd
}
