package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/bench"
)

type benchOptions struct {
	rounds     int
	workers    int
	seed       string
	runs       int
	sample     int
	jsonOutput bool
	quiet      bool
}

func (a *App) newBenchCmd() *cobra.Command {
	opts := &benchOptions{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Play many games and report win rate and attempts",
		Long: `Play many independent games in parallel and print an aggregate report.

Secrets are chosen deterministically from the seed, so runs are repeatable.
With --rounds 0 every word of the list is played once.

With --runs or --sample the bench is repeated over random sub-lists of the
word list and the spread of the average attempts across runs is reported.

Examples:
  wordle-solver bench --rounds 1000 --guesser entropy
  wordle-solver bench --rounds 0 --json > report.json
  wordle-solver bench --runs 20 --sample 500 --rounds 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBench(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.rounds, "rounds", "n", 0, "Games to play, 0 plays every word once (overrides config)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Concurrent games (overrides config)")
	cmd.Flags().StringVar(&opts.seed, "seed", "", "Secret selection seed (overrides config)")
	cmd.Flags().IntVar(&opts.runs, "runs", 1, "Repeat the bench this many times over sampled sub-lists")
	cmd.Flags().IntVar(&opts.sample, "sample", 0, "Words per sampled sub-list, 0 uses the whole list")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Hide the progress bar")
	return cmd
}

func (a *App) runBench(ctx context.Context, cmd *cobra.Command, opts *benchOptions) error {
	e, err := a.load()
	if err != nil {
		return err
	}
	run := bench.Options{
		Rounds:  e.cfg.Bench.Rounds,
		Guesser: e.cfg.Scorer,
		Workers: e.cfg.Bench.Workers,
		Seed:    e.cfg.Bench.Seed,
		Config:  e.cfg.Solver,
		Words:   e.list.Words,
		Weights: e.list.Weights,
	}
	if cmd.Flags().Changed("rounds") {
		run.Rounds = opts.rounds
	}
	if opts.workers > 0 {
		run.Workers = opts.workers
	}
	if opts.seed != "" {
		run.Seed = opts.seed
	}
	if opts.runs > 1 || opts.sample > 0 {
		sw, err := bench.RunSweep(ctx, run, opts.runs, opts.sample)
		if err != nil {
			return err
		}
		if opts.jsonOutput {
			return writeIndentedJSON(a.stdout, sw)
		}
		printSweep(a.stdout, sw)
		return nil
	}
	if !opts.quiet && !opts.jsonOutput {
		run.Progress = a.stderr
	}

	rep, err := bench.Run(ctx, run)
	if err != nil && rep == nil {
		return err
	}
	if opts.jsonOutput {
		if jerr := writeIndentedJSON(a.stdout, rep); jerr != nil {
			return jerr
		}
	} else {
		printReport(a.stdout, rep)
	}
	return err
}

func printReport(w io.Writer, rep *bench.Report) {
	fmt.Fprintf(w, "guesser:       %s\n", rep.Guesser)
	fmt.Fprintf(w, "games:         %d (won %d, lost %d, failed %d)\n", rep.Played, rep.Won, rep.Lost, rep.Failed)
	fmt.Fprintf(w, "win rate:      %.2f%%\n", rep.WinRate*100)
	fmt.Fprintf(w, "avg attempts:  %.3f\n", rep.AvgAttempts)
	fmt.Fprintf(w, "avg wall time: %.3fms\n", rep.AvgWallTimeMs)
	fmt.Fprintf(w, "elapsed:       %s\n", rep.Elapsed)
	fmt.Fprintln(w, "distribution:")
	for n := 1; n < len(rep.Distribution); n++ {
		fmt.Fprintf(w, "  %d: %d\n", n, rep.Distribution[n])
	}
	for _, f := range rep.Failures {
		fmt.Fprintf(w, "failed %s: %s\n", f.Secret, f.Err)
	}
}

func printSweep(w io.Writer, sw *bench.Sweep) {
	fmt.Fprintf(w, "guesser:       %s\n", sw.Guesser)
	fmt.Fprintf(w, "runs:          %d\n", len(sw.Runs))
	for i, r := range sw.Runs {
		fmt.Fprintf(w, "  %d: %d words, %d games, win rate %.2f%%, avg attempts %.3f\n",
			i+1, r.Words, r.Played, r.WinRate*100, r.AvgAttempts)
	}
	fmt.Fprintf(w, "win rate:      %.2f%%\n", sw.MeanWinRate*100)
	fmt.Fprintf(w, "avg attempts:  %.3f ± %.3f (min %.3f, max %.3f)\n",
		sw.MeanAttempts, sw.StdAttempts, sw.MinAttempts, sw.MaxAttempts)
	fmt.Fprintf(w, "avg wall time: %.3fms\n", sw.MeanWallTimeMs)
	fmt.Fprintf(w, "elapsed:       %s\n", sw.Elapsed)
}

func writeIndentedJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
