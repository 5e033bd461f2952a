// apps/go-solver/internal/bench/runner.go
//
// Batch runner: plays many independent games and aggregates the results.
// Responsibilities:
//   - Pick secrets deterministically (every word once, or seeded HMAC draws).
//   - Fan games out over a bounded errgroup; every game owns its engine and
//     game state, so nothing mutable crosses game boundaries.
//   - Isolate per-game failures (errors and panics) in the report instead of
//     aborting the run.
//
// Notes:
//   - The report never exposes the solver's pool, only outcomes.
//   - Context cancellation stops scheduling new games; games already running
//     finish normally (they are short and bounded).

package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// StatusFailed marks a game that ended in an error rather than a win or loss.
const StatusFailed game.Status = "failed"

// maxFailureSamples bounds the failures copied into a report.
const maxFailureSamples = 10

// MaxRounds bounds the games of a single run.
const MaxRounds = 100_000

// ErrTooManyRounds is returned by Run when Options.Rounds exceeds MaxRounds.
var ErrTooManyRounds = errors.New("too many rounds")

// Options configure a batch run.
type Options struct {
	Rounds   int                // games to play; <= 0 plays every word once
	Guesser  string             // scorer name, see solver.ScorerNames
	Scorer   solver.Scorer      // optional; overrides Guesser
	Workers  int                // concurrent games; <= 0 uses GOMAXPROCS
	Seed     string             // secret selection seed
	Config   solver.Config      // engine heuristics
	Words    []string           // word list, also the secret source
	Weights  map[string]float64 // optional frequency weights
	Progress io.Writer          // optional progress bar output
}

// Outcome is the result of one game.
type Outcome struct {
	Secret   string        `json:"secret"`
	Status   game.Status   `json:"status"`
	Attempts int           `json:"attempts"`
	Guesses  []string      `json:"guesses"`
	Elapsed  time.Duration `json:"elapsedNs"`
	Err      string        `json:"error,omitempty"`
}

// Report aggregates a batch run.
type Report struct {
	Guesser       string                    `json:"guesser"`
	Played        int                       `json:"played"`
	Won           int                       `json:"won"`
	Lost          int                       `json:"lost"`
	Failed        int                       `json:"failed"`
	WinRate       float64                   `json:"winRate"`
	AvgAttempts   float64                   `json:"avgAttempts"` // over won games
	AvgWallTimeMs float64                   `json:"avgWallTimeMs"`
	Distribution  [game.MaxAttempts + 1]int `json:"distribution"` // won games by attempts; index 0 unused
	Failures      []Outcome                 `json:"failures,omitempty"`
	Elapsed       time.Duration             `json:"elapsedNs"`
}

// Run plays the configured games and returns the aggregate report. Errors in
// individual games are recorded as failed outcomes; Run itself only fails on
// invalid options or context cancellation, in which case the report covers the
// games that completed.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if len(opts.Words) == 0 {
		return nil, solver.ErrEmptyWordList
	}
	if opts.Rounds > MaxRounds {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyRounds, opts.Rounds, MaxRounds)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	scorer, err := solver.ScorerFor(opts.Guesser, opts.Config)
	if err != nil {
		return nil, err
	}
	if opts.Scorer != nil {
		scorer = opts.Scorer
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	secrets := Secrets(opts.Words, opts.Rounds, opts.Seed)
	results := make([]Outcome, len(secrets))

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(secrets),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("games"),
			progressbar.OptionShowCount(),
		)
	}

	log.Info().
		Int("games", len(secrets)).
		Int("workers", workers).
		Str("guesser", opts.Guesser).
		Msg("bench started")

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, secret := range secrets {
		if gctx.Err() != nil {
			break
		}
		i, secret := i, secret
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = playIsolated(opts, scorer, secret)
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	runErr := g.Wait()
	if runErr == nil {
		runErr = ctx.Err()
	}
	if bar != nil {
		_ = bar.Finish()
	}

	rep := aggregate(results)
	rep.Guesser = opts.Guesser
	if rep.Guesser == "" {
		rep.Guesser = solver.ScorerPositional
	}
	rep.Elapsed = time.Since(start)

	log.Info().
		Int("played", rep.Played).
		Int("won", rep.Won).
		Int("failed", rep.Failed).
		Float64("avgAttempts", rep.AvgAttempts).
		Dur("elapsed", rep.Elapsed).
		Msg("bench finished")
	return rep, runErr
}

// playIsolated runs one game on a fresh engine and converts any error or
// panic into a failed outcome.
func playIsolated(opts Options, scorer solver.Scorer, secret string) (out Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Secret: secret, Status: StatusFailed, Err: fmt.Sprintf("panic: %v", r)}
		}
		out.Elapsed = time.Since(start)
		if out.Status == StatusFailed {
			log.Warn().Str("secret", secret).Str("error", out.Err).Msg("game failed")
		}
	}()

	e, err := solver.New(opts.Config, opts.Words, solver.WithScorer(scorer), solver.WithWeights(opts.Weights))
	if err != nil {
		return Outcome{Secret: secret, Status: StatusFailed, Err: err.Error()}
	}
	return PlayGame(e, secret)
}

// PlayGame runs the guess → feedback → filter loop of e against secret until
// the game is won, lost or fails.
func PlayGame(e *solver.Engine, secret string) Outcome {
	out := Outcome{Secret: secret}
	g, err := game.New(secret)
	if err != nil {
		out.Status, out.Err = StatusFailed, err.Error()
		return out
	}

	for g.Status == game.StatusInProgress {
		guess, err := e.NextGuess()
		if errors.Is(err, solver.ErrAttemptsExhausted) {
			out.Status = game.StatusLost
			break
		}
		if err != nil {
			out.Status, out.Err = StatusFailed, err.Error()
			break
		}
		out.Guesses = append(out.Guesses, guess)

		fb, st, err := g.Guess(guess)
		if err != nil {
			out.Status, out.Err = StatusFailed, err.Error()
			break
		}
		out.Status = st
		if st != game.StatusInProgress {
			break
		}
		if err := e.ApplyFeedback(guess, fb); err != nil {
			out.Status, out.Err = StatusFailed, err.Error()
			break
		}
	}
	out.Attempts = g.Attempts()
	return out
}

func aggregate(results []Outcome) *Report {
	rep := &Report{}
	var wonAttempts int
	var wall time.Duration
	for _, o := range results {
		if o.Status == "" {
			continue // not played (cancelled)
		}
		rep.Played++
		wall += o.Elapsed
		switch o.Status {
		case game.StatusWon:
			rep.Won++
			wonAttempts += o.Attempts
			if o.Attempts > 0 && o.Attempts < len(rep.Distribution) {
				rep.Distribution[o.Attempts]++
			}
		case game.StatusLost:
			rep.Lost++
		default:
			rep.Failed++
			if len(rep.Failures) < maxFailureSamples {
				rep.Failures = append(rep.Failures, o)
			}
		}
	}
	if rep.Played > 0 {
		rep.WinRate = float64(rep.Won) / float64(rep.Played)
		rep.AvgWallTimeMs = float64(wall.Microseconds()) / 1000 / float64(rep.Played)
	}
	if rep.Won > 0 {
		rep.AvgAttempts = float64(wonAttempts) / float64(rep.Won)
	}
	return rep
}
