package bench

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

var smallList = []string{
	"about", "alarm", "badly", "beach", "blind", "brave", "bread", "chair", "chest", "climb",
	"cloud", "crane", "dance", "dream", "drink", "earth", "empty", "fight", "flash", "focus",
	"fruit", "giant", "glass", "grape", "happy", "heart", "horse", "house", "input", "judge",
	"knife", "lemon", "lucky", "magic", "money", "mouse", "north", "ocean", "piano", "pilot",
	"queen", "radio", "robot", "salad", "shirt", "smoke", "sugar", "tiger", "vocal", "youth",
}

func TestSecrets(t *testing.T) {
	t.Parallel()

	all := Secrets(smallList, 0, "seed")
	assert.Equal(t, smallList, all)

	a := Secrets(smallList, 20, "seed")
	b := Secrets(smallList, 20, "seed")
	c := Secrets(smallList, 20, "other")
	require.Len(t, a, 20)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	for _, s := range a {
		assert.Contains(t, smallList, s)
	}

	assert.Equal(t, 0, SecretIndex("seed", 3, 0))
}

func TestRun_EveryWordOnce(t *testing.T) {
	t.Parallel()

	var progress bytes.Buffer
	rep, err := Run(context.Background(), Options{
		Workers:  4,
		Config:   solver.DefaultConfig(),
		Words:    smallList,
		Progress: &progress,
	})
	require.NoError(t, err)

	assert.Equal(t, len(smallList), rep.Played)
	assert.Equal(t, rep.Played, rep.Won+rep.Lost+rep.Failed)
	assert.Equal(t, 0, rep.Failed)
	assert.GreaterOrEqual(t, rep.WinRate, 0.96)
	assert.Greater(t, rep.AvgAttempts, 1.0)
	assert.LessOrEqual(t, rep.AvgAttempts, float64(game.MaxAttempts))
	assert.Equal(t, solver.ScorerPositional, rep.Guesser)
	assert.NotEmpty(t, progress.String())

	total := 0
	for _, n := range rep.Distribution {
		total += n
	}
	assert.Equal(t, rep.Won, total)
}

func TestRun_SeededRoundsWithEntropy(t *testing.T) {
	t.Parallel()

	l, err := words.Default()
	require.NoError(t, err)

	rep, err := Run(context.Background(), Options{
		Rounds:  40,
		Guesser: solver.ScorerEntropy,
		Workers: 8,
		Seed:    "regression",
		Config:  solver.DefaultConfig(),
		Words:   l.Words,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, rep.Played)
	assert.GreaterOrEqual(t, rep.WinRate, 0.95)
	assert.Equal(t, solver.ScorerEntropy, rep.Guesser)
}

func TestRun_InvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), Options{})
	assert.ErrorIs(t, err, solver.ErrEmptyWordList)

	_, err = Run(context.Background(), Options{Words: smallList, Guesser: "coinflip"})
	assert.ErrorIs(t, err, solver.ErrUnknownScorer)

	_, err = Run(context.Background(), Options{Words: smallList, Config: solver.Config{Opener: "x"}})
	assert.ErrorIs(t, err, game.ErrInvalidWord)
}

func TestRun_FailuresAreIsolated(t *testing.T) {
	t.Parallel()

	// The malformed entry makes every engine construction fail; the run still
	// reports every game instead of aborting.
	rep, err := Run(context.Background(), Options{
		Workers: 2,
		Words:   []string{"crane", "slate", "bad!"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Played)
	assert.Equal(t, 3, rep.Failed)
	assert.Len(t, rep.Failures, 3)
	assert.Equal(t, 0.0, rep.WinRate)
}

func TestRun_TooManyRounds(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), Options{Words: smallList, Rounds: MaxRounds + 1})
	assert.ErrorIs(t, err, ErrTooManyRounds)

	_, err = Run(context.Background(), Options{Words: smallList, Rounds: 1 << 50})
	assert.ErrorIs(t, err, ErrTooManyRounds)
}

// panicScorer blows up on every call.
type panicScorer struct{}

func (panicScorer) Score(string, *solver.Pool) float64 { panic("scorer exploded") }

func TestRun_PanicsAreIsolated(t *testing.T) {
	t.Parallel()

	// Without an opener the first guess already goes through the scorer.
	rep, err := Run(context.Background(), Options{
		Rounds: 1,
		Seed:   "panic",
		Scorer: panicScorer{},
		Words:  smallList,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Played)
	assert.Equal(t, 1, rep.Failed)
	require.Len(t, rep.Failures, 1)
	assert.True(t, strings.HasPrefix(rep.Failures[0].Err, "panic: "), rep.Failures[0].Err)
	assert.Contains(t, rep.Failures[0].Err, "scorer exploded")
	assert.Equal(t, StatusFailed, rep.Failures[0].Status)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err := Run(ctx, Options{Words: smallList})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, rep)
	assert.Less(t, rep.Played, len(smallList))
}

func TestPlayGame_PoolExhaustedIsFailure(t *testing.T) {
	t.Parallel()

	e, err := solver.New(solver.Config{Opener: "slate"}, []string{"crane", "slate"})
	require.NoError(t, err)

	out := PlayGame(e, "robot")
	assert.Equal(t, StatusFailed, out.Status)
	assert.Contains(t, out.Err, solver.ErrPoolExhausted.Error())
	assert.Equal(t, []string{"slate"}, out.Guesses)
}

func TestPlayGame_Win(t *testing.T) {
	t.Parallel()

	e, err := solver.New(solver.Config{Opener: "slate"}, []string{"apple", "grape", "brave", "crane", "slate"})
	require.NoError(t, err)

	out := PlayGame(e, "crane")
	assert.Equal(t, game.StatusWon, out.Status)
	assert.Equal(t, []string{"slate", "brave", "crane"}, out.Guesses)
	assert.Equal(t, 3, out.Attempts)
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	rep := aggregate([]Outcome{
		{Secret: "crane", Status: game.StatusWon, Attempts: 2, Elapsed: 2 * time.Millisecond},
		{Secret: "slate", Status: game.StatusWon, Attempts: 4, Elapsed: 4 * time.Millisecond},
		{Secret: "robot", Status: game.StatusLost, Attempts: 6, Elapsed: 6 * time.Millisecond},
		{Secret: "booby", Status: StatusFailed, Err: "boom", Elapsed: 0},
		{},
	})
	assert.Equal(t, 4, rep.Played)
	assert.Equal(t, 2, rep.Won)
	assert.Equal(t, 1, rep.Lost)
	assert.Equal(t, 1, rep.Failed)
	assert.Equal(t, 0.5, rep.WinRate)
	assert.Equal(t, 3.0, rep.AvgAttempts)
	assert.InDelta(t, 3.0, rep.AvgWallTimeMs, 1e-9)
	assert.Equal(t, 1, rep.Distribution[2])
	assert.Equal(t, 1, rep.Distribution[4])
	require.Len(t, rep.Failures, 1)
	assert.Equal(t, "booby", rep.Failures[0].Secret)
}
