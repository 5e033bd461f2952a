package bench

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// MaxRuns bounds the runs of a sweep.
const MaxRuns = 1000

// ErrTooManyRuns is returned by RunSweep when runs exceeds MaxRuns.
var ErrTooManyRuns = errors.New("too many runs")

// RunStats summarises one run of a sweep.
type RunStats struct {
	Words         int     `json:"words"`
	Played        int     `json:"played"`
	WinRate       float64 `json:"winRate"`
	AvgAttempts   float64 `json:"avgAttempts"`
	AvgWallTimeMs float64 `json:"avgWallTimeMs"`
}

// Sweep aggregates repeated runs over random sub-lists. Attempt statistics
// are taken over the per-run averages; StdAttempts is the population
// standard deviation.
type Sweep struct {
	Guesser        string        `json:"guesser"`
	Runs           []RunStats    `json:"runs"`
	MeanWinRate    float64       `json:"meanWinRate"`
	MeanAttempts   float64       `json:"meanAttempts"`
	StdAttempts    float64       `json:"stdAttempts"`
	MinAttempts    float64       `json:"minAttempts"`
	MaxAttempts    float64       `json:"maxAttempts"`
	MeanWallTimeMs float64       `json:"meanWallTimeMs"`
	Elapsed        time.Duration `json:"elapsedNs"`
}

// Sample draws n distinct words of list without replacement, deterministically
// for seed. n <= 0 or n >= len(list) returns a copy of the whole list.
func Sample(list []string, n int, seed string) []string {
	out := append([]string(nil), list...)
	if n <= 0 || n >= len(out) {
		return out
	}
	for i := 0; i < n; i++ {
		j := i + SecretIndex(seed, i, len(out)-i)
		out[i], out[j] = out[j], out[i]
	}
	return out[:n]
}

// RunSweep plays runs independent batch runs, each over a fresh sample of
// opts.Words of the given size, and aggregates their averages. Run r draws
// its sample with seed "<opts.Seed>/<r>". Progress output is disabled per run.
func RunSweep(ctx context.Context, opts Options, runs, sample int) (*Sweep, error) {
	if runs <= 0 {
		runs = 1
	}
	if runs > MaxRuns {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyRuns, runs, MaxRuns)
	}

	start := time.Now()
	sw := &Sweep{Runs: make([]RunStats, 0, runs)}
	for r := 0; r < runs; r++ {
		o := opts
		o.Words = Sample(opts.Words, sample, fmt.Sprintf("%s/%d", opts.Seed, r))
		o.Progress = nil
		rep, err := Run(ctx, o)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", r+1, err)
		}
		sw.Guesser = rep.Guesser
		sw.Runs = append(sw.Runs, RunStats{
			Words:         len(o.Words),
			Played:        rep.Played,
			WinRate:       rep.WinRate,
			AvgAttempts:   rep.AvgAttempts,
			AvgWallTimeMs: rep.AvgWallTimeMs,
		})
	}
	sw.summarise()
	sw.Elapsed = time.Since(start)
	return sw, nil
}

func (sw *Sweep) summarise() {
	n := float64(len(sw.Runs))
	if n == 0 {
		return
	}
	sw.MinAttempts = math.Inf(1)
	sw.MaxAttempts = math.Inf(-1)
	for _, r := range sw.Runs {
		sw.MeanWinRate += r.WinRate
		sw.MeanAttempts += r.AvgAttempts
		sw.MeanWallTimeMs += r.AvgWallTimeMs
		sw.MinAttempts = math.Min(sw.MinAttempts, r.AvgAttempts)
		sw.MaxAttempts = math.Max(sw.MaxAttempts, r.AvgAttempts)
	}
	sw.MeanWinRate /= n
	sw.MeanAttempts /= n
	sw.MeanWallTimeMs /= n

	var ss float64
	for _, r := range sw.Runs {
		d := r.AvgAttempts - sw.MeanAttempts
		ss += d * d
	}
	sw.StdAttempts = math.Sqrt(ss / n)
}
