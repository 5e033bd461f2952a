// apps/go-solver/internal/store/memory.go
//
// In-memory store for background bench runs started over HTTP.
// Characteristics:
//   - Stores *Job objects keyed by a random UUID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Get returns a copy, so callers never race with the worker that finishes
//     the job.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/go-solver/internal/bench"
)

// ErrNotFound is returned by Get for unknown job IDs.
var ErrNotFound = errors.New("not found")

// JobStatus is the lifecycle state of a bench job.
type JobStatus string

const (
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// Job is one background bench run.
type Job struct {
	ID         string        `json:"id"`
	Status     JobStatus     `json:"status"`
	Report     *bench.Report `json:"report,omitempty"`
	Error      string        `json:"error,omitempty"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt *time.Time    `json:"finishedAt,omitempty"`
}

// Store defines the persistence interface for bench jobs.
type Store interface {
	// Create registers a new running job and returns it.
	Create(ctx context.Context) (*Job, error)

	// Finish records the outcome of job id. A nil err marks it done.
	Finish(ctx context.Context, id string, rep *bench.Report, err error) error

	// Get retrieves a job by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Job, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{jobs: make(map[string]*Job)}
}

func (m *memory) Create(ctx context.Context) (*Job, error) {
	j := &Job{
		ID:        uuid.NewString(),
		Status:    JobRunning,
		StartedAt: time.Now().UTC(),
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = j
	c := *j
	return &c, nil
}

func (m *memory) Finish(ctx context.Context, id string, rep *bench.Report, err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return ErrNotFound
	}
	now := time.Now().UTC()
	j.FinishedAt = &now
	j.Report = rep
	if err != nil {
		j.Status = JobFailed
		j.Error = err.Error()
		return nil
	}
	j.Status = JobDone
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if j, ok := m.jobs[id]; ok {
		c := *j
		return &c, nil
	}
	return nil, ErrNotFound
}
