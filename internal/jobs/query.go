package jobs

import (
	"context"
	"sync"

	"github.com/sells-group/match-test/internal/model"
)

// State is the lifecycle of an in-flight job list fetch.
type State string

const (
	StateLoading State = "loading"
	StateError   State = "error"
	StateSuccess State = "success"
)

// Snapshot is a point-in-time view of a Query.
type Snapshot struct {
	State State       `json:"state"`
	Jobs  []model.Job `json:"jobs"`
	Error string      `json:"error,omitempty"`
}

// Query tracks one asynchronous fetch. It starts Loading and moves exactly
// once to Success or Error.
type Query struct {
	mu   sync.Mutex
	snap Snapshot
	done chan struct{}
}

// Start launches a fetch in the background and returns immediately.
func (s *Service) Start(ctx context.Context) *Query {
	q := &Query{
		snap: Snapshot{State: StateLoading, Jobs: []model.Job{}},
		done: make(chan struct{}),
	}
	go func() {
		defer close(q.done)
		jobs, err := s.Fetch(ctx)

		q.mu.Lock()
		defer q.mu.Unlock()
		if err != nil {
			q.snap.State = StateError
			q.snap.Error = err.Error()
			return
		}
		if jobs == nil {
			jobs = []model.Job{}
		}
		q.snap = Snapshot{State: StateSuccess, Jobs: jobs}
	}()
	return q
}

// Snapshot returns the current state without blocking.
func (q *Query) Snapshot() Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.snap
	out.Jobs = append([]model.Job{}, q.snap.Jobs...)
	return out
}

// Done is closed once the fetch settles.
func (q *Query) Done() <-chan struct{} {
	return q.done
}

// Wait blocks until the fetch settles or ctx ends, then returns the snapshot.
// A Loading snapshot is returned if ctx ends first.
func (q *Query) Wait(ctx context.Context) Snapshot {
	select {
	case <-q.done:
	case <-ctx.Done():
	}
	return q.Snapshot()
}
