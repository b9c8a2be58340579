// Package store persists match jobs behind a single interface with in-memory,
// SQLite and PostgreSQL backends.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/match-test/internal/model"
	"github.com/sells-group/match-test/internal/resilience"
)

// ErrNotFound is returned when a job does not exist.
var ErrNotFound = eris.New("store: job not found")

// Store defines the persistence interface for match jobs.
type Store interface {
	ListJobs(ctx context.Context) ([]model.Job, error)
	GetJob(ctx context.Context, id int) (*model.Job, error)
	CreateJob(ctx context.Context, job model.Job) (*model.Job, error)

	// Seed inserts the given jobs when the store holds none.
	Seed(ctx context.Context, jobs []model.Job) error

	Migrate(ctx context.Context) error
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	// ConnectAttempts bounds the retries of the initial database connection.
	ConnectAttempts int `yaml:"connect_attempts" mapstructure:"connect_attempts"`
}

// Open creates the configured backend, runs its migration and seeds it.
func Open(ctx context.Context, cfg Config, seed []model.Job) (Store, error) {
	var (
		st  Store
		err error
	)
	switch cfg.Driver {
	case "", "memory":
		st = NewMemory()
	case "sqlite":
		st, err = NewSQLite(cfg.DatabaseURL)
	case "postgres":
		st, err = resilience.DoVal(ctx, resilience.RetryConfig{
			MaxAttempts: cfg.ConnectAttempts,
			Jitter:      0.2,
			OnRetry:     resilience.RetryLogger("store", "connect"),
		}, func(ctx context.Context) (Store, error) {
			ps, err := NewPostgres(ctx, cfg.DatabaseURL)
			if err != nil {
				return nil, err
			}
			return ps, nil
		})
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	// SQLite reports lock contention while another process migrates.
	if err := resilience.Do(ctx, resilience.RetryConfig{
		MaxAttempts: cfg.ConnectAttempts,
		OnRetry:     resilience.RetryLogger("store", "migrate"),
	}, st.Migrate); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	if err := st.Seed(ctx, seed); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// processedLayout is the timestamp format of Job.ProcessedDate.
const processedLayout = "2006-01-02T15:04:05"

func stampJob(job *model.Job) {
	if job.ProcessedDate == "" {
		job.ProcessedDate = time.Now().UTC().Format(processedLayout)
	}
	if job.Status == "" {
		job.Status = model.JobStatusProcessing
	}
	if job.MatchRate == "" && job.Status == model.JobStatusProcessing {
		job.MatchRate = "Processing"
	}
}

// MemoryStore keeps jobs in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	jobs   map[int]model.Job
	nextID int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{jobs: make(map[int]model.Job), nextID: 1}
}

func (m *MemoryStore) Migrate(context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) Seed(_ context.Context, jobs []model.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.jobs) > 0 {
		return nil
	}
	for _, j := range jobs {
		m.jobs[j.ID] = j
		if j.ID >= m.nextID {
			m.nextID = j.ID + 1
		}
	}
	return nil
}

// ListJobs returns jobs newest first by processed date.
func (m *MemoryStore) ListJobs(ctx context.Context) ([]model.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "memory: list jobs")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, j)
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].ProcessedDate != out[b].ProcessedDate {
			return out[a].ProcessedDate > out[b].ProcessedDate
		}
		return out[a].ID > out[b].ID
	})
	return out, nil
}

func (m *MemoryStore) GetJob(_ context.Context, id int) (*model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, eris.Wrapf(ErrNotFound, "id %d", id)
	}
	return &j, nil
}

func (m *MemoryStore) CreateJob(_ context.Context, job model.Job) (*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stampJob(&job)
	job.ID = m.nextID
	m.nextID++
	m.jobs[job.ID] = job
	return &job, nil
}
