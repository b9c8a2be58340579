// Package jobs serves the overview data: the match job list behind a
// simulated network boundary, job lookup, filters, KPI cards and connections.
package jobs

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/match-test/internal/model"
	"github.com/sells-group/match-test/internal/resilience"
)

// ErrFetchFailed is returned when the job list cannot be loaded in time.
var ErrFetchFailed = eris.New("jobs: failed to load jobs")

// Source is the job persistence used by the service.
type Source interface {
	ListJobs(ctx context.Context) ([]model.Job, error)
	GetJob(ctx context.Context, id int) (*model.Job, error)
}

// Options controls the simulated fetch.
type Options struct {
	// FetchDelay is the artificial latency applied before every read.
	FetchDelay time.Duration
	// FetchTimeout bounds a single fetch including the delay. Zero disables it.
	FetchTimeout time.Duration
	// Breaker, when set, fails list fetches fast after repeated source errors.
	Breaker *resilience.Breaker
}

// Service loads jobs and the static overview data.
type Service struct {
	src         Source
	kpis        []model.KPICard
	connections []model.Connection
	opts        Options
}

// NewService creates a Service reading jobs from src.
func NewService(src Source, kpis []model.KPICard, connections []model.Connection, opts Options) *Service {
	return &Service{
		src:         src,
		kpis:        kpis,
		connections: connections,
		opts:        opts,
	}
}

// Fetch returns the job list after the configured delay. Cancellation, the
// fetch timeout and source errors all surface as ErrFetchFailed.
func (s *Service) Fetch(ctx context.Context) ([]model.Job, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.wait(ctx); err != nil {
		return nil, eris.Wrapf(ErrFetchFailed, "%v", err)
	}
	jobs, err := s.list(ctx)
	if err != nil {
		zap.L().Warn("jobs: list failed", zap.Error(err))
		return nil, eris.Wrapf(ErrFetchFailed, "%v", err)
	}
	return jobs, nil
}

// Job returns a single job by id. Lookup errors from the source, including
// not-found, are returned as is.
func (s *Service) Job(ctx context.Context, id int) (*model.Job, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.wait(ctx); err != nil {
		return nil, eris.Wrapf(ErrFetchFailed, "%v", err)
	}
	return s.src.GetJob(ctx, id)
}

// KPIs returns the overview KPI cards.
func (s *Service) KPIs(ctx context.Context) ([]model.KPICard, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "jobs: kpis")
	}
	return append([]model.KPICard(nil), s.kpis...), nil
}

// Connections returns the configured data connections.
func (s *Service) Connections(ctx context.Context) ([]model.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "jobs: connections")
	}
	return append([]model.Connection(nil), s.connections...), nil
}

func (s *Service) list(ctx context.Context) ([]model.Job, error) {
	if s.opts.Breaker == nil {
		return s.src.ListJobs(ctx)
	}
	return resilience.Call(ctx, s.opts.Breaker, s.src.ListJobs)
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.FetchTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opts.FetchTimeout)
}

func (s *Service) wait(ctx context.Context) error {
	if s.opts.FetchDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.opts.FetchDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
