package jobs

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/match-test/internal/model"
)

// Summary is everything the overview page renders in one payload.
type Summary struct {
	Jobs        []model.Job                `json:"jobs"`
	KPIs        []model.KPICard            `json:"kpis"`
	Connections []model.Connection         `json:"connections"`
	ByStatus    map[model.JobStatus]int    `json:"by_status"`
	ByMatchType map[model.JobMatchType]int `json:"by_match_type"`
}

// Summary loads jobs, KPIs and connections concurrently.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var sum Summary
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		jobs, err := s.Fetch(gCtx)
		sum.Jobs = jobs
		return err
	})
	g.Go(func() error {
		kpis, err := s.KPIs(gCtx)
		sum.KPIs = kpis
		return err
	})
	g.Go(func() error {
		conns, err := s.Connections(gCtx)
		sum.Connections = conns
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum.ByStatus = make(map[model.JobStatus]int)
	sum.ByMatchType = make(map[model.JobMatchType]int)
	for _, j := range sum.Jobs {
		sum.ByStatus[j.Status]++
		sum.ByMatchType[j.MatchType]++
	}
	return &sum, nil
}
