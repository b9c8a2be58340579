package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/match-test/internal/model"
	"github.com/sells-group/match-test/internal/resilience"
	"github.com/sells-group/match-test/internal/store"
)

var testJobs = []model.Job{
	{ID: 1, FileName: "enterprise_leads_jan2026.csv", MatchType: model.JobMatchPII, ProcessedDate: "2026-01-09T14:35:22", Status: model.JobStatusProcessing},
	{ID: 2, FileName: "customer_data_q4_2025.csv", MatchType: model.JobMatchPII, ProcessedDate: "2026-01-05T09:12:45", Status: model.JobStatusCompleted},
	{ID: 3, FileName: "retail_customers_2025.xlsx", MatchType: model.JobMatchTransaction, ProcessedDate: "2025-12-28T16:48:11", Status: model.JobStatusCompleted},
	{ID: 4, FileName: "loyalty_members.csv", MatchType: model.JobMatchDigital, ProcessedDate: "2025-12-15T11:22:33", Status: model.JobStatusCompleted},
}

type failingSource struct{}

func (failingSource) ListJobs(context.Context) ([]model.Job, error) {
	return nil, eris.New("connection refused")
}

func (failingSource) GetJob(context.Context, int) (*model.Job, error) {
	return nil, eris.New("connection refused")
}

func newTestService(t *testing.T, opts Options) *Service {
	t.Helper()
	st := store.NewMemory()
	require.NoError(t, st.Seed(context.Background(), testJobs))
	kpis := []model.KPICard{{Value: "247", Label: "Total Jobs Completed"}}
	conns := []model.Connection{{ID: "1", Name: "Production Snowflake", Type: "snowflake"}}
	return NewService(st, kpis, conns, opts)
}

func TestFetch(t *testing.T) {
	svc := newTestService(t, Options{})

	jobs, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, jobs, 4)
}

func TestFetch_Timeout(t *testing.T) {
	svc := newTestService(t, Options{FetchDelay: time.Second, FetchTimeout: 10 * time.Millisecond})

	_, err := svc.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetchFailed))
}

func TestFetch_SourceError(t *testing.T) {
	svc := NewService(failingSource{}, nil, nil, Options{})

	_, err := svc.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetchFailed))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestFetch_BreakerOpensAfterFailures(t *testing.T) {
	br := resilience.NewBreaker(resilience.BreakerConfig{Name: "jobs", Threshold: 2, Cooldown: time.Hour})
	svc := NewService(failingSource{}, nil, nil, Options{Breaker: br})

	for range 2 {
		_, err := svc.Fetch(context.Background())
		require.Error(t, err)
		assert.NotErrorIs(t, err, resilience.ErrOpen)
	}

	_, err := svc.Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.Contains(t, err.Error(), "circuit open")
	assert.Equal(t, resilience.Open, br.State())
}

func TestQuery_LoadingThenSuccess(t *testing.T) {
	svc := newTestService(t, Options{FetchDelay: 50 * time.Millisecond})

	q := svc.Start(context.Background())
	snap := q.Snapshot()
	assert.Equal(t, StateLoading, snap.State)
	assert.Empty(t, snap.Jobs)

	snap = q.Wait(context.Background())
	assert.Equal(t, StateSuccess, snap.State)
	assert.Len(t, snap.Jobs, 4)
	assert.Empty(t, snap.Error)
}

func TestQuery_Error(t *testing.T) {
	svc := NewService(failingSource{}, nil, nil, Options{})

	snap := svc.Start(context.Background()).Wait(context.Background())
	assert.Equal(t, StateError, snap.State)
	assert.NotEmpty(t, snap.Error)
	assert.Empty(t, snap.Jobs)
}

func TestQuery_CancelledCaller(t *testing.T) {
	svc := newTestService(t, Options{FetchDelay: time.Second})

	q := svc.Start(context.Background())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	snap := q.Wait(ctx)
	assert.Equal(t, StateLoading, snap.State)
}

func TestJob(t *testing.T) {
	svc := newTestService(t, Options{})

	j, err := svc.Job(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "retail_customers_2025.xlsx", j.FileName)

	_, err = svc.Job(context.Background(), 77)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{"empty", Filter{}, []int{1, 2, 3, 4}},
		{"file name", Filter{Search: "LOYALTY"}, []int{4}},
		{"processed date", Filter{Search: "2025-12"}, []int{3, 4}},
		{"match type text", Filter{Search: "digi"}, []int{4}},
		{"type set", Filter{MatchTypes: []model.JobMatchType{model.JobMatchPII}}, []int{1, 2}},
		{"search and type", Filter{Search: "customer", MatchTypes: []model.JobMatchType{model.JobMatchTransaction}}, []int{3}},
		{"no match", Filter{Search: "zzz"}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(testJobs)
			ids := make([]int, 0, len(got))
			for _, j := range got {
				ids = append(ids, j.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilter_ToggleAndClear(t *testing.T) {
	var f Filter
	f.ToggleMatchType(model.JobMatchPII)
	f.ToggleMatchType(model.JobMatchDigital)
	assert.Equal(t, []model.JobMatchType{model.JobMatchPII, model.JobMatchDigital}, f.MatchTypes)

	f.ToggleMatchType(model.JobMatchPII)
	assert.Equal(t, []model.JobMatchType{model.JobMatchDigital}, f.MatchTypes)

	f.Search = "leads"
	f.Clear()
	assert.Empty(t, f.Search)
	assert.Empty(t, f.MatchTypes)
}

func TestFilter_AddMatchTypeIsIdempotent(t *testing.T) {
	var f Filter
	f.AddMatchType(model.JobMatchPII)
	f.AddMatchType(model.JobMatchPII)
	f.AddMatchType(model.JobMatchDigital)
	assert.Equal(t, []model.JobMatchType{model.JobMatchPII, model.JobMatchDigital}, f.MatchTypes)
}

func TestSummary(t *testing.T) {
	svc := newTestService(t, Options{})

	sum, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Len(t, sum.Jobs, 4)
	assert.Len(t, sum.KPIs, 1)
	assert.Len(t, sum.Connections, 1)
	assert.Equal(t, 3, sum.ByStatus[model.JobStatusCompleted])
	assert.Equal(t, 2, sum.ByMatchType[model.JobMatchPII])
}

func TestSummary_FetchFailure(t *testing.T) {
	svc := NewService(failingSource{}, nil, nil, Options{})

	_, err := svc.Summary(context.Background())
	assert.True(t, errors.Is(err, ErrFetchFailed))
}
