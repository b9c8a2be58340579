package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/match-test/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

var jobRowColumns = []string{
	"id", "ref", "file_name", "match_type", "processed_date", "match_rate",
	"status", "exported", "file_size", "record_count",
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS jobs`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListJobs(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	rows := pgxmock.NewRows(jobRowColumns).
		AddRow(2, "", "customer_data.csv", "PII", "2026-01-05T09:12:45", "95%", "completed", true, "145 MB", 1500000).
		AddRow(4, "", "loyalty.csv", "Digital", "2025-12-15T11:22:33", "92%", "completed", false, "52 MB", 456000)
	mock.ExpectQuery(`SELECT id, ref, file_name.* FROM jobs ORDER BY processed_date DESC`).
		WillReturnRows(rows)

	jobs, err := s.ListJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, model.JobMatchPII, jobs[0].MatchType)
	assert.Equal(t, model.JobStatusCompleted, jobs[0].Status)
	assert.True(t, jobs[0].Exported)
	assert.Equal(t, 456000, jobs[1].RecordCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetJob_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, ref, file_name.* FROM jobs WHERE id = \$1`).
		WithArgs(99).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetJob(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateJob(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`INSERT INTO jobs .* RETURNING id`).
		WithArgs("job-1", "leads.csv", "PII", pgxmock.AnyArg(), "Processing", "processing", false, "", 0).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(7))

	j, err := s.CreateJob(context.Background(), model.Job{Ref: "job-1", FileName: "leads.csv", MatchType: model.JobMatchPII})
	require.NoError(t, err)
	assert.Equal(t, 7, j.ID)
	assert.Equal(t, model.JobStatusProcessing, j.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Seed_SkipsWhenPopulated(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM jobs`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	require.NoError(t, s.Seed(context.Background(), seedJobs()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Seed_Empty(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM jobs`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	for _, j := range seedJobs() {
		mock.ExpectExec(`INSERT INTO jobs`).
			WithArgs(j.ID, j.Ref, j.FileName, string(j.MatchType), j.ProcessedDate, j.MatchRate,
				string(j.Status), j.Exported, j.FileSize, j.RecordCount).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectExec(`SELECT setval`).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectCommit()

	require.NoError(t, s.Seed(context.Background(), seedJobs()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
