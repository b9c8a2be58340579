package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/match-test/internal/model"
)

// Pool is the subset of pgxpool.Pool used by PostgresStore.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 1
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS jobs (
	id             SERIAL PRIMARY KEY,
	ref            TEXT NOT NULL DEFAULT '',
	file_name      TEXT NOT NULL,
	match_type     TEXT NOT NULL,
	processed_date TEXT NOT NULL,
	match_rate     TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL DEFAULT 'processing',
	exported       BOOLEAN NOT NULL DEFAULT false,
	file_size      TEXT NOT NULL DEFAULT '',
	record_count   INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_jobs_processed_date ON jobs(processed_date);
CREATE INDEX IF NOT EXISTS idx_jobs_ref ON jobs(ref);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) Seed(ctx context.Context, jobs []model.Job) error {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return eris.Wrap(err, "postgres: count jobs")
	}
	if n > 0 || len(jobs) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin seed")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, j := range jobs {
		_, err := tx.Exec(ctx,
			`INSERT INTO jobs (`+jobColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			j.ID, j.Ref, j.FileName, string(j.MatchType), j.ProcessedDate, j.MatchRate,
			string(j.Status), j.Exported, j.FileSize, j.RecordCount,
		)
		if err != nil {
			return eris.Wrapf(err, "postgres: seed job %d", j.ID)
		}
	}
	// Explicit ids leave the serial behind; move it past the seed.
	if _, err := tx.Exec(ctx, `SELECT setval(pg_get_serial_sequence('jobs', 'id'), (SELECT MAX(id) FROM jobs))`); err != nil {
		return eris.Wrap(err, "postgres: advance job sequence")
	}
	return eris.Wrap(tx.Commit(ctx), "postgres: commit seed")
}

func (s *PostgresStore) ListJobs(ctx context.Context) ([]model.Job, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY processed_date DESC, id DESC`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list jobs")
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: list jobs")
		}
		jobs = append(jobs, *j)
	}
	return jobs, eris.Wrap(rows.Err(), "postgres: list jobs iterate")
}

func (s *PostgresStore) GetJob(ctx context.Context, id int) (*model.Job, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "id %d", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get job")
	}
	return j, nil
}

func (s *PostgresStore) CreateJob(ctx context.Context, job model.Job) (*model.Job, error) {
	stampJob(&job)
	err := s.pool.QueryRow(ctx,
		`INSERT INTO jobs (ref, file_name, match_type, processed_date, match_rate, status, exported, file_size, record_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		job.Ref, job.FileName, string(job.MatchType), job.ProcessedDate, job.MatchRate,
		string(job.Status), job.Exported, job.FileSize, job.RecordCount,
	).Scan(&job.ID)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert job")
	}
	return &job, nil
}
