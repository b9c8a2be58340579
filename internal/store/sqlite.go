package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/match-test/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = "matchtest.db"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS jobs (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	ref            TEXT NOT NULL DEFAULT '',
	file_name      TEXT NOT NULL,
	match_type     TEXT NOT NULL,
	processed_date TEXT NOT NULL,
	match_rate     TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL DEFAULT 'processing',
	exported       INTEGER NOT NULL DEFAULT 0,
	file_size      TEXT NOT NULL DEFAULT '',
	record_count   INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_jobs_processed_date ON jobs(processed_date);
CREATE INDEX IF NOT EXISTS idx_jobs_ref ON jobs(ref);
`

const jobColumns = `id, ref, file_name, match_type, processed_date, match_rate, status, exported, file_size, record_count`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Seed(ctx context.Context, jobs []model.Job) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return eris.Wrap(err, "sqlite: count jobs")
	}
	if n > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin seed")
	}
	defer tx.Rollback() //nolint:errcheck

	for _, j := range jobs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO jobs (`+jobColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			j.ID, j.Ref, j.FileName, string(j.MatchType), j.ProcessedDate, j.MatchRate,
			string(j.Status), j.Exported, j.FileSize, j.RecordCount,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: seed job %d", j.ID)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit seed")
}

func (s *SQLiteStore) ListJobs(ctx context.Context) ([]model.Job, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY processed_date DESC, id DESC`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list jobs")
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	return jobs, eris.Wrap(rows.Err(), "sqlite: list jobs iterate")
}

func (s *SQLiteStore) GetJob(ctx context.Context, id int) (*model.Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "id %d", id)
	}
	return j, err
}

func (s *SQLiteStore) CreateJob(ctx context.Context, job model.Job) (*model.Job, error) {
	stampJob(&job)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (ref, file_name, match_type, processed_date, match_rate, status, exported, file_size, record_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.Ref, job.FileName, string(job.MatchType), job.ProcessedDate, job.MatchRate,
		string(job.Status), job.Exported, job.FileSize, job.RecordCount,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert job")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: last insert id")
	}
	job.ID = int(id)
	return &job, nil
}

// helpers

type scannable interface {
	Scan(dest ...any) error
}

func scanJob(row scannable) (*model.Job, error) {
	var j model.Job
	var matchType, status string
	err := row.Scan(&j.ID, &j.Ref, &j.FileName, &matchType, &j.ProcessedDate, &j.MatchRate,
		&status, &j.Exported, &j.FileSize, &j.RecordCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, eris.Wrap(err, "scan job")
	}
	j.MatchType = model.JobMatchType(matchType)
	j.Status = model.JobStatus(status)
	return &j, nil
}
