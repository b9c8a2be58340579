// Package session holds the per-user state of the match report workflow:
// the uploaded file, field mapping, attribute selection and configs, the
// match rank board and the overview filters. Each Session is independent
// and guarded by its own lock.
package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/match-test/internal/attribute"
	"github.com/sells-group/match-test/internal/catalog"
	"github.com/sells-group/match-test/internal/fieldmap"
	"github.com/sells-group/match-test/internal/jobs"
	"github.com/sells-group/match-test/internal/matchrank"
	"github.com/sells-group/match-test/internal/model"
	"github.com/sells-group/match-test/internal/upload"
)

var (
	// ErrNotFound is returned for an unknown session id.
	ErrNotFound = eris.New("session: not found")
	// ErrNoFile is returned when processing before a file is uploaded.
	ErrNoFile = eris.New("session: no file uploaded")
	// ErrUnknownCategory is returned for a category the catalog does not define.
	ErrUnknownCategory = eris.New("session: unknown category")
	// ErrNoEditor is returned when editing an attribute config that has no
	// open editor.
	ErrNoEditor = eris.New("session: attribute editor not open")
)

// JobCreator records a processed upload.
type JobCreator interface {
	CreateJob(ctx context.Context, job model.Job) (*model.Job, error)
}

// Session is the workflow state of one user.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	mu        sync.Mutex
	catalog   *catalog.Catalog
	jobs      JobCreator
	file      *upload.File
	mapping   *fieldmap.Session
	selection *attribute.Selection
	configs   *attribute.Configs
	editors   map[string]*attribute.Editor
	board     *matchrank.Board
	filter    jobs.Filter
}

// New creates a session seeded from the catalog.
func New(cat *catalog.Catalog, jc JobCreator) *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		catalog:   cat,
		jobs:      jc,
		mapping:   fieldmap.NewSession(cat),
		selection: attribute.NewSelection(cat.AttributeList(), cat.Categories),
		configs:   attribute.NewConfigs(cat.AttributeDefault),
		editors:   make(map[string]*attribute.Editor),
		board:     matchrank.NewBoard(cat.RankList()),
	}
}

// MappingView is the field mapping state returned to callers.
type MappingView struct {
	FileName  string               `json:"file_name,omitempty"`
	MatchType model.MatchType      `json:"match_type,omitempty"`
	Columns   []string             `json:"columns"`
	Mappings  []model.FieldMapping `json:"mappings"`
	Ready     bool                 `json:"ready"`
	Missing   []string             `json:"missing"`
}

func (s *Session) mappingView() MappingView {
	v := MappingView{
		MatchType: s.mapping.MatchType(),
		Columns:   s.mapping.Columns(),
		Mappings:  s.mapping.Mappings(),
		Ready:     s.mapping.Ready(),
		Missing:   fieldmap.MissingRequired(s.mapping.Mappings()),
	}
	if s.file != nil {
		v.FileName = s.file.Name
	}
	if v.Columns == nil {
		v.Columns = []string{}
	}
	if v.Missing == nil {
		v.Missing = []string{}
	}
	return v
}

// UploadFile validates a file and makes its columns the mapping source. A
// rejected file leaves the previous upload in place.
func (s *Session) UploadFile(name, contentType string) (*upload.File, error) {
	f, err := upload.Accept(s.catalog, name, contentType)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.file = f
	s.mapping.SetColumns(f.Columns)
	zap.L().Debug("session: file accepted",
		zap.String("session_id", s.ID),
		zap.String("file", f.Name),
		zap.Int("columns", len(f.Columns)),
	)
	cp := *f
	cp.Columns = slices.Clone(f.Columns)
	return &cp, nil
}

// SelectMatchType picks a template and auto-matches it against the columns.
func (s *Session) SelectMatchType(name string) (MappingView, error) {
	mt, err := fieldmap.ParseMatchType(name)
	if err != nil {
		return MappingView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.mapping.SelectMatchType(mt); err != nil {
		return MappingView{}, err
	}
	return s.mappingView(), nil
}

// Mappings returns the current mapping state.
func (s *Session) Mappings() MappingView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mappingView()
}

// SetMapping remaps one field. An empty column clears it.
func (s *Session) SetMapping(index int, column string) (MappingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mapping.SetMapping(index, column); err != nil {
		return MappingView{}, err
	}
	return s.mappingView(), nil
}

var jobMatchTypes = map[model.MatchType]model.JobMatchType{
	model.MatchTypePII:         model.JobMatchPII,
	model.MatchTypeDigital:     model.JobMatchDigital,
	model.MatchTypeTransaction: model.JobMatchTransaction,
}

// Process submits the mapped upload and returns the created job. Its Ref is
// the "job-<uuid>" id used by the preparing-report view.
func (s *Session) Process(ctx context.Context) (*model.Job, error) {
	s.mu.Lock()
	if s.file == nil {
		s.mu.Unlock()
		return nil, ErrNoFile
	}
	if _, err := s.mapping.Process(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	job := model.Job{
		Ref:       "job-" + uuid.NewString(),
		FileName:  s.file.Name,
		MatchType: jobMatchTypes[s.mapping.MatchType()],
		Status:    model.JobStatusProcessing,
	}
	s.mu.Unlock()

	created, err := s.jobs.CreateJob(ctx, job)
	if err != nil {
		return nil, eris.Wrap(err, "session: create job")
	}
	zap.L().Info("session: job submitted",
		zap.String("session_id", s.ID),
		zap.String("job_ref", created.Ref),
		zap.Int("job_id", created.ID),
	)
	return created, nil
}
