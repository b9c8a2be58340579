package fieldmap

import (
	"slices"

	"github.com/rotisserie/eris"

	"github.com/sells-group/match-test/internal/model"
)

// Session is the mapping state of one upload. Auto-matching runs once when a
// match type is selected. Later column changes keep manual edits whose
// column still exists and only auto-match the fields the user has not
// touched. It is not safe for concurrent use.
type Session struct {
	templates TemplateSource
	matchType model.MatchType
	columns   []string
	mappings  []model.FieldMapping
	manual    map[int]bool
}

// NewSession creates a session with no match type selected.
func NewSession(templates TemplateSource) *Session {
	return &Session{templates: templates, manual: make(map[int]bool)}
}

// MatchType returns the selected match type, or "" when none is selected.
func (s *Session) MatchType() model.MatchType { return s.matchType }

// Columns returns the current column list.
func (s *Session) Columns() []string { return slices.Clone(s.columns) }

// Mappings returns a copy of the current mappings.
func (s *Session) Mappings() []model.FieldMapping {
	out := make([]model.FieldMapping, len(s.mappings))
	for i, m := range s.mappings {
		out[i] = m
		if m.MappedColumn != nil {
			col := *m.MappedColumn
			out[i].MappedColumn = &col
		}
	}
	return out
}

// SelectMatchType loads the template for mt and auto-matches it against the
// current columns. Selecting a match type always starts a fresh mapping.
func (s *Session) SelectMatchType(mt model.MatchType) ([]model.FieldMapping, error) {
	tmpl, ok := s.templates.Template(mt)
	if !ok {
		return nil, eris.Wrapf(ErrUnknownMatchType, "%q", mt)
	}
	s.matchType = mt
	s.manual = make(map[int]bool)
	s.mappings = AutoMatch(tmpl, s.columns)
	return s.Mappings(), nil
}

// SetColumns replaces the column list. Manual mappings survive when their
// column is still present; every other field is auto-matched again.
func (s *Session) SetColumns(columns []string) {
	s.columns = slices.Clone(columns)
	if s.matchType == "" {
		return
	}

	auto := AutoMatch(s.mappings, s.columns)
	for i := range auto {
		if !s.manual[i] {
			continue
		}
		prev := s.mappings[i].MappedColumn
		if prev == nil || slices.Contains(s.columns, *prev) {
			auto[i].MappedColumn = prev
			continue
		}
		delete(s.manual, i)
	}
	s.mappings = auto
}

// SetMapping points field index at column. An empty column clears the mapping.
func (s *Session) SetMapping(index int, column string) error {
	if s.matchType == "" {
		return ErrNoMatchType
	}
	if index < 0 || index >= len(s.mappings) {
		return eris.Wrapf(ErrFieldIndex, "%d", index)
	}
	if column == "" {
		s.mappings[index].MappedColumn = nil
		s.manual[index] = true
		return nil
	}
	if !slices.Contains(s.columns, column) {
		return eris.Wrapf(ErrUnknownColumn, "%q", column)
	}
	s.mappings[index].MappedColumn = &column
	s.manual[index] = true
	return nil
}

// Ready reports whether the mapping can be processed.
func (s *Session) Ready() bool {
	return s.matchType != "" && Ready(s.mappings)
}

// Process returns the final mappings, or ErrRequiredUnmapped naming the
// missing fields.
func (s *Session) Process() ([]model.FieldMapping, error) {
	if s.matchType == "" {
		return nil, ErrNoMatchType
	}
	if missing := MissingRequired(s.mappings); len(missing) > 0 {
		return nil, eris.Wrapf(ErrRequiredUnmapped, "%v", missing)
	}
	return s.Mappings(), nil
}

// Reset clears match type, columns and mappings.
func (s *Session) Reset() {
	s.matchType = ""
	s.columns = nil
	s.mappings = nil
	s.manual = make(map[int]bool)
}
