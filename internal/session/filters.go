package session

import (
	"slices"

	"github.com/sells-group/match-test/internal/jobs"
	"github.com/sells-group/match-test/internal/model"
)

// Filter returns a copy of the overview filter.
func (s *Session) Filter() jobs.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyFilter()
}

// SetSearch sets the overview search term.
func (s *Session) SetSearch(term string) jobs.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Search = term
	return s.copyFilter()
}

// ToggleMatchType adds or removes a match type from the overview filter.
func (s *Session) ToggleMatchType(t model.JobMatchType) jobs.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.ToggleMatchType(t)
	return s.copyFilter()
}

// ClearFilters resets the overview filter.
func (s *Session) ClearFilters() jobs.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Clear()
	return s.copyFilter()
}

func (s *Session) copyFilter() jobs.Filter {
	f := jobs.Filter{Search: s.filter.Search, MatchTypes: slices.Clone(s.filter.MatchTypes)}
	if f.MatchTypes == nil {
		f.MatchTypes = []model.JobMatchType{}
	}
	return f
}
