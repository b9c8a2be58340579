package jobs

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/sells-group/match-test/internal/model"
)

// Filter narrows the overview job list by a search term and match types.
type Filter struct {
	Search     string               `json:"search"`
	MatchTypes []model.JobMatchType `json:"match_types"`
}

// ToggleMatchType adds t to the type set, or removes it when present.
func (f *Filter) ToggleMatchType(t model.JobMatchType) {
	if i := slices.Index(f.MatchTypes, t); i >= 0 {
		f.MatchTypes = slices.Delete(f.MatchTypes, i, i+1)
		return
	}
	f.MatchTypes = append(f.MatchTypes, t)
}

// AddMatchType adds t to the type set unless it is already present.
func (f *Filter) AddMatchType(t model.JobMatchType) {
	if !slices.Contains(f.MatchTypes, t) {
		f.MatchTypes = append(f.MatchTypes, t)
	}
}

// Clear resets both the search term and the type set.
func (f *Filter) Clear() {
	f.Search = ""
	f.MatchTypes = nil
}

// Matches reports whether j passes the filter. The search term matches a
// substring of the file name, processed date or match type ignoring case; an
// empty type set admits every type.
func (f Filter) Matches(j model.Job) bool {
	if len(f.MatchTypes) > 0 && !slices.Contains(f.MatchTypes, j.MatchType) {
		return false
	}
	if f.Search == "" {
		return true
	}
	fold := cases.Fold()
	term := fold.String(f.Search)
	for _, field := range []string{j.FileName, j.ProcessedDate, string(j.MatchType)} {
		if strings.Contains(fold.String(field), term) {
			return true
		}
	}
	return false
}

// Apply returns the jobs passing the filter, in input order.
func (f Filter) Apply(jobs []model.Job) []model.Job {
	out := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		if f.Matches(j) {
			out = append(out, j)
		}
	}
	return out
}
