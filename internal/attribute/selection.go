// Package attribute tracks which enrichment attributes a session has
// selected and how each one is configured.
package attribute

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"

	"github.com/sells-group/match-test/internal/model"
)

// AllCategories is the category filter that matches every attribute.
const AllCategories = "all"

// ErrUnknownAttribute is returned for attribute ids or names not in the catalog.
var ErrUnknownAttribute = eris.New("attribute: unknown attribute")

// Selection is the set of selected attribute ids over a fixed catalog.
// It is not safe for concurrent use; callers serialize access.
type Selection struct {
	attrs      []model.Attribute
	categories []string
	byID       map[string]model.Attribute
	selected   map[string]struct{}
}

// NewSelection creates an empty selection over the given catalog.
func NewSelection(attrs []model.Attribute, categories []string) *Selection {
	s := &Selection{
		attrs:      attrs,
		categories: categories,
		byID:       make(map[string]model.Attribute, len(attrs)),
		selected:   make(map[string]struct{}),
	}
	for _, a := range attrs {
		s.byID[a.ID] = a
	}
	return s
}

// Toggle flips membership of a single attribute.
func (s *Selection) Toggle(id string) error {
	if _, ok := s.byID[id]; !ok {
		return eris.Wrapf(ErrUnknownAttribute, "toggle %q", id)
	}
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
	} else {
		s.selected[id] = struct{}{}
	}
	return nil
}

// ToggleCategory deselects every attribute of the category when all of them
// are selected, and selects all of them otherwise.
func (s *Selection) ToggleCategory(category string) {
	ids := s.idsIn(category)
	all := true
	for _, id := range ids {
		if !s.IsSelected(id) {
			all = false
			break
		}
	}
	for _, id := range ids {
		if all {
			delete(s.selected, id)
		} else {
			s.selected[id] = struct{}{}
		}
	}
}

// SelectAll selects the whole catalog.
func (s *Selection) SelectAll() {
	for _, a := range s.attrs {
		s.selected[a.ID] = struct{}{}
	}
}

// DeselectAll clears the selection.
func (s *Selection) DeselectAll() {
	clear(s.selected)
}

// IsSelected reports whether id is selected.
func (s *Selection) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// IDs returns the selected ids in catalog order.
func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.selected))
	for _, a := range s.attrs {
		if s.IsSelected(a.ID) {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Stats counts selected and total attributes in a category.
func (s *Selection) Stats(category string) model.CategoryStats {
	st := model.CategoryStats{Category: category}
	for _, id := range s.idsIn(category) {
		st.Total++
		if s.IsSelected(id) {
			st.Selected++
		}
	}
	return st
}

// AllStats returns Stats for every category in catalog order.
func (s *Selection) AllStats() []model.CategoryStats {
	out := make([]model.CategoryStats, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, s.Stats(c))
	}
	return out
}

// Coverage is the selected share of the catalog as a rounded percentage.
func (s *Selection) Coverage() int {
	if len(s.attrs) == 0 {
		return 0
	}
	return int(math.Round(float64(len(s.selected)) / float64(len(s.attrs)) * 100))
}

func (s *Selection) idsIn(category string) []string {
	var ids []string
	for _, a := range s.attrs {
		if a.Category == category {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Filter returns the attributes matching a category filter and a search
// query. An attribute matches when the category is AllCategories (or empty)
// or equal to its own, and the query is blank or a case-insensitive
// substring of its name or category.
func Filter(attrs []model.Attribute, category, query string) []model.Attribute {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))

	out := make([]model.Attribute, 0, len(attrs))
	for _, a := range attrs {
		if category != "" && category != AllCategories && a.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(fold.String(a.Name), q) &&
			!strings.Contains(fold.String(a.Category), q) {
			continue
		}
		out = append(out, a)
	}
	return out
}
