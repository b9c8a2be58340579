// Package fieldmap maps the columns of an uploaded file onto the field
// template of a match type.
package fieldmap

import (
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"

	"github.com/sells-group/match-test/internal/model"
)

var (
	// ErrUnknownMatchType is returned for a match type with no template.
	ErrUnknownMatchType = eris.New("fieldmap: unknown match type")
	// ErrRequiredUnmapped is returned when processing with a required field unmapped.
	ErrRequiredUnmapped = eris.New("fieldmap: required field not mapped")
	// ErrUnknownColumn is returned when remapping to a column the file does not have.
	ErrUnknownColumn = eris.New("fieldmap: unknown column")
	// ErrNoMatchType is returned when mapping before a match type is selected.
	ErrNoMatchType = eris.New("fieldmap: no match type selected")
	// ErrFieldIndex is returned for a field index outside the template.
	ErrFieldIndex = eris.New("fieldmap: field index out of range")
)

// TemplateSource returns the field template for a match type.
type TemplateSource interface {
	Template(mt model.MatchType) ([]model.FieldMapping, bool)
}

// ParseMatchType resolves a case-insensitive match type name.
func ParseMatchType(s string) (model.MatchType, error) {
	switch mt := model.MatchType(strings.ToLower(strings.TrimSpace(s))); mt {
	case model.MatchTypePII, model.MatchTypeDigital, model.MatchTypeTransaction:
		return mt, nil
	}
	return "", eris.Wrapf(ErrUnknownMatchType, "%q", s)
}

// Normalize folds case and drops underscores and whitespace so that
// "First Name" and "first_name" compare equal.
func Normalize(s string) string {
	s = cases.Fold().String(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', ' ', '\t', '\n', '\r', '\f', '\v':
			return -1
		}
		return r
	}, s)
}

// AutoMatch maps every template field to the first column whose normalized
// name equals the field's; fields with no match stay nil.
func AutoMatch(template []model.FieldMapping, columns []string) []model.FieldMapping {
	norm := make([]string, len(columns))
	for i, c := range columns {
		norm[i] = Normalize(c)
	}

	out := make([]model.FieldMapping, len(template))
	for i, f := range template {
		out[i] = f
		out[i].MappedColumn = nil
		want := Normalize(f.Field)
		for j, n := range norm {
			if n == want {
				col := columns[j]
				out[i].MappedColumn = &col
				break
			}
		}
	}
	return out
}

// Ready reports whether every required field has a mapped column.
func Ready(mappings []model.FieldMapping) bool {
	return len(MissingRequired(mappings)) == 0
}

// MissingRequired lists the required fields without a mapped column.
func MissingRequired(mappings []model.FieldMapping) []string {
	var missing []string
	for _, m := range mappings {
		if m.Required && m.MappedColumn == nil {
			missing = append(missing, m.Field)
		}
	}
	return missing
}
