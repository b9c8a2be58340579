package session

import (
	"slices"

	"github.com/rotisserie/eris"

	"github.com/sells-group/match-test/internal/attribute"
	"github.com/sells-group/match-test/internal/model"
)

// AttributeItem is a catalog attribute with its selection flag.
type AttributeItem struct {
	model.Attribute
	Selected bool `json:"selected"`
}

// AttributeView is the filtered attribute list with selection totals.
type AttributeView struct {
	Category   string                `json:"category"`
	Query      string                `json:"query"`
	Attributes []AttributeItem       `json:"attributes"`
	Stats      []model.CategoryStats `json:"stats"`
	Selected   int                   `json:"selected"`
	Total      int                   `json:"total"`
	Coverage   int                   `json:"coverage"`
}

// Attributes lists the catalog filtered by category and query. Stats and
// coverage always describe the whole catalog.
func (s *Session) Attributes(category, query string) AttributeView {
	if category == "" {
		category = attribute.AllCategories
	}
	filtered := attribute.Filter(s.catalog.Attributes, category, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]AttributeItem, len(filtered))
	for i, a := range filtered {
		items[i] = AttributeItem{Attribute: a, Selected: s.selection.IsSelected(a.ID)}
	}
	return AttributeView{
		Category:   category,
		Query:      query,
		Attributes: items,
		Stats:      s.selection.AllStats(),
		Selected:   len(s.selection.IDs()),
		Total:      len(s.catalog.Attributes),
		Coverage:   s.selection.Coverage(),
	}
}

// SelectedAttributes returns the selected attribute ids in catalog order.
func (s *Session) SelectedAttributes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.IDs()
}

// ToggleAttribute flips one attribute.
func (s *Session) ToggleAttribute(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Toggle(id)
}

// ToggleCategory selects the whole category, or clears it when fully selected.
func (s *Session) ToggleCategory(category string) error {
	if !slices.Contains(s.catalog.Categories, category) {
		return eris.Wrapf(ErrUnknownCategory, "%q", category)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.ToggleCategory(category)
	return nil
}

// SelectAllAttributes selects the whole catalog.
func (s *Session) SelectAllAttributes() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.SelectAll()
}

// DeselectAllAttributes clears the selection.
func (s *Session) DeselectAllAttributes() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.DeselectAll()
}

func (s *Session) attributeByName(name string) (model.Attribute, error) {
	for _, a := range s.catalog.Attributes {
		if a.Name == name {
			return a, nil
		}
	}
	return model.Attribute{}, eris.Wrapf(attribute.ErrUnknownAttribute, "%q", name)
}

// AttributeConfig returns the saved config for an attribute, or its default.
func (s *Session) AttributeConfig(name string) (model.AttributeConfig, error) {
	a, err := s.attributeByName(name)
	if err != nil {
		return model.AttributeConfig{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configs.Current(a.Name, a.Type), nil
}

// SaveAttributeConfig validates cfg against the attribute's type and stores it.
func (s *Session) SaveAttributeConfig(name string, cfg model.AttributeConfig) (model.AttributeConfig, error) {
	a, err := s.attributeByName(name)
	if err != nil {
		return model.AttributeConfig{}, err
	}
	cfg.AttributeName = a.Name
	if cfg.Type == "" {
		cfg.Type = a.Type
	}
	if cfg.Type != a.Type {
		return model.AttributeConfig{}, eris.Wrapf(attribute.ErrInvalidConfig, "%s is a %s attribute", a.Name, a.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Categorical options are fixed per attribute; only the selection is
	// taken from the caller.
	switch a.Type {
	case model.AttributeCategorical:
		cfg.Range = nil
		if cfg.Categorical != nil {
			def := s.configs.Default(a.Name, a.Type)
			cfg.Categorical = &model.CategoricalConfig{
				Selected: append([]string{}, cfg.Categorical.Selected...),
				Options:  slices.Clone(def.Categorical.Options),
			}
		}
	case model.AttributeRange:
		cfg.Categorical = nil
	}
	if err := s.configs.Save(cfg); err != nil {
		return model.AttributeConfig{}, err
	}
	return s.configs.Current(a.Name, a.Type), nil
}

// AttributeConfigs returns every saved config keyed by attribute name.
func (s *Session) AttributeConfigs() map[string]model.AttributeConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configs.All()
}
