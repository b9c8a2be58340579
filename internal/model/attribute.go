package model

// AttributeType selects how an attribute is configured.
type AttributeType string

const (
	AttributeRange       AttributeType = "range"
	AttributeCategorical AttributeType = "categorical"
)

// Attribute is an entry of the enrichment attribute catalog.
type Attribute struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Category    string        `json:"category" yaml:"category"`
	Description string        `json:"description,omitempty" yaml:"description"`
	Type        AttributeType `json:"type" yaml:"type"`
	FillRate    float64       `json:"fill_rate,omitempty" yaml:"fill_rate"`
	Records     int           `json:"records,omitempty" yaml:"records"`
}

// RangeConfig bounds a numeric attribute.
type RangeConfig struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// CategoricalConfig holds the chosen values of a categorical attribute.
// Selected is always a subset of Options.
type CategoricalConfig struct {
	Selected []string `json:"selected" yaml:"selected"`
	Options  []string `json:"options" yaml:"options"`
}

// AttributeConfig is a user customization of a single attribute.
type AttributeConfig struct {
	AttributeName string             `json:"attribute_name" yaml:"attribute_name"`
	Type          AttributeType      `json:"type" yaml:"type"`
	Range         *RangeConfig       `json:"range,omitempty" yaml:"range"`
	Categorical   *CategoricalConfig `json:"categorical,omitempty" yaml:"categorical"`
}

// Clone returns a deep copy of the config.
func (c AttributeConfig) Clone() AttributeConfig {
	out := c
	if c.Range != nil {
		r := *c.Range
		out.Range = &r
	}
	if c.Categorical != nil {
		out.Categorical = &CategoricalConfig{
			Selected: append([]string{}, c.Categorical.Selected...),
			Options:  append([]string{}, c.Categorical.Options...),
		}
	}
	return out
}

// CategoryStats counts selected attributes within a category.
type CategoryStats struct {
	Category string `json:"category"`
	Selected int    `json:"selected"`
	Total    int    `json:"total"`
}
