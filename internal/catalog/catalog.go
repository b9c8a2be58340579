// Package catalog loads the static seed data (attributes, match ranks, field
// templates, jobs, KPIs and connections) embedded in the binary.
package catalog

import (
	"embed"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/match-test/internal/model"
)

//go:embed *.yaml
var seedFiles embed.FS

// RankCategory is a grouping of match ranks.
type RankCategory struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// ColumnSet is a mocked column list returned for files whose name contains
// one of the keywords.
type ColumnSet struct {
	Keywords []string `yaml:"keywords"`
	Columns  []string `yaml:"columns"`
}

// Catalog is the read-only seed data. Accessors return copies so callers may
// mutate what they receive.
type Catalog struct {
	Categories        []string                                 `yaml:"categories"`
	Attributes        []model.Attribute                        `yaml:"attributes"`
	RankCategories    []RankCategory                           `yaml:"rank_categories"`
	Ranks             []model.MatchRank                        `yaml:"ranks"`
	Templates         map[model.MatchType][]model.FieldMapping `yaml:"templates"`
	ColumnSets        []ColumnSet                              `yaml:"column_sets"`
	DefaultColumns    []string                                 `yaml:"default_columns"`
	AttributeDefaults []model.AttributeConfig                  `yaml:"attribute_defaults"`
	Jobs              []model.Job                              `yaml:"jobs"`
	KPIs              []model.KPICard                          `yaml:"kpis"`
	Connections       []model.Connection                       `yaml:"connections"`
}

// Load parses every embedded seed file into a single Catalog.
func Load() (*Catalog, error) {
	entries, err := seedFiles.ReadDir(".")
	if err != nil {
		return nil, eris.Wrap(err, "catalog: read seed dir")
	}

	var c Catalog
	for _, e := range entries {
		data, err := seedFiles.ReadFile(e.Name())
		if err != nil {
			return nil, eris.Wrapf(err, "catalog: read %s", e.Name())
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, eris.Wrapf(err, "catalog: parse %s", e.Name())
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// MustLoad is Load for program init and tests; it panics on malformed seed data.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) validate() error {
	known := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		known[cat] = true
	}
	seen := make(map[string]bool, len(c.Attributes))
	types := make(map[string]model.AttributeType, len(c.Attributes))
	for _, a := range c.Attributes {
		types[a.Name] = a.Type
		if !known[a.Category] {
			return eris.Errorf("catalog: attribute %q has unknown category %q", a.ID, a.Category)
		}
		if seen[a.ID] {
			return eris.Errorf("catalog: duplicate attribute id %q", a.ID)
		}
		seen[a.ID] = true
	}

	rankCats := make(map[string]bool, len(c.RankCategories))
	for _, rc := range c.RankCategories {
		rankCats[rc.ID] = true
	}
	for _, r := range c.Ranks {
		if !rankCats[r.Category] {
			return eris.Errorf("catalog: rank %d has unknown category %q", r.ID, r.Category)
		}
	}

	for i := range c.AttributeDefaults {
		d := c.AttributeDefaults[i]
		typ, ok := types[d.AttributeName]
		if !ok {
			return eris.Errorf("catalog: default for unknown attribute %q", d.AttributeName)
		}
		if typ != d.Type {
			return eris.Errorf("catalog: default for %q is %s, attribute is %s", d.AttributeName, d.Type, typ)
		}
		if cc := c.AttributeDefaults[i].Categorical; cc != nil && cc.Selected == nil {
			cc.Selected = []string{}
		}
	}
	return nil
}

// AttributeList returns a copy of the attribute catalog in display order.
func (c *Catalog) AttributeList() []model.Attribute {
	return append([]model.Attribute(nil), c.Attributes...)
}

// RankList returns a copy of the seeded match ranks.
func (c *Catalog) RankList() []model.MatchRank {
	return append([]model.MatchRank(nil), c.Ranks...)
}

// Template returns a fresh copy of the field template for a match type.
func (c *Catalog) Template(mt model.MatchType) ([]model.FieldMapping, bool) {
	fields, ok := c.Templates[mt]
	if !ok {
		return nil, false
	}
	out := make([]model.FieldMapping, len(fields))
	copy(out, fields)
	for i := range out {
		out[i].MappedColumn = nil
	}
	return out, true
}

// ColumnsFor returns the mocked column list for an uploaded file name.
func (c *Catalog) ColumnsFor(fileName string) []string {
	name := strings.ToLower(fileName)
	for _, set := range c.ColumnSets {
		for _, kw := range set.Keywords {
			if strings.Contains(name, kw) {
				return append([]string(nil), set.Columns...)
			}
		}
	}
	return append([]string(nil), c.DefaultColumns...)
}

// AttributeDefault returns the default config registered for an attribute name.
func (c *Catalog) AttributeDefault(name string) (model.AttributeConfig, bool) {
	for _, d := range c.AttributeDefaults {
		if d.AttributeName == name {
			return d.Clone(), true
		}
	}
	return model.AttributeConfig{}, false
}
