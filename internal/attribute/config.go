package attribute

import (
	"slices"

	"github.com/rotisserie/eris"

	"github.com/sells-group/match-test/internal/model"
)

// ErrInvalidConfig is returned when an edit does not fit the attribute's type.
var ErrInvalidConfig = eris.New("attribute: invalid config")

// DefaultLookup returns the registered default config for an attribute name.
type DefaultLookup func(name string) (model.AttributeConfig, bool)

// Configs holds the saved per-attribute configurations of a session, keyed
// by attribute name. Entries are created on first save and overwritten on
// later saves; they are never deleted.
type Configs struct {
	defaults DefaultLookup
	saved    map[string]model.AttributeConfig
}

// NewConfigs creates an empty config map backed by the given defaults.
func NewConfigs(defaults DefaultLookup) *Configs {
	return &Configs{defaults: defaults, saved: make(map[string]model.AttributeConfig)}
}

// Default returns the registered default for name, or a generic default for
// the type: range 0-100 or an empty categorical.
func (c *Configs) Default(name string, typ model.AttributeType) model.AttributeConfig {
	if c.defaults != nil {
		if d, ok := c.defaults(name); ok {
			return d
		}
	}
	cfg := model.AttributeConfig{AttributeName: name, Type: typ}
	if typ == model.AttributeRange {
		cfg.Range = &model.RangeConfig{Min: 0, Max: 100}
	} else {
		cfg.Categorical = &model.CategoricalConfig{Selected: []string{}, Options: []string{}}
	}
	return cfg
}

// Get returns the saved config for name, if any.
func (c *Configs) Get(name string) (model.AttributeConfig, bool) {
	cfg, ok := c.saved[name]
	if !ok {
		return model.AttributeConfig{}, false
	}
	return cfg.Clone(), true
}

// Current returns the saved config for name or its default.
func (c *Configs) Current(name string, typ model.AttributeType) model.AttributeConfig {
	if cfg, ok := c.Get(name); ok {
		return cfg
	}
	return c.Default(name, typ)
}

// Save validates cfg and stores it, replacing any previous config.
func (c *Configs) Save(cfg model.AttributeConfig) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	c.saved[cfg.AttributeName] = cfg.Clone()
	return nil
}

// All returns a copy of every saved config.
func (c *Configs) All() map[string]model.AttributeConfig {
	out := make(map[string]model.AttributeConfig, len(c.saved))
	for k, v := range c.saved {
		out[k] = v.Clone()
	}
	return out
}

// Validate checks that cfg carries the section for its type, that a range is
// ordered, and that categorical selections are drawn from the options.
func Validate(cfg model.AttributeConfig) error {
	if cfg.AttributeName == "" {
		return eris.Wrap(ErrInvalidConfig, "attribute name is required")
	}
	switch cfg.Type {
	case model.AttributeRange:
		if cfg.Range == nil {
			return eris.Wrapf(ErrInvalidConfig, "%s: range config is required", cfg.AttributeName)
		}
		if cfg.Range.Min > cfg.Range.Max {
			return eris.Wrapf(ErrInvalidConfig, "%s: min %.0f exceeds max %.0f", cfg.AttributeName, cfg.Range.Min, cfg.Range.Max)
		}
	case model.AttributeCategorical:
		if cfg.Categorical == nil {
			return eris.Wrapf(ErrInvalidConfig, "%s: categorical config is required", cfg.AttributeName)
		}
		for _, s := range cfg.Categorical.Selected {
			if !slices.Contains(cfg.Categorical.Options, s) {
				return eris.Wrapf(ErrInvalidConfig, "%s: %q is not an option", cfg.AttributeName, s)
			}
		}
	default:
		return eris.Wrapf(ErrInvalidConfig, "%s: unknown type %q", cfg.AttributeName, cfg.Type)
	}
	return nil
}

// Editor is an unsaved working copy of one attribute's config, as held by a
// settings dialog until Save.
type Editor struct {
	def model.AttributeConfig
	cfg model.AttributeConfig
}

// NewEditor starts editing from current, which is typically Configs.Current.
func NewEditor(current, def model.AttributeConfig) *Editor {
	return &Editor{def: def.Clone(), cfg: current.Clone()}
}

// Config returns the working copy.
func (e *Editor) Config() model.AttributeConfig { return e.cfg.Clone() }

// SetRange sets the bounds of a range attribute.
func (e *Editor) SetRange(lo, hi float64) error {
	if e.cfg.Type != model.AttributeRange || e.cfg.Range == nil {
		return eris.Wrapf(ErrInvalidConfig, "%s is not a range attribute", e.cfg.AttributeName)
	}
	e.cfg.Range.Min, e.cfg.Range.Max = lo, hi
	return nil
}

// ToggleOption flips one categorical option. Options outside the list are
// rejected so the selection stays a subset of the options.
func (e *Editor) ToggleOption(option string) error {
	cc := e.cfg.Categorical
	if e.cfg.Type != model.AttributeCategorical || cc == nil {
		return eris.Wrapf(ErrInvalidConfig, "%s is not a categorical attribute", e.cfg.AttributeName)
	}
	if !slices.Contains(cc.Options, option) {
		return eris.Wrapf(ErrInvalidConfig, "%s: %q is not an option", e.cfg.AttributeName, option)
	}
	if i := slices.Index(cc.Selected, option); i >= 0 {
		cc.Selected = slices.Delete(cc.Selected, i, i+1)
	} else {
		cc.Selected = append(cc.Selected, option)
	}
	return nil
}

// SelectAll selects every categorical option.
func (e *Editor) SelectAll() {
	if cc := e.cfg.Categorical; cc != nil {
		cc.Selected = append([]string{}, cc.Options...)
	}
}

// DeselectAll clears the categorical selection.
func (e *Editor) DeselectAll() {
	if cc := e.cfg.Categorical; cc != nil {
		cc.Selected = []string{}
	}
}

// Reset discards edits and returns to the default.
func (e *Editor) Reset() {
	e.cfg = e.def.Clone()
}

// Save commits the working copy into configs.
func (e *Editor) Save(configs *Configs) error {
	return configs.Save(e.cfg)
}
