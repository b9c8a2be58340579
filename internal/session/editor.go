package session

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/match-test/internal/attribute"
	"github.com/sells-group/match-test/internal/model"
)

// OpenAttributeEditor starts an unsaved working copy of an attribute's
// current config, replacing any editor already open for it.
func (s *Session) OpenAttributeEditor(name string) (model.AttributeConfig, error) {
	a, err := s.attributeByName(name)
	if err != nil {
		return model.AttributeConfig{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ed := attribute.NewEditor(s.configs.Current(a.Name, a.Type), s.configs.Default(a.Name, a.Type))
	s.editors[a.Name] = ed
	return ed.Config(), nil
}

// AttributeEditor returns the working copy of an open editor.
func (s *Session) AttributeEditor(name string) (model.AttributeConfig, error) {
	return s.edit(name, func(*attribute.Editor) error { return nil })
}

// EditorToggleOption flips one categorical option in the working copy.
func (s *Session) EditorToggleOption(name, option string) (model.AttributeConfig, error) {
	return s.edit(name, func(ed *attribute.Editor) error { return ed.ToggleOption(option) })
}

// EditorSelectAll selects every option in the working copy.
func (s *Session) EditorSelectAll(name string) (model.AttributeConfig, error) {
	return s.edit(name, func(ed *attribute.Editor) error {
		ed.SelectAll()
		return nil
	})
}

// EditorDeselectAll clears the selection in the working copy.
func (s *Session) EditorDeselectAll(name string) (model.AttributeConfig, error) {
	return s.edit(name, func(ed *attribute.Editor) error {
		ed.DeselectAll()
		return nil
	})
}

// EditorSetRange sets the bounds in the working copy. Ordering is checked on
// save.
func (s *Session) EditorSetRange(name string, lo, hi float64) (model.AttributeConfig, error) {
	return s.edit(name, func(ed *attribute.Editor) error { return ed.SetRange(lo, hi) })
}

// EditorReset returns the working copy to the attribute's default.
func (s *Session) EditorReset(name string) (model.AttributeConfig, error) {
	return s.edit(name, func(ed *attribute.Editor) error {
		ed.Reset()
		return nil
	})
}

// SaveAttributeEditor validates and saves the working copy, then closes the
// editor. A failed save leaves the editor open.
func (s *Session) SaveAttributeEditor(name string) (model.AttributeConfig, error) {
	a, err := s.attributeByName(name)
	if err != nil {
		return model.AttributeConfig{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ed, ok := s.editors[a.Name]
	if !ok {
		return model.AttributeConfig{}, eris.Wrapf(ErrNoEditor, "%q", a.Name)
	}
	if err := ed.Save(s.configs); err != nil {
		return model.AttributeConfig{}, err
	}
	delete(s.editors, a.Name)
	return s.configs.Current(a.Name, a.Type), nil
}

// CloseAttributeEditor discards the working copy and returns the saved
// config unchanged.
func (s *Session) CloseAttributeEditor(name string) (model.AttributeConfig, error) {
	a, err := s.attributeByName(name)
	if err != nil {
		return model.AttributeConfig{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.editors, a.Name)
	return s.configs.Current(a.Name, a.Type), nil
}

func (s *Session) edit(name string, fn func(*attribute.Editor) error) (model.AttributeConfig, error) {
	a, err := s.attributeByName(name)
	if err != nil {
		return model.AttributeConfig{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ed, ok := s.editors[a.Name]
	if !ok {
		return model.AttributeConfig{}, eris.Wrapf(ErrNoEditor, "%q", a.Name)
	}
	if err := fn(ed); err != nil {
		return model.AttributeConfig{}, err
	}
	return ed.Config(), nil
}
