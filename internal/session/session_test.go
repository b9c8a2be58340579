package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/match-test/internal/attribute"
	"github.com/sells-group/match-test/internal/catalog"
	"github.com/sells-group/match-test/internal/fieldmap"
	"github.com/sells-group/match-test/internal/matchrank"
	"github.com/sells-group/match-test/internal/model"
	"github.com/sells-group/match-test/internal/store"
	"github.com/sells-group/match-test/internal/upload"
)

func newTestSession(t *testing.T) (*Session, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemory()
	return New(catalog.MustLoad(), st), st
}

func TestUploadFile(t *testing.T) {
	s, _ := newTestSession(t)

	f, err := s.UploadFile("customer_export.csv", "text/csv")
	require.NoError(t, err)
	assert.Len(t, f.Columns, 10)
	assert.Equal(t, "customer_id", f.Columns[9])

	_, err = s.UploadFile("notes.txt", "text/plain")
	require.Error(t, err)
	assert.True(t, errors.Is(err, upload.ErrUnsupportedFileType))

	view := s.Mappings()
	assert.Equal(t, "customer_export.csv", view.FileName)
	assert.Len(t, view.Columns, 10)
}

func TestPIIWorkflow(t *testing.T) {
	s, st := newTestSession(t)
	ctx := context.Background()

	_, err := s.UploadFile("leads.csv", "text/csv")
	require.NoError(t, err)

	view, err := s.SelectMatchType("PII")
	require.NoError(t, err)
	assert.Equal(t, model.MatchTypePII, view.MatchType)
	require.Len(t, view.Mappings, 9)
	require.NotNil(t, view.Mappings[0].MappedColumn)
	assert.Equal(t, "first_name", *view.Mappings[0].MappedColumn)
	require.NotNil(t, view.Mappings[1].MappedColumn)
	assert.Equal(t, "last_name", *view.Mappings[1].MappedColumn)
	assert.True(t, view.Ready)
	assert.Empty(t, view.Missing)

	job, err := s.Process(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(job.Ref, "job-"))
	assert.Equal(t, model.JobMatchPII, job.MatchType)
	assert.Equal(t, "leads.csv", job.FileName)

	stored, err := st.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.Ref, stored.Ref)
}

func TestProcess_RequiredUnmapped(t *testing.T) {
	s, st := newTestSession(t)

	_, err := s.UploadFile("leads.csv", "text/csv")
	require.NoError(t, err)
	_, err = s.SelectMatchType("pii")
	require.NoError(t, err)

	view, err := s.SetMapping(1, "")
	require.NoError(t, err)
	assert.False(t, view.Ready)
	assert.Equal(t, []string{"Last Name"}, view.Missing)

	_, err = s.Process(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fieldmap.ErrRequiredUnmapped))

	jobs, err := st.ListJobs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestProcess_NoFile(t *testing.T) {
	s, _ := newTestSession(t)
	_, err := s.Process(context.Background())
	assert.True(t, errors.Is(err, ErrNoFile))
}

func TestSelectMatchType_Unknown(t *testing.T) {
	s, _ := newTestSession(t)
	_, err := s.SelectMatchType("biometric")
	assert.True(t, errors.Is(err, fieldmap.ErrUnknownMatchType))
}

func TestAttributes(t *testing.T) {
	s, _ := newTestSession(t)

	view := s.Attributes("", "")
	assert.Equal(t, attribute.AllCategories, view.Category)
	assert.Len(t, view.Attributes, 85)
	assert.Equal(t, 85, view.Total)
	assert.Equal(t, 0, view.Coverage)

	require.NoError(t, s.ToggleCategory("Identity & Contact"))
	view = s.Attributes("Identity & Contact", "")
	assert.Len(t, view.Attributes, 20)
	for _, a := range view.Attributes {
		assert.True(t, a.Selected)
	}
	assert.Equal(t, 20, view.Selected)
	assert.Equal(t, 24, view.Coverage)

	require.NoError(t, s.ToggleCategory("Identity & Contact"))
	assert.Empty(t, s.SelectedAttributes())

	assert.True(t, errors.Is(s.ToggleCategory("Astrology"), ErrUnknownCategory))
}

func TestAttributes_ToggleAndBulk(t *testing.T) {
	s, _ := newTestSession(t)

	require.NoError(t, s.ToggleAttribute("age"))
	assert.Equal(t, []string{"age"}, s.SelectedAttributes())
	assert.True(t, errors.Is(s.ToggleAttribute("nope"), attribute.ErrUnknownAttribute))

	s.SelectAllAttributes()
	assert.Equal(t, 100, s.Attributes("", "").Coverage)
	s.DeselectAllAttributes()
	assert.Empty(t, s.SelectedAttributes())
}

func TestAttributes_Search(t *testing.T) {
	s, _ := newTestSession(t)

	view := s.Attributes("all", "PHONE")
	names := make([]string, 0, len(view.Attributes))
	for _, a := range view.Attributes {
		names = append(names, a.Name)
	}
	assert.Contains(t, names, "Phone Number")
	assert.Contains(t, names, "Mobile Phone")
	assert.Equal(t, 85, view.Total)
}

func TestAttributeConfig(t *testing.T) {
	s, _ := newTestSession(t)

	age, err := s.AttributeConfig("Age")
	require.NoError(t, err)
	require.NotNil(t, age.Range)
	assert.InDelta(t, 18, age.Range.Min, 0.001)

	saved, err := s.SaveAttributeConfig("Age", model.AttributeConfig{
		Range: &model.RangeConfig{Min: 25, Max: 40},
	})
	require.NoError(t, err)
	assert.Equal(t, model.AttributeRange, saved.Type)
	assert.InDelta(t, 25, saved.Range.Min, 0.001)

	got, err := s.AttributeConfig("Age")
	require.NoError(t, err)
	assert.InDelta(t, 40, got.Range.Max, 0.001)
	assert.Len(t, s.AttributeConfigs(), 1)

	_, err = s.SaveAttributeConfig("Age", model.AttributeConfig{
		Type:        model.AttributeCategorical,
		Categorical: &model.CategoricalConfig{Selected: []string{}, Options: []string{}},
	})
	assert.True(t, errors.Is(err, attribute.ErrInvalidConfig))

	_, err = s.AttributeConfig("Shoe Size")
	assert.True(t, errors.Is(err, attribute.ErrUnknownAttribute))
}

func TestSaveAttributeConfig_KeepsCatalogOptions(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.SaveAttributeConfig("Gender", model.AttributeConfig{
		Categorical: &model.CategoricalConfig{Selected: []string{"Alien"}, Options: []string{"Alien"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, attribute.ErrInvalidConfig))

	saved, err := s.SaveAttributeConfig("Gender", model.AttributeConfig{
		Categorical: &model.CategoricalConfig{Selected: []string{"Female"}, Options: []string{"Female"}},
	})
	require.NoError(t, err)
	require.NotNil(t, saved.Categorical)
	assert.Equal(t, []string{"Male", "Female", "Other", "Prefer not to say"}, saved.Categorical.Options)
	assert.Equal(t, []string{"Female"}, saved.Categorical.Selected)
	assert.Nil(t, saved.Range)
}

func TestAttributeEditor_Categorical(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.EditorToggleOption("Marital Status", "Married")
	assert.True(t, errors.Is(err, ErrNoEditor))

	cfg, err := s.OpenAttributeEditor("Marital Status")
	require.NoError(t, err)
	assert.Empty(t, cfg.Categorical.Selected)

	cfg, err = s.EditorToggleOption("Marital Status", "Married")
	require.NoError(t, err)
	assert.Equal(t, []string{"Married"}, cfg.Categorical.Selected)

	_, err = s.EditorToggleOption("Marital Status", "Complicated")
	assert.True(t, errors.Is(err, attribute.ErrInvalidConfig))

	cfg, err = s.EditorSelectAll("Marital Status")
	require.NoError(t, err)
	assert.Len(t, cfg.Categorical.Selected, 5)

	// Unsaved edits are not visible.
	current, err := s.AttributeConfig("Marital Status")
	require.NoError(t, err)
	assert.Empty(t, current.Categorical.Selected)

	cfg, err = s.EditorDeselectAll("Marital Status")
	require.NoError(t, err)
	assert.Empty(t, cfg.Categorical.Selected)

	_, err = s.EditorToggleOption("Marital Status", "Single")
	require.NoError(t, err)
	saved, err := s.SaveAttributeEditor("Marital Status")
	require.NoError(t, err)
	assert.Equal(t, []string{"Single"}, saved.Categorical.Selected)

	_, err = s.AttributeEditor("Marital Status")
	assert.True(t, errors.Is(err, ErrNoEditor))
}

func TestAttributeEditor_RangeResetAndClose(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.OpenAttributeEditor("Age")
	require.NoError(t, err)

	cfg, err := s.EditorSetRange("Age", 70, 30)
	require.NoError(t, err)
	assert.InDelta(t, 70, cfg.Range.Min, 0.001)

	_, err = s.SaveAttributeEditor("Age")
	assert.True(t, errors.Is(err, attribute.ErrInvalidConfig))
	_, err = s.AttributeEditor("Age")
	require.NoError(t, err, "failed save keeps the editor open")

	cfg, err = s.EditorReset("Age")
	require.NoError(t, err)
	assert.InDelta(t, 18, cfg.Range.Min, 0.001)
	assert.InDelta(t, 65, cfg.Range.Max, 0.001)

	_, err = s.EditorToggleOption("Age", "18")
	assert.True(t, errors.Is(err, attribute.ErrInvalidConfig))

	_, err = s.EditorSetRange("Age", 21, 30)
	require.NoError(t, err)
	closed, err := s.CloseAttributeEditor("Age")
	require.NoError(t, err)
	assert.InDelta(t, 18, closed.Range.Min, 0.001)
	assert.Empty(t, s.AttributeConfigs())

	_, err = s.OpenAttributeEditor("Shoe Size")
	assert.True(t, errors.Is(err, attribute.ErrUnknownAttribute))
}

func TestRankDraftLifecycle(t *testing.T) {
	s, _ := newTestSession(t)

	committed := s.Ranks()
	assert.Equal(t, 27, committed.Enabled)
	assert.False(t, committed.Draft)

	_, err := s.DraftToggle(1)
	assert.True(t, errors.Is(err, matchrank.ErrNoDraft))

	draft := s.OpenDraft()
	assert.True(t, draft.Draft)

	draft, err = s.DraftCategoryMode("name-postal", "none")
	require.NoError(t, err)
	assert.Equal(t, 27-11, draft.Enabled)
	assert.Equal(t, 27, s.Ranks().Enabled)

	_, err = s.DraftCategoryMode("name-postal", "sideways")
	assert.True(t, errors.Is(err, matchrank.ErrUnknownMode))
	_, err = s.DraftCategoryMode("astrology", "all")
	assert.True(t, errors.Is(err, ErrUnknownCategory))

	applied, err := s.ApplyDraft()
	require.NoError(t, err)
	assert.Equal(t, 16, applied.Enabled)
	assert.Equal(t, 16, s.Ranks().Enabled)

	s.OpenDraft()
	_, err = s.DraftToggle(1)
	require.NoError(t, err)
	discarded := s.DiscardDraft()
	assert.Equal(t, 16, discarded.Enabled)
	_, err = s.Draft()
	assert.True(t, errors.Is(err, matchrank.ErrNoDraft))
}

func TestFilters(t *testing.T) {
	s, _ := newTestSession(t)

	f := s.SetSearch("leads")
	assert.Equal(t, "leads", f.Search)

	f = s.ToggleMatchType(model.JobMatchDigital)
	assert.Equal(t, []model.JobMatchType{model.JobMatchDigital}, f.MatchTypes)

	f = s.ClearFilters()
	assert.Empty(t, f.Search)
	assert.Empty(t, f.MatchTypes)
	assert.NotNil(t, f.MatchTypes)
}

func TestSessionsAreIndependent(t *testing.T) {
	m := NewManager(catalog.MustLoad(), store.NewMemory())
	a, b := m.Create(), m.Create()

	require.NoError(t, a.ToggleAttribute("age"))
	assert.Empty(t, b.SelectedAttributes())
	assert.NotEqual(t, a.ID, b.ID)
}

func TestManager(t *testing.T) {
	m := NewManager(catalog.MustLoad(), store.NewMemory())

	s := m.Create()
	assert.Equal(t, 1, m.Len())

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, m.Delete(s.ID))
	_, err = m.Get(s.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(m.Delete(s.ID), ErrNotFound))
}

func TestManager_Prune(t *testing.T) {
	m := NewManager(catalog.MustLoad(), store.NewMemory())
	m.Create()
	m.Create()

	assert.Equal(t, 0, m.Prune(time.Hour))
	assert.Equal(t, 2, m.Prune(-time.Second))
	assert.Equal(t, 0, m.Len())
}
