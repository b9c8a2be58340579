package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/match-test/internal/catalog"
	"github.com/sells-group/match-test/internal/fieldmap"
	"github.com/sells-group/match-test/internal/model"
	"github.com/sells-group/match-test/internal/sampledata"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"serve", "mask", "export", "jobs", "automap", "attributes"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "match-test", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestExportCommand_Flags(t *testing.T) {
	for name, def := range map[string]string{"masked": "false", "format": "csv", "out": "."} {
		flag := exportCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "export should have --%s flag", name)
		assert.Equal(t, def, flag.DefValue)
	}
}

func TestMaskCommand(t *testing.T) {
	var buf bytes.Buffer
	maskCmd.SetOut(&buf)
	t.Cleanup(func() { maskCmd.SetOut(nil) })

	require.NoError(t, maskCmd.RunE(maskCmd, []string{"Email Address", "john.doe@example.com"}))
	assert.Equal(t, "jo***@example.com\n", buf.String())
}

func TestWriteExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	path, err := writeExport(dir, sampledata.FormatCSV, true, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sample_data_masked_2026-02-01.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("First Name,")))

	path, err = writeExport(dir, sampledata.FormatXLSX, false, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sample_data_unmasked_2026-02-01.xlsx"), path)
}

func TestFormatJobsList(t *testing.T) {
	list := []model.Job{
		{ID: 2, FileName: "customer_data_q4_2025.csv", MatchType: model.JobMatchPII, ProcessedDate: "2026-01-05T09:12:45", MatchRate: "95%", Status: model.JobStatusCompleted, Exported: true},
		{ID: 4, FileName: "loyalty_members.csv", MatchType: model.JobMatchDigital, ProcessedDate: "2025-12-15T11:22:33", MatchRate: "92%", Status: model.JobStatusCompleted},
	}

	var buf bytes.Buffer
	formatJobsList(&buf, list)

	out := buf.String()
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "MATCH RATE")
	assert.Contains(t, out, "customer_data_q4_2025.csv")
	assert.Contains(t, out, "Digital")
	assert.Contains(t, out, "95%")
	assert.Contains(t, out, "yes")
}

func TestFormatMappings(t *testing.T) {
	cat := catalog.MustLoad()
	sess := fieldmap.NewSession(cat)
	sess.SetColumns([]string{"first_name", "email"})
	mappings, err := sess.SelectMatchType(model.MatchTypePII)
	require.NoError(t, err)

	var buf bytes.Buffer
	formatMappings(&buf, mappings)

	out := buf.String()
	assert.Contains(t, out, "First Name")
	assert.Contains(t, out, "first_name")
	assert.Contains(t, out, "Not ready")
	assert.Contains(t, out, "Last Name")
}

func TestFormatAttributes(t *testing.T) {
	attrs := []model.Attribute{
		{ID: "age", Name: "Age", Category: "Demographics", Type: model.AttributeRange},
		{ID: "gender", Name: "Gender", Category: "Demographics", Type: model.AttributeCategorical},
	}

	var buf bytes.Buffer
	formatAttributes(&buf, attrs)

	out := buf.String()
	assert.Contains(t, out, "Demographics")
	assert.Contains(t, out, "range")
	assert.Contains(t, out, "2 attributes")
}
