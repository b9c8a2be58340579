package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/match-test/internal/sampledata"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the sample report data as CSV or XLSX",
	RunE: func(cmd *cobra.Command, _ []string) error {
		masked, _ := cmd.Flags().GetBool("masked")
		formatName, _ := cmd.Flags().GetString("format")
		outDir, _ := cmd.Flags().GetString("out")

		format, err := sampledata.ParseFormat(formatName)
		if err != nil {
			return err
		}
		path, err := writeExport(outDir, format, masked, time.Now())
		if err != nil {
			return err
		}
		zap.L().Info("sample data exported", zap.String("path", path), zap.Bool("masked", masked))
		_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
		return err
	},
}

// writeExport writes the generated sample rows into dir and returns the
// file path.
func writeExport(dir string, format sampledata.Format, masked bool, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrap(err, "export: create output dir")
	}
	path := filepath.Join(dir, sampledata.FileName(masked, format, now))

	f, err := os.Create(path)
	if err != nil {
		return "", eris.Wrap(err, "export: create file")
	}
	defer f.Close() //nolint:errcheck

	if err := sampledata.Write(f, format, sampledata.Generate(), sampledata.Columns, masked); err != nil {
		return "", eris.Wrap(err, "export: write")
	}
	return path, eris.Wrap(f.Close(), "export: close file")
}

func init() {
	exportCmd.Flags().Bool("masked", false, "mask PII columns")
	exportCmd.Flags().String("format", "csv", "output format: csv or xlsx")
	exportCmd.Flags().String("out", ".", "output directory")
	rootCmd.AddCommand(exportCmd)
}
