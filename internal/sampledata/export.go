package sampledata

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/match-test/internal/masking"
	"github.com/sells-group/match-test/internal/model"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat is returned for an export format other than csv or xlsx.
var ErrUnsupportedFormat = eris.New("sampledata: unsupported export format")

// ParseFormat resolves a format name, defaulting to CSV when empty.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	}
	return "", eris.Wrapf(ErrUnsupportedFormat, "%q", s)
}

// ContentType returns the HTTP content type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv;charset=utf-8"
}

// FileName returns the download name: sample_data_{masked|unmasked}_{YYYY-MM-DD}.{ext}.
func FileName(masked bool, f Format, now time.Time) string {
	state := "unmasked"
	if masked {
		state = "masked"
	}
	return fmt.Sprintf("sample_data_%s_%s.%s", state, now.UTC().Format("2006-01-02"), f)
}

// Write exports rows in the given format.
func Write(w io.Writer, f Format, rows []model.SampleDataRow, columns []string, masked bool) error {
	if f == FormatXLSX {
		return WriteXLSX(w, rows, columns, masked)
	}
	return WriteCSV(w, rows, columns, masked)
}

// WriteCSV writes the header and one line per row, newline separated with no
// trailing newline. Cells containing a comma or double quote are quoted with
// interior quotes doubled; the header is written as-is.
func WriteCSV(w io.Writer, rows []model.SampleDataRow, columns []string, masked bool) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(columns, ",")); err != nil {
		return eris.Wrap(err, "sampledata: write csv header")
	}

	cells := make([]string, len(columns))
	for _, row := range rows {
		for j, col := range columns {
			cells[j] = escapeCSV(masking.ExportValue(cellValue(row, col), col, masked))
		}
		if _, err := bw.WriteString("\n" + strings.Join(cells, ",")); err != nil {
			return eris.Wrap(err, "sampledata: write csv row")
		}
	}
	return eris.Wrap(bw.Flush(), "sampledata: flush csv")
}

func escapeCSV(s string) string {
	if !strings.ContainsAny(s, `,"`) {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func cellValue(row model.SampleDataRow, col string) any {
	v, ok := row[col]
	if !ok || v == nil {
		return ""
	}
	return v
}

// WriteXLSX writes a single-sheet workbook. Integer cells stay numeric when
// the export is unmasked.
func WriteXLSX(w io.Writer, rows []model.SampleDataRow, columns []string, masked bool) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sample Data")
	if err != nil {
		return eris.Wrap(err, "sampledata: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range columns {
		header.AddCell().SetString(col)
	}

	for _, row := range rows {
		r := sheet.AddRow()
		for _, col := range columns {
			v := cellValue(row, col)
			cell := r.AddCell()
			if n, ok := v.(int); ok && !masked {
				cell.SetInt(n)
				continue
			}
			cell.SetString(masking.ExportValue(v, col, masked))
		}
	}

	return eris.Wrap(f.Write(w), "sampledata: write xlsx")
}
