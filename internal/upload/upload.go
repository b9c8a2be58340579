// Package upload validates files submitted for a match run and derives their
// column list.
package upload

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrUnsupportedFileType is returned when neither the extension nor the
// content type is accepted.
var ErrUnsupportedFileType = eris.New("please upload a CSV, Excel, or JSON file")

var (
	allowedExtensions = []string{".csv", ".xls", ".xlsx", ".parquet", ".json"}
	allowedTypes      = []string{
		"text/csv",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/json",
	}
)

// ColumnSource resolves a file name to its column list.
type ColumnSource interface {
	ColumnsFor(fileName string) []string
}

// File is an accepted upload.
type File struct {
	Name        string   `json:"file_name"`
	ContentType string   `json:"content_type,omitempty"`
	Columns     []string `json:"columns"`
}

// Validate accepts a file when its content type or its extension is allowed.
func Validate(name, contentType string) error {
	if strings.TrimSpace(name) == "" {
		return eris.Wrap(ErrUnsupportedFileType, "empty file name")
	}
	mediaType, _, _ := strings.Cut(contentType, ";")
	if slices.Contains(allowedTypes, strings.TrimSpace(strings.ToLower(mediaType))) {
		return nil
	}
	if slices.Contains(allowedExtensions, strings.ToLower(filepath.Ext(name))) {
		return nil
	}
	return eris.Wrapf(ErrUnsupportedFileType, "%s", name)
}

// Accept validates the file and resolves its columns. Nothing is returned on
// rejection so callers leave their state untouched.
func Accept(src ColumnSource, name, contentType string) (*File, error) {
	if err := Validate(name, contentType); err != nil {
		return nil, err
	}
	return &File{
		Name:        name,
		ContentType: contentType,
		Columns:     src.ColumnsFor(name),
	}, nil
}
