package model

import "strings"

// JobStatus represents the processing state of a match job.
type JobStatus string

const (
	JobStatusCompleted  JobStatus = "completed"
	JobStatusProcessing JobStatus = "processing"
	JobStatusFailed     JobStatus = "failed"
)

// JobMatchType is the match type label shown on the overview page.
type JobMatchType string

const (
	JobMatchPII         JobMatchType = "PII"
	JobMatchDigital     JobMatchType = "Digital"
	JobMatchTransaction JobMatchType = "Transaction"
)

// ParseJobMatchType resolves a case-insensitive match type label.
func ParseJobMatchType(s string) (JobMatchType, bool) {
	for _, t := range []JobMatchType{JobMatchPII, JobMatchDigital, JobMatchTransaction} {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

// Job is a processed (or in-flight) match report.
type Job struct {
	ID            int          `json:"id" yaml:"id"`
	Ref           string       `json:"ref,omitempty" yaml:"ref"`
	FileName      string       `json:"file_name" yaml:"file_name"`
	MatchType     JobMatchType `json:"match_type" yaml:"match_type"`
	ProcessedDate string       `json:"processed_date" yaml:"processed_date"`
	MatchRate     string       `json:"match_rate" yaml:"match_rate"`
	Status        JobStatus    `json:"status" yaml:"status"`
	Exported      bool         `json:"exported" yaml:"exported"`
	FileSize      string       `json:"file_size,omitempty" yaml:"file_size"`
	RecordCount   int          `json:"record_count,omitempty" yaml:"record_count"`
}

// KPICard is a headline metric on the overview page.
type KPICard struct {
	Value          string `json:"value" yaml:"value"`
	Label          string `json:"label" yaml:"label"`
	TrendText      string `json:"trend_text" yaml:"trend_text"`
	TrendPercent   string `json:"trend_percent" yaml:"trend_percent"`
	TrendDirection string `json:"trend_direction" yaml:"trend_direction"`
	IconVariant    string `json:"icon_variant" yaml:"icon_variant"`
	TrendColor     string `json:"trend_color,omitempty" yaml:"trend_color"`
}

// Connection is a configured data source.
type Connection struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Type        string            `json:"type" yaml:"type"`
	Status      string            `json:"status" yaml:"status"`
	CreatedDate string            `json:"created_date" yaml:"created_date"`
	Details     ConnectionDetails `json:"details" yaml:"details"`
}

// ConnectionDetails holds the location fields of a connection.
type ConnectionDetails struct {
	Host     string `json:"host,omitempty" yaml:"host"`
	Bucket   string `json:"bucket,omitempty" yaml:"bucket"`
	Path     string `json:"path,omitempty" yaml:"path"`
	Database string `json:"database,omitempty" yaml:"database"`
}
