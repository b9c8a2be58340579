package model

// RankMatchType describes how strictly a rank matches.
type RankMatchType string

const (
	RankMatchAll    RankMatchType = "all"
	RankMatchStrict RankMatchType = "strict"
	RankMatchFuzzy  RankMatchType = "fuzzy"
	RankMatchNone   RankMatchType = "none"
)

// MatchRank is a single identity-resolution rule in the match filter.
type MatchRank struct {
	ID          int           `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description" yaml:"description"`
	Enabled     bool          `json:"enabled" yaml:"enabled"`
	Count       string        `json:"count" yaml:"count"`
	Category    string        `json:"category" yaml:"category"`
	MatchType   RankMatchType `json:"match_type" yaml:"match_type"`
}

// MatchType is the kind of match run requested for an uploaded file.
type MatchType string

const (
	MatchTypePII         MatchType = "pii"
	MatchTypeDigital     MatchType = "digital"
	MatchTypeTransaction MatchType = "transaction"
)

// FieldMapping binds a template field to a column of the uploaded file.
type FieldMapping struct {
	Field        string  `json:"field" yaml:"field"`
	Description  string  `json:"description" yaml:"description"`
	Required     bool    `json:"required" yaml:"required"`
	MappedColumn *string `json:"mapped_column" yaml:"-"`
}

// SampleDataRow is one record of the report sample, keyed by column name.
// Values are either string or int.
type SampleDataRow map[string]any
