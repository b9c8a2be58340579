// Package matchrank implements the advanced match filter: bulk category modes,
// per-rank toggles and the draft/committed split behind the Apply action.
package matchrank

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/match-test/internal/model"
)

// Mode is a bulk action applied to every rank of a category.
type Mode string

const (
	ModeAll    Mode = "all"
	ModeStrict Mode = "strict"
	ModeFuzzy  Mode = "fuzzy"
	ModeNone   Mode = "none"
)

var (
	// ErrUnknownMode is returned for a mode outside all/strict/fuzzy/none.
	ErrUnknownMode = eris.New("matchrank: unknown mode")
	// ErrUnknownRank is returned when a rank id is not present.
	ErrUnknownRank = eris.New("matchrank: unknown rank")
	// ErrNoDraft is returned when editing without an open draft.
	ErrNoDraft = eris.New("matchrank: no open draft")
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeAll, ModeStrict, ModeFuzzy, ModeNone:
		return m, nil
	}
	return "", eris.Wrapf(ErrUnknownMode, "%q", s)
}

// enabledFor decides a rank's state under a mode. It depends only on the
// rank's match type, never on its current state.
func enabledFor(mode Mode, mt model.RankMatchType) bool {
	switch mode {
	case ModeAll:
		return true
	case ModeStrict:
		return mt == model.RankMatchAll || mt == model.RankMatchStrict
	case ModeFuzzy:
		return mt == model.RankMatchFuzzy
	}
	return false
}

// ApplyCategoryMode returns a copy of ranks with every rank in category
// enabled or disabled according to mode. Ranks in other categories are
// untouched.
func ApplyCategoryMode(ranks []model.MatchRank, category string, mode Mode) ([]model.MatchRank, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	out := clone(ranks)
	for i := range out {
		if out[i].Category == category {
			out[i].Enabled = enabledFor(mode, out[i].MatchType)
		}
	}
	return out, nil
}

// Toggle returns a copy of ranks with a single rank's enabled flag flipped.
func Toggle(ranks []model.MatchRank, id int) ([]model.MatchRank, error) {
	out := clone(ranks)
	for i := range out {
		if out[i].ID == id {
			out[i].Enabled = !out[i].Enabled
			return out, nil
		}
	}
	return nil, eris.Wrapf(ErrUnknownRank, "id %d", id)
}

// CategoryStats counts enabled and total ranks in a category.
type CategoryStats struct {
	Category string `json:"category"`
	Enabled  int    `json:"enabled"`
	Total    int    `json:"total"`
}

// Stats returns per-category counts in the order the categories are given.
func Stats(ranks []model.MatchRank, categories []string) []CategoryStats {
	out := make([]CategoryStats, 0, len(categories))
	for _, c := range categories {
		st := CategoryStats{Category: c}
		for _, r := range ranks {
			if r.Category != c {
				continue
			}
			st.Total++
			if r.Enabled {
				st.Enabled++
			}
		}
		out = append(out, st)
	}
	return out
}

// EnabledCount counts enabled ranks.
func EnabledCount(ranks []model.MatchRank) int {
	n := 0
	for _, r := range ranks {
		if r.Enabled {
			n++
		}
	}
	return n
}

func clone(ranks []model.MatchRank) []model.MatchRank {
	return append([]model.MatchRank(nil), ranks...)
}
