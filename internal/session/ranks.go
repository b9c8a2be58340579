package session

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/match-test/internal/matchrank"
	"github.com/sells-group/match-test/internal/model"
)

// RankView is a rank list with per-category totals.
type RankView struct {
	Ranks   []model.MatchRank         `json:"ranks"`
	Stats   []matchrank.CategoryStats `json:"stats"`
	Enabled int                       `json:"enabled"`
	Draft   bool                      `json:"draft"`
}

func (s *Session) rankView(ranks []model.MatchRank, draft bool) RankView {
	cats := make([]string, len(s.catalog.RankCategories))
	for i, c := range s.catalog.RankCategories {
		cats[i] = c.ID
	}
	return RankView{
		Ranks:   ranks,
		Stats:   matchrank.Stats(ranks, cats),
		Enabled: matchrank.EnabledCount(ranks),
		Draft:   draft,
	}
}

func (s *Session) knownRankCategory(category string) error {
	for _, c := range s.catalog.RankCategories {
		if c.ID == category {
			return nil
		}
	}
	return eris.Wrapf(ErrUnknownCategory, "rank category %q", category)
}

// Ranks returns the committed rank set.
func (s *Session) Ranks() RankView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rankView(s.board.Committed(), false)
}

// OpenDraft starts editing a copy of the committed ranks.
func (s *Session) OpenDraft() RankView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rankView(s.board.Open(), true)
}

// Draft returns the draft in progress.
func (s *Session) Draft() (RankView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ranks, err := s.board.Draft()
	if err != nil {
		return RankView{}, err
	}
	return s.rankView(ranks, true), nil
}

// DraftCategoryMode applies a bulk mode to one category of the draft.
func (s *Session) DraftCategoryMode(category, mode string) (RankView, error) {
	if err := s.knownRankCategory(category); err != nil {
		return RankView{}, err
	}
	m, err := matchrank.ParseMode(mode)
	if err != nil {
		return RankView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ranks, err := s.board.ApplyCategoryMode(category, m)
	if err != nil {
		return RankView{}, err
	}
	return s.rankView(ranks, true), nil
}

// DraftToggle flips one rank in the draft.
func (s *Session) DraftToggle(id int) (RankView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ranks, err := s.board.Toggle(id)
	if err != nil {
		return RankView{}, err
	}
	return s.rankView(ranks, true), nil
}

// ApplyDraft commits the draft.
func (s *Session) ApplyDraft() (RankView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ranks, err := s.board.Apply()
	if err != nil {
		return RankView{}, err
	}
	return s.rankView(ranks, false), nil
}

// DiscardDraft drops the draft; the committed set is unchanged.
func (s *Session) DiscardDraft() RankView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board.Discard()
	return s.rankView(s.board.Committed(), false)
}
