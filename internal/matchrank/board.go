package matchrank

import "github.com/sells-group/match-test/internal/model"

// Board holds the committed rank set shared with the report view and, while
// the filter dialog is open, a separate draft. Edits only touch the draft;
// Apply replaces the committed set and Discard drops the draft.
// It is not safe for concurrent use.
type Board struct {
	committed []model.MatchRank
	draft     []model.MatchRank
	open      bool
}

// NewBoard creates a board whose committed set is a copy of ranks.
func NewBoard(ranks []model.MatchRank) *Board {
	return &Board{committed: clone(ranks)}
}

// Committed returns a copy of the committed ranks.
func (b *Board) Committed() []model.MatchRank {
	return clone(b.committed)
}

// Open starts a draft from the committed set, replacing any draft in progress.
func (b *Board) Open() []model.MatchRank {
	b.draft = clone(b.committed)
	b.open = true
	return clone(b.draft)
}

// IsOpen reports whether a draft is in progress.
func (b *Board) IsOpen() bool { return b.open }

// Draft returns a copy of the draft.
func (b *Board) Draft() ([]model.MatchRank, error) {
	if !b.open {
		return nil, ErrNoDraft
	}
	return clone(b.draft), nil
}

// ApplyCategoryMode applies a bulk mode to the draft.
func (b *Board) ApplyCategoryMode(category string, mode Mode) ([]model.MatchRank, error) {
	if !b.open {
		return nil, ErrNoDraft
	}
	next, err := ApplyCategoryMode(b.draft, category, mode)
	if err != nil {
		return nil, err
	}
	b.draft = next
	return clone(next), nil
}

// Toggle flips one rank in the draft.
func (b *Board) Toggle(id int) ([]model.MatchRank, error) {
	if !b.open {
		return nil, ErrNoDraft
	}
	next, err := Toggle(b.draft, id)
	if err != nil {
		return nil, err
	}
	b.draft = next
	return clone(next), nil
}

// Apply commits the draft and closes it.
func (b *Board) Apply() ([]model.MatchRank, error) {
	if !b.open {
		return nil, ErrNoDraft
	}
	b.committed = b.draft
	b.draft = nil
	b.open = false
	return clone(b.committed), nil
}

// Discard closes the draft without committing.
func (b *Board) Discard() {
	b.draft = nil
	b.open = false
}
