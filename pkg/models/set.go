package models

import (
	"time"
)

// Preset is the cards-per-page export density.
type Preset int

const (
	Preset6  Preset = 6
	Preset8  Preset = 8
	Preset12 Preset = 12
)

// Grid returns the page grid shape (columns, rows) for the preset.
// Unknown values fall back to the 6-up grid.
func (p Preset) Grid() (cols, rows int) {
	switch p {
	case Preset8:
		return 2, 4
	case Preset12:
		return 3, 4
	default:
		return 2, 3
	}
}

// FlashcardSet wraps one template, its rows and the export settings.
type FlashcardSet struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Template      CardTemplate   `json:"template"`
	DoubleSided   bool           `json:"doubleSided"`
	Rows          []FlashcardRow `json:"rows"`
	SelectedRowID string         `json:"selectedRowId,omitempty"`
	Preset        Preset         `json:"preset"`
	ShowCutGuides bool           `json:"showCutGuides"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// RowByID returns the row with the given id, or nil.
func (s *FlashcardSet) RowByID(id string) *FlashcardRow {
	for i := range s.Rows {
		if s.Rows[i].ID == id {
			return &s.Rows[i]
		}
	}
	return nil
}

// RemoveRow deletes a row and clamps the selection to a valid row.
// Selection moves to the next row by index, then the previous one,
// and clears only when no rows remain.
func (s *FlashcardSet) RemoveRow(id string) bool {
	idx := -1
	for i := range s.Rows {
		if s.Rows[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.Rows = append(s.Rows[:idx], s.Rows[idx+1:]...)
	if s.SelectedRowID == id {
		switch {
		case len(s.Rows) == 0:
			s.SelectedRowID = ""
		case idx < len(s.Rows):
			s.SelectedRowID = s.Rows[idx].ID
		default:
			s.SelectedRowID = s.Rows[len(s.Rows)-1].ID
		}
	}
	return true
}

// Workspace is the unit of persistence: sibling sets plus which one is
// open in the editor.
type Workspace struct {
	Sets        []FlashcardSet `json:"sets"`
	ActiveSetID string         `json:"activeSetId"`
}

// ActiveSet returns the set the editor is working on, or nil.
func (w *Workspace) ActiveSet() *FlashcardSet {
	for i := range w.Sets {
		if w.Sets[i].ID == w.ActiveSetID {
			return &w.Sets[i]
		}
	}
	return nil
}

// RowValidation is derived per row against the current template and is
// never persisted.
type RowValidation struct {
	WordOverflow     bool
	SubtitleOverflow bool
	ImageIssue       string
}
