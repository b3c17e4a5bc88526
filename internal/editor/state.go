package editor

import (
	"github.com/cardpress/cardpress/pkg/geometry"
	"github.com/cardpress/cardpress/pkg/models"
)

// modeSingle/modeDouble index the per-mode template snapshots.
const (
	modeSingle = 0
	modeDouble = 1
)

type dragState struct {
	element ElementID
	// pointer offset from the element's canvas-space origin at grab
	offsetX, offsetY float64
	// transient canvas-space position during the gesture
	canvasX, canvasY float64
	moved            bool
}

type resizeState struct {
	element          ElementID
	canvasX, canvasY float64 // element origin at handle grab
	width, height    float64 // transient size during the gesture
}

type editState struct {
	element ElementID
	draft   string
}

// State is the full transient editor state plus the committed template
// for the active side mode. It is a value: the reducer returns a new
// State and never mutates the old one in place.
type State struct {
	Template      models.CardTemplate
	DoubleSided   bool
	SelectedRowID string
	Selected      ElementID

	// committed text of the selected row, mirrored in by the
	// controller so edit mode can seed its draft
	RowWord     string
	RowSubtitle string

	Viewport struct{ Width, Height float64 }
	Layout   geometry.LayoutContext
	Scale    geometry.ScaleResult

	// snapshot of the template for the inactive side mode, so toggling
	// doubleSided off and back on restores prior positions
	snapshots [2]*models.CardTemplate

	drag   *dragState
	resize *resizeState
	edit   *editState
}

// NewState builds the initial editor state for a set.
func NewState(set *models.FlashcardSet, containerW, containerH float64) State {
	s := State{
		Template:      set.Template,
		DoubleSided:   set.DoubleSided,
		SelectedRowID: set.SelectedRowID,
		Selected:      ElementNone,
	}
	s.Viewport.Width = containerW
	s.Viewport.Height = containerH
	s.Layout, s.Scale = geometry.StageLayout(containerW, containerH, set.Template.Width, set.Template.Height, set.DoubleSided)
	return s
}

// Dragging reports whether a drag gesture is in flight.
func (s State) Dragging() bool { return s.drag != nil }

// Resizing reports whether a resize gesture is in flight.
func (s State) Resizing() bool { return s.resize != nil }

// EditingElement returns the text element in modal edit mode, or
// ElementNone.
func (s State) EditingElement() ElementID {
	if s.edit == nil {
		return ElementNone
	}
	return s.edit.element
}

// Draft returns the uncommitted edit-mode text.
func (s State) Draft() string {
	if s.edit == nil {
		return ""
	}
	return s.edit.draft
}

// region returns the committed region for an element, or nil.
func (s *State) region(el ElementID) *models.Region {
	switch el {
	case ElementImage:
		return &s.Template.Image.Region
	case ElementWord:
		if t := s.Template.Text(models.RoleWord); t != nil {
			return &t.Region
		}
	case ElementSubtitle:
		if t := s.Template.Text(models.RoleSubtitle); t != nil {
			return &t.Region
		}
	}
	return nil
}

func (s *State) minSize(el ElementID) (w, h float64) {
	if el == ElementImage {
		return models.MinImageSize, models.MinImageSize
	}
	return models.MinTextWidth, models.MinTextHeight
}

// ElementCanvasRect returns the canvas-space rectangle the view should
// draw for an element, preferring the in-flight gesture position over
// the committed one.
func (s State) ElementCanvasRect(el ElementID) (x, y, w, h float64, ok bool) {
	r := s.region(el)
	if r == nil {
		return 0, 0, 0, 0, false
	}
	w, h = r.Width, r.Height
	x, y = s.Layout.ToCanvas(r.X, r.Y, r.Side)
	if s.drag != nil && s.drag.element == el {
		x, y = s.drag.canvasX, s.drag.canvasY
	}
	if s.resize != nil && s.resize.element == el {
		x, y = s.resize.canvasX, s.resize.canvasY
		w, h = s.resize.width, s.resize.height
	}
	return x, y, w, h, true
}
