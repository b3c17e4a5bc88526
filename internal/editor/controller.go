// Package editor implements the interactive template editor as a pure
// state machine: every gesture is an Event, every committed mutation a
// Patch, and Reduce is a pure (State, Event) -> (State, []Patch)
// transition. The Controller wires the machine to a FlashcardSet and
// keeps the command log.
package editor

import (
	"github.com/cardpress/cardpress/pkg/geometry"
	"github.com/cardpress/cardpress/pkg/logger"
	"github.com/cardpress/cardpress/pkg/models"
)

// Reduce applies one event. The returned state replaces the old one;
// patches describe every committed template/row mutation in order.
func Reduce(s State, ev Event) (State, []Patch) {
	switch ev := ev.(type) {
	case SelectElement:
		return reduceSelect(s, ev)
	case PointerDown:
		return reducePointerDown(s, ev)
	case PointerMove:
		return reducePointerMove(s, ev)
	case PointerUp:
		return reducePointerUp(s)
	case ResizeStart:
		return reduceResizeStart(s, ev)
	case ResizeMove:
		return reduceResizeMove(s, ev)
	case ResizeEnd:
		return reduceResizeEnd(s)
	case BeginTextEdit:
		return reduceBeginTextEdit(s, ev)
	case DraftChanged:
		if s.edit != nil {
			s.edit = &editState{element: s.edit.element, draft: ev.Text}
		}
		return s, nil
	case CommitDraft:
		return reduceCommitDraft(s)
	case CancelDraft:
		s.edit = nil
		return s, nil
	case ToggleDoubleSided:
		return reduceToggle(s, ev)
	case SelectRow:
		// switching rows silently cancels edit mode, no partial commit
		s.edit = nil
		s.SelectedRowID = ev.RowID
		return s, nil
	case ViewportChanged:
		return reduceViewport(s, ev)
	}
	return s, nil
}

func reduceSelect(s State, ev SelectElement) (State, []Patch) {
	if s.edit != nil && s.edit.element != ev.Element {
		s.edit = nil
	}
	s.Selected = ev.Element
	return s, nil
}

func reducePointerDown(s State, ev PointerDown) (State, []Patch) {
	if ev.Element == ElementNone {
		s.Selected = ElementNone
		s.edit = nil
		return s, nil
	}
	if s.edit != nil && s.edit.element != ev.Element {
		s.edit = nil
	}
	s.Selected = ev.Element
	r := s.region(ev.Element)
	if r == nil {
		return s, nil
	}
	cx, cy := s.Layout.ToCanvas(r.X, r.Y, r.Side)
	s.drag = &dragState{
		element: ev.Element,
		offsetX: ev.X - cx,
		offsetY: ev.Y - cy,
		canvasX: cx,
		canvasY: cy,
	}
	return s, nil
}

func reducePointerMove(s State, ev PointerMove) (State, []Patch) {
	if s.drag == nil {
		return s, nil
	}
	d := *s.drag
	r := s.region(d.element)
	if r == nil {
		return s, nil
	}
	x, y := geometry.ClampCanvasPoint(s.Layout, ev.X-d.offsetX, ev.Y-d.offsetY, r.Width, r.Height)
	d.canvasX, d.canvasY = x, y
	d.moved = true
	s.drag = &d

	// template writes during the move only when the side flips;
	// position keeps updating transiently in drag state
	side, lx, ly := s.Layout.FromCanvas(x, y, r.Width, r.Height)
	if side != r.Side {
		return commitGeometry(s, d.element, side, lx, ly, r.Width, r.Height)
	}
	return s, nil
}

func reducePointerUp(s State) (State, []Patch) {
	if s.drag == nil {
		return s, nil
	}
	d := *s.drag
	s.drag = nil
	r := s.region(d.element)
	if r == nil || !d.moved {
		return s, nil
	}
	// final geometry always commits, even if intermediate moves were
	// throttled away upstream
	side, lx, ly := s.Layout.FromCanvas(d.canvasX, d.canvasY, r.Width, r.Height)
	return commitGeometry(s, d.element, side, lx, ly, r.Width, r.Height)
}

func reduceResizeStart(s State, ev ResizeStart) (State, []Patch) {
	r := s.region(ev.Element)
	if r == nil {
		return s, nil
	}
	s.Selected = ev.Element
	cx, cy := s.Layout.ToCanvas(r.X, r.Y, r.Side)
	s.resize = &resizeState{
		element: ev.Element,
		canvasX: cx,
		canvasY: cy,
		width:   r.Width,
		height:  r.Height,
	}
	return s, nil
}

func reduceResizeMove(s State, ev ResizeMove) (State, []Patch) {
	if s.resize == nil {
		return s, nil
	}
	rs := *s.resize
	minW, minH := s.minSize(rs.element)

	// order matters: size first, then re-clamp position with the new
	// size, then re-derive side, because growing an element can push
	// it across the side boundary
	rs.width = max(ev.X-rs.canvasX, minW)
	rs.height = max(ev.Y-rs.canvasY, minH)
	rs.canvasX, rs.canvasY = geometry.ClampCanvasPoint(s.Layout, rs.canvasX, rs.canvasY, rs.width, rs.height)
	s.resize = &rs

	side, lx, ly := s.Layout.FromCanvas(rs.canvasX, rs.canvasY, rs.width, rs.height)
	return commitGeometry(s, rs.element, side, lx, ly, rs.width, rs.height)
}

func reduceResizeEnd(s State) (State, []Patch) {
	if s.resize == nil {
		return s, nil
	}
	rs := *s.resize
	s.resize = nil
	side, lx, ly := s.Layout.FromCanvas(rs.canvasX, rs.canvasY, rs.width, rs.height)
	return commitGeometry(s, rs.element, side, lx, ly, rs.width, rs.height)
}

func reduceBeginTextEdit(s State, ev BeginTextEdit) (State, []Patch) {
	if ev.Element != ElementWord && ev.Element != ElementSubtitle {
		return s, nil
	}
	s.Selected = ev.Element
	draft := s.RowWord
	if ev.Element == ElementSubtitle {
		draft = s.RowSubtitle
	}
	s.edit = &editState{element: ev.Element, draft: draft}
	return s, nil
}

func reduceCommitDraft(s State) (State, []Patch) {
	if s.edit == nil {
		return s, nil
	}
	e := *s.edit
	s.edit = nil
	if s.SelectedRowID == "" {
		return s, nil
	}
	role := models.RoleWord
	if e.element == ElementSubtitle {
		role = models.RoleSubtitle
		s.RowSubtitle = e.draft
	} else {
		s.RowWord = e.draft
	}
	return s, []Patch{SetRowText{RowID: s.SelectedRowID, Role: role, Text: e.draft}}
}

func reduceToggle(s State, ev ToggleDoubleSided) (State, []Patch) {
	if ev.Enabled == s.DoubleSided {
		return s, nil
	}
	// snapshot the outgoing mode so toggling back restores positions
	// instead of collapsing everything onto side 1
	snap := s.Template
	s.snapshots[modeIndex(s.DoubleSided)] = &snap

	s.DoubleSided = ev.Enabled
	if prev := s.snapshots[modeIndex(ev.Enabled)]; prev != nil {
		s.Template = *prev
	}
	// diff against the outgoing template so a restored snapshot is
	// fully re-committed, not just the regions the reclamp moved
	return reconcileLayout(s, &snap)
}

func reduceViewport(s State, ev ViewportChanged) (State, []Patch) {
	s.Viewport.Width = ev.Width
	s.Viewport.Height = ev.Height
	baseline := s.Template
	return reconcileLayout(s, &baseline)
}

// reconcileLayout recomputes the stage layout and re-clamps every
// region into the new valid rectangle, emitting patches for regions
// that differ from the baseline template.
func reconcileLayout(s State, baseline *models.CardTemplate) (State, []Patch) {
	s.Layout, s.Scale = geometry.StageLayout(
		s.Viewport.Width, s.Viewport.Height,
		s.Template.Width, s.Template.Height,
		s.DoubleSided,
	)
	s.Template = geometry.ReclampTemplate(s.Layout, s.Template)

	var patches []Patch
	for _, el := range []ElementID{ElementImage, ElementWord, ElementSubtitle} {
		b := regionOf(baseline, el)
		a := s.region(el)
		if a != nil && b != nil && *a != *b {
			patches = append(patches, SetRegionGeometry{
				Element: el, Side: a.Side, X: a.X, Y: a.Y, Width: a.Width, Height: a.Height,
			})
		}
	}
	return s, patches
}

func commitGeometry(s State, el ElementID, side int, x, y, w, h float64) (State, []Patch) {
	r := s.region(el)
	if r == nil {
		return s, nil
	}
	r.Side, r.X, r.Y, r.Width, r.Height = side, x, y, w, h
	return s, []Patch{SetRegionGeometry{Element: el, Side: side, X: x, Y: y, Width: w, Height: h}}
}

func regionOf(t *models.CardTemplate, el ElementID) *models.Region {
	switch el {
	case ElementImage:
		return &t.Image.Region
	case ElementWord:
		if tr := t.Text(models.RoleWord); tr != nil {
			return &tr.Region
		}
	case ElementSubtitle:
		if tr := t.Text(models.RoleSubtitle); tr != nil {
			return &tr.Region
		}
	}
	return nil
}

func modeIndex(doubleSided bool) int {
	if doubleSided {
		return modeDouble
	}
	return modeSingle
}

// Controller binds the state machine to a set: it feeds events through
// Reduce, mirrors committed patches into the set, and keeps the patch
// log for replay.
type Controller struct {
	log      *logger.Logger
	set      *models.FlashcardSet
	state    State
	patchLog []Patch
}

// NewController builds a controller for the set measured into the
// given container.
func NewController(set *models.FlashcardSet, containerW, containerH float64, log *logger.Logger) *Controller {
	c := &Controller{log: log, set: set, state: NewState(set, containerW, containerH)}
	c.syncRowText()
	return c
}

// State returns the current editor state snapshot.
func (c *Controller) State() State { return c.state }

// Log returns the committed patch log in order.
func (c *Controller) Log() []Patch { return c.patchLog }

// Apply feeds one event through the reducer and applies the resulting
// patches to the underlying set.
func (c *Controller) Apply(ev Event) []Patch {
	next, patches := Reduce(c.state, ev)
	c.state = next
	c.set.DoubleSided = c.state.DoubleSided
	for _, p := range patches {
		c.applyPatch(p)
	}
	if _, ok := ev.(SelectRow); ok {
		c.set.SelectedRowID = c.state.SelectedRowID
		c.syncRowText()
	}
	c.patchLog = append(c.patchLog, patches...)
	return patches
}

func (c *Controller) applyPatch(p Patch) {
	switch p := p.(type) {
	case SetRegionGeometry:
		if r := regionOf(&c.set.Template, p.Element); r != nil {
			r.Side, r.X, r.Y, r.Width, r.Height = p.Side, p.X, p.Y, p.Width, p.Height
		}
		c.log.Trace("geometry %s side=%d pos=(%.1f,%.1f) size=(%.1f,%.1f)",
			p.Element, p.Side, p.X, p.Y, p.Width, p.Height)
	case SetRowText:
		if row := c.set.RowByID(p.RowID); row != nil {
			if p.Role == models.RoleSubtitle {
				row.Subtitle = p.Text
			} else {
				row.Word = p.Text
			}
		}
		c.log.Trace("row %s %s=%q", p.RowID, p.Role, p.Text)
	}
}

// syncRowText mirrors the selected row's committed text into the
// state so edit mode can seed its draft without reaching into the set.
func (c *Controller) syncRowText() {
	c.state.RowWord, c.state.RowSubtitle = "", ""
	if row := c.set.RowByID(c.state.SelectedRowID); row != nil {
		c.state.RowWord = row.Word
		c.state.RowSubtitle = row.Subtitle
	}
}
