package editor

// ElementID identifies which template element a gesture targets.
type ElementID int

const (
	ElementNone ElementID = iota
	ElementImage
	ElementWord
	ElementSubtitle
)

func (e ElementID) String() string {
	switch e {
	case ElementImage:
		return "image"
	case ElementWord:
		return "word"
	case ElementSubtitle:
		return "subtitle"
	default:
		return "none"
	}
}

// Event is one editor input. All pointer coordinates are in canvas
// content space (stage scale already divided out by the view layer).
type Event interface{ isEvent() }

type SelectElement struct{ Element ElementID }

// PointerDown starts a drag on the element's hit box.
type PointerDown struct {
	Element ElementID
	X, Y    float64
}

type PointerMove struct{ X, Y float64 }

type PointerUp struct{}

// ResizeStart begins a bottom-right handle drag on the element.
type ResizeStart struct {
	Element ElementID
	X, Y    float64
}

type ResizeMove struct{ X, Y float64 }

type ResizeEnd struct{}

// BeginTextEdit enters modal text editing (double-click/double-tap).
type BeginTextEdit struct{ Element ElementID }

type DraftChanged struct{ Text string }

// CommitDraft writes the draft into the bound row field (blur, or
// Enter without shift).
type CommitDraft struct{}

// CancelDraft discards the draft (Escape).
type CancelDraft struct{}

type ToggleDoubleSided struct{ Enabled bool }

type SelectRow struct{ RowID string }

// ViewportChanged reports a new measured container size. Observed
// directly from the container, not the window: sibling panels change
// the available space independently.
type ViewportChanged struct{ Width, Height float64 }

func (SelectElement) isEvent()     {}
func (PointerDown) isEvent()       {}
func (PointerMove) isEvent()       {}
func (PointerUp) isEvent()         {}
func (ResizeStart) isEvent()       {}
func (ResizeMove) isEvent()        {}
func (ResizeEnd) isEvent()         {}
func (BeginTextEdit) isEvent()     {}
func (DraftChanged) isEvent()      {}
func (CommitDraft) isEvent()       {}
func (CancelDraft) isEvent()       {}
func (ToggleDoubleSided) isEvent() {}
func (SelectRow) isEvent()         {}
func (ViewportChanged) isEvent()   {}

// Patch is one discrete mutation produced by the reducer. Gestures
// emit many transient positions but only patches reach the document;
// replaying the patch log reproduces the committed template and rows.
type Patch interface{ isPatch() }

// SetRegionGeometry commits an element's full geometry (side included).
type SetRegionGeometry struct {
	Element ElementID
	Side    int
	X, Y    float64
	Width   float64
	Height  float64
}

// SetRowText commits an edit-mode draft into a row field.
type SetRowText struct {
	RowID string
	Role  string
	Text  string
}

func (SetRegionGeometry) isPatch() {}
func (SetRowText) isPatch()       {}
