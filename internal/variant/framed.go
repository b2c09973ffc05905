package variant

import (
	"github.com/quillcore/editor/internal/engine/caret"
	"github.com/quillcore/editor/internal/geometry"
	"github.com/quillcore/editor/internal/overlay"
)

// Framed is the multi-caret engine variant: it owns a full
// CaretSet and the C6 overlay layer, redrawn on caret change, scroll,
// operation execution, undo/redo, and the explicit render hook.
type Framed struct {
	*Base
	ov      *overlay.Manager
	redraws *overlay.RedrawTracker
}

// NewFramed constructs a Framed engine over surface.
func NewFramed(surface geometry.Surface, opts ...Option) *Framed {
	f := &Framed{
		Base:    newBase(KindFramed, surface, opts...),
		ov:      overlay.NewManager(),
		redraws: overlay.NewRedrawTracker(),
	}
	return f
}

// Overlay returns the overlay manager, implementing overlayOwner for
// decoration-consuming plugins.
func (f *Framed) Overlay() *overlay.Manager {
	return f.ov
}

// AddCaret adds a new secondary caret at [start, end) and returns its id.
func (f *Framed) AddCaret(start, end caret.ByteOffset) string {
	id := f.Carets().Add(start, end)
	f.markCursorDirty()
	return id
}

// ClearSecondary removes every caret but the primary.
func (f *Framed) ClearSecondary() {
	f.Carets().ClearSecondary()
	f.markCursorDirty()
}

// Refit overrides Base.Refit to mark the overlay dirty after layout
// changes (buffer edits that may shift line heights).
func (f *Framed) Refit() {
	f.redraws.Mark(overlay.ReasonOperation)
}

// Redraw overrides Base.Redraw to mark the overlay dirty for the next
// present pass.
func (f *Framed) Redraw() {
	f.redraws.Mark(overlay.ReasonOperation)
}

// SetScroll forwards the surface's scroll offset to the overlay so its
// single translate(-scrollX, -scrollY) compensation stays correct: geometry
// coordinates exclude scroll, so only the overlay compensates.
func (f *Framed) SetScroll(x, y float64) {
	f.ov.SetScroll(x, y)
	f.redraws.Mark(overlay.ReasonScroll)
}

// NotifyUndoRedo marks the overlay dirty after an Undo/Redo application;
// callers invoke this themselves since undo.Log has no hook into the
// overlay directly.
func (f *Framed) NotifyUndoRedo() {
	f.redraws.Mark(overlay.ReasonUndoRedo)
}

// MarkRenderHook marks the overlay dirty in response to the explicit
// "render" plugin hook.
func (f *Framed) MarkRenderHook() {
	f.redraws.Mark(overlay.ReasonRenderHook)
}

func (f *Framed) markCursorDirty() {
	f.redraws.Mark(overlay.ReasonCaretChange)
}

var _ overlayOwner = (*Framed)(nil)
