package overlay

import "sync"

// Reason names one of the five events that oblige an overlay redraw.
type Reason int

const (
	ReasonCaretChange Reason = iota
	ReasonScroll
	ReasonOperation
	ReasonUndoRedo
	ReasonRenderHook
)

func (r Reason) String() string {
	switch r {
	case ReasonCaretChange:
		return "caret-change"
	case ReasonScroll:
		return "scroll"
	case ReasonOperation:
		return "operation"
	case ReasonUndoRedo:
		return "undo-redo"
	case ReasonRenderHook:
		return "render-hook"
	default:
		return "unknown"
	}
}

// RedrawTracker records whether the overlay is owed a redraw and why, so a
// host render loop can batch several triggers (a caret move and an
// operation in the same tick) into a single draw. Grounded on the shape of
// the renderer's dirty.Tracker, simplified from per-line dirty
// regions to a single dirty flag because this overlay always redraws its
// full set of rectangles rather than incrementally patching a grid.
type RedrawTracker struct {
	mu      sync.Mutex
	dirty   bool
	reasons []Reason
}

// NewRedrawTracker creates a tracker with nothing pending.
func NewRedrawTracker() *RedrawTracker {
	return &RedrawTracker{}
}

// Mark flags the overlay dirty for the given reason.
func (t *RedrawTracker) Mark(reason Reason) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dirty = true
	t.reasons = append(t.reasons, reason)
}

// IsDirty reports whether a redraw is owed.
func (t *RedrawTracker) IsDirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dirty
}

// Reasons returns every reason accumulated since the last Clear.
func (t *RedrawTracker) Reasons() []Reason {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Reason(nil), t.reasons...)
}

// Clear resets the tracker after a redraw has been performed.
func (t *RedrawTracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dirty = false
	t.reasons = nil
}
