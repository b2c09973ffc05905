package undo

import (
	"sync"
	"time"

	"github.com/quillcore/editor/internal/engine/buffer"
	"github.com/quillcore/editor/internal/engine/caret"
)

// MaxEntries is the undo stack cap; the oldest entry is dropped once exceeded.
const MaxEntries = 200

// CoalesceWindow is the maximum gap between two recordings for them to
// merge into a single undo entry.
const CoalesceWindow = 500 * time.Millisecond

// Snapshot is an immutable capture of buffer text, caret set, and the host's
// native selection at a single moment.
type Snapshot struct {
	Text     string
	Carets   []caret.Caret
	SelStart buffer.ByteOffset
	SelEnd   buffer.ByteOffset
	At       time.Time
}

// entry is a recorded before/after pair.
type entry struct {
	before, after Snapshot
}

// Sink is how the undo log applies a snapshot back to the live engine state.
// Implementations are the engine itself; every method is expected to be
// cheap and side-effect-complete (by the time Apply returns, the surface,
// caret set, overlay, and host persistence callback all reflect the
// snapshot).
type Sink interface {
	SetText(text string)
	SetCarets(carets []caret.Caret)
	Redraw()
	Persist()
}

// Log is a coalescing before/after snapshot stack with a redo mirror.
type Log struct {
	mu sync.Mutex

	undoStack []entry
	redoStack []entry

	pending       *Snapshot // captured by CaptureBefore, not yet recorded
	lastSaved     *Snapshot // the after-snapshot of the most recent recording
	lastRecordAt  time.Time
	replaying     bool // true while Undo/Redo is applying a snapshot
}

// New creates an empty undo log.
func New() *Log {
	return &Log{}
}

// CaptureBefore records the current snapshot into the pending slot, unless
// one is already pending or the engine is currently replaying a history
// state (Undo/Redo in progress).
func (l *Log) CaptureBefore(snap Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.replaying || l.pending != nil {
		return
	}
	l.pending = &snap
}

// Record finalizes the pending before-state against the given after
// snapshot. If no before-state is pending, the last saved snapshot is used
// as the before-state instead. If the after text is identical to the
// before text, nothing is recorded. Otherwise the entry is either coalesced
// into the previous one (when forceSeparate is false, the stack is
// non-empty, and less than CoalesceWindow has elapsed since the last
// recording) or appended as a new entry.
//
// forceSeparate=true also resets the coalescing clock, so the very next
// Record can never merge into the entry just recorded.
func (l *Log) Record(after Snapshot, forceSeparate bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	before := l.pending
	if before == nil {
		before = l.lastSaved
	}
	l.pending = nil

	if before != nil && before.Text == after.Text {
		l.lastSaved = &after
		return
	}
	if before == nil {
		before = &Snapshot{Text: "", At: after.At}
	}

	canCoalesce := !forceSeparate &&
		len(l.undoStack) > 0 &&
		!l.lastRecordAt.IsZero() &&
		after.At.Sub(l.lastRecordAt) < CoalesceWindow

	if canCoalesce {
		l.undoStack[len(l.undoStack)-1].after = after
	} else {
		l.undoStack = append(l.undoStack, entry{before: *before, after: after})
		if len(l.undoStack) > MaxEntries {
			excess := len(l.undoStack) - MaxEntries
			l.undoStack = l.undoStack[excess:]
		}
	}

	l.redoStack = nil
	l.lastSaved = &after
	if forceSeparate {
		l.lastRecordAt = time.Time{}
	} else {
		l.lastRecordAt = after.At
	}
}

// Undo applies the top undo entry's before-snapshot via sink, pushing the
// entry onto the redo stack. It guards the replay with a flag so a
// CaptureBefore triggered by the ensuing surface events is ignored.
func (l *Log) Undo(sink Sink) bool {
	l.mu.Lock()
	if len(l.undoStack) == 0 {
		l.mu.Unlock()
		return false
	}
	e := l.undoStack[len(l.undoStack)-1]
	l.undoStack = l.undoStack[:len(l.undoStack)-1]
	l.replaying = true
	l.pending = nil
	l.mu.Unlock()

	l.apply(sink, e.before)

	l.mu.Lock()
	l.redoStack = append(l.redoStack, e)
	l.lastSaved = &e.before
	l.replaying = false
	l.mu.Unlock()
	return true
}

// Redo applies the top redo entry's after-snapshot via sink, pushing the
// entry back onto the undo stack.
func (l *Log) Redo(sink Sink) bool {
	l.mu.Lock()
	if len(l.redoStack) == 0 {
		l.mu.Unlock()
		return false
	}
	e := l.redoStack[len(l.redoStack)-1]
	l.redoStack = l.redoStack[:len(l.redoStack)-1]
	l.replaying = true
	l.pending = nil
	l.mu.Unlock()

	l.apply(sink, e.after)

	l.mu.Lock()
	l.undoStack = append(l.undoStack, e)
	l.lastSaved = &e.after
	l.replaying = false
	l.mu.Unlock()
	return true
}

// apply pushes a snapshot to the sink and triggers redraw/persistence,
// outside the log's lock so sink callbacks may safely call back into the
// log (e.g. via hook dispatch).
func (l *Log) apply(sink Sink, snap Snapshot) {
	if sink == nil {
		return
	}
	sink.SetText(snap.Text)
	sink.SetCarets(snap.Carets)
	sink.Redraw()
	sink.Persist()
}

// CanUndo reports whether an undo entry is available.
func (l *Log) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undoStack) > 0
}

// CanRedo reports whether a redo entry is available.
func (l *Log) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.redoStack) > 0
}

// UndoCount returns the number of available undo operations.
func (l *Log) UndoCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undoStack)
}

// RedoCount returns the number of available redo operations.
func (l *Log) RedoCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.redoStack)
}

// IsReplaying reports whether an Undo/Redo is currently applying a snapshot.
// The input pipeline uses this to suppress CaptureBefore during replay.
func (l *Log) IsReplaying() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.replaying
}

// Reset clears all undo/redo state, as on engine construction or destruction.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.undoStack = nil
	l.redoStack = nil
	l.pending = nil
	l.lastSaved = nil
	l.lastRecordAt = time.Time{}
	l.replaying = false
}
