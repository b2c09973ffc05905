// Package undo implements the editor's coalescing before/after snapshot
// stack with a redo mirror, grounded on the engine's
// history.History invertible-command stack (internal/engine/history/stack.go)
// but reshaped around whole-buffer Snapshots instead of invertible Commands,
// because the host protocol this engine serves hands the engine raw surface
// text on every input event rather than discrete edit operations it can
// invert — recording a before/after pair is the only representation that
// can always be reconstructed from what the host gives us.
package undo
