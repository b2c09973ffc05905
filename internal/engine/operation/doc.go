// Package operation implements the editor's operation descriptor protocol
//: the wire-shaped record an ops module builds to describe an
// edit, and the Executor that turns a list of descriptors into buffer edits,
// caret repositioning, hook dispatch, and an undo recording in one pass.
//
// It is grounded on the engine's history.ReplaceOperation /
// OperationList (internal/engine/history/command.go) — the same idea of a
// replace-range-with-text record paired with before/after cursor state — but
// reshaped from an invertible Command executed directly against a
// cursor.CursorSet into a Descriptor consumed by an Executor that talks to
// caret.Set and undo.Log instead, because the host protocol addresses edits
// by caret id and carries legacy-shaped single-range fields that a plain
// Command type has no slot for.
package operation
