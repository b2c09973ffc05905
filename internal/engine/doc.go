// Package engine is the umbrella namespace for the editor's core text
// engine sub-packages:
//
//   - rope: B+ tree rope for efficient text storage (O(log n) operations)
//   - buffer: position conversion (byte/rune/UTF-16/line-column) and edit
//     application over a rope
//   - caret: the multi-caret set (C2), explicit {ID, IsPrimary} carets,
//     normalize/merge, and edit-repositioning
//   - undo: the coalescing snapshot undo/redo log (C3)
//   - operation: the edit-descriptor protocol and its seven-step executor
//     (C4), consumed by internal/variant's engine facade
//
// The facade that wires these into a single Engine type bound to a live
// Surface and plugin Registry lives in internal/variant, not here — this
// package holds only the pieces that are variant-agnostic.
package engine
