// Package caret implements the editor's multi-caret cursor set: an ordered,
// non-overlapping list of ranges with exactly one primary caret.
//
// This generalizes the engine's index-0-is-primary cursor.CursorSet
// to an explicit per-caret identity, because the host protocol this engine
// serves addresses individual carets by a stable id (the fixed id "primary"
// for the primary caret, generated ids for secondaries) rather than by
// position in a slice. A caret's IsPrimary flag, not its index, decides which
// one mirrors the host surface's native selection.
//
// Merge rule: two carets are merged when they touch or intersect, tested as
// the strict `cur.Start <= last.End` (not `cur.Start <= last.End+1`). Two
// adjacent-but-not-touching carets — e.g. one ending at offset 4 and another
// starting at offset 5 — remain distinct. The +1 variant observed in one
// multi-caret helper in the wild is rejected here: it would silently fuse
// two carets a user positioned one character apart, which breaks the
// "add cursor below" gesture's expectation that carets on consecutive short
// lines stay independent.
package caret
