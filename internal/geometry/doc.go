// Package geometry maps between byte offsets in the document and pixel
// coordinates on the host surface, and derives the minimal set
// of line rectangles that cover a selection range.
//
// It is grounded on the renderer's ScreenPos/ScreenRect arithmetic
// (internal/renderer/coords.go) and its line-layout walk
// (internal/renderer/layout), generalized from integer terminal cells to
// float64 pixels and from a line-oriented viewport model to an explicit
// Surface the host implements — because this engine has no DOM to mirror
// and no terminal grid to address, only whatever pixel metrics and text the
// embedding host hands it.
//
// Advance widths use github.com/rivo/uniseg to walk grapheme clusters
// rather than runes, so combining marks and wide characters measure the way
// a real text shaper would.
package geometry
