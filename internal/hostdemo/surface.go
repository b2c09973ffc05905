// Package hostdemo is a minimal terminal host for the editor core, grounded
// on this codebase's renderer/backend.Terminal (tcell.Screen wiring,
// key/event conversion) generalized from this codebase's own renderer
// pipeline onto this repo's variant/geometry/overlay/ops stack. It exists
// to give cmd/quillcore a runnable demo and to exercise
// github.com/gdamore/tcell/v2 and github.com/gdamore/encoding end to end.
package hostdemo

import "github.com/quillcore/editor/internal/geometry"

// gutterWidth is the fixed column width reserved for line numbers, mirroring
// this codebase's renderer.Options.LineNumberWidth auto-calculation but held
// constant since this host has no dynamic relayout pass.
const gutterWidth = 4

// cellSurface implements geometry.Surface over a fixed-size terminal grid.
// Every cell is one column wide except double-width runes, matching tcell's
// own uniseg-backed width accounting; AdvanceWidth/WideAdvanceWidth are in
// terminal columns rather than pixels, which OffsetToCoord treats
// identically since it only ever adds and compares them.
type cellSurface struct {
	textFn   func() string
	cols     int
	rows     int
	scrollX  float64
	scrollY  float64
}

func newCellSurface(textFn func() string) *cellSurface {
	return &cellSurface{textFn: textFn}
}

func (s *cellSurface) resize(cols, rows int) {
	s.cols, s.rows = cols, rows
}

func (s *cellSurface) Metrics() geometry.Metrics {
	return geometry.Metrics{
		AdvanceWidth:     1,
		WideAdvanceWidth: 2,
		LineHeight:       1,
		TabSize:          4,
		Wrap:             geometry.WrapNone,
		Direction:        geometry.LTR,
		PaddingLeft:      float64(gutterWidth),
		PaddingTop:       0,
	}
}

func (s *cellSurface) Text() string { return s.textFn() }

func (s *cellSurface) ScrollOffset() (x, y float64) { return s.scrollX, s.scrollY }

func (s *cellSurface) ContentWidth() float64 {
	w := float64(s.cols - gutterWidth)
	if w < 1 {
		return 1
	}
	return w
}
