package geometry

// WrapMode describes how the host surface wraps long lines.
type WrapMode int

const (
	// WrapNone disables wrapping: a logical line is always one visual line.
	WrapNone WrapMode = iota
	// WrapWord breaks at word boundaries.
	WrapWord
	// WrapChar breaks at any grapheme boundary.
	WrapChar
)

// Direction describes the surface's text direction.
type Direction int

const (
	// LTR is left-to-right text.
	LTR Direction = iota
	// RTL is right-to-left text.
	RTL
)

// Metrics is the set of font and layout properties the geometry service
// needs to compute pixel coordinates, standing in for the mirror
// container's computed style in a DOM host.
type Metrics struct {
	// AdvanceWidth is the pixel width of one narrow (east-asian-width
	// neutral/narrow) grapheme cluster in the surface's font.
	AdvanceWidth float64
	// WideAdvanceWidth is the pixel width of a double-width grapheme
	// cluster (most CJK characters).
	WideAdvanceWidth float64
	// LineHeight is the pixel height of one visual line. Zero means unset;
	// OffsetToCoord falls back through the chain described in doc.go.
	LineHeight float64
	// TabSize is the number of narrow advance widths one tab character
	// occupies.
	TabSize int
	// Wrap is the surface's wrap mode.
	Wrap WrapMode
	// Direction is the surface's text direction.
	Direction Direction
	// PaddingLeft/PaddingTop offset every computed coordinate, standing in
	// for the mirror container's copied padding/border box.
	PaddingLeft float64
	PaddingTop  float64
}

// Surface is the narrow read-only view the geometry service needs of the
// host's current layout. A DOM host backs this with live computed styles
// and the textarea's value; a terminal host backs it with cell metrics and
// the grid buffer's text.
type Surface interface {
	// Metrics returns the surface's current font/layout metrics.
	Metrics() Metrics
	// Text returns the full current document text.
	Text() string
	// ScrollOffset returns the surface's current scroll position. Returned
	// coordinates already exclude this offset (see DESIGN.md's Open
	// Question decision on scroll symmetry); callers doing overlay
	// positioning apply the offset themselves via a single translate.
	ScrollOffset() (x, y float64)
	// ContentWidth returns the surface's content-box width in pixels (the
	// width available for text, excluding padding/border/scrollbar), used
	// as the right edge for wrap detection and full-width middle lines.
	ContentWidth() float64
}
