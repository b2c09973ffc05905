package geometry

// Service computes offset↔coordinate mappings against a host Surface.
type Service struct {
	surface Surface
}

// NewService builds a geometry Service bound to surface.
func NewService(surface Surface) *Service {
	return &Service{surface: surface}
}

// OffsetToCoord maps a byte offset to its surface-local pixel coordinate.
// Returns (Coord{}, false) when the surface has no usable layout yet,
// matching a DOM mirror-container implementation's null return when the
// mirror cannot be measured.
func (s *Service) OffsetToCoord(p ByteOffset) (Coord, bool) {
	if s.surface == nil {
		return Coord{}, false
	}
	text := s.surface.Text()
	if p < 0 {
		p = 0
	}
	if int(p) > len(text) {
		p = ByteOffset(len(text))
	}
	m := s.surface.Metrics()
	contentWidth := s.surface.ContentWidth()
	if contentWidth <= 0 && m.Wrap != WrapNone {
		return Coord{}, false
	}

	lines := layout(text, m, contentWidth)
	vl, ok := findVisualLine(lines, p)
	if !ok {
		return Coord{}, false
	}

	prefix := text[vl.start:p]
	left := m.PaddingLeft + measureWidth(prefix, m)
	return Coord{Left: left, Top: vl.top, Height: vl.height}, true
}

// findVisualLine returns the visual line containing offset p: the last
// line whose start is <= p, preferring a line whose end is also >= p.
func findVisualLine(lines []visualLine, p ByteOffset) (visualLine, bool) {
	if len(lines) == 0 {
		return visualLine{}, false
	}
	var best visualLine
	found := false
	for _, vl := range lines {
		if vl.start <= p {
			best = vl
			found = true
			if p <= vl.end {
				return vl, true
			}
		}
	}
	if found {
		return best, true
	}
	return lines[0], true
}

// RangeRects returns the minimal set of rectangles covering [start, end) in
// surface-local pixels. A same-line selection yields one rectangle;
// otherwise the first line (start to the content's right edge), any full
// middle lines, and the last line (left edge to end) are each emitted.
func (s *Service) RangeRects(start, end ByteOffset) []Rect {
	if s.surface == nil {
		return nil
	}
	if start > end {
		start, end = end, start
	}
	text := s.surface.Text()
	m := s.surface.Metrics()
	contentWidth := s.surface.ContentWidth()
	lines := layout(text, m, contentWidth)

	startLine, ok1 := findVisualLine(lines, start)
	endLine, ok2 := findVisualLine(lines, end)
	if !ok1 || !ok2 {
		return nil
	}

	startCoord, _ := s.OffsetToCoord(start)
	endCoord, _ := s.OffsetToCoord(end)

	sameLine := abs(startLine.top-endLine.top) < startLine.height/2
	if sameLine {
		width := endCoord.Left - startCoord.Left
		return []Rect{newRect(startCoord.Left, startCoord.Top, width, startCoord.Height)}
	}

	rightEdge := m.PaddingLeft + contentWidth
	rects := []Rect{
		newRect(startCoord.Left, startCoord.Top, rightEdge-startCoord.Left, startCoord.Height),
	}

	for _, vl := range lines {
		if vl.start > startLine.start && vl.start < endLine.start {
			rects = append(rects, newRect(m.PaddingLeft, vl.top, contentWidth, vl.height))
		}
	}

	rects = append(rects, newRect(m.PaddingLeft, endCoord.Top, endCoord.Left-m.PaddingLeft, endCoord.Height))
	return rects
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
