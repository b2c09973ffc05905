package geometry

import (
	"strings"

	"github.com/rivo/uniseg"
)

// visualLine is one wrapped, on-screen line of text.
type visualLine struct {
	start, end ByteOffset // byte range into the full document text
	top        float64
	height     float64
}

// layout walks the full text once, splitting logical ("\n"-delimited) lines
// into visual lines according to the surface's wrap mode and content width.
// Grounded on the renderer's line-layout walk
// (internal/renderer/layout), generalized from a fixed-width terminal grid
// to proportional pixel advances measured per grapheme cluster.
func layout(text string, m Metrics, contentWidth float64) []visualLine {
	lineHeight := resolveLineHeight(m, 0)
	var lines []visualLine
	top := m.PaddingTop

	var offset ByteOffset
	logicalLines := strings.Split(text, "\n")
	for li, logical := range logicalLines {
		logicalStart := offset
		if m.Wrap == WrapNone || contentWidth <= 0 {
			end := logicalStart + ByteOffset(len(logical))
			lines = append(lines, visualLine{start: logicalStart, end: end, top: top, height: lineHeight})
			top += lineHeight
		} else {
			lines = append(lines, wrapLogicalLine(logical, logicalStart, m, contentWidth, &top, lineHeight)...)
		}
		offset = logicalStart + ByteOffset(len(logical))
		if li < len(logicalLines)-1 {
			offset++ // the "\n" byte
		}
	}
	if len(lines) == 0 {
		lines = append(lines, visualLine{start: 0, end: 0, top: m.PaddingTop, height: lineHeight})
	}
	return lines
}

// wrapLogicalLine breaks one logical line into one or more visual lines,
// advancing *top as each visual line is emitted.
func wrapLogicalLine(logical string, logicalStart ByteOffset, m Metrics, contentWidth float64, top *float64, lineHeight float64) []visualLine {
	var out []visualLine
	segStart := 0 // byte offset within logical
	lastBreak := -1
	width := 0.0

	state := -1
	remaining := logical
	byteOff := 0
	for len(remaining) > 0 {
		cluster, rest, w, newState := uniseg.FirstGraphemeClusterInString(remaining, state)
		state = newState
		advance := advanceFor(cluster, m, w)

		if width+advance > contentWidth && byteOff > segStart {
			breakAt := byteOff
			if m.Wrap == WrapWord && lastBreak > segStart {
				breakAt = lastBreak
			}
			out = append(out, visualLine{
				start:  logicalStart + ByteOffset(segStart),
				end:    logicalStart + ByteOffset(breakAt),
				top:    *top,
				height: lineHeight,
			})
			*top += lineHeight
			segStart = breakAt
			lastBreak = -1
			// Recompute the width already consumed by the remainder of the
			// cluster run between the new segment start and the current
			// byte offset (word-wrap can move segStart behind byteOff).
			width = measureWidth(logical[segStart:byteOff], m)
		}

		if cluster == " " {
			lastBreak = byteOff + len(cluster)
		}
		width += advance
		byteOff += len(cluster)
		remaining = rest
	}
	out = append(out, visualLine{
		start:  logicalStart + ByteOffset(segStart),
		end:    logicalStart + ByteOffset(len(logical)),
		top:    *top,
		height: lineHeight,
	})
	*top += lineHeight
	return out
}

// measureWidth sums the advance width of every grapheme cluster in s.
func measureWidth(s string, m Metrics) float64 {
	total := 0.0
	state := -1
	remaining := s
	for len(remaining) > 0 {
		cluster, rest, w, newState := uniseg.FirstGraphemeClusterInString(remaining, state)
		state = newState
		total += advanceFor(cluster, m, w)
		remaining = rest
	}
	return total
}

// advanceFor returns the pixel advance for one grapheme cluster, handling
// tabs specially (TabSize narrow advances) and wide clusters at double the
// narrow advance width.
func advanceFor(cluster string, m Metrics, width int) float64 {
	if cluster == "\t" {
		tab := m.TabSize
		if tab <= 0 {
			tab = 4
		}
		return float64(tab) * m.AdvanceWidth
	}
	if width >= 2 && m.WideAdvanceWidth > 0 {
		return m.WideAdvanceWidth
	}
	return m.AdvanceWidth
}

// resolveLineHeight applies the fallback chain: metrics line height, then a
// caller-supplied marker height, then the hard-coded default of 16.
func resolveLineHeight(m Metrics, markerHeight float64) float64 {
	if m.LineHeight > 0 {
		return m.LineHeight
	}
	if markerHeight > 0 {
		return markerHeight
	}
	return 16
}

// StringWidth reports the display width (in terminal cells, not pixels) of
// s, exposed for callers that want a quick grapheme-aware length estimate
// without a Surface (e.g. the gutter plugin sizing a line-number column).
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}
