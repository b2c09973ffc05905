// Package gutter draws line-number decorations into the C6 overlay's
// decoration layer, grounded on this codebase's
// renderer/gutter.LineNumberFormatter (absolute/relative/hybrid number
// calculation and left-padding) adapted from a terminal gutter column to
// overlay.Decoration entries a host renders wherever it likes.
package gutter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quillcore/editor/internal/engine/caret"
	"github.com/quillcore/editor/internal/geometry"
	"github.com/quillcore/editor/internal/overlay"
	"github.com/quillcore/editor/internal/plugin"
)

// Mode mirrors this codebase's LineNumberMode: how each line's displayed
// number is calculated relative to the primary caret's line.
type Mode int

const (
	Absolute Mode = iota
	Relative
	Hybrid
)

type textCarets interface {
	Text() string
	Carets() *caret.Set
}

type overlayOwner interface {
	Overlay() *overlay.Manager
}

type geometryOwner interface {
	Geometry() *geometry.Service
}

// Module is the plugin.Module constructor for the gutter plugin. It
// supports only the framed variant, since inline has no overlay to draw
// into.
type Module struct {
	Mode Mode
}

func (Module) Name() string { return "gutter" }

func (Module) Supports(variant string) bool { return variant == "framed" }

func (Module) DefaultEnabled() bool { return true }

func (Module) ConfigTiddler() (primary, alt string) {
	return "plugins.gutter.enabled", "editor.gutterEnabled"
}

func (Module) Description() string { return "Draws line-number decorations in the margin." }

func (Module) Category() string { return "decoration" }

func (m Module) Create(e plugin.Engine) (plugin.Plugin, error) {
	tc, ok := e.(textCarets)
	if !ok {
		return nil, fmt.Errorf("gutter: engine does not expose text/carets")
	}
	oo, ok := e.(overlayOwner)
	if !ok {
		return nil, fmt.Errorf("gutter: engine does not expose an overlay")
	}
	var geo *geometry.Service
	if go_, ok := e.(geometryOwner); ok {
		geo = go_.Geometry()
	}
	return &Plugin{mode: m.Mode, engine: tc, overlay: oo.Overlay(), geo: geo}, nil
}

// Plugin is the constructed gutter instance.
type Plugin struct {
	mode    Mode
	engine  textCarets
	overlay *overlay.Manager
	geo     *geometry.Service
}

func (p *Plugin) Name() string { return "gutter" }

// HookFuncs redraws the gutter after render and after any caret move.
func (p *Plugin) HookFuncs() map[string]plugin.HookFunc {
	return map[string]plugin.HookFunc{
		string(plugin.HookRender):         p.onRedraw,
		string(plugin.HookSelectionChange): p.onRedraw,
	}
}

func (p *Plugin) onRedraw(string, interface{}, interface{}, plugin.Engine) (bool, interface{}, error) {
	p.Redraw()
	return false, nil, nil
}

// Redraw recomputes every line's decoration from scratch, a full-gutter
// repaint-on-scroll discipline rather than an incremental diff.
func (p *Plugin) Redraw() {
	text := p.engine.Text()
	lines := strings.Split(text, "\n")
	width := widthFor(uint32(len(lines)))
	currentLine := p.currentLine(text)

	p.overlay.ClearDecorations("gutter")
	offset := caret.ByteOffset(0)
	for i, line := range lines {
		ln := uint32(i)
		label := p.format(ln, width, currentLine)
		rect := geometry.Rect{}
		if p.geo != nil {
			if coord, ok := p.geo.OffsetToCoord(offset); ok {
				rect = geometry.Rect{Left: 0, Top: coord.Top, Width: float64(width), Height: coord.Height}
			}
		}
		p.overlay.AddDecoration(overlay.Decoration{
			ID:        fmt.Sprintf("gutter-line-%d", ln),
			Owner:     "gutter",
			Rect:      rect,
			ClassName: label,
			Priority:  i,
		})
		offset += caret.ByteOffset(len(line)) + 1
	}
}

func (p *Plugin) currentLine(text string) uint32 {
	carets := p.engine.Carets()
	if carets == nil || carets.Count() == 0 {
		return 0
	}
	primary := carets.Primary()
	return uint32(strings.Count(text[:clamp(primary.Head, len(text))], "\n"))
}

func (p *Plugin) format(line uint32, width int, current uint32) string {
	num := p.number(line, current)
	return padLeft(strconv.FormatUint(uint64(num), 10), width)
}

func (p *Plugin) number(line, current uint32) uint32 {
	switch p.mode {
	case Relative:
		if line == current {
			return 0
		}
		return absDiff(line, current)
	case Hybrid:
		if line == current {
			return line + 1
		}
		return absDiff(line, current)
	default:
		return line + 1
	}
}

func clamp(offset caret.ByteOffset, max int) int {
	v := int(offset)
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func widthFor(lineCount uint32) int {
	digits := len(strconv.FormatUint(uint64(lineCount), 10))
	if digits < 2 {
		return 2
	}
	return digits
}
