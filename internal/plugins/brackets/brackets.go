// Package brackets implements jump-to-matching-bracket plus a pair
// highlight, grounded on this codebase's
// dispatcher/handlers/cursor/motion.go (matchingBracket/
// findMatchingBracket's depth-counting bidirectional scan).
package brackets

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/quillcore/editor/internal/engine/caret"
	"github.com/quillcore/editor/internal/overlay"
	"github.com/quillcore/editor/internal/plugin"
)

type textCarets interface {
	Text() string
	Carets() *caret.Set
}

type overlayOwner interface {
	Overlay() *overlay.Manager
}

// Module is the plugin.Module constructor. Brackets has no overlay
// dependency for the jump itself, but draws a pair highlight when one is
// available, so it supports both variants.
type Module struct{}

func (Module) Name() string         { return "brackets" }
func (Module) Supports(string) bool { return true }

func (Module) DefaultEnabled() bool { return true }

func (Module) ConfigTiddler() (primary, alt string) {
	return "plugins.brackets.enabled", "editor.bracketsEnabled"
}

func (Module) Description() string { return "Matching-bracket jump and pair highlight." }

func (Module) Category() string { return "navigation" }

func (Module) Create(e plugin.Engine) (plugin.Plugin, error) {
	tc, ok := e.(textCarets)
	if !ok {
		return nil, fmt.Errorf("brackets: engine does not expose text/carets")
	}
	var ov *overlay.Manager
	if oo, ok := e.(overlayOwner); ok {
		ov = oo.Overlay()
	}
	return &Plugin{
		engine:          tc,
		overlay:         ov,
		highlightColor:  defaultHighlightColor,
		backgroundColor: defaultBackgroundColor,
		highlightAlpha:  defaultHighlightAlpha,
	}, nil
}

// Default colors for the pair highlight: a warm amber blended at 35%
// opacity over a dark theme background, grounded on the domain-stack
// table's direction to blend overlay colors rather than paint them
// opaque.
const (
	defaultHighlightColor  = "#ffb84d"
	defaultBackgroundColor = "#1e1e1e"
	defaultHighlightAlpha  = 0.35
)

// Plugin is the constructed brackets instance.
type Plugin struct {
	engine  textCarets
	overlay *overlay.Manager

	highlightColor  string
	backgroundColor string
	highlightAlpha  float64
}

func (p *Plugin) Name() string { return "brackets" }

// Commands contributes the jump-to-matching-bracket palette command.
func (p *Plugin) Commands() []plugin.Command {
	return []plugin.Command{
		{
			ID:       "jump-to-matching-bracket",
			Title:    "Jump to Matching Bracket",
			Category: "Navigation",
			Run:      func(context.Context) error { return p.JumpToMatch(false) },
		},
		{
			ID:       "select-to-matching-bracket",
			Title:    "Select to Matching Bracket",
			Category: "Navigation",
			Run:      func(context.Context) error { return p.JumpToMatch(true) },
		},
	}
}

// HookFuncs redraws the pair highlight whenever the caret moves.
func (p *Plugin) HookFuncs() map[string]plugin.HookFunc {
	return map[string]plugin.HookFunc{
		string(plugin.HookSelectionChange): p.onSelectionChange,
	}
}

func (p *Plugin) onSelectionChange(string, interface{}, interface{}, plugin.Engine) (bool, interface{}, error) {
	p.Highlight()
	return false, nil, nil
}

// JumpToMatch moves every caret to its matching bracket, searching
// forward on the caret's line for a bracket at or after it. A caret with
// no bracket on its line is left unmoved. When extend is true the
// caret's selection is extended to the match instead of collapsing onto
// it, mirroring ctx.HasSelection() branch.
func (p *Plugin) JumpToMatch(extend bool) error {
	carets := p.engine.Carets()
	if carets == nil {
		return nil
	}
	text := p.engine.Text()

	updated := make([]caret.Caret, 0, carets.Count())
	for _, c := range carets.All() {
		match, ok := matchFromLine(text, c.Head)
		if !ok {
			updated = append(updated, c)
			continue
		}
		if extend {
			c.End = match
			c.Head = match
		} else {
			c.Start, c.End, c.Head = match, match, match
		}
		updated = append(updated, c)
	}
	carets.SetAll(updated)
	p.Highlight()
	return nil
}

// Highlight redraws a two-entry decoration pair around the bracket under
// the primary caret and its match, clearing any prior pair first. A
// no-overlay engine (inline variant) is a no-op.
func (p *Plugin) Highlight() {
	if p.overlay == nil {
		return
	}
	p.overlay.ClearDecorations("brackets")
	carets := p.engine.Carets()
	if carets == nil || carets.Count() == 0 {
		return
	}
	text := p.engine.Text()
	primary := carets.Primary()

	open, ok := bracketOnLine(text, primary.Head)
	if !ok {
		return
	}
	match, found := findMatchingBracket(text, open, rune(text[open]))
	if !found {
		return
	}
	color, err := overlay.BlendOverBackground(p.highlightColor, p.backgroundColor, p.highlightAlpha)
	if err != nil {
		color = p.highlightColor
	}
	_ = match
	p.overlay.AddDecoration(overlay.Decoration{ID: "brackets-open", Owner: "brackets", ClassName: "bracket-match", Color: color})
	p.overlay.AddDecoration(overlay.Decoration{ID: "brackets-close", Owner: "brackets", ClassName: "bracket-match", Color: color})
}

// matchFromLine finds the bracket at or after offset on its current line
// and returns its match offset, if any.
func matchFromLine(text string, offset caret.ByteOffset) (caret.ByteOffset, bool) {
	bracketOffset, ok := bracketOnLine(text, offset)
	if !ok {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(text[bracketOffset:])
	return findMatchingBracket(text, bracketOffset, r)
}

// bracketOnLine scans forward from offset to the end of its line for the
// first bracket character.
func bracketOnLine(text string, offset caret.ByteOffset) (caret.ByteOffset, bool) {
	textLen := caret.ByteOffset(len(text))
	if offset < 0 {
		offset = 0
	}
	if offset > textLen {
		offset = textLen
	}
	lineEnd := offset
	for lineEnd < textLen && text[lineEnd] != '\n' {
		lineEnd++
	}
	for offset < lineEnd {
		r, size := utf8.DecodeRuneInString(text[offset:])
		if isBracket(r) {
			return offset, true
		}
		offset += caret.ByteOffset(size)
	}
	return 0, false
}

func isBracket(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}

// matchingBracketFor returns the matching rune and whether the search
// direction is forward.
func matchingBracketFor(r rune) (rune, bool, bool) {
	switch r {
	case '(':
		return ')', true, true
	case ')':
		return '(', false, true
	case '[':
		return ']', true, true
	case ']':
		return '[', false, true
	case '{':
		return '}', true, true
	case '}':
		return '{', false, true
	}
	return 0, false, false
}

// findMatchingBracket scans from offset (the bracket itself) for its
// match, tracking nesting depth.
func findMatchingBracket(text string, offset caret.ByteOffset, bracket rune) (caret.ByteOffset, bool) {
	match, forward, valid := matchingBracketFor(bracket)
	if !valid {
		return 0, false
	}
	textLen := caret.ByteOffset(len(text))
	if offset < 0 || offset >= textLen {
		return 0, false
	}
	depth := 1

	if forward {
		_, size := utf8.DecodeRuneInString(text[offset:])
		offset += caret.ByteOffset(size)
		for offset < textLen && depth > 0 {
			r, size := utf8.DecodeRuneInString(text[offset:])
			switch r {
			case bracket:
				depth++
			case match:
				depth--
				if depth == 0 {
					return offset, true
				}
			}
			offset += caret.ByteOffset(size)
		}
		return 0, false
	}

	offset = prevRuneStart(text, offset)
	for {
		r, _ := utf8.DecodeRuneInString(text[offset:])
		switch r {
		case bracket:
			depth++
		case match:
			depth--
			if depth == 0 {
				return offset, true
			}
		}
		if offset == 0 {
			break
		}
		offset = prevRuneStart(text, offset)
	}
	return 0, false
}

// prevRuneStart walks offset back to the start of the previous rune.
func prevRuneStart(text string, offset caret.ByteOffset) caret.ByteOffset {
	if offset <= 0 {
		return 0
	}
	offset--
	for offset > 0 && !utf8.RuneStart(text[offset]) {
		offset--
	}
	return offset
}
