package variant

import (
	"github.com/quillcore/editor/internal/engine/caret"
	"github.com/quillcore/editor/internal/geometry"
)

// Inline is the single-caret engine variant: its CaretSet is
// restricted to exactly one caret, and multi-caret mutators (Add, secondary
// clearing beyond the primary) are no-ops. It never owns a C6 overlay.
type Inline struct {
	*Base
}

// NewInline constructs an Inline engine. surface may be nil if the host has
// no need for geometry queries (a pure headless embedding).
func NewInline(surface geometry.Surface, opts ...Option) *Inline {
	return &Inline{Base: newBase(KindInline, surface, opts...)}
}

// AddCaret is a no-op in the Inline variant: only the primary caret exists.
func (e *Inline) AddCaret(start, end caret.ByteOffset) {}

// ClearSecondary is a no-op: Inline never has secondary carets to clear.
func (e *Inline) ClearSecondary() {}
