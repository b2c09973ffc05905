package caret

import (
	"fmt"

	"github.com/quillcore/editor/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// PrimaryID is the fixed, stable identifier of the primary caret.
const PrimaryID = "primary"

// Caret is a single insertion point or selection range within the buffer.
// Start and End are always normalized so Start <= End; the anchor/head
// direction of the selection (which end the user is actively extending) is
// tracked separately via Head for callers that need it.
type Caret struct {
	ID        string
	Start     ByteOffset
	End       ByteOffset
	Head      ByteOffset // Start or End: the end that moves when extending
	IsPrimary bool
}

// NewCaret creates a collapsed caret (no selection) at offset, with the given id.
func NewCaret(id string, offset ByteOffset) Caret {
	if offset < 0 {
		offset = 0
	}
	return Caret{ID: id, Start: offset, End: offset, Head: offset}
}

// NewPrimaryCaret creates the collapsed primary caret at offset.
func NewPrimaryCaret(offset ByteOffset) Caret {
	c := NewCaret(PrimaryID, offset)
	c.IsPrimary = true
	return c
}

// NewRangeCaret creates a caret spanning [start, end), with head at end
// (forward selection). If end < start, the range is swapped and head tracks
// the originally-requested head position.
func NewRangeCaret(id string, start, end ByteOffset) Caret {
	head := end
	if start > end {
		start, end = end, start
	}
	return Caret{ID: id, Start: start, End: end, Head: head}
}

// IsEmpty reports whether the caret has no selection extent.
func (c Caret) IsEmpty() bool {
	return c.Start == c.End
}

// Len returns the length of the caret's selection in bytes.
func (c Caret) Len() ByteOffset {
	return c.End - c.Start
}

// Range returns the caret's range.
func (c Caret) Range() Range {
	return Range{Start: c.Start, End: c.End}
}

// Anchor returns the end of the selection opposite Head.
func (c Caret) Anchor() ByteOffset {
	if c.Head == c.Start {
		return c.End
	}
	return c.Start
}

// Clamp returns a caret with Start/End/Head clamped to [0, maxOffset].
func (c Caret) Clamp(maxOffset ByteOffset) Caret {
	clampOne := func(v ByteOffset) ByteOffset {
		if v < 0 {
			return 0
		}
		if v > maxOffset {
			return maxOffset
		}
		return v
	}
	c.Start = clampOne(c.Start)
	c.End = clampOne(c.End)
	c.Head = clampOne(c.Head)
	if c.Start > c.End {
		c.Start, c.End = c.End, c.Start
	}
	return c
}

// MoveTo returns a collapsed caret at offset, keeping the same id/primary flag.
func (c Caret) MoveTo(offset ByteOffset) Caret {
	if offset < 0 {
		offset = 0
	}
	c.Start, c.End, c.Head = offset, offset, offset
	return c
}

// Collapse collapses the caret's selection to its head.
func (c Caret) Collapse() Caret {
	return c.MoveTo(c.Head)
}

// Touches reports whether other starts at or before c's end — the strict
// merge predicate used by normalization. On a Start-sorted list, callers
// call last.Touches(cur): cur.Start <= last.End.
func (c Caret) Touches(other Caret) bool {
	return other.Start <= c.End
}

// Merge returns a caret covering the union of c and other. The merged
// primary flag is the logical OR of the inputs; the surviving id is c's
// (the earlier-sorted caret), unless only other is primary, in which case
// other's id/head win so the primary caret's identity is preserved.
func (c Caret) Merge(other Caret) Caret {
	start, end := c.Start, c.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	merged := Caret{
		ID:        c.ID,
		Start:     start,
		End:       end,
		Head:      c.Head,
		IsPrimary: c.IsPrimary || other.IsPrimary,
	}
	if other.IsPrimary && !c.IsPrimary {
		merged.ID = other.ID
		merged.Head = other.Head
	}
	return merged
}

// String returns a human-readable representation.
func (c Caret) String() string {
	tag := ""
	if c.IsPrimary {
		tag = "*"
	}
	if c.IsEmpty() {
		return fmt.Sprintf("Caret%s(%s@%d)", tag, c.ID, c.Start)
	}
	return fmt.Sprintf("Caret%s(%s@%d..%d)", tag, c.ID, c.Start, c.End)
}
