package caret

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/quillcore/editor/internal/engine/buffer"
)

// Edit is an alias for buffer.Edit for convenience.
type Edit = buffer.Edit

var secondaryCounter int64

// nextSecondaryID returns a process-unique id for a new secondary caret.
// Ids are never reused, so stale references from a previous Set generation
// can never alias a different caret.
func nextSecondaryID() string {
	n := atomic.AddInt64(&secondaryCounter, 1)
	return fmt.Sprintf("secondary-%d", n)
}

// Set is an ordered, non-overlapping collection of carets with exactly one
// primary. All mutators renormalize: clamp, sort by Start, and merge any
// touching/overlapping carets (see doc.go for the merge predicate).
type Set struct {
	carets []Caret
}

// NewSetAt creates a set with a single primary caret at offset.
func NewSetAt(offset ByteOffset) *Set {
	return &Set{carets: []Caret{NewPrimaryCaret(offset)}}
}

// NewSetFrom creates a set from an explicit slice of carets, normalizing it.
// If none of the input carets is marked primary, the first (post-sort)
// caret becomes primary.
func NewSetFrom(carets []Caret) *Set {
	cs := &Set{carets: append([]Caret(nil), carets...)}
	if len(cs.carets) == 0 {
		cs.carets = []Caret{NewPrimaryCaret(0)}
	}
	cs.normalize()
	return cs
}

// Primary returns the primary caret.
func (cs *Set) Primary() Caret {
	for _, c := range cs.carets {
		if c.IsPrimary {
			return c
		}
	}
	if len(cs.carets) > 0 {
		return cs.carets[0]
	}
	return Caret{}
}

// All returns a copy of every caret, sorted by Start.
func (cs *Set) All() []Caret {
	out := make([]Caret, len(cs.carets))
	copy(out, cs.carets)
	return out
}

// Count returns the number of carets.
func (cs *Set) Count() int { return len(cs.carets) }

// IsMulti reports whether more than one caret is active.
func (cs *Set) IsMulti() bool { return len(cs.carets) > 1 }

// Get returns the caret at index, or the zero Caret if out of range.
func (cs *Set) Get(index int) Caret {
	if index < 0 || index >= len(cs.carets) {
		return Caret{}
	}
	return cs.carets[index]
}

// ByID returns the caret with the given id.
func (cs *Set) ByID(id string) (Caret, bool) {
	for _, c := range cs.carets {
		if c.ID == id {
			return c, true
		}
	}
	return Caret{}, false
}

// Add appends a new secondary caret and normalizes. Added carets are always
// secondary even if positioned before the primary.
func (cs *Set) Add(start, end ByteOffset) string {
	id := nextSecondaryID()
	cs.carets = append(cs.carets, NewRangeCaret(id, start, end))
	cs.normalize()
	return id
}

// AddCaret appends an already-constructed caret (used when restoring a
// snapshot) and normalizes.
func (cs *Set) AddCaret(c Caret) {
	cs.carets = append(cs.carets, c)
	cs.normalize()
}

// Remove deletes the caret with id. It refuses when only one caret remains
// or when the target is the primary caret.
func (cs *Set) Remove(id string) bool {
	if len(cs.carets) <= 1 {
		return false
	}
	for i, c := range cs.carets {
		if c.ID != id {
			continue
		}
		if c.IsPrimary {
			return false
		}
		cs.carets = append(cs.carets[:i], cs.carets[i+1:]...)
		return true
	}
	return false
}

// ClearSecondary keeps only the primary caret (falling back to carets[0] if
// none is flagged primary).
func (cs *Set) ClearSecondary() {
	if len(cs.carets) <= 1 {
		return
	}
	p := cs.Primary()
	cs.carets = []Caret{p}
}

// SetAll replaces every caret with the given slice and normalizes.
func (cs *Set) SetAll(carets []Caret) {
	if len(carets) == 0 {
		cs.carets = []Caret{NewPrimaryCaret(0)}
		return
	}
	cs.carets = append([]Caret(nil), carets...)
	cs.normalize()
}

// SetPrimary replaces the primary caret's range, keeping secondaries, then
// normalizes (which may re-merge it with a touching secondary).
func (cs *Set) SetPrimary(start, end ByteOffset) {
	for i, c := range cs.carets {
		if c.IsPrimary {
			cs.carets[i] = NewRangeCaret(PrimaryID, start, end)
			cs.carets[i].IsPrimary = true
			cs.normalize()
			return
		}
	}
	cs.carets = []Caret{NewRangeCaret(PrimaryID, start, end)}
	cs.carets[0].IsPrimary = true
	cs.normalize()
}

// Clamp clamps every caret to [0, maxOffset] and normalizes.
func (cs *Set) Clamp(maxOffset ByteOffset) {
	for i := range cs.carets {
		cs.carets[i] = cs.carets[i].Clamp(maxOffset)
	}
	cs.normalize()
}

// CollapseAll collapses every caret to its head.
func (cs *Set) CollapseAll() {
	for i := range cs.carets {
		cs.carets[i] = cs.carets[i].Collapse()
	}
	cs.normalize()
}

// Clone returns a deep copy.
func (cs *Set) Clone() *Set {
	return &Set{carets: append([]Caret(nil), cs.carets...)}
}

// Equals reports whether two sets contain the same carets in the same order.
func (cs *Set) Equals(other *Set) bool {
	if other == nil || len(cs.carets) != len(other.carets) {
		return false
	}
	for i, c := range cs.carets {
		o := other.carets[i]
		if c.Start != o.Start || c.End != o.End || c.IsPrimary != o.IsPrimary {
			return false
		}
	}
	return true
}

// normalize clamps nothing (callers clamp explicitly), sorts by Start, and
// merges touching/overlapping carets using the strict predicate, OR-ing the
// primary flag across merges, then ensures exactly one survivor is primary.
func (cs *Set) normalize() {
	if len(cs.carets) == 0 {
		cs.carets = []Caret{NewPrimaryCaret(0)}
		return
	}
	for i, c := range cs.carets {
		if c.Start < 0 {
			c.Start = 0
		}
		if c.End < 0 {
			c.End = 0
		}
		if c.Start > c.End {
			c.Start, c.End = c.End, c.Start
		}
		cs.carets[i] = c
	}

	sort.SliceStable(cs.carets, func(i, j int) bool {
		return cs.carets[i].Start < cs.carets[j].Start
	})

	merged := cs.carets[:1]
	for _, c := range cs.carets[1:] {
		last := &merged[len(merged)-1]
		if last.Touches(c) {
			*last = last.Merge(c)
		} else {
			merged = append(merged, c)
		}
	}
	cs.carets = merged

	hasPrimary := false
	for _, c := range cs.carets {
		if c.IsPrimary {
			hasPrimary = true
			break
		}
	}
	if !hasPrimary {
		cs.carets[0].IsPrimary = true
		if cs.carets[0].ID == "" {
			cs.carets[0].ID = PrimaryID
		}
	}
}
