package operation

import "github.com/quillcore/editor/internal/engine/caret"

// ByteOffset is an alias for caret.ByteOffset for convenience.
type ByteOffset = caret.ByteOffset

// Descriptor is a single caret's edit record within an operation. Pointer
// fields distinguish "not set, use the default" from an explicit zero value,
// matching the host protocol's optional-property shape.
type Descriptor struct {
	// Text is the full document text at the moment the descriptor was built.
	Text string

	// SelStart/SelEnd is the caret's selection range at build time.
	SelStart ByteOffset
	SelEnd   ByteOffset
	// Selection is the selected substring, cached for convenience.
	Selection string

	// CutStart/CutEnd override the range to replace; nil means default to
	// SelStart/SelEnd.
	CutStart *ByteOffset
	CutEnd   *ByteOffset

	// Replacement is the text to substitute in for [CutStart, CutEnd). A nil
	// Replacement marks the descriptor inactive: Execute ignores it.
	Replacement *string

	// NewSelStart/NewSelEnd override where the caret lands after the edit;
	// nil means derive it from the replacement length.
	NewSelStart *ByteOffset
	NewSelEnd   *ByteOffset

	// CursorID and CursorIndex identify which caret this descriptor came
	// from, for hooks and diagnostics.
	CursorID    string
	CursorIndex int
}

// Active reports whether this descriptor carries a replacement and should be
// applied by Execute.
func (d Descriptor) Active() bool {
	return d.Replacement != nil
}

// cutRange returns the effective cut range, defaulting to the selection.
func (d Descriptor) cutRange() (start, end ByteOffset) {
	start, end = d.SelStart, d.SelEnd
	if d.CutStart != nil {
		start = *d.CutStart
	}
	if d.CutEnd != nil {
		end = *d.CutEnd
	}
	if start > end {
		start, end = end, start
	}
	return start, end
}

// List is an ordered collection of per-caret descriptors, sorted by
// ascending SelStart. For a single-caret operation the host protocol also
// allows the legacy shape: the same fields mirrored directly onto the list
// rather than onto element 0. Legacy mirrors a descriptor's fields onto a
// List for that compatibility shape.
type List struct {
	Descriptors []Descriptor

	// Legacy mirrors Descriptors[0]'s fields for single-caret callers that
	// treat the list itself as the descriptor. Set together with a
	// single-element Descriptors by CreateTextOperation; ignored by Execute
	// once there is more than one descriptor.
	Legacy *Descriptor
}

// byAscendingSelStart sorts descriptors by ascending SelStart, stable so
// carets with equal SelStart (shouldn't happen post-normalize) keep order.
type byAscendingSelStart []Descriptor

func (s byAscendingSelStart) Len() int      { return len(s) }
func (s byAscendingSelStart) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s byAscendingSelStart) Less(i, j int) bool {
	return s[i].SelStart < s[j].SelStart
}
