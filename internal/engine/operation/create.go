package operation

import (
	"sort"

	"github.com/quillcore/editor/internal/engine/caret"
)

// Source is the narrow read-only view CreateTextOperation needs of the live
// engine state: the current document text and the active caret set.
type Source interface {
	Text() string
	Carets() *caret.Set
}

// CreateTextOperation snapshots the current text and caret set into a List
// of descriptors, one per caret, sorted by ascending SelStart. Every
// descriptor's Text field is the same document snapshot. Replacement,
// CutStart/CutEnd, and NewSelStart/NewSelEnd are left nil: callers (the ops
// modules) fill those in to describe the edit they want, then pass the list
// to Executor.Execute.
//
// For a single caret, the descriptor's fields are also mirrored onto
// List.Legacy so callers that treat the list itself as the descriptor (the
// host protocol's legacy single-caret shape) see the same values.
func CreateTextOperation(src Source) *List {
	text := src.Text()
	carets := src.Carets().All()

	descriptors := make([]Descriptor, len(carets))
	for i, c := range carets {
		sel := text
		if int(c.Start) <= len(text) && int(c.End) <= len(text) && c.Start <= c.End {
			sel = text[c.Start:c.End]
		} else {
			sel = ""
		}
		descriptors[i] = Descriptor{
			Text:        text,
			SelStart:    c.Start,
			SelEnd:      c.End,
			Selection:   sel,
			CursorID:    c.ID,
			CursorIndex: i,
		}
	}

	sort.Stable(byAscendingSelStart(descriptors))
	for i := range descriptors {
		descriptors[i].CursorIndex = i
	}

	list := &List{Descriptors: descriptors}
	if len(descriptors) == 1 {
		legacy := descriptors[0]
		list.Legacy = &legacy
	}
	return list
}
