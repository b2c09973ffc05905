package ops

import "github.com/quillcore/editor/internal/engine/operation"

// ReplaceAll acts only on the first descriptor, replacing the entire
// document with Params.Text; every subsequent descriptor is marked inactive
// since a whole-document replace leaves no per-caret edit to apply. The
// resulting selection is placed per Params.Select: "all" selects the new
// text, "start"/"end" collapse the caret to either edge, and anything else
// ("none" or unrecognized) restores the first caret's original selection.
func ReplaceAll(ev Event, list *operation.List) {
	Normalize(list)
	if len(list.Descriptors) == 0 {
		return
	}
	d := &list.Descriptors[0]
	textLen := ByteOffset(len(d.Text))
	d.CutStart = ptrO(0)
	d.CutEnd = ptrO(textLen)
	repl := ev.Params.Text
	d.Replacement = &repl
	replLen := ByteOffset(len(repl))

	switch ev.Params.Select {
	case "all":
		d.NewSelStart = ptrO(0)
		d.NewSelEnd = ptrO(replLen)
	case "start":
		d.NewSelStart = ptrO(0)
		d.NewSelEnd = ptrO(0)
	case "end":
		d.NewSelStart = ptrO(replLen)
		d.NewSelEnd = ptrO(replLen)
	default:
		d.NewSelStart = ptrO(d.SelStart)
		d.NewSelEnd = ptrO(d.SelEnd)
	}

	for i := 1; i < len(list.Descriptors); i++ {
		list.Descriptors[i].Replacement = nil
	}
}
