package ops

import "github.com/quillcore/editor/internal/engine/operation"

// ReplaceSelection cuts each descriptor's selection and replaces it with
// Params.Text, leaving the caret selecting the inserted range rather than
// collapsing it, unlike InsertText.
func ReplaceSelection(ev Event, list *operation.List) {
	Normalize(list)
	for i := range list.Descriptors {
		d := &list.Descriptors[i]
		d.CutStart = ptrO(d.SelStart)
		d.CutEnd = ptrO(d.SelEnd)
		repl := ev.Params.Text
		d.Replacement = &repl
		start := d.SelStart
		end := start + ByteOffset(len(repl))
		d.NewSelStart = ptrO(start)
		d.NewSelEnd = ptrO(end)
	}
}
