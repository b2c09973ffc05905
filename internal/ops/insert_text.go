package ops

import "github.com/quillcore/editor/internal/engine/operation"

// InsertText cuts each descriptor's selection and replaces it with
// Params.Text, collapsing the caret immediately after the inserted text.
func InsertText(ev Event, list *operation.List) {
	Normalize(list)
	for i := range list.Descriptors {
		d := &list.Descriptors[i]
		d.CutStart = ptrO(d.SelStart)
		d.CutEnd = ptrO(d.SelEnd)
		repl := ev.Params.Text
		d.Replacement = &repl
		end := d.SelStart + ByteOffset(len(repl))
		d.NewSelStart = ptrO(end)
		d.NewSelEnd = ptrO(end)
	}
}
