package ops

import (
	"strings"

	"github.com/quillcore/editor/internal/engine/operation"
)

const (
	linkPrefix = "[["
	linkSuffix = "]]"
)

// MakeLink toggles a wiki-style [[link]] around each descriptor's
// selection: if the selection is already surrounded by the markers just
// outside its bounds, or the selection itself begins and ends with them,
// the markers are stripped; otherwise they're added.
func MakeLink(ev Event, list *operation.List) {
	Normalize(list)
	for i := range list.Descriptors {
		applyMakeLink(&list.Descriptors[i])
	}
}

func applyMakeLink(d *operation.Descriptor) {
	text := d.Text
	sel := d.Selection

	before := safeSlice(text, d.SelStart-ByteOffset(len(linkPrefix)), d.SelStart)
	after := safeSlice(text, d.SelEnd, d.SelEnd+ByteOffset(len(linkSuffix)))

	switch {
	case before == linkPrefix && after == linkSuffix:
		start := d.SelStart - ByteOffset(len(linkPrefix))
		end := d.SelEnd + ByteOffset(len(linkSuffix))
		repl := sel
		d.CutStart = ptrO(start)
		d.CutEnd = ptrO(end)
		d.Replacement = &repl
		newEnd := start + ByteOffset(len(repl))
		d.NewSelStart = ptrO(start)
		d.NewSelEnd = ptrO(newEnd)

	case len(sel) >= len(linkPrefix)+len(linkSuffix) &&
		strings.HasPrefix(sel, linkPrefix) && strings.HasSuffix(sel, linkSuffix):
		stripped := sel[len(linkPrefix) : len(sel)-len(linkSuffix)]
		d.CutStart = ptrO(d.SelStart)
		d.CutEnd = ptrO(d.SelEnd)
		d.Replacement = &stripped
		newEnd := d.SelStart + ByteOffset(len(stripped))
		d.NewSelStart = ptrO(d.SelStart)
		d.NewSelEnd = ptrO(newEnd)

	default:
		wrapped := linkPrefix + sel + linkSuffix
		d.CutStart = ptrO(d.SelStart)
		d.CutEnd = ptrO(d.SelEnd)
		d.Replacement = &wrapped
		newEnd := d.SelStart + ByteOffset(len(wrapped))
		d.NewSelStart = ptrO(d.SelStart)
		d.NewSelEnd = ptrO(newEnd)
	}
}
