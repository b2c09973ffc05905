package ops

import (
	"strings"

	"github.com/quillcore/editor/internal/engine/operation"
)

// WrapSelection toggles Params.Prefix/Params.Suffix around each
// descriptor's selection. A collapsed caret surrounded by the markers
// strips them; otherwise it inserts both with the caret landing between
// them. A non-empty selection already bounded by the markers (inside or
// just outside its range) strips them; otherwise it wraps the selection,
// optionally trimming surrounding whitespace into the wrap per
// Params.TrimSelection ("no", "start", "end", "yes").
func WrapSelection(ev Event, list *operation.List) {
	Normalize(list)
	for i := range list.Descriptors {
		applyWrapSelection(&list.Descriptors[i], ev.Params.Prefix, ev.Params.Suffix, ev.Params.TrimSelection)
	}
}

func applyWrapSelection(d *operation.Descriptor, prefix, suffix, trim string) {
	text := d.Text
	sel := d.Selection

	if d.SelStart == d.SelEnd {
		wrapCollapsedCaret(d, text, prefix, suffix)
		return
	}

	if len(sel) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(sel, prefix) && strings.HasSuffix(sel, suffix) {
		stripped := sel[len(prefix) : len(sel)-len(suffix)]
		d.CutStart = ptrO(d.SelStart)
		d.CutEnd = ptrO(d.SelEnd)
		d.Replacement = &stripped
		newEnd := d.SelStart + ByteOffset(len(stripped))
		d.NewSelStart = ptrO(d.SelStart)
		d.NewSelEnd = ptrO(newEnd)
		return
	}

	before := safeSlice(text, d.SelStart-ByteOffset(len(prefix)), d.SelStart)
	after := safeSlice(text, d.SelEnd, d.SelEnd+ByteOffset(len(suffix)))
	if prefix != "" && before == prefix && after == suffix {
		start := d.SelStart - ByteOffset(len(prefix))
		end := d.SelEnd + ByteOffset(len(suffix))
		repl := sel
		d.CutStart = ptrO(start)
		d.CutEnd = ptrO(end)
		d.Replacement = &repl
		newEnd := start + ByteOffset(len(repl))
		d.NewSelStart = ptrO(start)
		d.NewSelEnd = ptrO(newEnd)
		return
	}

	leadStart, trailEnd := d.SelStart, d.SelEnd
	trimmed := sel
	switch trim {
	case "start":
		leadStart, trimmed = trimLeadingSpace(trimmed, leadStart)
	case "end":
		trimmed, trailEnd = trimTrailingSpace(trimmed, trailEnd)
	case "yes":
		leadStart, trimmed = trimLeadingSpace(trimmed, leadStart)
		trimmed, trailEnd = trimTrailingSpace(trimmed, trailEnd)
	}
	wrapped := prefix + trimmed + suffix
	d.CutStart = ptrO(leadStart)
	d.CutEnd = ptrO(trailEnd)
	d.Replacement = &wrapped
	newEnd := leadStart + ByteOffset(len(wrapped))
	d.NewSelStart = ptrO(leadStart)
	d.NewSelEnd = ptrO(newEnd)
}

func wrapCollapsedCaret(d *operation.Descriptor, text, prefix, suffix string) {
	before := safeSlice(text, d.SelStart-ByteOffset(len(prefix)), d.SelStart)
	after := safeSlice(text, d.SelEnd, d.SelEnd+ByteOffset(len(suffix)))
	if prefix != "" && before == prefix && after == suffix {
		start := d.SelStart - ByteOffset(len(prefix))
		end := d.SelEnd + ByteOffset(len(suffix))
		empty := ""
		d.CutStart = ptrO(start)
		d.CutEnd = ptrO(end)
		d.Replacement = &empty
		d.NewSelStart = ptrO(start)
		d.NewSelEnd = ptrO(start)
		return
	}
	wrapped := prefix + suffix
	d.CutStart = ptrO(d.SelStart)
	d.CutEnd = ptrO(d.SelEnd)
	d.Replacement = &wrapped
	mid := d.SelStart + ByteOffset(len(prefix))
	d.NewSelStart = ptrO(mid)
	d.NewSelEnd = ptrO(mid)
}

func trimLeadingSpace(s string, start ByteOffset) (ByteOffset, string) {
	trimmed := strings.TrimLeft(s, " \t\n\r")
	start += ByteOffset(len(s) - len(trimmed))
	return start, trimmed
}

func trimTrailingSpace(s string, end ByteOffset) (string, ByteOffset) {
	trimmed := strings.TrimRight(s, " \t\n\r")
	end -= ByteOffset(len(s) - len(trimmed))
	return trimmed, end
}
