package ops

import "github.com/quillcore/editor/internal/engine/operation"

// WrapLines expands each descriptor's selection to whole lines and toggles
// a Params.Prefix/Params.Suffix marker line pair around the block: if the
// line immediately before already reads Prefix and the line immediately
// after already reads Suffix, both marker lines are removed; otherwise the
// block is wrapped between two new marker lines.
func WrapLines(ev Event, list *operation.List) {
	Normalize(list)
	for i := range list.Descriptors {
		applyWrapLines(&list.Descriptors[i], ev.Params.Prefix, ev.Params.Suffix, ev.Params.CaseInsensitive)
	}
}

func applyWrapLines(d *operation.Descriptor, prefix, suffix string, caseInsensitive bool) {
	text := d.Text
	start, end := expandToLineBoundaries(text, d.SelStart, d.SelEnd)
	block := text[start:end]

	pStart, pEnd, pOk := previousLineBounds(text, start)
	nStart, nEnd, nOk := nextLineBounds(text, end)

	if pOk && nOk && lineEquals(text[pStart:pEnd], prefix, caseInsensitive) && lineEquals(text[nStart:nEnd], suffix, caseInsensitive) {
		cutStart := pStart
		cutEnd := nEnd
		if int(nEnd) < len(text) && text[nEnd] == '\n' {
			cutEnd = nEnd + 1
		}
		repl := block
		d.CutStart = ptrO(cutStart)
		d.CutEnd = ptrO(cutEnd)
		d.Replacement = &repl
		newStart := cutStart
		newEnd := cutStart + ByteOffset(len(repl))
		d.NewSelStart = ptrO(newStart)
		d.NewSelEnd = ptrO(newEnd)
		return
	}

	wrapped := prefix + "\n" + block + "\n" + suffix + "\n"
	d.CutStart = ptrO(start)
	d.CutEnd = ptrO(end)
	d.Replacement = &wrapped
	newStart := start + ByteOffset(len(prefix)) + 1
	newEnd := newStart + ByteOffset(len(block))
	d.NewSelStart = ptrO(newStart)
	d.NewSelEnd = ptrO(newEnd)
}

func lineEquals(line, marker string, caseInsensitive bool) bool {
	if !caseInsensitive {
		return line == marker
	}
	return foldCaser.String(line) == foldCaser.String(marker)
}
