package ops

import "github.com/quillcore/editor/internal/engine/operation"

// Normalize applies the per-descriptor normalization rules shared by every
// operation module: text defaults to the first descriptor's text, selStart/
// selEnd are clamped to the text length and swapped if reversed, and
// selection defaults to the substring it names.
func Normalize(list *operation.List) {
	if list == nil || len(list.Descriptors) == 0 {
		return
	}
	sharedText := list.Descriptors[0].Text
	for i := range list.Descriptors {
		d := &list.Descriptors[i]
		if d.Text == "" {
			d.Text = sharedText
		}
		if d.SelStart > d.SelEnd {
			d.SelStart, d.SelEnd = d.SelEnd, d.SelStart
		}
		textLen := ByteOffset(len(d.Text))
		d.SelStart = clampOffset(d.SelStart, textLen)
		d.SelEnd = clampOffset(d.SelEnd, textLen)
		if d.Selection == "" && d.SelEnd > d.SelStart {
			d.Selection = d.Text[d.SelStart:d.SelEnd]
		}
	}
}

func clampOffset(v, max ByteOffset) ByteOffset {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func ptrO(v ByteOffset) *ByteOffset {
	return &v
}

// safeSlice returns text[start:end], clamped to text's bounds; an invalid
// or empty range after clamping returns "".
func safeSlice(text string, start, end ByteOffset) string {
	textLen := ByteOffset(len(text))
	start = clampOffset(start, textLen)
	end = clampOffset(end, textLen)
	if start >= end {
		return ""
	}
	return text[start:end]
}
