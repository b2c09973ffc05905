package ops

import (
	"strings"

	"github.com/quillcore/editor/internal/engine/operation"
	"golang.org/x/text/cases"
)

// foldCaser folds case for the case-insensitive line-prefix comparison;
// allocated once since cases.Caser values are safe for concurrent use.
var foldCaser = cases.Fold()

// PrefixLines expands each descriptor's selection to whole lines and
// toggles Params.Prefix on every line: if every line already starts with
// it, the prefix is stripped; otherwise it's prepended to every line.
func PrefixLines(ev Event, list *operation.List) {
	Normalize(list)
	for i := range list.Descriptors {
		applyPrefixLines(&list.Descriptors[i], ev.Params.Prefix, ev.Params.CaseInsensitive)
	}
}

func applyPrefixLines(d *operation.Descriptor, prefix string, caseInsensitive bool) {
	text := d.Text
	start, end := expandToLineBoundaries(text, d.SelStart, d.SelEnd)
	block := text[start:end]
	lines := strings.Split(block, "\n")

	allPrefixed := prefix != ""
	for _, ln := range lines {
		if !hasLinePrefix(ln, prefix, caseInsensitive) {
			allPrefixed = false
			break
		}
	}

	var result string
	var delta ByteOffset
	if allPrefixed {
		stripped := make([]string, len(lines))
		for i, ln := range lines {
			stripped[i] = ln[len(prefix):]
		}
		result = strings.Join(stripped, "\n")
		delta = -ByteOffset(len(prefix))
	} else {
		prefixed := make([]string, len(lines))
		for i, ln := range lines {
			prefixed[i] = prefix + ln
		}
		result = strings.Join(prefixed, "\n")
		delta = ByteOffset(len(prefix))
	}

	d.CutStart = ptrO(start)
	d.CutEnd = ptrO(end)
	d.Replacement = &result
	newSelStart := d.SelStart + delta
	newSelEnd := d.SelEnd + delta*ByteOffset(len(lines))
	d.NewSelStart = ptrO(newSelStart)
	d.NewSelEnd = ptrO(newSelEnd)
}

func hasLinePrefix(line, prefix string, caseInsensitive bool) bool {
	if !caseInsensitive {
		return strings.HasPrefix(line, prefix)
	}
	return strings.HasPrefix(foldCaser.String(line), foldCaser.String(prefix))
}
