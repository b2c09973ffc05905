package ops

import (
	"fmt"

	"github.com/quillcore/editor/internal/engine/operation"
	"github.com/quillcore/editor/internal/hostapi"
)

// Excise moves each descriptor's non-empty selection out of the buffer and
// into a new document in ev.Store, replacing it with a link back to that
// document. Empty selections are left untouched (marked inactive). A nil
// Store still produces the link text but skips the document write.
func Excise(ev Event, list *operation.List) {
	Normalize(list)
	for i := range list.Descriptors {
		d := &list.Descriptors[i]
		if d.SelStart == d.SelEnd {
			d.Replacement = nil
			continue
		}

		title := GenerateNewTitle(ev.Store, "New Excerpt")
		if ev.Store != nil {
			doc := hostapi.Document{Title: title, Text: d.Selection}
			if ev.Params.Source != "" {
				doc.Tags = []string{ev.Params.Source}
			}
			_ = ev.Store.AddDocument(doc)
		}

		link := formatExciseLink(title, ev.Params.Format)
		d.CutStart = ptrO(d.SelStart)
		d.CutEnd = ptrO(d.SelEnd)
		d.Replacement = &link
		newEnd := d.SelStart + ByteOffset(len(link))
		d.NewSelStart = ptrO(newEnd)
		d.NewSelEnd = ptrO(newEnd)
	}
}

// GenerateNewTitle returns base if it names no existing document in store,
// else appends an incrementing suffix until it finds one that doesn't. An
// empty base is replaced by "New Excerpt"; a nil store returns the base
// without checking it for collisions.
func GenerateNewTitle(store hostapi.Store, base string) string {
	if base == "" {
		base = "New Excerpt"
	}
	if store == nil || !store.DocumentExists(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s %d", base, i)
		if !store.DocumentExists(candidate) {
			return candidate
		}
	}
}

func formatExciseLink(title, format string) string {
	switch format {
	case "markdown":
		return "[[" + title + "]]"
	case "macro":
		return `<<macro "` + title + `">>`
	default:
		return "{{" + title + "}}"
	}
}
