package ops

import (
	"strings"

	"github.com/quillcore/editor/internal/engine/operation"
)

// SaveSelection concatenates every descriptor's selection with
// Params.Separator and writes the result into ev.Store under
// Params.TargetTitle. It never mutates the buffer: every descriptor is
// marked inactive.
func SaveSelection(ev Event, list *operation.List) {
	Normalize(list)
	parts := make([]string, len(list.Descriptors))
	for i, d := range list.Descriptors {
		parts[i] = d.Selection
	}
	combined := strings.Join(parts, ev.Params.Separator)

	if ev.Store != nil && ev.Params.TargetTitle != "" {
		_ = ev.Store.SetText(ev.Params.TargetTitle, combined)
	}

	for i := range list.Descriptors {
		list.Descriptors[i].Replacement = nil
	}
}
