package ops

import "github.com/quillcore/editor/internal/engine/operation"

// FocusEditor marks every descriptor inactive; its only effect is the
// host re-focusing the surface after the no-op executor pass.
func FocusEditor(ev Event, list *operation.List) {
	for i := range list.Descriptors {
		list.Descriptors[i].Replacement = nil
	}
}
