package ops

import "github.com/quillcore/editor/internal/engine/operation"

// Name identifies one of the ten named operation modules.
type Name string

const (
	InsertTextOp      Name = "insert-text"
	ReplaceSelectionOp Name = "replace-selection"
	ReplaceAllOp      Name = "replace-all"
	MakeLinkOp        Name = "make-link"
	WrapSelectionOp   Name = "wrap-selection"
	PrefixLinesOp     Name = "prefix-lines"
	WrapLinesOp       Name = "wrap-lines"
	ExciseOp          Name = "excise"
	SaveSelectionOp   Name = "save-selection"
	FocusEditorOp     Name = "focus-editor"
)

// registry maps every named operation to its implementation as a plain
// lookup table since each ops module name is already unique and
// self-contained.
var registry = map[Name]Op{
	InsertTextOp:       InsertText,
	ReplaceSelectionOp: ReplaceSelection,
	ReplaceAllOp:       ReplaceAll,
	MakeLinkOp:         MakeLink,
	WrapSelectionOp:    WrapSelection,
	PrefixLinesOp:      PrefixLines,
	WrapLinesOp:        WrapLines,
	ExciseOp:           Excise,
	SaveSelectionOp:    SaveSelection,
	FocusEditorOp:      FocusEditor,
}

// Lookup returns the operation module registered under name, and whether
// one was found.
func Lookup(name Name) (Op, bool) {
	op, ok := registry[name]
	return op, ok
}

// Apply looks up name and runs it against list, returning false if name
// isn't a registered operation.
func Apply(name Name, ev Event, list *operation.List) bool {
	op, ok := Lookup(name)
	if !ok {
		return false
	}
	op(ev, list)
	return true
}
