// Package ops implements the C9 operation modules: stateless transforms
// that accept an Event and a descriptor list and fill in each descriptor's
// cut range, replacement, and post-edit caret, ready for
// operation.Executor.Execute.
//
// Grounded on this codebase's dispatcher/handlers/editor and
// dispatcher/handlers/operator packages (verb-plus-motion handlers
// producing a buffer mutation), adapted from this codebase's direct
// engine.Insert/engine.Delete calls to filling in operation.Descriptor
// fields the executor applies later in one pass.
package ops

import "github.com/quillcore/editor/internal/engine/operation"

// ByteOffset aliases operation.ByteOffset for convenience.
type ByteOffset = operation.ByteOffset

// Params carries the user-supplied arguments an operation module
// interprets; unused fields for a given op are left zero.
type Params struct {
	Text            string
	Separator       string
	Prefix          string
	Suffix          string
	TrimSelection   string // "no", "start", "end", "yes"
	Select          string // replace-all: "all", "start", "end", "none"
	Source          string // excise: tag applied to the new document
	Format          string // excise: "wiki" (default), "markdown", "macro"
	CaseInsensitive bool   // prefix-lines/wrap-lines line-prefix comparison
	TargetTitle     string // save-selection destination document
}

// Op is the shared shape of every operation module: mutate each descriptor
// in list in place according to ev's parameters.
type Op func(ev Event, list *operation.List)
