// Package plugin implements the editor's plugin runtime:
// discovery, per-variant capability gating, construction, registration,
// enable/disable, bulk configuration, and the ordered hook-dispatch
// protocol plugins hook into.
//
// It is grounded on internal/plugin/manager.go (load/activate
// lifecycle with its isolate-and-log error handling) and
// internal/dispatcher/hook/manager.go (registration-ordered hook chains
// with a prevent/replace-data return contract), generalized from a
// "load a compiled Go plugin from a directory" model to a "discover
// in-process editor-plugin modules, gate by variant support, construct
// against a live engine" model.
//
// Two plugin kinds share one Registry: native plugins are Go values
// implementing Module/Plugin directly; scripted plugins are on-disk
// manifests executed through internal/plugin/script, which bridges into
// github.com/yuin/gopher-lua via this codebase's existing internal/plugin/lua
// sandbox and bridge and internal/plugin/security's capability checker —
// kept and adapted rather than rewritten, since both packages are already
// general-purpose and carry no quillcore-specific coupling.
//
// Hook dispatch (hooks.go) implements the fourteen named lifecycle hooks:
// beforeInput, afterInput, beforeKeydown, afterKeydown, beforeKeypress,
// afterKeypress, beforeOperation, afterOperation, beforeClick, afterClick,
// focus, blur, selectionChange, render. Every handler call is recovered: a
// panicking handler is logged and the chain continues with the next
// handler, matching manager-level panic isolation.
package plugin
