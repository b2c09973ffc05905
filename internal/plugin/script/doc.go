// Package script adapts a manifest-described, on-disk Lua plugin into
// the native plugin.Module/plugin.Plugin contract, so the registry
// treats scripted and native plugins identically.
//
// It is grounded on internal/plugin/host.go (Host's
// Load/Activate/Deactivate/Unload lifecycle, setup/activate/deactivate
// global-function calling convention, and config-table bridging) kept
// almost entirely intact — the Lua runtime plumbing in
// internal/plugin/lua is domain-agnostic and needed no behavior change,
// only a new caller shape: instead of an external Manager driving
// Load/Activate/Deactivate/Unload by hand, a Host here is constructed
// once from a Module.Create call and exposes its fourteen hooks through
// HookFuncs(), calling into Lua functions named on_<hookname> alongside
// the original setup/activate/deactivate globals.
package script
