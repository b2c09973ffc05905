// Package variant assembles the two engine variants — Inline and Framed —
// as constructors over a shared Base that wires
// internal/engine/buffer, internal/engine/caret, internal/engine/undo,
// internal/engine/operation, internal/geometry, internal/overlay (Framed
// only), and internal/plugin into one addressable engine.
//
// Base is grounded on mutex-guarded engine.Engine facade:
// every exported method that touches buffer/caret state takes the same
// lock an operation Execute call holds, and hook dispatch happens with no
// lock held so a plugin handler can safely call back into the engine.
package variant
