// Package overlay implements the editor's absolute-positioned draw surface:
// secondary-caret rectangles, selection rectangles, and plugin-owned
// decorations. Present only in the Framed variant.
//
// It is grounded on the renderer's overlay manager
// (internal/renderer/overlay/manager.go), generalized from this codebase's
// terminal-cell overlay model (ScreenRect, diff/ghost-text ANSI spans) to
// geometry.Rect pixel rectangles, because this engine draws against a host
// surface's pixel layout rather than a fixed character grid. Ghost text and
// diff previews are out of scope (no inline AI suggestion UI in this
// engine); what survives is the owner-tagged decoration lifecycle from
// ghost.go, generalized to any plugin-supplied decoration.
package overlay
