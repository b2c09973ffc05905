// Package input implements the C5 input pipeline: the raw
// surface-event dispatcher that sits between the host and the engine,
// grounded on dispatcher.Dispatcher + dispatcher/hook.Manager
// pre/post hook chain, adapted from keybinding-action dispatch to raw
// surface-event dispatch (Click, Input, Keydown, Keypress, Focus, Blur,
// Select, Scroll, BeforeInput, CompositionStart, CompositionEnd).
package input

// Kind names one of the raw surface events the host delivers to a Pipeline.
type Kind string

const (
	KindBeforeInput      Kind = "beforeInput"
	KindInput            Kind = "input"
	KindKeydown          Kind = "keydown"
	KindKeypress         Kind = "keypress"
	KindClick            Kind = "click"
	KindFocus            Kind = "focus"
	KindBlur             Kind = "blur"
	KindSelect           Kind = "select"
	KindScroll           Kind = "scroll"
	KindCompositionStart Kind = "compositionStart"
	KindCompositionEnd   Kind = "compositionEnd"
)

// Modifiers records which modifier keys were held during a keyboard event.
type Modifiers struct {
	Ctrl  bool
	Cmd   bool
	Shift bool
	Alt   bool
}

// CtrlOrCmd reports whether either platform's "primary" modifier was held,
// so Ctrl+Z and Cmd+Z are treated identically.
func (m Modifiers) CtrlOrCmd() bool {
	return m.Ctrl || m.Cmd
}

// Event is a single raw surface event delivered to a Pipeline.
type Event struct {
	Kind Kind
	Key  string // for keydown/keypress: the logical key name ("z", "Escape")
	Mods Modifiers
	X, Y float64 // for click/scroll
}
