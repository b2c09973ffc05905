package input

import (
	"sync"
	"time"

	"github.com/quillcore/editor/internal/engine/caret"
	"github.com/quillcore/editor/internal/plugin"
)

// Host is the narrow engine surface the Pipeline dispatches against:
// undo/redo, secondary-caret clearing, and the live caret set, matching
// the subset of variant.Base the input layer needs without importing the
// concrete variant package.
type Host interface {
	Undo() bool
	Redo() bool
	ClearSecondary()
	Carets() *caret.Set
	Plugins() *plugin.Registry
}

// SelectionWatchInterval is the polling period for the selectionChange
// fallback: hosts that don't fire a native "select" event for
// every selection change (keyboard arrow movement in a plain textarea,
// for instance) still get selectionChange delivered within this window.
const SelectionWatchInterval = 60 * time.Millisecond

// Pipeline receives host-delivered raw surface events and dispatches them
// through the plugin hook chain before applying their engine-level effect.
// Grounded on this codebase's dispatcher.Dispatcher + dispatcher/hook.Manager
// pre/post phase pair, generalized from keybinding-action dispatch to raw
// surface-event dispatch.
type Pipeline struct {
	mu sync.Mutex

	host Host
	sel  caret.HostSelection

	composing bool
	lastSel   caret.Range

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
}

// New creates a Pipeline dispatching against host. sel, if non-nil, backs
// the selectionChange polling fallback.
func New(host Host, sel caret.HostSelection) *Pipeline {
	return &Pipeline{host: host, sel: sel}
}

// Start launches the 60ms polling goroutine that fires selectionChange
// when the surface's native selection moved without a select event. Safe
// to call at most once; a nil sel makes Start a no-op.
func (p *Pipeline) Start() {
	if p.sel == nil {
		return
	}
	p.mu.Lock()
	if p.ticker != nil {
		p.mu.Unlock()
		return
	}
	p.ticker = time.NewTicker(SelectionWatchInterval)
	p.stop = make(chan struct{})
	ticker := p.ticker
	stop := p.stop
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for {
			select {
			case <-ticker.C:
				p.pollSelection()
			case <-stop:
				return
			}
		}
	}()
}

// Destroy stops the polling goroutine, matching tracked-
// timer destruction discipline. Safe to call multiple times.
func (p *Pipeline) Destroy() {
	p.mu.Lock()
	ticker := p.ticker
	stop := p.stop
	p.ticker = nil
	p.stop = nil
	p.mu.Unlock()

	if ticker == nil {
		return
	}
	ticker.Stop()
	close(stop)
	p.wg.Wait()
}

func (p *Pipeline) pollSelection() {
	start, end, ok := p.sel.Selection()
	if !ok {
		return
	}
	cur := caret.Range{Start: start, End: end}
	p.mu.Lock()
	changed := cur != p.lastSel
	p.lastSel = cur
	p.mu.Unlock()
	if changed {
		p.Dispatch(Event{Kind: KindSelect})
	}
}

// beforeHookFor and afterHookFor map a raw Kind to its named before/after
// hooks; kinds with no dedicated hook pair (scroll, compositionStart/End)
// return "" and are not dispatched through the hook chain.
func beforeHookFor(k Kind) plugin.HookName {
	switch k {
	case KindBeforeInput:
		return plugin.HookBeforeInput
	case KindKeydown:
		return plugin.HookBeforeKeydown
	case KindKeypress:
		return plugin.HookBeforeKeypress
	case KindClick:
		return plugin.HookBeforeClick
	case KindFocus:
		return plugin.HookFocus
	case KindBlur:
		return plugin.HookBlur
	case KindSelect:
		return plugin.HookSelectionChange
	default:
		return ""
	}
}

func afterHookFor(k Kind) plugin.HookName {
	switch k {
	case KindInput:
		return plugin.HookAfterInput
	case KindKeydown:
		return plugin.HookAfterKeydown
	case KindKeypress:
		return plugin.HookAfterKeypress
	case KindClick:
		return plugin.HookAfterClick
	default:
		return ""
	}
}

// Dispatch routes a single raw event through the before-hook, the
// pipeline's own interception rules, and the after-hook.
//
// IME composition (between compositionStart and compositionEnd) suppresses
// the multi-caret secondary-drop fallback below, since a composed input
// event is an intermediate state the user hasn't committed yet.
func (p *Pipeline) Dispatch(ev Event) {
	switch ev.Kind {
	case KindCompositionStart:
		p.mu.Lock()
		p.composing = true
		p.mu.Unlock()
		return
	case KindCompositionEnd:
		p.mu.Lock()
		p.composing = false
		p.mu.Unlock()
		return
	}

	if name := beforeHookFor(ev.Kind); name != "" {
		res := p.host.Plugins().RunHook(name, &ev, nil)
		if res.Prevented {
			return
		}
	}

	p.intercept(ev)

	if name := afterHookFor(ev.Kind); name != "" {
		p.host.Plugins().RunHook(name, &ev, nil)
	}

	if ev.Kind == KindInput {
		p.mu.Lock()
		composing := p.composing
		p.mu.Unlock()
		// A raw "input" event not carried through the operation executor
		// (a host-native edit the engine didn't author, e.g. autofill)
		// only ever touches the primary caret; any secondary carets are
		// now stale against the buffer and must be dropped rather than
		// silently misaligned — except mid-composition, where the commit
		// is still pending.
		if !composing {
			p.host.ClearSecondary()
		}
	}
}

// intercept applies the pipeline's own fixed behaviors: undo/redo
// shortcuts and Escape-clears-secondary. These run between the before and
// after hooks so a plugin can still veto or observe the raw keydown, but
// the shortcut itself is not itself hookable as a separate named event.
func (p *Pipeline) intercept(ev Event) {
	if ev.Kind != KindKeydown {
		return
	}
	switch {
	case ev.Mods.CtrlOrCmd() && ev.Key == "z" && !ev.Mods.Shift:
		p.host.Undo()
	case ev.Mods.CtrlOrCmd() && (ev.Key == "y" || (ev.Key == "z" && ev.Mods.Shift)):
		p.host.Redo()
	case ev.Key == "Escape":
		p.host.ClearSecondary()
	}
}
