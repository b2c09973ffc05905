// Package variant assembles the engine variants this module calls for:
// Inline (single-caret, no overlay) and Framed (multi-caret, owns the C6
// overlay). Both share a Base wiring buffer, caret set, undo log, operation
// executor, geometry service, and plugin registry, grounded on a dual
// split between a bare engine facade (used headlessly ≈ Inline) and a
// full TUI renderer surface (≈ Framed), generalized into two explicit
// constructors.
package variant

import (
	"fmt"
	"sync"

	"github.com/quillcore/editor/internal/engine/buffer"
	"github.com/quillcore/editor/internal/engine/caret"
	"github.com/quillcore/editor/internal/engine/operation"
	"github.com/quillcore/editor/internal/engine/rope"
	"github.com/quillcore/editor/internal/engine/tracking"
	"github.com/quillcore/editor/internal/engine/undo"
	"github.com/quillcore/editor/internal/geometry"
	"github.com/quillcore/editor/internal/logx"
	"github.com/quillcore/editor/internal/overlay"
	"github.com/quillcore/editor/internal/plugin"
)

// Kind names the two engine variants.
type Kind string

const (
	KindInline Kind = "inline"
	KindFramed Kind = "framed"
)

// PersistFunc is the host's save-to-storage callback, invoked after every
// committed operation and undo/redo application. A nil PersistFunc is a
// no-op.
type PersistFunc func(text string)

// Base is the shared engine state both variants embed: a text buffer, a
// caret set, an undo log, an operation executor wired to the plugin
// registry's hook chain, and a geometry service over the host's Surface.
// All exported methods are safe for concurrent use.
type Base struct {
	mu sync.RWMutex

	kind    Kind
	buf     *buffer.Buffer
	carets  *caret.Set
	log     *undo.Log
	geo     *geometry.Service
	exec    *operation.Executor
	plugins *plugin.Registry
	persist PersistFunc
	log_    *logx.Logger
	tracker *tracking.Tracker

	destroyed bool
	replaying bool
}

// Option configures a Base at construction.
type Option func(*Base)

// WithPersist sets the host save-to-storage callback.
func WithPersist(fn PersistFunc) Option {
	return func(b *Base) { b.persist = fn }
}

// WithInitialText seeds the buffer with text instead of starting empty.
func WithInitialText(text string) Option {
	return func(b *Base) {
		b.buf = buffer.NewBuffer()
		if text != "" {
			_, _ = b.buf.Insert(0, text)
		}
	}
}

// WithLogger overrides the default discard logger.
func WithLogger(l *logx.Logger) Option {
	return func(b *Base) { b.log_ = l }
}

// WithChangeTracking enables the timeline plugin's change history by
// recording every buffer edit into a tracking.Tracker. Untracked by
// default: most embedders have no use for edit-history queries.
func WithChangeTracking(opts ...tracking.TrackerOption) Option {
	return func(b *Base) { b.tracker = tracking.NewTracker(opts...) }
}

func newBase(kind Kind, surface geometry.Surface, opts ...Option) *Base {
	b := &Base{
		kind:   kind,
		buf:    buffer.NewBuffer(),
		carets: caret.NewSetAt(0),
		log:    undo.New(),
		log_:   logx.Discard,
	}
	for _, opt := range opts {
		opt(b)
	}
	if surface != nil {
		b.geo = geometry.NewService(surface)
	}
	b.plugins = plugin.NewRegistry(b, func(format string, args ...interface{}) {
		b.log_.Warn(fmt.Sprintf(format, args...), nil)
	})
	b.exec = operation.NewExecutor(b, hooksAdapter{b.plugins})
	return b
}

// Variant implements plugin.Engine.
func (b *Base) Variant() string { return string(b.kind) }

// Text returns the current buffer contents.
func (b *Base) Text() string {
	return b.buf.Text()
}

// Carets returns the live caret set. Callers must not retain the pointer
// across a Destroy.
func (b *Base) Carets() *caret.Set {
	return b.carets
}

// Len implements operation.Target.
func (b *Base) Len() buffer.ByteOffset {
	return b.buf.Len()
}

// Replace implements operation.Target by delegating to the buffer, and,
// when change tracking is enabled, recording the edit for the timeline
// plugin's history queries before it is applied.
func (b *Base) Replace(start, end buffer.ByteOffset, text string) (buffer.ByteOffset, error) {
	if b.tracker == nil {
		return b.buf.Replace(start, end, text)
	}

	before := b.buf.Text()
	beforeRope := rope.FromString(before)
	oldText := ""
	if s, e := clampRange(start, end, buffer.ByteOffset(len(before))); e > s {
		oldText = before[s:e]
	}

	newEnd, err := b.buf.Replace(start, end, text)
	if err != nil {
		return newEnd, err
	}

	rev := b.buf.RevisionID()
	change := changeFor(start, end, oldText, text, rev)
	b.tracker.RecordChange(rev, change, beforeRope)
	return newEnd, nil
}

// Tracker returns the change tracker, or nil if change tracking was not
// enabled via WithChangeTracking.
func (b *Base) Tracker() *tracking.Tracker {
	return b.tracker
}

// Revision returns the buffer's current revision ID, for a caller (the
// timeline plugin's snapshot commands) wanting to tag a tracking.Snapshot
// against the state as of "right now" rather than the last tracked edit.
func (b *Base) Revision() tracking.RevisionID {
	return b.buf.RevisionID()
}

func clampRange(start, end, max buffer.ByteOffset) (buffer.ByteOffset, buffer.ByteOffset) {
	if start < 0 {
		start = 0
	}
	if end > max {
		end = max
	}
	if start > end {
		start = end
	}
	return start, end
}

func changeFor(start, end buffer.ByteOffset, oldText, newText string, rev tracking.RevisionID) tracking.Change {
	switch {
	case oldText == "" && newText != "":
		return tracking.NewInsertChange(start, newText, rev)
	case newText == "" && oldText != "":
		return tracking.NewDeleteChange(start, end, oldText, rev)
	default:
		return tracking.NewReplaceChange(start, end, oldText, newText, rev)
	}
}

// CaptureBefore implements operation.Target / is also called directly by
// the input pipeline before a raw edit outside the operation protocol.
func (b *Base) CaptureBefore() {
	if b.replaying {
		return
	}
	b.log.CaptureBefore(undo.Snapshot{
		Text:   b.buf.Text(),
		Carets: b.carets.All(),
	})
}

// Record implements operation.Target.
func (b *Base) Record(forceSeparate bool) {
	if b.replaying {
		return
	}
	b.log.Record(undo.Snapshot{
		Text:   b.buf.Text(),
		Carets: b.carets.All(),
	}, forceSeparate)
}

// Persist implements operation.Target.
func (b *Base) Persist() {
	if b.persist != nil {
		b.persist(b.buf.Text())
	}
}

// Refit is a no-op at the Base level; Framed overrides it to mark the
// overlay dirty.
func (b *Base) Refit() {}

// Redraw is a no-op at the Base level; Framed overrides it to mark the
// overlay dirty.
func (b *Base) Redraw() {}

// Undo applies the previous snapshot, if any.
func (b *Base) Undo() bool {
	b.replaying = true
	defer func() { b.replaying = false }()
	return b.log.Undo(b)
}

// Redo re-applies the next snapshot, if any.
func (b *Base) Redo() bool {
	b.replaying = true
	defer func() { b.replaying = false }()
	return b.log.Redo(b)
}

// SetText implements undo.Sink.
func (b *Base) SetText(text string) {
	_, _ = b.buf.Replace(0, b.buf.Len(), text)
}

// SetCarets implements undo.Sink.
func (b *Base) SetCarets(carets []caret.Caret) {
	b.carets.SetAll(carets)
}

// Execute runs an operation descriptor list through the executor. The
// engine lock is released before dispatch so a hook handler or plugin
// callback can safely call back into the engine (Text, Carets, another
// Execute) without deadlocking, mirroring lock-released-
// around-Execute pattern in history.History.Undo.
func (b *Base) Execute(list *operation.List) error {
	b.mu.RLock()
	destroyed := b.destroyed
	b.mu.RUnlock()
	if destroyed {
		return fmt.Errorf("variant: engine destroyed")
	}
	return b.exec.Execute(list)
}

// CreateOperation snapshots text and carets into a fresh operation.List.
func (b *Base) CreateOperation() *operation.List {
	return operation.CreateTextOperation(b)
}

// Plugins returns the plugin registry.
func (b *Base) Plugins() *plugin.Registry {
	return b.plugins
}

// Geometry returns the geometry service, or nil if no Surface was supplied.
func (b *Base) Geometry() *geometry.Service {
	return b.geo
}

// Destroy tears down the plugin registry. Idempotent: a second call is a
// no-op, matching plugin.Host.Unload discipline.
func (b *Base) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.plugins.Destroy()
}

// hooksAdapter bridges operation.Hooks to plugin.Registry.RunHook.
type hooksAdapter struct {
	reg *plugin.Registry
}

func (h hooksAdapter) RunBeforeOperation(list *operation.List) (bool, *operation.List) {
	res := h.reg.RunHook(plugin.HookBeforeOperation, list, nil)
	if res.Prevented {
		return true, nil
	}
	if replaced, ok := res.Data.(*operation.List); ok {
		return false, replaced
	}
	return false, nil
}

func (h hooksAdapter) RunAfterOperation(list *operation.List) {
	h.reg.RunHook(plugin.HookAfterOperation, list, nil)
}

// overlayOwner is implemented by Framed to expose its overlay manager to
// plugins that decorate the surface (gutter, brackets, registers).
type overlayOwner interface {
	Overlay() *overlay.Manager
}
