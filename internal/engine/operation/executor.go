package operation

import (
	"sort"

	"github.com/quillcore/editor/internal/engine/caret"
)

// Hooks is the narrow beforeOperation/afterOperation contract the executor
// dispatches through. A nil Hooks is treated as "no plugins installed": every
// operation proceeds unprevented and unreplaced.
type Hooks interface {
	// RunBeforeOperation fires the beforeOperation hook chain. prevented
	// reports whether a handler vetoed the operation; replaced, when
	// non-nil, is the list subsequent handlers (and the executor) should use
	// in place of list.
	RunBeforeOperation(list *List) (prevented bool, replaced *List)
	// RunAfterOperation fires the afterOperation hook chain once the edit
	// has been applied and recorded.
	RunAfterOperation(list *List)
}

// Target is the engine-side surface the executor mutates: a text buffer, a
// caret set, and the side effects (persistence, re-fit, redraw) a completed
// operation must trigger.
type Target interface {
	// Replace substitutes [start, end) with text and returns the offset
	// immediately after the inserted text.
	Replace(start, end ByteOffset, text string) (ByteOffset, error)
	// Len returns the current buffer length, for clamping cut ranges.
	Len() ByteOffset
	// Carets returns the live caret set to reposition in place.
	Carets() *caret.Set
	// CaptureBefore snapshots engine state into the undo log's pending slot.
	CaptureBefore()
	// Record finalizes an undo entry; forceSeparate=true starts a new entry.
	Record(forceSeparate bool)
	// Persist invokes the host's persistence callback.
	Persist()
	// Refit recomputes layout height/geometry after the edit.
	Refit()
	// Redraw triggers an overlay/geometry re-draw.
	Redraw()
}

// Executor applies an operation List to a Target, implementing the engine's
// seven-step execute() algorithm.
type Executor struct {
	hooks  Hooks
	target Target
}

// NewExecutor builds an Executor. hooks may be nil.
func NewExecutor(target Target, hooks Hooks) *Executor {
	return &Executor{hooks: hooks, target: target}
}

// update is the per-caret repositioning record built in step 5.
type update struct {
	cursorID string
	cutStart ByteOffset
	newStart ByteOffset
	newEnd   ByteOffset
	delta    ByteOffset
}

// Execute runs the full descriptor list through the engine: hook dispatch,
// descending apply, caret repositioning, undo recording, and the
// post-operation side effects. Returns an error only if a buffer edit fails;
// a prevented or empty operation is not an error.
func (ex *Executor) Execute(list *List) error {
	if list == nil {
		return nil
	}

	// Step 1: fold the legacy single-caret shape into element 0.
	descriptors := append([]Descriptor(nil), list.Descriptors...)
	if list.Legacy != nil && len(descriptors) >= 1 {
		descriptors[0] = *list.Legacy
	}

	// Step 2: filter to active descriptors (Replacement set).
	active := filterActive(descriptors)
	if len(active) == 0 {
		return nil
	}

	// Step 3: beforeOperation; a prevention is a no-op.
	working := &List{Descriptors: active}
	if ex.hooks != nil {
		prevented, replaced := ex.hooks.RunBeforeOperation(working)
		if prevented {
			return nil
		}
		if replaced != nil {
			working = replaced
		}
	}
	active = filterActive(working.Descriptors)
	if len(active) == 0 {
		return nil
	}

	// Step 4: snapshot current state for undo.
	ex.target.CaptureBefore()

	// Step 5: apply descending by cutStart so earlier indices stay valid.
	ordered := append([]Descriptor(nil), active...)
	sort.SliceStable(ordered, func(i, j int) bool {
		si, _ := ordered[i].cutRange()
		sj, _ := ordered[j].cutRange()
		return si > sj
	})

	bufLen := ex.target.Len()
	updates := make([]update, 0, len(ordered))
	for _, d := range ordered {
		start, end := d.cutRange()
		start = clampOffset(start, bufLen)
		end = clampOffset(end, bufLen)

		replacement := ""
		if d.Replacement != nil {
			replacement = *d.Replacement
		}

		newEnd, err := ex.target.Replace(start, end, replacement)
		if err != nil {
			return err
		}
		newStart := newEnd
		if d.NewSelStart != nil {
			newStart = *d.NewSelStart
		}
		newSelEnd := newEnd
		if d.NewSelEnd != nil {
			newSelEnd = *d.NewSelEnd
		}

		updates = append(updates, update{
			cursorID: d.CursorID,
			cutStart: start,
			newStart: newStart,
			newEnd:   newSelEnd,
			delta:    ByteOffset(len(replacement)) - (end - start),
		})
		bufLen += ByteOffset(len(replacement)) - (end - start)
	}

	// Step 6: reposition every caret by the cumulative delta of every
	// update whose cutStart is strictly before this caret's own cutStart.
	cs := ex.target.Carets()
	carets := cs.All()
	next := make([]caret.Caret, len(carets))
	for i, c := range carets {
		u, ok := findUpdate(updates, c.ID)
		if !ok {
			next[i] = c
			continue
		}
		shift := ByteOffset(0)
		for _, other := range updates {
			if other.cutStart < u.cutStart {
				shift += other.delta
			}
		}
		next[i] = c.MoveTo(u.newEnd + shift)
		next[i].Start = u.newStart + shift
		if next[i].Start > next[i].End {
			next[i].Start = next[i].End
		}
	}
	cs.SetAll(next)

	// Step 7: normalize happened inside SetAll; finish the side effects.
	ex.target.Redraw()
	ex.target.Record(true)
	if ex.hooks != nil {
		ex.hooks.RunAfterOperation(working)
	}
	ex.target.Persist()
	ex.target.Refit()

	return nil
}

func filterActive(descriptors []Descriptor) []Descriptor {
	out := make([]Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		if d.Active() {
			out = append(out, d)
		}
	}
	return out
}

func findUpdate(updates []update, cursorID string) (update, bool) {
	for _, u := range updates {
		if u.cursorID == cursorID {
			return u, true
		}
	}
	return update{}, false
}

func clampOffset(v, max ByteOffset) ByteOffset {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
