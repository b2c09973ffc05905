package caret

// HostSelection is the narrow surface-selection contract the host exposes
// for the primary caret. Implementations may fail (a detached DOM node, a
// terminal that lost focus); every method here is best-effort and errors
// are swallowed by the caller, matching the "exceptions swallowed".
type HostSelection interface {
	Selection() (start, end ByteOffset, ok bool)
	SetSelection(start, end ByteOffset) bool
}

// SyncFromSurface copies the host's native selection into the primary caret.
// Failures (ok == false) leave the caret set unchanged.
func (cs *Set) SyncFromSurface(h HostSelection) {
	if h == nil {
		return
	}
	start, end, ok := h.Selection()
	if !ok {
		return
	}
	cs.SetPrimary(start, end)
}

// SyncFromPrimary pushes the primary caret's range to the host's native
// selection. A false return from SetSelection is swallowed.
func (cs *Set) SyncFromPrimary(h HostSelection) {
	if h == nil {
		return
	}
	p := cs.Primary()
	h.SetSelection(p.Start, p.End)
}
