package overlay

import (
	"sort"
	"sync"

	"github.com/quillcore/editor/internal/geometry"
)

// Layer identifies which of the overlay's two sublayers a decoration or
// cursor rectangle belongs to.
type Layer int

const (
	// LayerCursor holds secondary-caret rectangles and their selection
	// rectangles.
	LayerCursor Layer = iota
	// LayerDecoration holds plugin-owned decorations.
	LayerDecoration
)

// Decoration is a single plugin-drawn rectangle with an owner tag, a CSS
// class/style hint the host renders with, and a priority for draw order.
type Decoration struct {
	ID        string
	Owner     string
	Rect      geometry.Rect
	ClassName string
	Priority  int
	// Color is an optional "#rrggbb" override, typically produced by
	// BlendOverBackground against the surface's theme background rather
	// than painted at a fixed opaque value. Empty means the host's
	// default decoration color applies.
	Color string
}

// CursorRect is one secondary caret's draw rectangle, paired with its
// selection rectangles (if any).
type CursorRect struct {
	CaretID   string
	Caret     geometry.Rect
	Selection []geometry.Rect
}

// Manager owns the overlay's cursor and decoration layers and its scroll
// transform. It keeps no redraw state; RedrawTracker records the five
// redraw triggers (cursor set change, scroll, operation execution,
// undo/redo, and an explicit render hook dispatch).
type Manager struct {
	mu sync.RWMutex

	cursors     []CursorRect
	decorations map[string]Decoration
	sortedIDs   []string
	needsSort   bool

	scrollX, scrollY float64
}

// NewManager creates an empty overlay manager.
func NewManager() *Manager {
	return &Manager{decorations: make(map[string]Decoration)}
}

// SetCursors replaces the secondary-caret draw rectangles.
func (m *Manager) SetCursors(rects []CursorRect) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursors = append([]CursorRect(nil), rects...)
}

// Cursors returns the current secondary-caret rectangles.
func (m *Manager) Cursors() []CursorRect {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]CursorRect(nil), m.cursors...)
}

// AddDecoration inserts or replaces a decoration by ID.
func (m *Manager) AddDecoration(d Decoration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.decorations[d.ID]; !exists {
		m.sortedIDs = append(m.sortedIDs, d.ID)
	}
	m.decorations[d.ID] = d
	m.needsSort = true
}

// RemoveDecoration removes a single decoration by ID.
func (m *Manager) RemoveDecoration(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.decorations[id]; !ok {
		return false
	}
	delete(m.decorations, id)
	for i, sid := range m.sortedIDs {
		if sid == id {
			m.sortedIDs = append(m.sortedIDs[:i], m.sortedIDs[i+1:]...)
			break
		}
	}
	return true
}

// ClearDecorations removes decorations owned by owner, leaving other
// owners' decorations in place, so one plugin does not accidentally wipe
// another's. An empty owner clears every decoration, matching
// clearDecorations(undefined) semantics.
func (m *Manager) ClearDecorations(owner string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if owner == "" {
		m.decorations = make(map[string]Decoration)
		m.sortedIDs = nil
		return
	}
	var kept []string
	for _, id := range m.sortedIDs {
		d := m.decorations[id]
		if d.Owner == owner {
			delete(m.decorations, id)
			continue
		}
		kept = append(kept, id)
	}
	m.sortedIDs = kept
}

// Decorations returns every decoration, sorted by priority.
func (m *Manager) Decorations() []Decoration {
	m.mu.Lock()
	m.ensureSortedLocked()
	out := make([]Decoration, 0, len(m.sortedIDs))
	for _, id := range m.sortedIDs {
		out = append(out, m.decorations[id])
	}
	m.mu.Unlock()
	return out
}

func (m *Manager) ensureSortedLocked() {
	if !m.needsSort {
		return
	}
	sort.SliceStable(m.sortedIDs, func(i, j int) bool {
		return m.decorations[m.sortedIDs[i]].Priority < m.decorations[m.sortedIDs[j]].Priority
	})
	m.needsSort = false
}

// SetScroll updates the overlay's compensating transform. This is the only
// place scroll is applied: individual decorations must never add their own
// scroll offset, or the correction double-counts.
func (m *Manager) SetScroll(x, y float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scrollX, m.scrollY = x, y
}

// Transform returns the overlay container's compensating translate, the Go
// analogue of the CSS `translate(-scrollLeft, -scrollTop)` the DOM
// implementation applies to the overlay container.
func (m *Manager) Transform() (dx, dy float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return -m.scrollX, -m.scrollY
}

// Count returns the number of registered decorations.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.decorations)
}
