// Package timeline surfaces the engine's change history (when
// WithChangeTracking is enabled) as an open-history command, grounded on
// this codebase's engine/tracking.Tracker — kept largely as-is and wired
// into variant.Base.Replace rather than a buffer-level ChangeObserver,
// since this module's Buffer has no observer hook of its own.
package timeline

import (
	"context"
	"fmt"

	"github.com/quillcore/editor/internal/engine/rope"
	"github.com/quillcore/editor/internal/engine/tracking"
	"github.com/quillcore/editor/internal/plugin"
)

type trackerOwner interface {
	Tracker() *tracking.Tracker
	Text() string
	Revision() tracking.RevisionID
}

// Module is the plugin.Module constructor. Timeline has no overlay
// dependency and supports both variants, but is inert on an engine
// built without WithChangeTracking.
type Module struct{}

func (Module) Name() string         { return "timeline" }
func (Module) Supports(string) bool { return true }

func (Module) DefaultEnabled() bool { return true }

func (Module) ConfigTiddler() (primary, alt string) {
	return "plugins.timeline.enabled", "editor.timelineEnabled"
}

func (Module) Description() string { return "Change-history browsing over tracked edits." }

func (Module) Category() string { return "history" }

func (Module) Create(e plugin.Engine) (plugin.Plugin, error) {
	to, ok := e.(trackerOwner)
	if !ok {
		return nil, fmt.Errorf("timeline: engine does not expose a tracker")
	}
	return &Plugin{tracker: to.Tracker(), engine: to}, nil
}

// Plugin is the constructed timeline instance. tracker is nil when the
// host engine was built without WithChangeTracking.
type Plugin struct {
	tracker *tracking.Tracker
	engine  trackerOwner
}

func (p *Plugin) Name() string { return "timeline" }

// Commands contributes the open-history and snapshot palette commands.
func (p *Plugin) Commands() []plugin.Command {
	return []plugin.Command{
		{ID: "open-history", Title: "Open Edit History", Category: "History"},
		{
			ID:       "timeline.snapshot",
			Title:    "Snapshot Current State",
			Category: "History",
			Run: func(ctx context.Context) error {
				_, err := p.Snapshot(fmt.Sprintf("snapshot-%d", p.SnapshotCount()+1))
				return err
			},
		},
	}
}

// Entry is one line of the open-history listing.
type Entry struct {
	Revision tracking.RevisionID
	Summary  string
	Delta    int64
}

// Entries returns the most recent history entries, oldest first, one per
// tracked change. Returns nil when change tracking is disabled.
func (p *Plugin) Entries(limit int) []Entry {
	if p.tracker == nil {
		return nil
	}
	changes := p.tracker.LatestChanges(limit)
	entries := make([]Entry, len(changes))
	for i, c := range changes {
		entries[i] = Entry{Revision: c.RevisionID, Summary: c.String(), Delta: c.Delta()}
	}
	return entries
}

// SinceStart summarizes every tracked change from the beginning of the
// session, for an "Edit Summary" status line.
func (p *Plugin) SinceStart() string {
	if p.tracker == nil {
		return "change tracking disabled"
	}
	cs := p.tracker.BuildChangeSet(0)
	return cs.Summary()
}

// Enabled reports whether the host engine was built with
// WithChangeTracking.
func (p *Plugin) Enabled() bool {
	return p.tracker != nil
}

// ErrTrackingDisabled is returned by the snapshot/diff operations below
// when the host engine was built without WithChangeTracking.
var ErrTrackingDisabled = fmt.Errorf("timeline: change tracking disabled")

// SnapshotCount returns the number of named snapshots currently held.
func (p *Plugin) SnapshotCount() int {
	if p.tracker == nil {
		return 0
	}
	return p.tracker.SnapshotCount()
}

// Snapshot captures the engine's current text under name, tagged with the
// buffer's current revision, so a later DiffSince(name) call can report
// what changed since this point.
func (p *Plugin) Snapshot(name string) (tracking.SnapshotID, error) {
	if p.tracker == nil {
		return 0, ErrTrackingDisabled
	}
	r := rope.FromString(p.engine.Text())
	return p.tracker.CreateSnapshot(name, r, p.engine.Revision()), nil
}

// DiffSince computes a line-level diff from a previously captured snapshot
// to the engine's current text.
func (p *Plugin) DiffSince(name string) (tracking.DiffResult, error) {
	if p.tracker == nil {
		return tracking.DiffResult{}, ErrTrackingDisabled
	}
	snap, err := p.tracker.GetSnapshotByName(name)
	if err != nil {
		return tracking.DiffResult{}, err
	}
	current := rope.FromString(p.engine.Text())
	return tracking.ComputeLineDiff(snap.Rope(), current, tracking.DiffOptions{}), nil
}

// AIContext summarizes the changes since a snapshot in the shape the
// tracking package builds for AI-facing context requests, including a
// line diff against the named snapshot when it exists.
func (p *Plugin) AIContext(sinceSnapshot string, maxChanges int) (tracking.AIContext, error) {
	if p.tracker == nil {
		return tracking.AIContext{}, ErrTrackingDisabled
	}
	current := rope.FromString(p.engine.Text())
	return p.tracker.GetAIContext(current, tracking.AIContextOptions{
		MaxChanges:       maxChanges,
		IncludeDiff:      sinceSnapshot != "",
		DiffFromSnapshot: sinceSnapshot,
	}), nil
}
