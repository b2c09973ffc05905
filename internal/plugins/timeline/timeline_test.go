package timeline

import (
	"context"
	"testing"

	"github.com/quillcore/editor/internal/ops"
	"github.com/quillcore/editor/internal/variant"
)

func TestEntriesReflectRecordedChanges(t *testing.T) {
	e := variant.NewInline(nil, variant.WithInitialText("abc"), variant.WithChangeTracking())
	instance, err := Module{}.Create(e)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	p := instance.(*Plugin)

	if !p.Enabled() {
		t.Fatal("Enabled() = false, want true")
	}

	e.Carets().SetPrimary(3, 3)
	list := e.CreateOperation()
	ops.InsertText(ops.Event{Params: ops.Params{Text: "d"}}, list)
	if err := e.Execute(list); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	entries := p.Entries(10)
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Delta != 1 {
		t.Errorf("Delta = %d, want 1", entries[0].Delta)
	}
}

func TestDisabledTrackerReturnsNilEntries(t *testing.T) {
	e := variant.NewInline(nil, variant.WithInitialText("abc"))
	instance, err := Module{}.Create(e)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	p := instance.(*Plugin)

	if p.Enabled() {
		t.Error("Enabled() = true, want false")
	}
	if got := p.Entries(10); got != nil {
		t.Errorf("Entries() = %v, want nil", got)
	}
	if got := p.SinceStart(); got != "change tracking disabled" {
		t.Errorf("SinceStart() = %q", got)
	}
	if _, err := p.Snapshot("before"); err != ErrTrackingDisabled {
		t.Errorf("Snapshot() error = %v, want ErrTrackingDisabled", err)
	}
}

func TestSnapshotAndDiffSinceReportChanges(t *testing.T) {
	e := variant.NewInline(nil, variant.WithInitialText("abc"), variant.WithChangeTracking())
	instance, err := Module{}.Create(e)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	p := instance.(*Plugin)

	if _, err := p.Snapshot("before"); err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	e.Carets().SetPrimary(3, 3)
	list := e.CreateOperation()
	ops.InsertText(ops.Event{Params: ops.Params{Text: "d"}}, list)
	if err := e.Execute(list); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	diff, err := p.DiffSince("before")
	if err != nil {
		t.Fatalf("DiffSince() error = %v", err)
	}
	if !diff.HasChanges() {
		t.Error("expected DiffSince to report a changed line after the insert")
	}

	ctx, err := p.AIContext("before", 0)
	if err != nil {
		t.Fatalf("AIContext() error = %v", err)
	}
	if !ctx.HasDiff {
		t.Error("expected AIContext to include a diff when DiffFromSnapshot is set")
	}
	if len(ctx.Changes) != 1 {
		t.Errorf("len(ctx.Changes) = %d, want 1", len(ctx.Changes))
	}
}

func TestSnapshotCommandIncrementsSnapshotCount(t *testing.T) {
	e := variant.NewInline(nil, variant.WithInitialText("abc"), variant.WithChangeTracking())
	instance, err := Module{}.Create(e)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	p := instance.(*Plugin)

	cmds := p.Commands()
	for _, c := range cmds {
		if c.ID == "timeline.snapshot" {
			if err := c.Run(context.Background()); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
		}
	}
	if p.SnapshotCount() != 1 {
		t.Errorf("SnapshotCount() = %d, want 1", p.SnapshotCount())
	}
}
