package hostdemo

import (
	"os"
	"testing"

	"github.com/quillcore/editor/internal/engine/caret"
)

func TestLoadScriptedPluginsConstructsKeystrokeCounter(t *testing.T) {
	h := &Host{}
	modules, err := h.loadScriptedPlugins()
	if err != nil {
		t.Fatalf("loadScriptedPlugins: %v", err)
	}
	if len(modules) != 1 {
		t.Fatalf("expected 1 scripted module, got %d", len(modules))
	}
	if got := modules[0].Name(); got != "keystroke-counter" {
		t.Errorf("Name() = %q, want keystroke-counter", got)
	}
	if h.scriptDir == "" {
		t.Fatal("expected scriptDir to be set")
	}
	if _, err := os.Stat(h.scriptDir); err != nil {
		t.Fatalf("expected materialized script dir to exist: %v", err)
	}
	os.RemoveAll(h.scriptDir)
}

func TestPrevRuneStartSkipsContinuationBytes(t *testing.T) {
	text := "aéb" // 'é' is 2 bytes (U+00E9)
	if got := prevRuneStart(text, 3); got != 1 {
		t.Errorf("prevRuneStart(3) = %d, want 1", got)
	}
}

func TestNextRuneEndSkipsContinuationBytes(t *testing.T) {
	text := "aéb"
	if got := nextRuneEnd(text, 1); got != 3 {
		t.Errorf("nextRuneEnd(1) = %d, want 3", got)
	}
}

func TestNextRuneEndClampsAtTextEnd(t *testing.T) {
	text := "abc"
	if got := nextRuneEnd(text, 3); got != 3 {
		t.Errorf("nextRuneEnd(3) = %d, want 3", got)
	}
}

func TestLineAndColumn(t *testing.T) {
	text := "ab\ncde\nf"
	line, col := lineAndColumn(text, caret.ByteOffset(5))
	if line != 1 || col != 2 {
		t.Errorf("lineAndColumn(5) = (%d,%d), want (1,2)", line, col)
	}
}

func TestOffsetOfLineColumnClampsShortLine(t *testing.T) {
	lines := []string{"ab", "cdefg"}
	if got := offsetOfLineColumn(lines, 0, 10); got != 2 {
		t.Errorf("offsetOfLineColumn clamp = %d, want 2", got)
	}
}

func TestOffsetOfLineColumnSecondLine(t *testing.T) {
	lines := []string{"ab", "cdefg"}
	if got := offsetOfLineColumn(lines, 1, 3); got != 6 {
		t.Errorf("offsetOfLineColumn(1,3) = %d, want 6", got)
	}
}

func TestCellSurfaceContentWidthExcludesGutter(t *testing.T) {
	s := newCellSurface(func() string { return "" })
	s.resize(80, 24)
	if got := s.ContentWidth(); got != float64(80-gutterWidth) {
		t.Errorf("ContentWidth() = %v, want %v", got, float64(80-gutterWidth))
	}
}

func TestCellSurfaceContentWidthFloorsAtOne(t *testing.T) {
	s := newCellSurface(func() string { return "" })
	s.resize(2, 24)
	if got := s.ContentWidth(); got != 1 {
		t.Errorf("ContentWidth() = %v, want 1 (floored)", got)
	}
}

func TestCellSurfaceTextDelegatesToFunc(t *testing.T) {
	s := newCellSurface(func() string { return "hello" })
	if got := s.Text(); got != "hello" {
		t.Errorf("Text() = %q, want %q", got, "hello")
	}
}
