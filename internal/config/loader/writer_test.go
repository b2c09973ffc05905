package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestJSONWriterSetPathPreservesOtherKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(path, []byte(`{"theme":"dark","editor":{"tabWidth":2}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := NewJSONWriter(path).SetPath("editor.tabWidth", 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := NewJSONLoader(path).Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if cfg["theme"] != "dark" {
		t.Errorf("expected untouched theme=dark, got %v", cfg["theme"])
	}
	editor := cfg["editor"].(map[string]any)
	if editor["tabWidth"].(float64) != 4 {
		t.Errorf("expected editor.tabWidth=4, got %v", editor["tabWidth"])
	}
}

func TestJSONWriterSetPathCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.json")
	if err := NewJSONWriter(path).SetPath("ui.theme", "light"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := NewJSONLoader(path).Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	ui := cfg["ui"].(map[string]any)
	if ui["theme"] != "light" {
		t.Errorf("expected ui.theme=light, got %v", ui["theme"])
	}
}

func TestJSONWriterDeletePathRemovesOnlyThatKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(path, []byte(`{"theme":"dark","editor":{"tabWidth":2}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := NewJSONWriter(path).DeletePath("theme"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := NewJSONLoader(path).Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if _, ok := cfg["theme"]; ok {
		t.Errorf("expected theme removed, got %v", cfg["theme"])
	}
	editor := cfg["editor"].(map[string]any)
	if editor["tabWidth"].(float64) != 2 {
		t.Errorf("expected editor.tabWidth untouched, got %v", editor["tabWidth"])
	}
}

func TestWriteAllRendersEveryTopLevelKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	data := map[string]any{
		"theme": "dark",
		"editor": map[string]any{
			"tabWidth": 4,
		},
	}
	if err := WriteAll(path, data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := NewJSONLoader(path).Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if cfg["theme"] != "dark" {
		t.Errorf("expected theme=dark, got %v", cfg["theme"])
	}
}
