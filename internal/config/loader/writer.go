package loader

import (
	"fmt"
	"os"
	"sort"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// JSONWriter persists configuration changes back to a JSON file on disk,
// the write-side counterpart to JSONLoader.
type JSONWriter struct {
	path string
}

// NewJSONWriter creates a writer targeting path.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// SetPath applies a single dotted-path update to the file's existing JSON
// text via sjson, preserving every other key's value and ordering, then
// writes the result back re-indented by pretty.Pretty. If the file does
// not yet exist, it starts from an empty object.
func (w *JSONWriter) SetPath(path string, value any) error {
	existing, err := os.ReadFile(w.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("reading config file %s: %w", w.path, err)
		}
		existing = []byte("{}")
	}

	updated, err := sjson.SetBytes(existing, path, value)
	if err != nil {
		return fmt.Errorf("applying %s to %s: %w", path, w.path, err)
	}

	return os.WriteFile(w.path, pretty.Pretty(updated), 0o644)
}

// DeletePath removes a dotted-path key from the file's JSON text, leaving
// every other key untouched.
func (w *JSONWriter) DeletePath(path string) error {
	existing, err := os.ReadFile(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", w.path, err)
	}

	updated, err := sjson.DeleteBytes(existing, path)
	if err != nil {
		return fmt.Errorf("deleting %s from %s: %w", path, w.path, err)
	}

	return os.WriteFile(w.path, pretty.Pretty(updated), 0o644)
}

// WriteAll replaces the file's entire contents with a pretty-printed
// rendering of data, built key by key through sjson.SetBytes in sorted
// key order so map ordering doesn't depend on Go's randomized map iteration.
func WriteAll(path string, data map[string]any) error {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	doc := []byte("{}")
	for _, key := range keys {
		value := data[key]
		var err error
		doc, err = sjson.SetBytes(doc, key, value)
		if err != nil {
			return fmt.Errorf("encoding key %s for %s: %w", key, path, err)
		}
	}
	return os.WriteFile(path, pretty.Pretty(doc), 0o644)
}
