// Package scripts bundles the demo host's one scripted (Lua) plugin as
// embedded files, so the binary carries no dependency on a scripts/
// directory existing next to it at runtime.
package scripts

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed keystroke-counter/manifest.json keystroke-counter/init.lua
var keystrokeCounterFS embed.FS

// MaterializeKeystrokeCounter writes the embedded keystroke-counter
// plugin's files into a fresh temp directory and returns the path to its
// manifest.json, ready for script.Loader.Load. The caller owns cleanup of
// the returned directory (os.RemoveAll(filepath.Dir(manifestPath))).
func MaterializeKeystrokeCounter() (manifestPath string, err error) {
	dir, err := os.MkdirTemp("", "quillcore-keystroke-counter-*")
	if err != nil {
		return "", fmt.Errorf("scripts: create temp dir: %w", err)
	}

	for _, name := range []string{"manifest.json", "init.lua"} {
		data, err := keystrokeCounterFS.ReadFile("keystroke-counter/" + name)
		if err != nil {
			os.RemoveAll(dir)
			return "", fmt.Errorf("scripts: read embedded %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			os.RemoveAll(dir)
			return "", fmt.Errorf("scripts: write %s: %w", name, err)
		}
	}

	return filepath.Join(dir, "manifest.json"), nil
}
