package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/tidwall/gjson"

	plua "github.com/quillcore/editor/internal/plugin/lua"
)

// Manifest describes a scripted plugin's metadata, capability requests, and
// entry point. Parsed with gjson rather than encoding/json, matching the
// config layer's (internal/config) gjson-based reading of host-supplied
// JSON documents — a scripted plugin's manifest.json is read the same way
// a config-tiddler is.
type Manifest struct {
	Name        string
	Version     string
	DisplayName string
	Description string
	Author      string

	// Main is the relative path to the entry Lua script (default "init.lua").
	Main string

	// Supports gates which engine variants the plugin's constructor may run
	// under.supports = {inline, framed} (both
	// default true).
	SupportsInline  bool
	SupportsFramed  bool

	Capabilities []plua.Capability
	Commands     []CommandContribution

	// ConfigDefaults holds a scripted plugin's declared default config
	// values, merged beneath the layered config's own defaults.
	ConfigDefaults map[string]interface{}

	path string
}

// CommandContribution declares a command a plugin provides via its
// `getCommands()` method.
type CommandContribution struct {
	ID          string
	Title       string
	Category    string
	Shortcut    string
	Description string
}

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$|^[a-z]$`)

var (
	ErrMissingName = fmt.Errorf("manifest: name is required")
	ErrInvalidName = fmt.Errorf("manifest: name must be alphanumeric with hyphens")
)

// LoadManifest reads and validates a plugin manifest file using gjson.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("manifest %s: invalid JSON", path)
	}
	root := gjson.ParseBytes(data)

	m := &Manifest{
		Name:           root.Get("name").String(),
		Version:        orDefault(root.Get("version").String(), "0.0.0"),
		DisplayName:    root.Get("displayName").String(),
		Description:    root.Get("description").String(),
		Author:         root.Get("author").String(),
		Main:           orDefault(root.Get("main").String(), "init.lua"),
		SupportsInline: orDefaultBool(root.Get("supports.inline"), true),
		SupportsFramed: orDefaultBool(root.Get("supports.framed"), true),
		ConfigDefaults: make(map[string]interface{}),
		path:           filepath.Dir(path),
	}

	for _, c := range root.Get("capabilities").Array() {
		m.Capabilities = append(m.Capabilities, plua.Capability(c.String()))
	}

	for _, c := range root.Get("commands").Array() {
		m.Commands = append(m.Commands, CommandContribution{
			ID:          c.Get("id").String(),
			Title:       c.Get("title").String(),
			Category:    c.Get("category").String(),
			Shortcut:    c.Get("shortcut").String(),
			Description: c.Get("description").String(),
		})
	}

	root.Get("configDefaults").ForEach(func(key, value gjson.Result) bool {
		m.ConfigDefaults[key.String()] = value.Value()
		return true
	})

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks required fields.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return ErrMissingName
	}
	if !namePattern.MatchString(m.Name) {
		return fmt.Errorf("%w: %s", ErrInvalidName, m.Name)
	}
	return nil
}

// Path returns the plugin's directory.
func (m *Manifest) Path() string { return m.path }

// MainPath returns the absolute path to the entry script.
func (m *Manifest) MainPath() string { return filepath.Join(m.path, m.Main) }

// HasCapability reports whether the manifest requests cap.
func (m *Manifest) HasCapability(cap plua.Capability) bool {
	for _, c := range m.Capabilities {
		if c == cap {
			return true
		}
	}
	return false
}

// Supports reports whether the manifest supports the named variant
// ("inline" or "framed").
func (m *Manifest) Supports(variant string) bool {
	switch variant {
	case "inline":
		return m.SupportsInline
	case "framed":
		return m.SupportsFramed
	default:
		return false
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orDefaultBool(r gjson.Result, def bool) bool {
	if !r.Exists() {
		return def
	}
	return r.Bool()
}
