package plugin

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaRegistrar is the slice of config.PluginManager that
// RegisterDescribedSchemas needs: registering a plugin name against a raw
// JSON schema document.
type SchemaRegistrar interface {
	RegisterPlugin(name string, schemaJSON []byte) error
}

// SchemaBuilder constructs a plugin's config-tiddler schema document from
// its description and default-enabled flag; internal/config/schema's
// PluginToggleSchema satisfies this once wrapped to return JSON bytes.
type SchemaBuilder func(description string, defaultEnabled bool) (json.RawMessage, error)

// RegisterDescribedSchemas registers every discovered Describable module's
// config-tiddler schema with registrar, so the plugin settings UI and
// PluginManager's ValidateSettings have a real schema to check new
// settings against instead of accepting anything.
func (r *Registry) RegisterDescribedSchemas(registrar SchemaRegistrar, build SchemaBuilder) error {
	for _, meta := range r.Metadata() {
		doc, err := build(meta.Description, meta.DefaultEnabled)
		if err != nil {
			return fmt.Errorf("plugin %s: build schema: %w", meta.Name, err)
		}
		if err := registrar.RegisterPlugin(meta.Name, doc); err != nil {
			return fmt.Errorf("plugin %s: register schema: %w", meta.Name, err)
		}
	}
	return nil
}

// SettingsSource is the minimal accessor ResolveEnablement needs from a
// layered config system. GetBool returns an error (ok=false in spirit) when
// the path is absent, so the resolver can fall through to the next source
// instead of forcing every plugin to carry an explicit setting.
type SettingsSource interface {
	GetBool(path string) (bool, error)
}

// ResolveEnablement builds the name->enabled map BulkConfigure expects,
// the config-tiddler convention's Go-native form: each plugin's enable
// state is decided by three sources in increasing priority —
//
//  1. The module's own DefaultEnabled.
//  2. The config-tiddler-equivalent layered setting at ConfigTiddler (or
//     ConfigTiddlerAlt, if the primary path has no value).
//  3. A host attribute named "enable<PluginNameCamel>", which always wins
//     when present, mirroring a host embedding's hard override of a
//     tiddler-derived default.
//
// settings may be nil (no config layer consulted, e.g. a headless caller
// with no on-disk settings); hostAttrs may be nil or partial.
func (r *Registry) ResolveEnablement(settings SettingsSource, hostAttrs map[string]bool) map[string]bool {
	r.mu.RLock()
	metas := make(map[string]Metadata, len(r.metadata))
	for name, m := range r.metadata {
		metas[name] = *m
	}
	r.mu.RUnlock()

	want := make(map[string]bool, len(metas))
	for name, meta := range metas {
		enabled := meta.DefaultEnabled

		if settings != nil {
			if v, err := settingsLookup(settings, meta.ConfigTiddler); err == nil {
				enabled = v
			} else if v, err := settingsLookup(settings, meta.ConfigTiddlerAlt); err == nil {
				enabled = v
			}
		}

		if v, ok := hostAttrs[EnableAttrName(name)]; ok {
			enabled = v
		}

		want[name] = enabled
	}
	return want
}

func settingsLookup(settings SettingsSource, path string) (bool, error) {
	if path == "" {
		return false, errEmptyConfigPath
	}
	return settings.GetBool(path)
}

var errEmptyConfigPath = emptyConfigPathError{}

type emptyConfigPathError struct{}

func (emptyConfigPathError) Error() string { return "plugin: empty config-tiddler path" }

// EnableAttrName builds the "enable<PluginNameCamel>" host-attribute key
// for a plugin name, e.g. "line-numbers" -> "enableLineNumbers", matching
// the config-tiddler convention's host-attribute override naming.
func EnableAttrName(pluginName string) string {
	var b strings.Builder
	b.WriteString("enable")
	for _, part := range strings.FieldsFunc(pluginName, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	}) {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
