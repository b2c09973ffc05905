package script

import (
	"context"
	"fmt"
	"time"

	"github.com/quillcore/editor/internal/plugin"
	plua "github.com/quillcore/editor/internal/plugin/lua"
	"github.com/quillcore/editor/internal/plugin/security"
	lua "github.com/yuin/gopher-lua"
)

// hookGlobalPrefix names the Lua global a hook dispatch calls:
// on_beforeOperation, on_afterInput, and so on.
const hookGlobalPrefix = "on_"

// Loader discovers scripted plugins on disk and adapts each into a
// plugin.Module, so the registry never needs to know a plugin is
// Lua-backed.
type Loader struct {
	MemoryLimit      int64
	ExecutionTimeout time.Duration
}

// NewLoader creates a Loader with this codebase's lua package defaults.
func NewLoader() *Loader {
	return &Loader{
		MemoryLimit:      plua.DefaultMemoryLimit,
		ExecutionTimeout: plua.DefaultExecutionTimeout,
	}
}

// Load reads manifestPath and returns a plugin.Module that, once
// constructed, runs the manifest's entry script in a sandboxed Lua
// state.
func (l *Loader) Load(manifestPath string) (plugin.Module, error) {
	m, err := plugin.LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	return &module{manifest: m, loader: l}, nil
}

type module struct {
	manifest *plugin.Manifest
	loader   *Loader
}

func (m *module) Name() string { return m.manifest.Name }

func (m *module) Supports(variant string) bool { return m.manifest.Supports(variant) }

func (m *module) Create(e plugin.Engine) (plugin.Plugin, error) {
	state, err := plua.NewState(
		plua.WithMemoryLimit(m.loader.MemoryLimit),
		plua.WithExecutionTimeout(m.loader.ExecutionTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("plugin %s: new lua state: %w", m.manifest.Name, err)
	}

	perms := security.NewPermissionChecker(m.manifest.Name)
	for _, cap := range m.manifest.Capabilities {
		state.Sandbox().Grant(plua.Capability(cap))
		perms.Grant(security.Capability(cap))
	}

	bridge := plua.NewBridge(state.LuaState())

	if err := state.DoFile(m.manifest.MainPath()); err != nil {
		state.Close()
		return nil, fmt.Errorf("plugin %s: load %s: %w", m.manifest.Name, m.manifest.MainPath(), err)
	}

	h := &Host{
		name:     m.manifest.Name,
		manifest: m.manifest,
		state:    state,
		bridge:   bridge,
		perms:    perms,
		config:   m.manifest.ConfigDefaults,
	}
	return h, nil
}

// Host is a single scripted plugin's live Lua runtime, implementing
// plugin.Plugin (plus the optional Enabler/Hooked/Destroyer/
// CommandSource/Registerer interfaces the registry probes for).
type Host struct {
	name     string
	manifest *plugin.Manifest
	state    *plua.State
	bridge   *plua.Bridge
	perms    *security.PermissionChecker
	config   map[string]interface{}
	active   bool

	lastResult string // set by the most recent command's optional get_count poll
}

func (h *Host) Name() string { return h.name }

// OnRegister calls the plugin's optional setup(config) global once,
// before any hook fires, mirroring Host.callSetup here.
func (h *Host) OnRegister(e plugin.Engine) error {
	return h.callIfFunction("setup", h.bridge.ToLuaValue(h.config))
}

// Enable calls the plugin's optional activate() global.
func (h *Host) Enable() error {
	if err := h.callIfFunction("activate"); err != nil {
		return err
	}
	h.active = true
	return nil
}

// Disable calls the plugin's optional deactivate() global.
func (h *Host) Disable() error {
	err := h.callIfFunction("deactivate")
	h.active = false
	return err
}

// Destroy closes the underlying Lua state, releasing its memory.
func (h *Host) Destroy() {
	if h.state != nil {
		h.state.Close()
	}
}

// Configure merges opts into the plugin's config table and, if the
// plugin is active, re-invokes setup so it can react to the change.
func (h *Host) Configure(opts map[string]interface{}) error {
	for k, v := range opts {
		h.config[k] = v
	}
	if !h.active {
		return nil
	}
	return h.callIfFunction("setup", h.bridge.ToLuaValue(h.config))
}

// Commands asks the plugin's optional get_commands() global for its
// command contributions, falling back to the manifest's static list.
func (h *Host) Commands() []plugin.Command {
	cmds := make([]plugin.Command, 0, len(h.manifest.Commands))
	for _, c := range h.manifest.Commands {
		id := c.ID
		cmds = append(cmds, plugin.Command{
			ID:          c.ID,
			Title:       c.Title,
			Category:    c.Category,
			Shortcut:    c.Shortcut,
			Description: c.Description,
			Run: func(ctx context.Context) error {
				if _, err := h.state.Call("run_command", h.bridge.ToLuaValue(id)); err != nil {
					return err
				}
				h.pollResult()
				return nil
			},
		})
	}
	return cmds
}

// pollResult calls the script's optional get_count global after a command
// runs and caches its value as human-readable text, for a plugin like
// keystroke-counter that reports a running total rather than a one-shot
// outcome. Plugins that don't define get_count leave lastResult untouched.
func (h *Host) pollResult() {
	if !h.hasFunction("get_count") {
		return
	}
	v, err := h.state.CallValue("get_count")
	if err != nil {
		return
	}
	h.lastResult = fmt.Sprintf("%s: %v", h.name, h.bridge.ToGoValue(v))
}

// LastResult implements plugin.ResultReporter.
func (h *Host) LastResult() string { return h.lastResult }

// HookFuncs binds every named hook that has a matching on_<name>
// global function defined in the script.
func (h *Host) HookFuncs() map[string]plugin.HookFunc {
	funcs := make(map[string]plugin.HookFunc)
	for _, name := range []string{
		"beforeInput", "afterInput",
		"beforeKeydown", "afterKeydown",
		"beforeKeypress", "afterKeypress",
		"beforeOperation", "afterOperation",
		"beforeClick", "afterClick",
		"focus", "blur",
		"selectionChange", "render",
	} {
		if !h.hasFunction(hookGlobalPrefix + name) {
			continue
		}
		hookName := hookGlobalPrefix + name
		funcs[name] = func(pluginName string, event interface{}, data interface{}, engine plugin.Engine) (bool, interface{}, error) {
			results, err := h.state.Call(hookName, h.bridge.ToLuaValue(event), h.bridge.ToLuaValue(data))
			if err != nil {
				return false, nil, err
			}
			return h.parseHookResult(results)
		}
	}
	return funcs
}

// parseHookResult interprets a hook's Lua return values as
// (prevented bool, replacementData any), per this codebase's bridge
// convention of converting Lua return values back to Go via ToGoValue.
func (h *Host) parseHookResult(results []lua.LValue) (prevented bool, replacement interface{}, err error) {
	if len(results) > 0 {
		if b, ok := results[0].(lua.LBool); ok {
			prevented = bool(b)
		}
	}
	if len(results) > 1 && results[1] != lua.LNil {
		replacement = h.bridge.ToGoValue(results[1])
	}
	return prevented, replacement, nil
}

func (h *Host) hasFunction(name string) bool {
	v := h.state.GetGlobal(name)
	return v != nil && v.Type() == lua.LTFunction
}

func (h *Host) callIfFunction(name string, args ...lua.LValue) error {
	if !h.hasFunction(name) {
		return nil
	}
	_, err := h.state.Call(name, args...)
	return err
}
