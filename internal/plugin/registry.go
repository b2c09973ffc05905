package plugin

import (
	"fmt"
	"sort"
	"sync"
)

// Registry discovers, constructs, and dispatches hooks to native and
// scripted plugins, grounded on internal/plugin/manager.go
// lifecycle (load -> activate -> deactivate -> unload, each step isolated
// so one plugin's failure never takes down another) generalized from a
// directory-scanning Loader to an explicit list of registered Modules.
type Registry struct {
	mu      sync.RWMutex
	engine  Engine
	variant string

	modules  []Module
	metadata map[string]*Metadata
	plugins  map[string]Plugin

	hooks *HookChain
	logf  func(format string, args ...interface{})
}

// NewRegistry creates a registry bound to e. logf receives diagnostic
// messages for construction/enable/disable failures; pass nil to
// discard them.
func NewRegistry(e Engine, logf func(format string, args ...interface{})) *Registry {
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	return &Registry{
		engine:   e,
		variant:  e.Variant(),
		metadata: make(map[string]*Metadata),
		plugins:  make(map[string]Plugin),
		hooks:    NewHookChain(logf),
		logf:     logf,
	}
}

// Discover builds metadata for every module before constructing any of
// them: a module whose declared variant support excludes the engine's
// current variant gets a "unsupported" metadata entry and is never
// constructed at all, matching discovery phase exactly.
func (r *Registry) Discover(modules ...Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range modules {
		name := m.Name()
		if _, exists := r.metadata[name]; exists {
			r.logf("plugin %s: already registered, skipping duplicate", name)
			continue
		}
		r.modules = append(r.modules, m)
		meta := &Metadata{
			Name:           name,
			SupportsInline: m.Supports("inline"),
			SupportsFramed: m.Supports("framed"),
			DefaultEnabled: true,
		}
		if d, ok := m.(Describable); ok {
			meta.DefaultEnabled = d.DefaultEnabled()
			meta.ConfigTiddler, meta.ConfigTiddlerAlt = d.ConfigTiddler()
			meta.Description = d.Description()
			meta.Category = d.Category()
		}
		r.metadata[name] = meta
	}
}

// ConstructAll constructs every discovered module that supports the
// registry's current variant, registering each resulting instance. A
// module's constructor panicking or erroring is caught, logged, and
// recorded as ReasonError without aborting the remaining modules.
func (r *Registry) ConstructAll() {
	r.mu.Lock()
	modules := make([]Module, len(r.modules))
	copy(modules, r.modules)
	r.mu.Unlock()

	for _, m := range modules {
		r.construct(m)
	}
}

func (r *Registry) construct(m Module) {
	name := m.Name()

	r.mu.RLock()
	meta := r.metadata[name]
	r.mu.RUnlock()
	if meta == nil || !meta.supportsVariant(r.variant) {
		r.mu.Lock()
		if meta != nil {
			meta.Reason = ReasonUnsupported
		}
		r.mu.Unlock()
		return
	}

	instance, err := r.safeCreate(m)
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		meta.Reason = ReasonError
		meta.Err = err
		r.logf("plugin %s: create failed: %v", name, err)
		return
	}

	// A constructed instance may report a different name than its
	// module; rekey metadata so lookups by instance name succeed too.
	instName := instance.Name()
	if instName != "" && instName != name {
		delete(r.metadata, name)
		meta.Name = instName
		r.metadata[instName] = meta
		name = instName
	}

	r.plugins[name] = instance
	meta.Enabled = true
	meta.Reason = ReasonEnabled

	r.bindAndRegisterLocked(name, instance)
}

func (r *Registry) safeCreate(m Module) (instance Plugin, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return m.Create(r.engine)
}

func (r *Registry) bindAndRegisterLocked(name string, instance Plugin) {
	if h, ok := instance.(Hooked); ok {
		for rawName, fn := range h.HookFuncs() {
			r.hooks.Bind(HookName(rawName), name, fn)
		}
	}
	if reg, ok := instance.(Registerer); ok {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					r.logf("plugin %s: onRegister panic: %v", name, rec)
				}
			}()
			if err := reg.OnRegister(r.engine); err != nil {
				r.logf("plugin %s: onRegister error: %v", name, err)
			}
		}()
	}
}

// Enable activates name if it is currently disabled and its metadata
// supports the registry's variant. Returns ErrUnsupported or ErrNotFound
// as appropriate.
func (r *Registry) Enable(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	meta := r.metadata[name]
	if meta == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if !meta.supportsVariant(r.variant) {
		return ErrUnsupported
	}
	instance := r.plugins[name]
	if instance == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if e, ok := instance.(Enabler); ok {
		if err := r.safeToggle(e.Enable); err != nil {
			meta.Reason = ReasonError
			meta.Err = err
			return err
		}
	}
	meta.Enabled = true
	meta.Reason = ReasonEnabled
	return nil
}

// Disable deactivates name, unbinding its hooks so its handlers stop
// receiving dispatch even if Disable itself fails.
func (r *Registry) Disable(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	meta := r.metadata[name]
	instance := r.plugins[name]
	if meta == nil || instance == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	var err error
	if d, ok := instance.(Enabler); ok {
		err = r.safeToggle(d.Disable)
	}
	meta.Enabled = false
	meta.Reason = ReasonDisabled
	if err != nil {
		meta.Reason = ReasonError
		meta.Err = err
	}
	return err
}

func (r *Registry) safeToggle(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn()
}

// BulkConfigure applies a name -> enabled request map, returning a
// per-name Metadata snapshot reflecting each outcome. Names with no
// registered plugin get ReasonNotRegistered; names unsupported under the
// current variant get ReasonUnsupported, neither ever invoked.
func (r *Registry) BulkConfigure(want map[string]bool) map[string]Metadata {
	results := make(map[string]Metadata, len(want))
	for name, enabled := range want {
		r.mu.RLock()
		meta := r.metadata[name]
		r.mu.RUnlock()
		if meta == nil {
			results[name] = Metadata{Name: name, Reason: ReasonNotRegistered}
			continue
		}
		if !meta.supportsVariant(r.variant) {
			results[name] = Metadata{Name: name, Reason: ReasonUnsupported}
			continue
		}
		var err error
		if enabled {
			err = r.Enable(name)
		} else {
			err = r.Disable(name)
		}
		r.mu.RLock()
		snap := *r.metadata[name]
		r.mu.RUnlock()
		if err != nil {
			snap.Err = err
		}
		results[name] = snap
	}
	return results
}

// Destroy tears down every constructed plugin implementing Destroyer,
// in registration order, isolating each panic.
func (r *Registry) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.plugins))
	for n := range r.plugins {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		instance := r.plugins[n]
		if d, ok := instance.(Destroyer); ok {
			func() {
				defer func() {
					if rec := recover(); rec != nil {
						r.logf("plugin %s: destroy panic: %v", n, rec)
					}
				}()
				d.Destroy()
			}()
		}
	}
}

// Metadata returns a snapshot of every discovered plugin's metadata,
// sorted by name.
func (r *Registry) Metadata() []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Metadata, 0, len(r.metadata))
	for _, m := range r.metadata {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Commands collects every enabled plugin's contributed commands.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var cmds []Command
	names := make([]string, 0, len(r.plugins))
	for n := range r.plugins {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		meta := r.metadata[n]
		if meta == nil || !meta.Enabled {
			continue
		}
		if src, ok := r.plugins[n].(CommandSource); ok {
			cmds = append(cmds, src.Commands()...)
		}
	}
	return cmds
}

// RunHook dispatches name's chain. Safe to call even when no plugin
// bound to it.
func (r *Registry) RunHook(name HookName, event interface{}, data interface{}) Result {
	return r.hooks.Run(name, event, data, r.engine)
}

// Plugin returns the constructed instance for name, if any.
func (r *Registry) Plugin(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}
