package plugin

import "context"

// Engine is the host surface a plugin is constructed against and that
// hook handlers receive. It is intentionally minimal here; the concrete
// variant engine (internal/variant) implements it alongside its larger
// native API.
type Engine interface {
	Variant() string // "inline" or "framed"
}

// Command is a command a plugin contributes to the host's command
// palette contract).
type Command struct {
	ID          string
	Title       string
	Category    string
	Shortcut    string
	Description string
	Run         func(ctx context.Context) error
}

// Plugin is the instance contract a constructed plugin satisfies. Every
// method beyond Name is optional in spirit — native plugins that don't
// care about a given lifecycle point simply don't implement it, so the
// registry narrows Plugin down to the matching optional interface at each
// call site instead of requiring a single fat interface.
type Plugin interface {
	Name() string
}

// Enabler is implemented by plugins with explicit enable/disable
// transitions beyond construction.
type Enabler interface {
	Enable() error
	Disable() error
}

// Configurer is implemented by plugins accepting host-pushed
// configuration after construction.
type Configurer interface {
	Configure(opts map[string]interface{}) error
}

// Destroyer is implemented by plugins needing teardown when the registry
// is closed (unsubscribe, close files, stop goroutines).
type Destroyer interface {
	Destroy()
}

// Registerer is called once, immediately after construction and before
// any hook fires, so a plugin can stash the engine reference or register
// commands/keymaps.
type Registerer interface {
	OnRegister(e Engine) error
}

// CommandSource is implemented by plugins contributing commands to the
// palette.
type CommandSource interface {
	Commands() []Command
}

// Hooked is implemented by plugins that subscribe to the fourteen named
// lifecycle hooks. HookFuncs returns a map from hook name to handler;
// unknown hook names are ignored by the registry rather than rejected, so
// a plugin built against a newer hook vocabulary degrades gracefully on
// an older host.
type Hooked interface {
	HookFuncs() map[string]HookFunc
}

// ResultReporter is implemented by a plugin that wants its most recent
// command's outcome surfaced as human-readable text, e.g. a scripted
// plugin reporting a running counter value back through the command
// palette after a command runs.
type ResultReporter interface {
	LastResult() string
}

// Describable is implemented by a Module that wants its enable state
// resolved from the host's config-tiddler convention instead of always
// defaulting to enabled. ConfigTiddler is the primary settings path
// consulted for a boolean override ("plugins.<name>.enabled" under
// internal/config's layering); ConfigTiddlerAlt is a secondary path
// consulted when the primary is unset, mirroring a tiddler's
// configTiddlerAlt fallback. Category and Description are metadata only,
// surfaced for a settings UI.
type Describable interface {
	DefaultEnabled() bool
	ConfigTiddler() (primary, alt string)
	Description() string
	Category() string
}

// Module is the constructor contract for a native plugin, mirroring the
// scripted plugin's manifest+entry-point pair: a Module declares its
// variant support up front, and Create is only invoked if the current
// engine variant matches.
type Module interface {
	// Name identifies the module before construction, so discovery can
	// record metadata even for a module whose Create is never called.
	Name() string

	// Supports reports whether this module supports the given engine
	// variant ("inline" or "framed"). A module that supports both should
	// simply return true unconditionally.
	Supports(variant string) bool

	// Create constructs a live Plugin instance bound to e. Called at most
	// once per registry per module.
	Create(e Engine) (Plugin, error)
}
