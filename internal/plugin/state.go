package plugin

// Reason explains why a plugin's metadata carries the enabled value it
// does.
type Reason string

const (
	// ReasonEnabled means the plugin was constructed and is active.
	ReasonEnabled Reason = "enabled"

	// ReasonDisabled means the plugin was constructed but is inactive.
	ReasonDisabled Reason = "disabled"

	// ReasonUnsupported means the engine's current variant (inline/framed)
	// is outside the plugin's declared supports table; its constructor was
	// never called.
	ReasonUnsupported Reason = "unsupported"

	// ReasonNotRegistered means a bulk-config request named a plugin with
	// no matching registry entry.
	ReasonNotRegistered Reason = "not_registered"

	// ReasonError means the plugin's constructor, enable, or disable call
	// panicked or returned an error; it is treated as disabled.
	ReasonError Reason = "error"
)

// Metadata is the registry's public record for one discovered plugin,
// built before (and independent of) whether its constructor ever runs.
type Metadata struct {
	Name           string
	SupportsInline bool
	SupportsFramed bool
	Enabled        bool
	Reason         Reason
	Err            error

	// DefaultEnabled, ConfigTiddler, ConfigTiddlerAlt, Description, and
	// Category come from a module implementing Describable; a module that
	// doesn't defaults to DefaultEnabled true and no config path, so it is
	// always constructed unless a host attribute says otherwise.
	DefaultEnabled   bool
	ConfigTiddler    string
	ConfigTiddlerAlt string
	Description      string
	Category         string
}

// supportsVariant reports whether m declares support for the named engine
// variant ("inline" or "framed").
func (m Metadata) supportsVariant(variant string) bool {
	switch variant {
	case "inline":
		return m.SupportsInline
	case "framed":
		return m.SupportsFramed
	default:
		return false
	}
}
