package plugin

import "errors"

// Plugin runtime errors.
var (
	// ErrNotFound is returned when a plugin name has no registered entry.
	ErrNotFound = errors.New("plugin not found")

	// ErrAlreadyRegistered is returned when a name is registered twice.
	ErrAlreadyRegistered = errors.New("plugin already registered")

	// ErrNilManifest is returned when a scripted plugin's manifest is nil.
	ErrNilManifest = errors.New("manifest is nil")

	// ErrNoEntryPoint is returned when a scripted plugin has no main script.
	ErrNoEntryPoint = errors.New("plugin has no entry point")

	// ErrUnsupported is returned by Enable when the plugin's Supports table
	// does not include the engine's current variant.
	ErrUnsupported = errors.New("plugin does not support this engine variant")

	// ErrCapabilityDenied is returned when a scripted plugin calls into a
	// bridge function gated by a capability it was not granted.
	ErrCapabilityDenied = errors.New("capability denied")
)
