// Package config provides the configuration system for Quillcore.
//
// The config package manages loading, merging, validating, and providing
// access to all editor settings including user preferences, per-project
// overrides, and plugin configurations.
//
// # Architecture
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  6. Command Line Arguments  │  ← Highest priority
//	├─────────────────────────────┤
//	│  5. Environment Variables   │
//	├─────────────────────────────┤
//	│  4. Plugin Settings         │
//	├─────────────────────────────┤
//	│  3. Project/Workspace       │  ← .quillcore/config.json
//	├─────────────────────────────┤
//	│  2. User Settings           │  ← ~/.config/quillcore/settings.json
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: Configuration file loading (JSON, environment variables)
//   - registry: Type-safe settings registry with definitions and accessors
//   - layer: Layer management and merging strategies
//   - schema: JSON Schema validation
//   - watcher: File watching for live reload
//   - notify: Change notification and observer pattern
//
// # Basic Usage
//
// Load configuration from default paths:
//
//	cfg := config.New()
//	if err := cfg.Load(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Access typed settings
//	tabSize, _ := cfg.GetInt("editor.tabSize")
//	theme, _ := cfg.GetString("ui.theme")
//
//	// Access typed sections
//	editor := cfg.Editor()
//	fmt.Println(editor.TabSize)
//
// # Type-Safe Access
//
// The registry provides type-safe accessors to prevent runtime errors:
//
//	// Using generic accessor
//	tabSize, err := cfg.GetInt("editor.tabSize")
//	if err != nil {
//	    // Handle error (wrong type or unknown setting)
//	}
//
//	// Using typed section
//	editor := cfg.Editor()
//	tabSize := editor.TabSize // Compile-time type safety
//
// # Configuration Files
//
// Quillcore uses JSON as the configuration format, parsed with
// github.com/tidwall/gjson:
//
//	// ~/.config/quillcore/settings.json
//	{
//	  "editor": {"tabSize": 4, "insertSpaces": true, "wordWrap": "on"},
//	  "ui": {"theme": "dark", "fontSize": 14}
//	}
//
// # Error Handling
//
// The package defines several error values and types:
//
//   - ErrSettingNotFound: Setting path doesn't exist
//   - ErrTypeMismatch: Value type doesn't match expected type
//   - ErrValidationFailed: Value fails schema validation
//   - ParseError: Configuration file parsing failed
//   - ErrFileNotFound: Configuration file doesn't exist
package config
