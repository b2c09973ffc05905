// Package registers implements a named-register clipboard plugin backing
// the copy-to-register / paste-from-register / open-registers commands,
// grounded on dispatcher/handlers/editor/yank.go (yank
// accumulates every non-empty selection in buffer order; paste inserts the
// accumulated text at the caret) adapted from direct engine.Insert calls
// to building an ops.ReplaceSelection descriptor list and running it
// through the engine's own Execute.
package registers

import (
	"fmt"
	"strings"
	"sync"

	"github.com/quillcore/editor/internal/engine/caret"
	"github.com/quillcore/editor/internal/engine/operation"
	"github.com/quillcore/editor/internal/ops"
	"github.com/quillcore/editor/internal/plugin"
)

type engineAPI interface {
	Text() string
	Carets() *caret.Set
	CreateOperation() *operation.List
	Execute(list *operation.List) error
}

// Module is the plugin.Module constructor; registers has no overlay
// dependency so it supports both variants.
type Module struct{}

func (Module) Name() string         { return "registers" }
func (Module) Supports(string) bool { return true }

func (Module) DefaultEnabled() bool { return true }

func (Module) ConfigTiddler() (primary, alt string) {
	return "plugins.registers.enabled", "editor.registersEnabled"
}

func (Module) Description() string { return "Named-register clipboard for yank/paste." }

func (Module) Category() string { return "editing" }

func (Module) Create(e plugin.Engine) (plugin.Plugin, error) {
	api, ok := e.(engineAPI)
	if !ok {
		return nil, fmt.Errorf("registers: engine missing operation surface")
	}
	return &Plugin{engine: api, regs: make(map[string]string)}, nil
}

// Plugin is the constructed registers instance.
type Plugin struct {
	mu     sync.Mutex
	engine engineAPI
	regs   map[string]string
}

func (p *Plugin) Name() string { return "registers" }

// Commands contributes the palette's register commands.
func (p *Plugin) Commands() []plugin.Command {
	return []plugin.Command{
		{ID: "copy-to-register", Title: "Copy Selection to Register", Category: "Registers"},
		{ID: "paste-from-register", Title: "Paste from Register", Category: "Registers"},
		{ID: "open-registers", Title: "Open Registers", Category: "Registers"},
	}
}

// Yank joins every caret's non-empty selection, in buffer order, and
// stores it under name, returning the stored text.
func (p *Plugin) Yank(name string) string {
	list := p.engine.CreateOperation()
	var parts []string
	for _, d := range list.Descriptors {
		if d.Selection != "" {
			parts = append(parts, d.Selection)
		}
	}
	text := strings.Join(parts, "")

	p.mu.Lock()
	p.regs[name] = text
	p.mu.Unlock()
	return text
}

// Paste inserts name's stored text at every caret, replacing any active
// selection there. A register with no stored text (including one never
// yanked into) is a no-op.
func (p *Plugin) Paste(name string) error {
	p.mu.Lock()
	text := p.regs[name]
	p.mu.Unlock()
	if text == "" {
		return nil
	}
	list := p.engine.CreateOperation()
	ops.ReplaceSelection(ops.Event{Params: ops.Params{Text: text}}, list)
	return p.engine.Execute(list)
}

// Open returns a snapshot of every populated register, for an
// open-registers listing view.
func (p *Plugin) Open() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]string, len(p.regs))
	for k, v := range p.regs {
		out[k] = v
	}
	return out
}
