package plugin

import "testing"

type stubModule struct {
	name           string
	supportsInline bool
	supportsFramed bool
	createErr      error
	instance       Plugin
}

func (s *stubModule) Name() string { return s.name }
func (s *stubModule) Supports(variant string) bool {
	if variant == "inline" {
		return s.supportsInline
	}
	return s.supportsFramed
}
func (s *stubModule) Create(e Engine) (Plugin, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.instance, nil
}

type stubPlugin struct {
	name     string
	enabled  bool
	disabled bool
	hooks    map[string]HookFunc
}

func (p *stubPlugin) Name() string { return p.name }
func (p *stubPlugin) Enable() error {
	p.enabled = true
	return nil
}
func (p *stubPlugin) Disable() error {
	p.disabled = true
	return nil
}
func (p *stubPlugin) HookFuncs() map[string]HookFunc { return p.hooks }

func TestRegistryConstructsSupportedModules(t *testing.T) {
	r := NewRegistry(fakeEngine{variant: "inline"}, nil)
	inst := &stubPlugin{name: "gutter"}
	r.Discover(&stubModule{name: "gutter", supportsInline: true, supportsFramed: true, instance: inst})
	r.ConstructAll()

	p, ok := r.Plugin("gutter")
	if !ok || p != inst {
		t.Fatal("expected gutter plugin to be constructed and registered")
	}
	meta := r.Metadata()
	if len(meta) != 1 || meta[0].Reason != ReasonEnabled {
		t.Fatalf("expected enabled metadata, got %+v", meta)
	}
}

func TestRegistrySkipsUnsupportedVariant(t *testing.T) {
	r := NewRegistry(fakeEngine{variant: "framed"}, nil)
	r.Discover(&stubModule{name: "inline-only", supportsInline: true, supportsFramed: false, instance: &stubPlugin{name: "inline-only"}})
	r.ConstructAll()

	if _, ok := r.Plugin("inline-only"); ok {
		t.Fatal("expected unsupported module not to be constructed")
	}
	meta := r.Metadata()
	if len(meta) != 1 || meta[0].Reason != ReasonUnsupported {
		t.Fatalf("expected unsupported reason, got %+v", meta)
	}
}

func TestRegistryEnableDisableToggleMetadata(t *testing.T) {
	r := NewRegistry(fakeEngine{variant: "inline"}, nil)
	inst := &stubPlugin{name: "timeline"}
	r.Discover(&stubModule{name: "timeline", supportsInline: true, supportsFramed: true, instance: inst})
	r.ConstructAll()

	if err := r.Disable("timeline"); err != nil {
		t.Fatalf("unexpected disable error: %v", err)
	}
	if !inst.disabled {
		t.Fatal("expected Disable to be called on plugin instance")
	}
	if err := r.Enable("timeline"); err != nil {
		t.Fatalf("unexpected enable error: %v", err)
	}
	if !inst.enabled {
		t.Fatal("expected Enable to be called on plugin instance")
	}
}

func TestRegistryBulkConfigureReportsNotRegistered(t *testing.T) {
	r := NewRegistry(fakeEngine{variant: "inline"}, nil)
	results := r.BulkConfigure(map[string]bool{"ghost": true})
	if results["ghost"].Reason != ReasonNotRegistered {
		t.Fatalf("expected not_registered, got %+v", results["ghost"])
	}
}

func TestRegistryHooksDispatchThroughRunHook(t *testing.T) {
	r := NewRegistry(fakeEngine{variant: "inline"}, nil)
	fired := false
	inst := &stubPlugin{
		name: "brackets",
		hooks: map[string]HookFunc{
			"beforeOperation": func(string, interface{}, interface{}, Engine) (bool, interface{}, error) {
				fired = true
				return false, nil, nil
			},
		},
	}
	r.Discover(&stubModule{name: "brackets", supportsInline: true, supportsFramed: true, instance: inst})
	r.ConstructAll()
	r.RunHook(HookBeforeOperation, nil, nil)
	if !fired {
		t.Fatal("expected bound hook to fire via registry.RunHook")
	}
}
