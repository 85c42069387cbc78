package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/photobooth/internal/hook"
	"github.com/dshills/photobooth/internal/log"
)

func TestRegisterCore(t *testing.T) {
	m := NewManager(log.Discard(), nil)
	m.RegisterCore()

	want := []string{"view", "camera", "picture", "printer", "lights"}
	got := m.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if m.Registry().Len() != len(want) {
		t.Errorf("registry holds %d plugins, want %d", m.Registry().Len(), len(want))
	}
}

func TestDisabledPluginSkipped(t *testing.T) {
	m := NewManager(log.Discard(), []string{"printer", "lights"})
	m.RegisterCore()

	for _, name := range m.Names() {
		if name == "printer" || name == "lights" {
			t.Errorf("disabled plugin %s was registered", name)
		}
	}
	if got := m.Registry().Len(); got != 3 {
		t.Errorf("registry holds %d plugins, want 3", got)
	}
	// Of the core set only view and lights hook wait entry, and lights
	// is disabled here.
	if bound := m.Registry().ImplementersOf(hook.StateEnter("wait")); len(bound) != 1 {
		t.Errorf("wait enter implementers = %d, want 1", len(bound))
	}
}

func TestLoadLua(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.lua")
	if err := os.WriteFile(path, []byte("function startup(ctx)\nend\n"), 0o644); err != nil {
		t.Fatalf("write plugin: %v", err)
	}

	m := NewManager(log.Discard(), nil)
	if err := m.LoadLua([]string{path}); err != nil {
		t.Fatalf("LoadLua: %v", err)
	}
	if got := m.Names(); len(got) != 1 || got[0] != "extra" {
		t.Errorf("Names() = %v, want [extra]", got)
	}
}

func TestLoadLuaFailsOnBrokenPlugin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.lua")
	if err := os.WriteFile(path, []byte("function ("), 0o644); err != nil {
		t.Fatalf("write plugin: %v", err)
	}

	m := NewManager(log.Discard(), nil)
	if err := m.LoadLua([]string{path}); err == nil {
		t.Fatal("expected error for broken plugin")
	}
}
