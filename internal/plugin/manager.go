package plugin

import (
	"fmt"
	"path/filepath"

	"github.com/dshills/photobooth/internal/hook"
	"github.com/dshills/photobooth/internal/log"
	"github.com/dshills/photobooth/internal/plugin/builtin"
	boothlua "github.com/dshills/photobooth/internal/plugin/lua"
)

// Manager owns the hook registry and controls which plugins get into
// it. Plugins named in the disabled list are silently skipped so a
// booth can, say, run without the printer plugin while keeping the
// rest of the core set.
type Manager struct {
	registry *hook.Registry
	logger   *log.Logger
	disabled map[string]bool
	names    []string
}

// NewManager creates a Manager with an empty registry.
func NewManager(logger *log.Logger, disabled []string) *Manager {
	if logger == nil {
		logger = log.Discard()
	}
	skip := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		skip[name] = true
	}
	return &Manager{
		registry: hook.NewRegistry(),
		logger:   logger.WithComponent("plugin"),
		disabled: skip,
	}
}

// Registry returns the registry the manager registers plugins into.
func (m *Manager) Registry() *hook.Registry {
	return m.registry
}

// Register adds a plugin unless its name is disabled. It reports
// whether the plugin was actually registered.
func (m *Manager) Register(p hook.Plugin) bool {
	if m.disabled[p.Name()] {
		m.logger.Info("plugin %s disabled, skipping", p.Name())
		return false
	}
	m.registry.Register(p)
	m.names = append(m.names, p.Name())
	m.logger.Debug("registered plugin %s (%d hooks)", p.Name(), len(p.Hooks()))
	return true
}

// RegisterCore registers the builtin plugins that make up a working
// booth. Order matters: within a hook the registry calls plugins in
// registration order, and the view plugin's validate handlers must be
// consulted before anything a user plugin might add.
func (m *Manager) RegisterCore() {
	m.Register(builtin.NewViewPlugin(m.logger))
	m.Register(builtin.NewCameraPlugin(m.logger))
	m.Register(builtin.NewPicturePlugin(m.logger))
	m.Register(builtin.NewPrinterPlugin(m.logger))
	m.Register(builtin.NewLightsPlugin())
}

// LoadLua loads every path as a Lua plugin and registers it. A file
// that fails to load aborts the whole call so a broken plugin is
// noticed at startup rather than mid-session.
func (m *Manager) LoadLua(paths []string) error {
	for _, path := range paths {
		p, err := boothlua.Load(path, m.logger)
		if err != nil {
			return fmt.Errorf("load plugin %s: %w", filepath.Base(path), err)
		}
		m.Register(p)
	}
	return nil
}

// Names lists the registered plugin names in registration order.
func (m *Manager) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}
