package hook

// Handler is one plugin-provided implementation of a hook. Needs lists the
// context keys the handler consumes; the dispatcher binds exactly those and
// fails fast if one is missing from the dispatch context. Fn returns a
// value only meaningful to FirstResult hooks (validate); Broadcast hooks
// have their return values discarded.
type Handler struct {
	Needs []Key
	Fn    func(ctx Context) (any, error)
}

// Plugin is the unit of registration. A plugin advertises its hooks as an
// explicit mapping from hook name to handler, so dispatch is a lookup
// rather than reflection over method names.
type Plugin interface {
	// Name identifies the plugin in logs and errors.
	Name() string

	// Hooks returns the hooks this plugin implements. The result must be
	// stable for the lifetime of the registration.
	Hooks() map[string]Handler
}

// Bound pairs a plugin with one of its handlers for a specific hook.
type Bound struct {
	Plugin  Plugin
	Handler Handler
}

// Registry holds the ordered list of registered plugins. Registration
// order is the tie-break for call order: first registered, first called.
// The registry performs no de-duplication; registering the same plugin
// twice means its handlers run twice per dispatch.
//
// Registry is not safe for concurrent mutation; the engine registers
// plugins before the tick loop starts and dispatch is single-threaded.
type Registry struct {
	plugins []Plugin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a plugin to the member list.
func (r *Registry) Register(p Plugin) {
	r.plugins = append(r.plugins, p)
}

// Unregister removes a plugin by identity. It is a no-op if the plugin
// was never registered. If the plugin was registered more than once, only
// the first occurrence is removed.
func (r *Registry) Unregister(p Plugin) {
	for i, member := range r.plugins {
		if member == p {
			r.plugins = append(r.plugins[:i], r.plugins[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	return len(r.plugins)
}

// Plugins returns the registered plugins in registration order.
func (r *Registry) Plugins() []Plugin {
	out := make([]Plugin, len(r.plugins))
	copy(out, r.plugins)
	return out
}

// ImplementersOf returns the plugins that implement the named hook, bound
// to their handlers, in registration order. The result is stable across
// repeated calls unless the registry is mutated in between.
func (r *Registry) ImplementersOf(name string) []Bound {
	var out []Bound
	for _, p := range r.plugins {
		if h, ok := p.Hooks()[name]; ok {
			out = append(out, Bound{Plugin: p, Handler: h})
		}
	}
	return out
}
