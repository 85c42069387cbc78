package hook

// Key identifies one value that can be injected into a hook call.
// Handlers declare the keys they need; the dispatcher binds only those.
type Key string

// Context keys supplied by the engine. Per-tick hooks receive all four;
// lifecycle hooks (startup, cleanup, configure, reset) run outside the tick
// loop and do not supply KeyEvents.
const (
	// KeyConfig is the configuration accessor.
	KeyConfig Key = "cfg"
	// KeyApp is the shared application model.
	KeyApp Key = "app"
	// KeyWindow is the presentation surface.
	KeyWindow Key = "win"
	// KeyEvents is the current tick's classified event batch.
	KeyEvents Key = "events"
)

// Context is the named set of values available for injection into hook
// calls during one dispatch. It is fixed per dispatch and supplied by the
// caller, never by plugins. Extra keys a handler did not declare are
// simply withheld from it.
type Context map[Key]any

// With returns a copy of the context with one additional binding.
// The receiver is not modified, so a base context built once (cfg, app,
// win) can be extended with the tick's events without aliasing.
func (c Context) With(key Key, value any) Context {
	next := make(Context, len(c)+1)
	for k, v := range c {
		next[k] = v
	}
	next[key] = value
	return next
}

// Get returns the value bound to key, or nil if absent.
func (c Context) Get(key Key) any {
	return c[key]
}

// Has reports whether key is bound in the context.
func (c Context) Has(key Key) bool {
	_, ok := c[key]
	return ok
}

// subset returns a context holding exactly the requested keys.
// A requested key absent from c is reported as the missing key.
func (c Context) subset(keys []Key) (Context, Key, bool) {
	sub := make(Context, len(keys))
	for _, k := range keys {
		v, ok := c[k]
		if !ok {
			return nil, k, false
		}
		sub[k] = v
	}
	return sub, "", true
}
