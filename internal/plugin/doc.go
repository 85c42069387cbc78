// Package plugin wires the photobooth's behavior together. The core
// packages (fsm, hook, app) know nothing about cameras, printers, or
// screens; everything the booth actually does lives in plugins that
// implement hook handlers. The builtin subpackage ships the plugins
// every booth needs, and the lua subpackage loads user plugins written
// in Lua.
package plugin
