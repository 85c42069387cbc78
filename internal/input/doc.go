// Package input defines the kiosk's raw event model and the classifiers
// that map raw events into the semantic intents consumed by state hooks.
//
// Raw events arrive from the screen backend (keyboard, pointer, resize)
// and from devices (physical buttons, printer status). Once per tick the
// host loop wraps the collected events into a Batch; state hooks query the
// batch through pure classifier methods (Quit, Left, Right, Center,
// Choice, ...) rather than inspecting raw events themselves.
//
// Directional classification partitions the display into three equal
// horizontal zones: a pointer release in the left third means left, the
// middle third means center, the right third means right. Physical
// buttons and arrow keys map to the same three intents.
package input
