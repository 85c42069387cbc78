// Package app provides the main application structure and the host loop.
package app

import "errors"

// Application errors.
var (
	// ErrQuit signals that the kiosk should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates the host loop is already running.
	ErrAlreadyRunning = errors.New("application already running")
)
