package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoBindings is returned when a session starts on an app without
	// bindings.
	ErrNoBindings = errors.New("tui: app has no bindings")
	// ErrUnknownFormat rejects an output format other than pretty, json or
	// yaml.
	ErrUnknownFormat = errors.New("tui: unknown output format")
)
