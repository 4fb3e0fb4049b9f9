package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or quit the
	// session from a menu.
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSequencer is returned by Run when no sequencer is supplied.
	ErrNoSequencer = errors.New("tui: sequencer is required")
)
