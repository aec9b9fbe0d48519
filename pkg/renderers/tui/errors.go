package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrDeclined is returned when the user chooses not to resubmit after a
	// failed submission.
	ErrDeclined = errors.New("tui: resubmission declined")
)
