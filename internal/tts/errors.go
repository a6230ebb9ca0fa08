package tts

import (
	"errors"
	"fmt"
)

var (
	// ErrVoiceNotFound is returned when a caller selects a voice id that is
	// not present in the current catalog.
	ErrVoiceNotFound = errors.New("voice not found")

	// ErrBackendUnavailable is returned when an engine binary or service
	// cannot be located on the system.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrUnknownBackend is returned for a backend tag outside the supported set.
	ErrUnknownBackend = errors.New("unknown backend")
)

// LaunchError reports an engine process that could not start or exited
// immediately with an error. The session returns to Idle when it occurs.
type LaunchError struct {
	Backend Backend
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("%s: failed to launch: %v", e.Backend, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}
