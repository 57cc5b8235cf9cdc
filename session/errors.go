package session

import "errors"

// Sentinel errors for the session package.
var (
	// ErrClosed is returned when operations are attempted on a closed session.
	ErrClosed = errors.New("session is closed")

	// ErrAlreadySpawned is returned when SpawnShell is called on a session
	// that already owns a running child.
	ErrAlreadySpawned = errors.New("shell already spawned")

	// ErrNotSpawned is returned when an I/O operation is attempted before
	// SpawnShell has succeeded.
	ErrNotSpawned = errors.New("shell not spawned")

	// ErrInvalidSize is returned when a requested grid size is not positive.
	ErrInvalidSize = errors.New("invalid terminal size")
)
