package getconf

import "errors"

var (
	// ErrNotFound is returned by a Finder when it does not know the key.
	// It drives fallthrough to the next finder and is never returned by
	// the Getter accessors themselves.
	ErrNotFound = errors.New("key not found")

	// ErrInvalidKey reports a key rejected by the installed key validator.
	// No SeenKey is recorded for rejected keys.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidDefault reports a default value that violates the
	// accessor's contract (bad duration format, enum default outside the
	// choices). It is raised before any resolution is attempted.
	ErrInvalidDefault = errors.New("invalid default value")

	// ErrBadValue reports a resolved raw value that failed coercion to
	// the requested type.
	ErrBadValue = errors.New("invalid configuration value")
)
