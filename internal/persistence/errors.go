package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicateID is returned when a collection would contain two records
	// with the same identifier.
	ErrDuplicateID = errors.New("persistence: duplicate identifier")
	// ErrCorrupt is returned when stored content exists but cannot be decoded.
	// Absence of a file is a legitimate empty state and is never reported as
	// corruption.
	ErrCorrupt = errors.New("persistence: corrupt content")
)
