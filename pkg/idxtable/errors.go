package idxtable

import "github.com/cockroachdb/errors"

var (
	// ErrNotFound is returned when an id has no entry.
	ErrNotFound = errors.New("entry not found")
	// ErrExists is returned when an id is already claimed.
	ErrExists = errors.New("entry already exists")
	// ErrOutOfRange is returned for ids outside the table.
	ErrOutOfRange = errors.New("id out of range")
	// ErrNoFree is returned when the table has no room left for a claim.
	ErrNoFree = errors.New("no free entry")
)
