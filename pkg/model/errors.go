package model

import "errors"

var (
	// ErrNoRecord is returned by the store when no row matches.
	ErrNoRecord = errors.New("record not found")
	// ErrStaleState is returned when a conditional update finds the row already moved on.
	ErrStaleState = errors.New("stale state")
	// ErrDuplicate is returned on a unique constraint violation.
	ErrDuplicate = errors.New("duplicate record")
)
