package view

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRegistry is returned when a registry is built with no entries.
	ErrEmptyRegistry = errors.New("view: registry needs at least one entry")
	// ErrDuplicateView is matched by *DuplicateViewError.
	ErrDuplicateView = errors.New("view: duplicate view id")
	// ErrInvalidEntry is returned for entries with an empty id or nil render func.
	ErrInvalidEntry = errors.New("view: invalid entry")
	// ErrInvalidView is matched by *InvalidViewError.
	ErrInvalidView = errors.New("view: invalid view")
)

// DuplicateViewError reports the id registered twice.
type DuplicateViewError struct {
	ID ID
}

func (e *DuplicateViewError) Error() string {
	return fmt.Sprintf("view: duplicate view id %q", e.ID)
}

func (e *DuplicateViewError) Is(target error) bool { return target == ErrDuplicateView }

// InvalidViewError is returned when selecting an id the registry does not
// contain. Suggestion is the closest registered id, if any was close enough.
type InvalidViewError struct {
	ID         ID
	Suggestion ID
}

func (e *InvalidViewError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("view: unknown view %q (did you mean %q?)", e.ID, e.Suggestion)
	}
	return fmt.Sprintf("view: unknown view %q", e.ID)
}

func (e *InvalidViewError) Is(target error) bool { return target == ErrInvalidView }
