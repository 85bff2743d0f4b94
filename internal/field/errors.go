package field

import "errors"

// Sentinel errors for arena operations.
var (
	// ErrUnknownField is returned when an ID does not address an arena entry.
	ErrUnknownField = errors.New("field: unknown field id")

	// ErrSlotOutOfRange is returned when a slot index is outside the arity of
	// the parent variant.
	ErrSlotOutOfRange = errors.New("field: slot index out of range")

	// ErrCycle is returned when a binding would make a field reachable from
	// itself.
	ErrCycle = errors.New("field: binding would create a cycle")

	// ErrNotCache is returned when a cache operation targets another variant.
	ErrNotCache = errors.New("field: not a region cache")

	// ErrEmptyRect is returned when a cache is populated over a rectangle with
	// no area.
	ErrEmptyRect = errors.New("field: rectangle has no area")
)
