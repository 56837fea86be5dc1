package schedule

import "errors"

var (
	// ErrInvalidRange means the planning window bounds or trip length are
	// degenerate (end before start, length < 1).
	ErrInvalidRange = errors.New("invalid planning range")

	// ErrInvalidWindow means a requested window does not fit inside the
	// planning bounds.
	ErrInvalidWindow = errors.New("window outside planning bounds")

	ErrInvalidRecord     = errors.New("invalid availability record")
	ErrDuplicateRank     = errors.New("duplicate pick rank")
	ErrInvalidTransition = errors.New("invalid trip status transition")

	// State errors returned when a write arrives for a trip whose lifecycle
	// no longer accepts it.
	ErrTripLocked   = errors.New("trip dates are locked")
	ErrTripCanceled = errors.New("trip is canceled")
)
