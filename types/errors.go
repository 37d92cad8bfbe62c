package types

import "errors"

// Sentinel errors for the spinpick library.
//
// These errors provide type-safe error checking using errors.Is().
// Components wrap them with context using fmt.Errorf("%s: %w", msg, err).
//
// Error Naming Convention:
//   - Use descriptive names with Err prefix
//   - Group by component (Engine, Roster, Partitioner, Runner)

// Engine errors - Public API errors returned by Engine operations.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidGroupCount is returned when a group count below the allowed minimum is requested.
	ErrInvalidGroupCount = errors.New("invalid group count")

	// ErrEmptyRoster is returned when a spin is requested with no entries on the wheel.
	ErrEmptyRoster = errors.New("roster is empty")

	// ErrSpinInProgress is returned when an operation requires the engine to be at rest
	// but a spin or staged reveal is in flight.
	ErrSpinInProgress = errors.New("spin in progress")

	// ErrClosed is returned when operating on a closed engine.
	ErrClosed = errors.New("engine closed")
)

// Roster errors - Errors returned when editing the active roster.
var (
	// ErrInvalidEntry is returned when an entry has an empty name.
	ErrInvalidEntry = errors.New("invalid entry")

	// ErrDuplicateEntry is returned when an entry name is already in use in the current game.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrEntryIndexOutOfRange is returned when a roster index does not exist.
	ErrEntryIndexOutOfRange = errors.New("entry index out of range")

	// ErrRosterSourceRequired is returned when a nil roster source is supplied.
	ErrRosterSourceRequired = errors.New("roster source is required")
)

// Runner errors - Errors returned by the frame runner.
var (
	// ErrAlreadyStarted is returned when Start is called on an already running runner.
	ErrAlreadyStarted = errors.New("runner already started")

	// ErrNotStarted is returned when Stop is called before Start.
	ErrNotStarted = errors.New("runner not started")
)
