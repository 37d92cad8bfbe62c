package spinpick

import "github.com/arloliu/spinpick/types"

// Sentinel errors returned by the Engine and Runner.
//
// They are the same values as in the types package, so errors.Is matches
// regardless of which package a caller imports them from.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrInvalidGroupCount is returned when a group count below MinGroupCount is requested.
	ErrInvalidGroupCount = types.ErrInvalidGroupCount

	// ErrEmptyRoster is returned when a spin is requested with no entries on the wheel.
	ErrEmptyRoster = types.ErrEmptyRoster

	// ErrSpinInProgress is returned when a spin or staged reveal is in flight.
	ErrSpinInProgress = types.ErrSpinInProgress

	// ErrClosed is returned when operating on a closed engine.
	ErrClosed = types.ErrClosed

	// ErrInvalidEntry is returned when an entry name is empty.
	ErrInvalidEntry = types.ErrInvalidEntry

	// ErrDuplicateEntry is returned when an entry name is already used in the current game.
	ErrDuplicateEntry = types.ErrDuplicateEntry

	// ErrEntryIndexOutOfRange is returned when a roster index does not exist.
	ErrEntryIndexOutOfRange = types.ErrEntryIndexOutOfRange

	// ErrRosterSourceRequired is returned when LoadRoster is given a nil source.
	ErrRosterSourceRequired = types.ErrRosterSourceRequired

	// ErrAlreadyStarted is returned when Start is called on a running Runner.
	ErrAlreadyStarted = types.ErrAlreadyStarted

	// ErrNotStarted is returned when Stop is called on a Runner that was never started.
	ErrNotStarted = types.ErrNotStarted
)
