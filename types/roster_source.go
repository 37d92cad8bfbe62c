package types

import "context"

// RosterSource discovers the entries available for a game.
//
// Implementations might read from a file, a database, or an external API.
type RosterSource interface {
	// ListEntries returns all entries to load onto the wheel.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//
	// Returns:
	//   - []Entry: Entries to load
	//   - error: Error if discovery fails
	ListEntries(ctx context.Context) ([]Entry, error)
}
