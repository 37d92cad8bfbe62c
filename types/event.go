package types

// AssignmentEvent describes an entry placed into a group.
type AssignmentEvent struct {
	// GameID identifies the game the assignment belongs to. A new ID is minted
	// when the engine is created and whenever a new game starts.
	GameID string `json:"gameId"`

	// Entry is the placed entry.
	Entry Entry `json:"entry"`

	// GroupIndex is the zero-based index of the receiving group.
	GroupIndex int `json:"groupIndex"`

	// Fallback is true when the entry was not found in the precomputed assignment
	// and went to the live lightest group instead.
	Fallback bool `json:"fallback"`

	// Manual is true when the operator placed the entry directly without a spin.
	Manual bool `json:"manual"`

	// Remaining is the number of entries still on the wheel after this assignment.
	Remaining int `json:"remaining"`
}
