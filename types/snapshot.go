package types

// Snapshot is a consistent copy of the engine's observable state.
type Snapshot struct {
	GameID     string    `json:"gameId"`
	Phase      Phase     `json:"phase"`
	Rotation   float64   `json:"rotation"`
	GroupCount int       `json:"groupCount"`
	HasSpun    bool      `json:"hasSpun"`
	Roster     []Entry   `json:"roster"`
	Groups     Partition `json:"groups"`
}
