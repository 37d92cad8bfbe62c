package types

// Entry is a named, scored participant to be grouped.
//
// Entries are immutable once created. The name is the identity of the entry
// within an active roster and must be unique there.
type Entry struct {
	// Name uniquely identifies the entry within a roster.
	Name string `json:"name" yaml:"name"`

	// Score is the entry's weight when balancing groups (>= 1).
	Score int `json:"score" yaml:"score"`
}

// Group is one output bucket of a game.
//
// Members are kept in assignment order. TotalScore is always the sum of the
// member scores.
type Group struct {
	Members    []Entry `json:"members"`
	TotalScore int     `json:"totalScore"`
}

// Add appends an entry to the group and updates the running total.
func (g *Group) Add(e Entry) {
	g.Members = append(g.Members, e)
	g.TotalScore += e.Score
}

// Len returns the number of members in the group.
func (g Group) Len() int {
	return len(g.Members)
}

// Clone returns a deep copy of the group.
func (g Group) Clone() Group {
	members := make([]Entry, len(g.Members))
	copy(members, g.Members)

	return Group{Members: members, TotalScore: g.TotalScore}
}

// Partition is an ordered sequence of groups covering a roster exactly once.
type Partition []Group

// NewEmptyPartition returns a partition of groupCount empty groups.
func NewEmptyPartition(groupCount int) Partition {
	if groupCount < 0 {
		groupCount = 0
	}
	p := make(Partition, groupCount)
	for i := range p {
		p[i] = Group{Members: []Entry{}}
	}

	return p
}

// TotalScore returns the sum of all group totals.
func (p Partition) TotalScore() int {
	total := 0
	for _, g := range p {
		total += g.TotalScore
	}

	return total
}

// Spread returns the difference between the heaviest and lightest group totals.
//
// Returns 0 for partitions with fewer than two groups.
func (p Partition) Spread() int {
	if len(p) < 2 {
		return 0
	}
	lo, hi := p[0].TotalScore, p[0].TotalScore
	for _, g := range p[1:] {
		lo = min(lo, g.TotalScore)
		hi = max(hi, g.TotalScore)
	}

	return hi - lo
}

// EntryCount returns the number of entries across all groups.
func (p Partition) EntryCount() int {
	n := 0
	for _, g := range p {
		n += len(g.Members)
	}

	return n
}

// Clone returns a deep copy of the partition.
func (p Partition) Clone() Partition {
	if p == nil {
		return nil
	}
	out := make(Partition, len(p))
	for i, g := range p {
		out[i] = g.Clone()
	}

	return out
}

// LightestGroup returns the index of the group with the lowest total score.
//
// Ties resolve to the lowest index. Returns -1 for an empty partition.
func (p Partition) LightestGroup() int {
	if len(p) == 0 {
		return -1
	}
	idx := 0
	for i := 1; i < len(p); i++ {
		if p[i].TotalScore < p[idx].TotalScore {
			idx = i
		}
	}

	return idx
}

// TotalScoreOf returns the sum of scores of the given entries.
func TotalScoreOf(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Score
	}

	return total
}
