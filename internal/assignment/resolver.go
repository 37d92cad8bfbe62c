package assignment

import "github.com/arloliu/spinpick/types"

// Resolution is the group chosen for a settled entry.
type Resolution struct {
	GroupIndex int
	Fallback   bool
}

// Resolve chooses the group for entry.
//
// The precomputed slot wins whenever the index knows the entry and the slot
// still exists in groups. Otherwise the entry falls back to the live group
// with the lowest total (ties to the lowest index).
func Resolve(ix *Index, groups types.Partition, entry types.Entry) Resolution {
	if slot, ok := ix.Lookup(entry.Name); ok && slot.GroupIndex < len(groups) {
		return Resolution{GroupIndex: slot.GroupIndex}
	}

	return Resolution{GroupIndex: groups.LightestGroup(), Fallback: true}
}
