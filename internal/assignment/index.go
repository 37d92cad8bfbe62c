package assignment

import "github.com/arloliu/spinpick/types"

// Slot records where an entry was placed by the partitioner.
type Slot struct {
	GroupIndex int
	Entry      types.Entry
}

// Index maps entry names to their precomputed group.
//
// An Index is immutable after Build and safe for concurrent reads.
type Index struct {
	slots map[string]Slot
}

// Build indexes every member of the partition by name.
//
// If a name appears more than once, the first occurrence (lowest group index,
// then member order) wins.
func Build(p types.Partition) *Index {
	ix := &Index{
		slots: make(map[string]Slot, p.EntryCount()),
	}
	for gi, g := range p {
		for _, m := range g.Members {
			if _, exists := ix.slots[m.Name]; exists {
				continue
			}
			ix.slots[m.Name] = Slot{GroupIndex: gi, Entry: m}
		}
	}

	return ix
}

// Lookup returns the slot recorded for name.
func (ix *Index) Lookup(name string) (Slot, bool) {
	if ix == nil {
		return Slot{}, false
	}
	s, ok := ix.slots[name]

	return s, ok
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}

	return len(ix.slots)
}
