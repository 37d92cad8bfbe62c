package assignment

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/spinpick/types"
	"github.com/zeebo/xxh3"
)

// BuildFunc computes a partition for a frozen roster.
type BuildFunc func(roster []types.Entry) (types.Partition, error)

// Cache holds the assignment computed at the first spin of a game.
//
// The cache is either empty or holds exactly one partition and its index. It is
// filled lazily by Get and emptied only by Invalidate, which the engine calls on
// game reset and group count change.
//
// Alongside the partition the cache tracks an order-independent fingerprint of
// the entries that still have to be revealed. Consume removes a revealed entry
// from it, so Drifted can tell whether the live roster still matches what was
// partitioned.
//
// Cache is not safe for concurrent use; the engine guards it with its own lock.
type Cache struct {
	partition types.Partition
	index     *Index
	pending   uint64
}

// Get returns the cached index, building it from roster on first use.
//
// Parameters:
//   - roster: Live roster, used only when the cache is empty
//   - build: Partition function invoked at most once per fill
//
// Returns:
//   - *Index: The cached index
//   - bool: true if this call built the index
//   - error: Build error (the cache stays empty)
func (c *Cache) Get(roster []types.Entry, build BuildFunc) (*Index, bool, error) {
	if c.index != nil {
		return c.index, false, nil
	}

	p, err := build(roster)
	if err != nil {
		return nil, false, fmt.Errorf("build assignment: %w", err)
	}
	c.partition = p
	c.index = Build(p)
	c.pending = Fingerprint(roster)

	return c.index, true, nil
}

// Valid reports whether the cache holds an index.
func (c *Cache) Valid() bool {
	return c.index != nil
}

// Index returns the cached index or nil.
func (c *Cache) Index() *Index {
	return c.index
}

// Partition returns a copy of the cached partition, or nil when empty.
func (c *Cache) Partition() types.Partition {
	return c.partition.Clone()
}

// Invalidate discards the cached partition.
func (c *Cache) Invalidate() {
	c.partition = nil
	c.index = nil
	c.pending = 0
}

// Consume marks entry as revealed so it no longer counts toward drift.
func (c *Cache) Consume(entry types.Entry) {
	if c.index == nil {
		return
	}
	c.pending -= entryHash(entry)
}

// Drifted reports whether roster differs from the entries still pending reveal.
//
// Entries added, removed, or placed manually after the partition was computed
// make the roster drift. An empty cache never drifts.
func (c *Cache) Drifted(roster []types.Entry) bool {
	if c.index == nil {
		return false
	}

	return Fingerprint(roster) != c.pending
}

// Fingerprint returns an order-independent hash of a roster.
//
// The fingerprint is the wrapping sum of per-entry xxh3 hashes over name and
// score, so removing an entry subtracts exactly its contribution.
func Fingerprint(roster []types.Entry) uint64 {
	var sum uint64
	for _, e := range roster {
		sum += entryHash(e)
	}

	return sum
}

func entryHash(e types.Entry) uint64 {
	var score [8]byte
	binary.LittleEndian.PutUint64(score[:], uint64(int64(e.Score))) //nolint:gosec // two's complement round-trip is intended

	h := xxh3.New()
	_, _ = h.WriteString(e.Name)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(score[:])

	return h.Sum64()
}
