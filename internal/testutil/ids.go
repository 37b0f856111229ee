package testutil

import "sync"

// FixedRunIDs returns predetermined run identifiers in order.
//
// Tests use it in place of a UUIDv7 generator so stored runs and golden
// output are reproducible.
//
// Thread-safety: FixedRunIDs is safe for concurrent use via internal mutex.
type FixedRunIDs struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedRunIDs creates a generator that returns ids in order.
func NewFixedRunIDs(ids ...string) *FixedRunIDs {
	return &FixedRunIDs{ids: ids}
}

// Generate returns the next identifier.
//
// Panics if all identifiers have been consumed; a test that asks for more
// runs than it declared is misconfigured.
func (g *FixedRunIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedRunIDs: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
