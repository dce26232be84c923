// Package remset implements the remembered set: the hash set of
// old-generation object addresses that may reference young-generation
// objects, which minor GC uses as an additional root source.
//
// A hand-rolled open-chaining hash table keyed on address modulo a fixed
// bucket count is the traditional shape for this structure. Go's builtin
// map already gives idempotent-by-key insertion and O(1) membership for a
// pointer-shaped key, which is the entire contract this needs — so the
// hash table is a direct map[heap.Ref]struct{} rather than a hand-rolled
// bucket array.
package remset

import "lispcore/pkg/heap"

// Set is the remembered set. The zero value is ready to use.
type Set struct {
	m map[heap.Ref]struct{}
}

// New returns an empty remembered set, pre-sized the way a fixed
// HASH_SIZE=10007 bucket array would be — a hint only, since Go's map
// grows on its own.
func New() *Set {
	return &Set{m: make(map[heap.Ref]struct{}, 10007)}
}

// Insert records that parent (an old-generation object's address) may
// reference a young-generation object. Idempotent: inserting the same
// parent twice is a no-op, which is exactly what a redundant write
// barrier call needs.
func (s *Set) Insert(parent heap.Ref) {
	if s.m == nil {
		s.m = make(map[heap.Ref]struct{}, 10007)
	}
	s.m[parent] = struct{}{}
}

// Delete removes parent from the set. Used by minor GC's pruning pass
// when parent no longer references anything young.
func (s *Set) Delete(parent heap.Ref) {
	delete(s.m, parent)
}

// Contains reports whether parent is currently recorded.
func (s *Set) Contains(parent heap.Ref) bool {
	_, ok := s.m[parent]
	return ok
}

// Len returns the number of recorded parents.
func (s *Set) Len() int {
	return len(s.m)
}

// Each calls fn once per recorded parent. fn may return false to stop
// early. A bucket-chain implementation walking its own linked lists has
// to take care not to advance a cursor past a node it just unlinked;
// deleting from a Go map while ranging over it is specified-safe
// (entries not yet reached are unaffected, the deleted entry is simply
// skipped), which sidesteps that whole class of bug.
func (s *Set) Each(fn func(parent heap.Ref) bool) {
	for k := range s.m {
		if !fn(k) {
			return
		}
	}
}

// Clear removes every entry. Called at the start of major GC's remembered-
// set rebuild: compaction renumbers every surviving object, so no entry
// keyed on a pre-compaction Ref can be carried forward. The caller
// immediately re-scans the compacted old generation and reinserts every
// surviving old→young edge eagerly — this is not left to be repopulated
// lazily by future write barriers.
func (s *Set) Clear() {
	s.m = make(map[heap.Ref]struct{}, 10007)
}
