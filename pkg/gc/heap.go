package gc

import (
	"fmt"
	"log/slog"

	"lispcore/pkg/heap"
	"lispcore/pkg/remset"
)

// Heap is the generational collector's entire mutable state: the young
// semispace (the "from" half; "to" exists only transiently during a minor
// collection), the old generation, the remembered set, and the shadow
// stack of mutator-pinned roots.
//
// The zero Heap is not ready to use; construct with New.
type Heap struct {
	cfg Config
	log *slog.Logger

	young   []heap.Object
	oldGen  []heap.Object
	copying bool // true only inside minorGC, between building to-space and the swap

	youngUsed, youngSize int
	oldUsed, oldSize     int

	remset *remset.Set
	stack  []*heap.Value
}

// New returns a Heap sized per cfg.
func New(cfg Config) *Heap {
	return &Heap{
		cfg:       cfg,
		log:       cfg.logger(),
		youngSize: cfg.InitialSize,
		oldSize:   cfg.InitialSize * cfg.OldToYoungRatio,
		remset:    remset.New(),
	}
}

// NewDefault returns a Heap using DefaultConfig.
func NewDefault() *Heap {
	return New(DefaultConfig())
}

// Stats is a snapshot of the heap's generation occupancy, useful for the
// CLI's stats subcommand and for tests asserting bounded resident size
// under sustained allocation.
type Stats struct {
	YoungObjects, YoungUsed, YoungSize int
	OldObjects, OldUsed, OldSize       int
	RemSetEntries                     int
}

func (h *Heap) Stats() Stats {
	return Stats{
		YoungObjects: len(h.young), YoungUsed: h.youngUsed, YoungSize: h.youngSize,
		OldObjects: len(h.oldGen), OldUsed: h.oldUsed, OldSize: h.oldSize,
		RemSetEntries: h.remset.Len(),
	}
}

// Deref resolves r to the object it currently names. Between garbage
// collections every reachable Ref's Moved flag is false, so this is a
// plain index; it only needs to follow Moved/Forward for a Ref captured
// mid-collection, which is never true of anything the mutator holds (the
// mutator never runs concurrently with GC).
func (h *Heap) Deref(r heap.Ref) *heap.Object {
	o := h.objectAt(r)
	if o.Moved {
		return h.Deref(o.Forward)
	}
	return o
}

// objectAt indexes straight into the owning generation's slice, without
// following Moved/Forward. Only valid for a Ref captured before the GC
// currently in progress (if any) started — which is every Ref the
// collectors themselves work with, by construction.
func (h *Heap) objectAt(r heap.Ref) *heap.Object {
	switch r.Gen {
	case heap.GenYoung:
		return &h.young[r.Index]
	case heap.GenOld:
		return &h.oldGen[r.Index]
	default:
		fatal("deref", "ref has unknown generation %v", r.Gen)
		return nil
	}
}

func fatal(op, format string, args ...interface{}) {
	panic(&heap.FatalError{Op: op, Message: fmt.Sprintf(format, args...)})
}

// alloc is the core bump allocator. It tries the young generation first;
// on failure it runs a minor collection (and, if that tenured into a
// full old generation, a major collection too); then it grows until the
// request fits; then it allocates.
func (h *Heap) alloc(kind heap.ObjectKind, fill func(*heap.Object)) heap.Value {
	obj := heap.Object{Kind: kind}
	if fill != nil {
		fill(&obj)
	}
	size := obj.Size()
	if size <= 0 {
		fatal("alloc", "object size %d is zero or negative for kind %v", size, kind)
	}

	if h.youngUsed+size > h.youngSize {
		// obj is in neither generation yet, so its pointer fields are
		// rooted for the collection; otherwise they would keep the Refs
		// they held before objects moved.
		base := len(h.stack)
		heap.Walk(&obj, func(v *heap.Value) { h.stack = append(h.stack, v) })
		grownOld := h.minorGC()
		if grownOld {
			h.majorGC()
		}
		h.stack = h.stack[:base]
		// Grow until sufficient: a single Grow call is not guaranteed to
		// make the request fit, so this loops rather than growing once.
		for h.youngUsed+size > h.youngSize {
			h.Grow()
		}
	}

	idx := len(h.young)
	h.young = append(h.young, obj)
	h.youngUsed += size
	h.log.Debug("alloc", "kind", kind.String(), "size", size, "index", idx)
	return heap.NewPointer(heap.Ref{Gen: heap.GenYoung, Index: idx})
}

// Preserve pins cell on the shadow stack so that any GC triggered while
// it is preserved updates *cell in place instead of leaving it dangling.
// Every code path that calls a New* constructor (directly or
// transitively) while holding a heap-pointer Value in a local must
// Preserve that local's address first, and Release before returning.
func (h *Heap) Preserve(cell *heap.Value) {
	h.stack = append(h.stack, cell)
}

// Release pops n cells pushed by Preserve. Callers release in the reverse
// order they preserved, the same discipline a scoped guard would enforce
// — this package does not itself enforce strict LIFO nesting, so misuse
// here is a mutator bug, not a core one.
func (h *Heap) Release(n int) {
	h.stack = h.stack[:len(h.stack)-n]
}

// ShadowStackDepth reports how many cells are currently preserved.
func (h *Heap) ShadowStackDepth() int {
	return len(h.stack)
}

// WriteBarrier records that parent (which must be an old-generation
// Ref) may now reference a young-generation object, after a mutation that
// introduced such an edge. Redundant calls are harmless; a missing call
// is a correctness bug — the next minor GC will not treat parent as a
// root and may collect the young object out from under it.
func (h *Heap) WriteBarrier(parent heap.Ref) {
	if parent.Gen != heap.GenOld {
		return
	}
	h.remset.Insert(parent)
}

// SetField writes val into *field, which belongs to the object at parent,
// and performs the write barrier automatically when the new value is a
// young-generation pointer and parent is an old-generation object. This
// is the single mutation primitive field writes should be centralized
// behind, so that write barriers cannot be forgotten by a direct field
// assignment.
func (h *Heap) SetField(parent heap.Ref, field *heap.Value, val heap.Value) {
	*field = val
	if val.IsPointer() && val.Pointer().Gen == heap.GenYoung {
		h.WriteBarrier(parent)
	}
}
