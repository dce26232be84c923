package gc

import (
	"testing"

	"lispcore/pkg/heap"
)

func TestMinorGCReclaimsUnreachableGarbage(t *testing.T) {
	cfg := smallConfig()
	cfg.ThresholdAge = 100 // keep everything young for this test
	h := New(cfg)

	root := h.NewPair(heap.NewFixnum(1), heap.Nil)
	h.Preserve(&root)
	defer h.Release(1)

	for i := 0; i < 500; i++ {
		h.NewPair(heap.NewFixnum(int64(i)), heap.Nil)
	}

	h.minorGC()

	if got := h.Stats().YoungObjects; got != 1 {
		t.Fatalf("expected only the preserved root to survive, got %d young objects", got)
	}
	if h.Deref(root.Pointer()).Car.Fixnum() != 1 {
		t.Fatal("root corrupted by minor GC")
	}
}

func TestMinorGCTenuresAfterThresholdAge(t *testing.T) {
	cfg := smallConfig()
	cfg.ThresholdAge = 3
	h := New(cfg)

	v := h.NewPair(heap.NewFixnum(5), heap.Nil)
	h.Preserve(&v)
	defer h.Release(1)

	for i := 0; i < int(cfg.ThresholdAge); i++ {
		h.minorGC()
	}

	if v.Pointer().Gen != heap.GenOld {
		t.Fatalf("expected tenuring after %d minor collections, ref is still %v", cfg.ThresholdAge, v.Pointer().Gen)
	}
	if h.Deref(v.Pointer()).Car.Fixnum() != 5 {
		t.Fatal("tenured object corrupted")
	}
}

func TestMinorGCFollowsChainsThroughSurvivors(t *testing.T) {
	cfg := smallConfig()
	cfg.ThresholdAge = 100
	h := New(cfg)

	tail := heap.Nil
	for i := 0; i < 20; i++ {
		tail = h.NewPair(heap.NewFixnum(int64(i)), tail)
	}
	h.Preserve(&tail)
	defer h.Release(1)

	h.minorGC()

	cur := tail
	for i := 19; i >= 0; i-- {
		obj := h.Deref(cur.Pointer())
		if obj.Car.Fixnum() != int64(i) {
			t.Fatalf("chain corrupted at position %d: got %v", i, obj.Car)
		}
		cur = obj.Cdr
	}
	if !cur.IsNil() {
		t.Fatal("expected chain to terminate in nil")
	}
}

func TestWriteBarrierKeepsYoungChildAliveWithoutStackRoot(t *testing.T) {
	cfg := smallConfig()
	cfg.ThresholdAge = 1
	h := New(cfg)

	root := h.NewPair(heap.NewFixnum(1), heap.Nil)
	h.Preserve(&root)
	h.minorGC() // tenures root
	h.Release(1)
	if root.Pointer().Gen != heap.GenOld {
		t.Fatal("expected root to be tenured")
	}
	oldRef := root.Pointer()

	young := h.NewPair(heap.NewFixnum(99), heap.Nil)
	rootObj := h.Deref(oldRef)
	h.SetField(oldRef, &rootObj.Cdr, young)
	if !h.remset.Contains(oldRef) {
		t.Fatal("expected SetField's write barrier to record the old->young edge")
	}

	h.minorGC()

	child := h.Deref(oldRef).Cdr
	if !child.IsPointer() {
		t.Fatalf("expected root's cdr to still be a live pointer after minor GC, got %v", child)
	}
	if h.Deref(child.Pointer()).Car.Fixnum() != 99 {
		t.Fatal("young child reachable only through the remembered set did not survive minor GC")
	}
}
