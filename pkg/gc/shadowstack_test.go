package gc

import (
	"testing"

	"lispcore/pkg/heap"
)

func TestPreserveReleaseLIFODepth(t *testing.T) {
	h := New(smallConfig())
	a := heap.NewFixnum(1)
	b := heap.NewFixnum(2)

	h.Preserve(&a)
	h.Preserve(&b)
	if got := h.ShadowStackDepth(); got != 2 {
		t.Fatalf("expected depth 2, got %d", got)
	}

	h.Release(1)
	if got := h.ShadowStackDepth(); got != 1 {
		t.Fatalf("expected depth 1 after releasing one cell, got %d", got)
	}

	h.Release(1)
	if got := h.ShadowStackDepth(); got != 0 {
		t.Fatalf("expected depth 0 after releasing all cells, got %d", got)
	}
}

func TestPreservedValueSurvivesMinorAndMajorGC(t *testing.T) {
	cfg := smallConfig()
	cfg.ThresholdAge = 1
	h := New(cfg)

	v := h.NewPair(heap.NewFixnum(123), heap.Nil)
	h.Preserve(&v)
	defer h.Release(1)

	h.minorGC()
	h.majorGC()

	if h.Deref(v.Pointer()).Car.Fixnum() != 123 {
		t.Fatal("preserved value did not survive minor+major GC")
	}
}
