package gc

import "lispcore/pkg/heap"

// minorGC runs a Cheney-style copying collection of the young generation,
// folded into three passes (root copy, remembered-set rescan,
// breadth-first scan-and-copy) since the Ref representation lets a
// single scan loop serve both young survivors and newly tenured objects
// without a second address space to track.
//
// Returns true if tenuring grew the old generation past its budget, the
// signal that a major collection should follow immediately.
func (h *Heap) minorGC() (oldGrew bool) {
	h.copying = true
	defer func() { h.copying = false }()

	to := make([]heap.Object, 0, len(h.young))
	oldStart := len(h.oldGen)
	// The passes below write through pointers into oldGen elements while
	// copyYoung appends to oldGen. Each young object is tenured at most
	// once, so reserving len(h.young) slots up front means those appends
	// never reallocate the backing array out from under such a pointer.
	if cap(h.oldGen)-len(h.oldGen) < len(h.young) {
		reserved := make([]heap.Object, len(h.oldGen), len(h.oldGen)+len(h.young))
		copy(reserved, h.oldGen)
		h.oldGen = reserved
	}

	visit := func(v *heap.Value) {
		if !v.IsPointer() {
			return
		}
		r := v.Pointer()
		if r.Gen != heap.GenYoung {
			return
		}
		*v = heap.NewPointer(h.copyYoung(r, &to))
	}

	for _, cell := range h.stack {
		visit(cell)
	}

	var prune []heap.Ref
	h.remset.Each(func(parent heap.Ref) bool {
		obj := &h.oldGen[parent.Index]
		stillYoung := false
		heap.Walk(obj, func(v *heap.Value) {
			visit(v)
			if v.IsPointer() && v.Pointer().Gen == heap.GenYoung {
				stillYoung = true
			}
		})
		if !stillYoung {
			prune = append(prune, parent)
		}
		return true
	})
	for _, p := range prune {
		h.remset.Delete(p)
	}

	// Breadth-first scan: to-space and the newly tenured tail of oldGen
	// both grow as copyYoung runs, so the two index cursors chase each
	// other until neither advances.
	toIdx, oldIdx := 0, oldStart
	for toIdx < len(to) || oldIdx < len(h.oldGen) {
		for toIdx < len(to) {
			heap.Walk(&to[toIdx], visit)
			toIdx++
		}
		for oldIdx < len(h.oldGen) {
			obj := &h.oldGen[oldIdx]
			stillYoung := false
			heap.Walk(obj, func(v *heap.Value) {
				visit(v)
				if v.IsPointer() && v.Pointer().Gen == heap.GenYoung {
					stillYoung = true
				}
			})
			if stillYoung {
				h.remset.Insert(heap.Ref{Gen: heap.GenOld, Index: oldIdx})
			}
			oldIdx++
		}
	}

	h.young = to
	h.youngUsed = sumSizes(to)
	h.oldUsed = sumSizes(h.oldGen)

	oldGrew = h.oldUsed > h.oldSize
	h.log.Debug("minor gc", "youngSurvivors", len(to), "oldTotal", len(h.oldGen), "oldGrew", oldGrew)
	return oldGrew
}

// copyYoung copies the from-space object at r into to (or, if it has
// reached ThresholdAge, tenures it directly into the old generation),
// installing a forwarding pointer so any later reference to r resolves to
// the same copy. Idempotent: an already-moved object returns its existing
// forward without copying again, which is what makes a DAG (rather than
// strictly a tree) of young references safe to copy.
func (h *Heap) copyYoung(r heap.Ref, to *[]heap.Object) heap.Ref {
	obj := &h.young[r.Index]
	if obj.Moved {
		return obj.Forward
	}

	if obj.Age+1 >= h.cfg.ThresholdAge {
		fwd := heap.Ref{Gen: heap.GenOld, Index: len(h.oldGen)}
		tenured := *obj
		tenured.Age++
		tenured.Moved, tenured.Forward = false, heap.Ref{}
		h.oldGen = append(h.oldGen, tenured)
		obj.Moved, obj.Forward = true, fwd
		return fwd
	}

	fwd := heap.Ref{Gen: heap.GenYoung, Index: len(*to)}
	survivor := *obj
	survivor.Age++
	survivor.Moved, survivor.Forward = false, heap.Ref{}
	*to = append(*to, survivor)
	obj.Moved, obj.Forward = true, fwd
	return fwd
}

func sumSizes(objs []heap.Object) int {
	n := 0
	for i := range objs {
		n += objs[i].Size()
	}
	return n
}
