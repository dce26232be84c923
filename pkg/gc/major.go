package gc

import "lispcore/pkg/heap"

// majorGC runs a mark-compact collection over both generations, triggered
// when minorGC's tenuring has grown the old generation past its budget.
//
// Compaction here builds fresh, densely-packed slices for the survivors
// of each generation rather than sliding objects within their existing
// backing array. An in-place slide has to reason carefully about
// overlapping moves whenever a destination index can exceed its source;
// a fresh destination slice has no such destination-overtakes-source
// hazard to reason about at all.
func (h *Heap) majorGC() {
	for i := range h.young {
		h.young[i].Mark = false
	}
	for i := range h.oldGen {
		h.oldGen[i].Mark = false
	}

	for _, cell := range h.stack {
		h.mark(*cell)
	}

	youngFwd := make([]heap.Ref, len(h.young))
	oldFwd := make([]heap.Ref, len(h.oldGen))
	newYoung := make([]heap.Object, 0, len(h.young))
	newOld := make([]heap.Object, 0, len(h.oldGen))

	for i := range h.young {
		if h.young[i].Mark {
			youngFwd[i] = heap.Ref{Gen: heap.GenYoung, Index: len(newYoung)}
			newYoung = append(newYoung, h.young[i])
		}
	}
	for i := range h.oldGen {
		if h.oldGen[i].Mark {
			oldFwd[i] = heap.Ref{Gen: heap.GenOld, Index: len(newOld)}
			newOld = append(newOld, h.oldGen[i])
		}
	}

	rewrite := func(v *heap.Value) {
		if !v.IsPointer() {
			return
		}
		r := v.Pointer()
		switch r.Gen {
		case heap.GenYoung:
			*v = heap.NewPointer(youngFwd[r.Index])
		case heap.GenOld:
			*v = heap.NewPointer(oldFwd[r.Index])
		}
	}

	for i := range newYoung {
		heap.Walk(&newYoung[i], rewrite)
	}
	for i := range newOld {
		heap.Walk(&newOld[i], rewrite)
	}
	for _, cell := range h.stack {
		rewrite(cell)
	}

	h.young = newYoung
	h.oldGen = newOld
	h.youngUsed = sumSizes(newYoung)
	h.oldUsed = sumSizes(newOld)

	// Every surviving old→young edge was rewritten above; none of it is
	// known to still hold, so rebuild the remembered set by inspection
	// rather than trying to carry old entries through compaction's
	// renumbering.
	h.remset.Clear()
	for i := range h.oldGen {
		obj := &h.oldGen[i]
		references := false
		heap.Walk(obj, func(v *heap.Value) {
			if v.IsPointer() && v.Pointer().Gen == heap.GenYoung {
				references = true
			}
		})
		if references {
			h.remset.Insert(heap.Ref{Gen: heap.GenOld, Index: i})
		}
	}

	h.log.Debug("major gc", "youngLive", len(newYoung), "oldLive", len(newOld))
}

// mark recursively marks v and everything reachable from it. Cycles
// terminate on the Mark flag; Go's call stack stands in for an explicit
// mark stack, which is safe here because lispcore object graphs are
// bounded by available heap memory, the same bound an explicit mark
// stack would have.
func (h *Heap) mark(v heap.Value) {
	if !v.IsPointer() {
		return
	}
	obj := h.objectAt(v.Pointer())
	if obj.Mark {
		return
	}
	obj.Mark = true
	heap.Walk(obj, func(child *heap.Value) {
		h.mark(*child)
	})
}
