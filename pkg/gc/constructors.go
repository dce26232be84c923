package gc

import (
	"errors"

	"lispcore/pkg/heap"
)

// ErrZeroOrNegativeSize is returned by the size-validating constructors
// below when asked to build an object whose element count is zero or
// negative. That precondition is unreachable from inside pkg/gc itself
// (every internal caller passes a slice-derived, non-negative length),
// but pkg/loader sits at a boundary untrusted input can reach — e.g. a
// vector size parsed from a command-line flag or a malformed literal —
// so that boundary validates explicitly and returns this error instead
// of letting a negative count reach the runtime as an unrecovered
// slice-bounds panic.
var ErrZeroOrNegativeSize = errors.New("gc: object element count must be positive")

// The constructors below are thin wrappers over alloc: each builds the
// kind-specific payload, lets alloc account for its size and trigger a
// collection if the young generation is full, then hands back a pointer
// Value. A collection triggered inside alloc treats the new object's own
// pointer fields as roots, so the arguments stored into it survive and
// are rewritten to their post-collection Refs. Any other pointer the
// caller keeps in a local across the call must be preserved first; the
// collection updates only shadow-stack cells, heap objects and the
// object being built.

// NewPair allocates a cons cell.
func (h *Heap) NewPair(car, cdr heap.Value) heap.Value {
	return h.alloc(heap.KindPair, func(o *heap.Object) {
		o.Car, o.Cdr = car, cdr
	})
}

// NewVector allocates a vector initialized from elems. elems is copied;
// the caller's slice is not aliased.
func (h *Heap) NewVector(elems []heap.Value) heap.Value {
	return h.alloc(heap.KindVector, func(o *heap.Object) {
		o.Elems = append([]heap.Value(nil), elems...)
	})
}

// NewVectorFilled allocates an n-element vector with every slot set to
// fill.
func (h *Heap) NewVectorFilled(n int, fill heap.Value) heap.Value {
	return h.alloc(heap.KindVector, func(o *heap.Object) {
		o.Elems = make([]heap.Value, n)
		for i := range o.Elems {
			o.Elems[i] = fill
		}
	})
}

// NewVectorOfSize validates n before allocating an n-element vector
// filled with fill. Unlike NewVectorFilled, which trusts its caller, this
// is the entry point meant for boundary code (pkg/loader, the CLI's
// stress command) that derives n from outside input.
func (h *Heap) NewVectorOfSize(n int, fill heap.Value) (heap.Value, error) {
	if n <= 0 {
		return heap.Value{}, ErrZeroOrNegativeSize
	}
	return h.NewVectorFilled(n, fill), nil
}

// NewBytevector allocates a bytevector, copying b.
func (h *Heap) NewBytevector(b []byte) heap.Value {
	return h.alloc(heap.KindBytevector, func(o *heap.Object) {
		o.Bytes = append([]byte(nil), b...)
	})
}

// NewString allocates a string from its code points.
func (h *Heap) NewString(s []rune) heap.Value {
	return h.alloc(heap.KindString, func(o *heap.Object) {
		o.Codepoints = append([]rune(nil), s...)
	})
}

// NewStringFromGo allocates a string object from a Go string.
func (h *Heap) NewStringFromGo(s string) heap.Value {
	return h.NewString([]rune(s))
}

// NewBigint allocates an arbitrary-precision integer from its sign
// (-1, 0, or 1) and base-10^8 limbs, least-significant first.
func (h *Heap) NewBigint(sign int, digits []uint32) heap.Value {
	return h.alloc(heap.KindBigint, func(o *heap.Object) {
		o.Sign = sign
		o.Digits = append([]uint32(nil), digits...)
	})
}

// NewRational allocates a rational from already-reduced numerator and
// denominator values; reduction to lowest terms is an evaluator concern.
func (h *Heap) NewRational(num, den heap.Value) heap.Value {
	return h.alloc(heap.KindRational, func(o *heap.Object) {
		o.Num, o.Den = num, den
	})
}

// NewComplex allocates a complex number from its real and imaginary
// parts.
func (h *Heap) NewComplex(re, im heap.Value) heap.Value {
	return h.alloc(heap.KindComplex, func(o *heap.Object) {
		o.Re, o.Im = re, im
	})
}

// NewEnvironment allocates a lexical environment: a fixed-width parent
// chain (batchFather, padded or truncated to heap.BatchFatherSize) plus a
// variable-length binding array.
func (h *Heap) NewEnvironment(batchFather []heap.Value, entries []heap.Value) heap.Value {
	return h.alloc(heap.KindEnvironment, func(o *heap.Object) {
		copyBatchFather(&o.BatchFather, batchFather)
		o.Entries = append([]heap.Value(nil), entries...)
	})
}

// NewActivationRecord allocates a call frame, shaped identically to an
// environment (same batch-father layout) but tagged distinctly so the
// evaluator can tell them apart.
func (h *Heap) NewActivationRecord(batchFather []heap.Value, entries []heap.Value) heap.Value {
	return h.alloc(heap.KindActivationRecord, func(o *heap.Object) {
		copyBatchFather(&o.BatchFather, batchFather)
		o.Entries = append([]heap.Value(nil), entries...)
	})
}

func copyBatchFather(dst *[heap.BatchFatherSize]heap.Value, src []heap.Value) {
	for i := range dst {
		if i < len(src) {
			dst[i] = src[i]
		} else {
			dst[i] = heap.Unbound
		}
	}
}

// NewProcedure allocates a closure: formal parameter list, captured
// environment, body, and compiled code.
func (h *Heap) NewProcedure(formals, env, body, code heap.Value) heap.Value {
	return h.alloc(heap.KindProcedure, func(o *heap.Object) {
		o.Formals, o.Env, o.Body, o.Code = formals, env, body, code
	})
}

// NewMacro allocates a macro as an ordered list of transformer pointers;
// the first whose pattern matches a use site wins.
func (h *Heap) NewMacro(transformers []heap.Value) heap.Value {
	return h.alloc(heap.KindMacro, func(o *heap.Object) {
		o.Transformers = append([]heap.Value(nil), transformers...)
	})
}

// NewTransformer allocates one syntax-rules clause: the environment it
// closes over, its pattern, and its template.
func (h *Heap) NewTransformer(tenv, pattern, template heap.Value) heap.Value {
	return h.alloc(heap.KindTransformer, func(o *heap.Object) {
		o.TEnv, o.Pattern, o.Template = tenv, pattern, template
	})
}

// NewStruct allocates a user-defined record of the given type tag and
// field values.
func (h *Heap) NewStruct(typeID int64, fields []heap.Value) heap.Value {
	return h.alloc(heap.KindStruct, func(o *heap.Object) {
		o.TypeID = typeID
		o.Fields = append([]heap.Value(nil), fields...)
	})
}

// NewCode allocates a compiled instruction sequence. Instruction operands
// are not traced by the collector: a code object's lifetime is tied to
// the procedure that owns it, never to values its instructions happen to
// reference.
func (h *Heap) NewCode(instructions []heap.Instruction) heap.Value {
	return h.alloc(heap.KindCode, func(o *heap.Object) {
		o.Instructions = append([]heap.Instruction(nil), instructions...)
	})
}
