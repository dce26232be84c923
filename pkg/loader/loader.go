// Package loader walks a pkg/sexpr syntax tree into heap objects managed
// by a pkg/gc Machine: interning symbols through the obarray and
// allocating pairs, vectors, and strings through the collector. Numbers,
// characters, and booleans become immediate Values with no allocation.
//
// Folds a Go-side slice or tree into a pair chain one cons at a time;
// construction only — no evaluation, no primitives.
package loader

import (
	"fmt"

	"lispcore/pkg/gc"
	"lispcore/pkg/heap"
	"lispcore/pkg/sexpr"
)

// MakeVector allocates a count-element vector filled with fill, the
// loader-facing entry point for a caller-supplied size (e.g. the CLI
// stress command's --vector-size flag). A non-positive count is a
// malformed request from outside the core, not an internal invariant
// violation, so it comes back as gc.ErrZeroOrNegativeSize rather than a
// panic.
func MakeVector(m *gc.Machine, count int64, fill heap.Value) (heap.Value, error) {
	if count <= 0 || count > int64(^uint(0)>>1) {
		return heap.Value{}, gc.ErrZeroOrNegativeSize
	}
	return m.NewVectorOfSize(int(count), fill)
}

// Load converts one sexpr.Node into a heap.Value, allocating through m as
// needed. Every recursive call that allocates preserves its own result
// before recursing further, so a GC triggered deeper in the tree cannot
// leave an already-built sibling dangling.
func Load(m *gc.Machine, n *sexpr.Node) (heap.Value, error) {
	switch n.Kind {
	case sexpr.KindInt:
		return heap.NewFixnum(n.Int), nil
	case sexpr.KindFloat:
		return heap.NewFlonum(n.Float), nil
	case sexpr.KindBool:
		return heap.NewBool(n.Bool), nil
	case sexpr.KindChar:
		return heap.NewChar(n.Char), nil
	case sexpr.KindSymbol:
		return m.Intern(n.Symbol), nil
	case sexpr.KindString:
		return m.NewStringFromGo(n.String), nil
	case sexpr.KindNil:
		return heap.Nil, nil
	case sexpr.KindPair:
		return loadPair(m, n)
	case sexpr.KindVector:
		return loadVector(m, n)
	default:
		return heap.Value{}, fmt.Errorf("loader: unknown node kind %d", n.Kind)
	}
}

// loadVector loads each element into a fixed-capacity slice and
// preserves every element's address as it's appended. The slice is
// allocated at its final capacity up front so appending never
// reallocates and invalidates an already-preserved address.
func loadVector(m *gc.Machine, n *sexpr.Node) (heap.Value, error) {
	elems := make([]heap.Value, 0, len(n.Items))
	defer func() { m.Release(len(elems)) }()

	for _, item := range n.Items {
		v, err := Load(m, item)
		if err != nil {
			return heap.Value{}, err
		}
		elems = append(elems, v)
		m.Preserve(&elems[len(elems)-1])
	}
	return m.NewVector(elems), nil
}

// LoadAll loads every node in nodes into a single heap.Value list,
// preserving the whole result list while building it so a GC partway
// through the sequence cannot drop earlier elements.
func LoadAll(m *gc.Machine, nodes []*sexpr.Node) (heap.Value, error) {
	result := heap.Nil
	m.Preserve(&result)
	defer m.Release(1)

	for i := len(nodes) - 1; i >= 0; i-- {
		v, err := Load(m, nodes[i])
		if err != nil {
			return heap.Value{}, err
		}
		m.Preserve(&v)
		result = m.NewPair(v, result)
		m.Release(1)
	}
	return result, nil
}

func loadPair(m *gc.Machine, n *sexpr.Node) (heap.Value, error) {
	cdr, err := Load(m, n.Cdr)
	if err != nil {
		return heap.Value{}, err
	}
	m.Preserve(&cdr)
	defer m.Release(1)

	car, err := Load(m, n.Car)
	if err != nil {
		return heap.Value{}, err
	}
	m.Preserve(&car)
	defer m.Release(1)

	return m.NewPair(car, cdr), nil
}
