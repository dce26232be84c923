// Package obarray implements the core's symbol-interning table: a
// content-addressed map from code-point strings to dense symbol indices.
//
// Uses a fixed multiplicative hash (multiplier E=307, modulo P=10007,
// per-byte little-endian additive bias) and an open-chaining-by-prepend
// bucket layout. The exact hash is part of the ABI, so it is
// reproduced exactly rather than replaced with a stdlib hash function.
package obarray

import "lispcore/pkg/heap"

// HashP is the fixed bucket count.
const HashP = 10007

// HashE is the hash multiplier.
const HashE = 307

type node struct {
	s     []rune
	index int64
	next  *node
}

// Obarray interns code-point strings to dense, monotonically increasing
// symbol indices starting at 1. Entries are never removed: symbol storage
// is owned here, outside the GC heap, and lives for the process — the
// obarray is not walked by GC; symbols are represented in Values as plain
// indices.
type Obarray struct {
	heads [HashP]*node
	count int64
}

// New returns an empty obarray.
func New() *Obarray {
	return &Obarray{}
}

// hash splits each code point into its four little-endian bytes, each
// byte folded in with a +1 bias (to avoid an all-zero degenerate hash)
// under multiplier HashE modulo HashP.
func hash(s []rune) int {
	var h int64
	for _, r := range s {
		for j := 0; j < 4; j++ {
			b := int64(r>>(uint(j)*8)) & 255
			h = (h*HashE%HashP + b + 1) % HashP
		}
	}
	if h < 0 {
		h += HashP
	}
	return int(h)
}

func runeEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Intern returns the dense symbol index for s, assigning a fresh one on
// first occurrence. intern(s) == intern(t) for every structurally equal s
// and t, and indices are stable across any number of garbage collections
// (the obarray is entirely outside the GC heap).
func (o *Obarray) Intern(s []rune) heap.Value {
	h := hash(s)
	for n := o.heads[h]; n != nil; n = n.next {
		if runeEqual(s, n.s) {
			return heap.NewSymbol(n.index)
		}
	}
	o.count++
	cp := make([]rune, len(s))
	copy(cp, s)
	o.heads[h] = &node{s: cp, index: o.count, next: o.heads[h]}
	return heap.NewSymbol(o.count)
}

// InternString is a convenience wrapper over Intern for Go string input.
func (o *Obarray) InternString(s string) heap.Value {
	return o.Intern([]rune(s))
}

// Count returns how many distinct symbols have been interned so far.
func (o *Obarray) Count() int64 {
	return o.count
}

// Lookup returns the string for a previously interned symbol index, and
// whether it was found. Useful for printing; never called by the
// collector itself.
func (o *Obarray) Lookup(index int64) (string, bool) {
	for _, head := range o.heads {
		for n := head; n != nil; n = n.next {
			if n.index == index {
				return string(n.s), true
			}
		}
	}
	return "", false
}
