package gc

import (
	"lispcore/pkg/heap"
	"lispcore/pkg/obarray"
)

// Machine bundles a Heap with the symbol table every running image
// shares exactly one of.
type Machine struct {
	*Heap
	Obarray *obarray.Obarray
}

// NewMachine constructs a Machine with a fresh Heap sized per cfg and an
// empty symbol table.
func NewMachine(cfg Config) *Machine {
	return &Machine{
		Heap:    New(cfg),
		Obarray: obarray.New(),
	}
}

// NewDefaultMachine constructs a Machine using DefaultConfig.
func NewDefaultMachine() *Machine {
	return NewMachine(DefaultConfig())
}

// Intern interns name in the machine's symbol table, a convenience so
// callers building loaders or a REPL do not need to reach into m.Obarray
// directly for the common case.
func (m *Machine) Intern(name string) heap.Value {
	return m.Obarray.InternString(name)
}
