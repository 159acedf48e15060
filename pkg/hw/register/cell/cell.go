// Package cell implements the storage of register values.
//
// Every Get and Set is one atomic access to the underlying value, so each
// read observes and each write affects the current shared state. Sequences
// of accesses (like the read-modify-write of a field setter) are not atomic.
package cell

import (
	"sync/atomic"

	"golang.org/x/exp/constraints"
)

// Fixed width storage of a register
type Cell[T constraints.Unsigned] interface {
	Get() T
	Set(value T)
}

// 8 bit register storage. The zero value holds 0.
type Register8 struct {
	value atomic.Uint32
}

func (r *Register8) Get() uint8 {
	return uint8(r.value.Load())
}

func (r *Register8) Set(value uint8) {
	r.value.Store(uint32(value))
}

// 16 bit register storage. The zero value holds 0.
type Register16 struct {
	value atomic.Uint32
}

func (r *Register16) Get() uint16 {
	return uint16(r.value.Load())
}

func (r *Register16) Set(value uint16) {
	r.value.Store(uint32(value))
}

// 32 bit register storage. The zero value holds 0.
type Register32 struct {
	value atomic.Uint32
}

func (r *Register32) Get() uint32 {
	return r.value.Load()
}

func (r *Register32) Set(value uint32) {
	r.value.Store(value)
}

func NewRegister8(value uint8) *Register8 {
	r := &Register8{}
	r.Set(value)
	return r
}

func NewRegister16(value uint16) *Register16 {
	r := &Register16{}
	r.Set(value)
	return r
}

func NewRegister32(value uint32) *Register32 {
	r := &Register32{}
	r.Set(value)
	return r
}
