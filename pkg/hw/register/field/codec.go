package field

import (
	"fmt"

	"github.com/Manu343726/regc/pkg/utils"
)

// A state of a codec enumeration
type Variant[S comparable] struct {
	State       S
	Declaration Declaration
}

// Declares a state taking the next sequential code
func Of[S comparable](state S) Variant[S] {
	return Variant[S]{
		State:       state,
		Declaration: Sequential(fmt.Sprint(state)),
	}
}

// Declares a state with an explicit code
func At[S comparable](state S, code uint32) Variant[S] {
	return Variant[S]{
		State:       state,
		Declaration: Explicit(fmt.Sprint(state), code),
	}
}

// Bit-mapped enumeration codec. Maps a closed set of states to unsigned codes
// and back.
type Codec[S comparable] struct {
	name        string
	states      []S
	assignments []Assignment
	codes       map[S]uint32
}

// Creates a codec for the given states. Listing the same state twice is a
// programming error and panics.
func NewCodec[S comparable](name string, variants ...Variant[S]) *Codec[S] {
	c := &Codec[S]{
		name:        name,
		states:      utils.Map(variants, func(v Variant[S]) S { return v.State }),
		assignments: AssignCodes(utils.Map(variants, func(v Variant[S]) Declaration { return v.Declaration })),
		codes:       make(map[S]uint32, len(variants)),
	}

	for i, state := range c.states {
		if _, duplicated := c.codes[state]; duplicated {
			panic(fmt.Sprintf("state '%v' declared twice in codec %v", state, name))
		}

		c.codes[state] = c.assignments[i].Code
	}

	return c
}

// Name of the enumeration
func (c *Codec[S]) Name() string {
	return c.name
}

// Returns the code of a state. Encoding a state the codec was not created with panics.
func (c *Codec[S]) IntoBits(state S) uint32 {
	code, declared := c.codes[state]

	if !declared {
		panic(utils.MakeError(ErrUndeclaredState, "'%v' is not a state of %v", state, c.name))
	}

	return code
}

// Returns the first declared state with the given code
func (c *Codec[S]) FromBits(raw uint32) (S, error) {
	for i, assignment := range c.assignments {
		if assignment.Code == raw {
			return c.states[i], nil
		}
	}

	var zero S
	return zero, utils.MakeError(ErrInvalidCode, "%v (bin: %v) is not a code of %v", raw, utils.FormatUintBinary(uint64(raw), c.Bits()), c.name)
}

// Like FromBits, but panics when no state has the given code. Registers are
// never expected to hold a code not produced by IntoBits, so there is no
// recovery from it.
func (c *Codec[S]) MustFromBits(raw uint32) S {
	state, err := c.FromBits(raw)

	if err != nil {
		panic(err)
	}

	return state
}

// Minimum field width able to hold every code of the codec
func (c *Codec[S]) Bits() int {
	return CodeBits(c.assignments)
}

// Returns the codes assigned to each state, in declaration order
func (c *Codec[S]) Assignments() []Assignment {
	return c.assignments
}

// Returns all the states of the codec, in declaration order
func (c *Codec[S]) States() []S {
	return c.states
}
