// Package field implements the conversion between register field values and
// the raw bit patterns stored in the register.
//
// Symbolic field types (closed sets of named states) are converted with a
// bit-mapped enumeration codec: every state gets an unsigned code, either
// sequentially in declaration order or explicitly, and decoding a code that
// no state was assigned to is an invariant violation.
package field

import (
	"errors"
)

// Field is implemented by symbolic types that encode themselves into a raw
// field code. Generated register accessors rely on it together with a
// <Type>FromBits(uint32) <Type> decoding function.
type Field interface {
	IntoBits() uint32
}

// Converter converts values of a field type to and from raw field codes.
// IntoBits must be total over the declared values of V. FromBits fails with
// ErrInvalidCode for codes no value maps to.
type Converter[V any] interface {
	IntoBits(value V) uint32
	FromBits(raw uint32) (V, error)
}

var ErrInvalidCode = errors.New("invalid field code")
var ErrUndeclaredState = errors.New("undeclared field state")

type functions[V any] struct {
	into func(V) uint32
	from func(uint32) V
}

func (f functions[V]) IntoBits(value V) uint32 {
	return f.into(value)
}

func (f functions[V]) FromBits(raw uint32) (V, error) {
	return f.from(raw), nil
}

// Returns a converter implemented by a pair of conversion functions, such as
// the IntoBits method and FromBits function of a generated enumeration
func Functions[V any](into func(V) uint32, from func(uint32) V) Converter[V] {
	return functions[V]{
		into: into,
		from: from,
	}
}
