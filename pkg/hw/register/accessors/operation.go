// Package accessors computes the operations a register exposes and binds
// them to register storage.
//
// Every readable field gets a getter, every writable field a setter and
// every clearable field a clear operation. Boolean fields that are both
// writable and clearable get a flag setter instead, taking no value and
// setting all the field bits.
package accessors

import (
	"fmt"

	"github.com/Manu343726/regc/pkg/hw/register/fieldspec"
	"github.com/Manu343726/regc/pkg/hw/register/layout"
)

// Kind of field operation
type OperationKind uint

const (
	OperationKind_Get OperationKind = iota
	OperationKind_Set
	OperationKind_SetFlag
	OperationKind_Clear
)

func (k OperationKind) String() string {
	switch k {
	case OperationKind_Get:
		return "Get"
	case OperationKind_Set:
		return "Set"
	case OperationKind_SetFlag:
		return "SetFlag"
	case OperationKind_Clear:
		return "Clear"
	}

	panic("unreachable")
}

// How a raw field code is converted to or from the field value
type Conversion uint

const (
	// No value involved (flag setters and clears)
	Conversion_None Conversion = iota
	// The conversion function given in the from/into attributes
	Conversion_Custom
	// Non-zero is true
	Conversion_Bool
	// Integer conversion
	Conversion_Unsigned
	// The codec of the symbolic type
	Conversion_Codec
)

func (c Conversion) String() string {
	switch c {
	case Conversion_None:
		return "None"
	case Conversion_Custom:
		return "Custom"
	case Conversion_Bool:
		return "Bool"
	case Conversion_Unsigned:
		return "Unsigned"
	case Conversion_Codec:
		return "Codec"
	}

	panic("unreachable")
}

func conversion(f *fieldspec.FieldDescriptor, custom string) Conversion {
	if len(custom) > 0 {
		return Conversion_Custom
	}

	switch f.Type.Kind {
	case fieldspec.ValueKind_Bool:
		return Conversion_Bool
	case fieldspec.ValueKind_Unsigned:
		return Conversion_Unsigned
	}

	return Conversion_Codec
}

// Returns how getters convert raw codes into field values
func FromConversion(f *fieldspec.FieldDescriptor) Conversion {
	return conversion(f, f.From)
}

// Returns how setters convert field values into raw codes
func IntoConversion(f *fieldspec.FieldDescriptor) Conversion {
	return conversion(f, f.Into)
}

// An operation on a register field
type Operation struct {
	Kind       OperationKind
	Name       string
	Field      *fieldspec.FieldDescriptor
	Conversion Conversion
}

// Returns the Go signature of the operation
func (o *Operation) Signature() string {
	switch o.Kind {
	case OperationKind_Get:
		return fmt.Sprintf("%v() %v", o.Name, o.Field.Type.Name)
	case OperationKind_Set:
		return fmt.Sprintf("%v(val %v)", o.Name, o.Field.Type.Name)
	}

	return fmt.Sprintf("%v()", o.Name)
}

func (o *Operation) String() string {
	return fmt.Sprintf("%v: %v %v", o.Signature(), o.Kind, o.Field)
}

// All the operations of a register
type AccessorSet struct {
	Register   *layout.RegisterDescriptor
	Operations []*Operation
}

// Computes the operations of every field of the register according to its access mode
func Generate(r *layout.RegisterDescriptor) *AccessorSet {
	set := &AccessorSet{
		Register: r,
	}

	for _, f := range r.AccessibleFields() {
		if f.Access.CanRead() {
			set.add(OperationKind_Get, f.GetName(), f, FromConversion(f))
		}

		if f.Access.CanWrite() {
			if f.Type.IsBool() && f.Access.CanClear() {
				set.add(OperationKind_SetFlag, f.SetName(), f, Conversion_None)
			} else {
				set.add(OperationKind_Set, f.SetName(), f, IntoConversion(f))
			}
		}

		if f.Access.CanClear() {
			set.add(OperationKind_Clear, f.ClearName(), f, Conversion_None)
		}
	}

	return set
}

func (s *AccessorSet) add(kind OperationKind, name string, f *fieldspec.FieldDescriptor, conversion Conversion) {
	s.Operations = append(s.Operations, &Operation{
		Kind:       kind,
		Name:       name,
		Field:      f,
		Conversion: conversion,
	})
}

// Returns the operation with the given name
func (s *AccessorSet) Operation(name string) (*Operation, bool) {
	for _, op := range s.Operations {
		if op.Name == name {
			return op, true
		}
	}

	return nil, false
}

// Returns the operations of a field, in get, set, clear order
func (s *AccessorSet) FieldOperations(field string) []*Operation {
	var ops []*Operation

	for _, op := range s.Operations {
		if op.Field.Name == field {
			ops = append(ops, op)
		}
	}

	return ops
}

// Returns the names of the symbolic types whose codecs the operations use
func (s *AccessorSet) CodecTypes() []string {
	var types []string
	seen := map[string]bool{}

	for _, op := range s.Operations {
		if op.Conversion == Conversion_Codec && !seen[op.Field.Type.Name] {
			seen[op.Field.Type.Name] = true
			types = append(types, op.Field.Type.Name)
		}
	}

	return types
}
