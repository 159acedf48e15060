// Package fieldspec parses the per-field attribute language of register
// declarations into field descriptors.
//
// A field payload looks like
//
//	5, rwc, get=TrimValue, set=SetTrim, clear=ResetTrim, from=trim.Decode, into=trim.Encode
//
// where every part is optional. The width defaults to 1 bit and the access
// mode to rw.
package fieldspec

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Names marking a field that only reserves layout space
var ReservedNames = []string{"_", "__"}

// Returns true if the field name marks a reserved (padding) field
func IsReservedName(name string) bool {
	for _, reserved := range ReservedNames {
		if name == reserved {
			return true
		}
	}

	return false
}

// A field as written in a register declaration, before parsing its payload
type Declaration struct {
	Name string
	// Position of the field within the register declaration, starting from 0
	Index int
	// Name of the declared value type
	Type string
	// Attribute payload. Empty if the field has no attributes
	Payload string
	// Source position of the declaration (for diagnostics)
	Pos string
}

// Describes a register field
type FieldDescriptor struct {
	Name  string
	Index int
	Pos   string
	Type  ValueType
	// Field width in bits
	Bits   int
	Access AccessMode

	// Accessor name overrides
	CustomGetName   string
	CustomSetName   string
	CustomClearName string

	// Custom conversion functions (func(uint32) T and func(T) uint32)
	From string
	Into string

	// First bit of the field within the register, computed by the layout
	Offset int
	// Field bits within the register, computed by the layout
	Mask uint32
}

func (f *FieldDescriptor) IsReserved() bool {
	return IsReservedName(f.Name)
}

// Returns the last bit of the field within the register
func (f *FieldDescriptor) MostSignificantBit() int {
	return f.Offset + f.Bits - 1
}

func (f *FieldDescriptor) GetName() string {
	return accessorName(f.CustomGetName, "Get", f.Name)
}

func (f *FieldDescriptor) SetName() string {
	return accessorName(f.CustomSetName, "Set", f.Name)
}

func (f *FieldDescriptor) ClearName() string {
	return accessorName(f.CustomClearName, "Clear", f.Name)
}

// Returns the raw code of the field within a register value
func (f *FieldDescriptor) Extract(value uint32) uint32 {
	return (value & f.Mask) >> f.Offset
}

// Returns the register value with the field bits replaced by the raw code.
// Code bits not fitting in the field are discarded.
func (f *FieldDescriptor) Insert(value uint32, raw uint32) uint32 {
	return (value &^ f.Mask) | ((raw << f.Offset) & f.Mask)
}

// Returns a human readable string describing the field
func (f *FieldDescriptor) String() string {
	if f.IsReserved() {
		return fmt.Sprintf("(reserved)[%v:%v]", f.MostSignificantBit(), f.Offset)
	}

	return fmt.Sprintf("%v[%v:%v] %v %v", f.Name, f.MostSignificantBit(), f.Offset, f.Access, f.Type)
}

func accessorName(custom string, prefix string, field string) string {
	if len(custom) > 0 {
		return custom
	}

	return prefix + exported(field)
}

func exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}

// Context of an error found while processing a field
type FieldError struct {
	Field string
	Index int
	Pos   string
	Err   error
}

func (e *FieldError) Error() string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("field '%v' (#%v", e.Field, e.Index))
	if len(e.Pos) > 0 {
		builder.WriteString(", ")
		builder.WriteString(e.Pos)
	}
	builder.WriteString("): ")
	builder.WriteString(e.Err.Error())

	return builder.String()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Wraps an error with the context of the field
func (f *FieldDescriptor) Error(err error) error {
	return &FieldError{
		Field: f.Name,
		Index: f.Index,
		Pos:   f.Pos,
		Err:   err,
	}
}

func (d *Declaration) error(err error) error {
	return &FieldError{
		Field: d.Name,
		Index: d.Index,
		Pos:   d.Pos,
		Err:   err,
	}
}
