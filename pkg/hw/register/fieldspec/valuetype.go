package fieldspec

import "fmt"

// Kind of value a field holds
type ValueKind uint

const (
	ValueKind_Bool ValueKind = iota
	ValueKind_Unsigned
	// Types converted through a codec or custom conversion functions
	ValueKind_Symbolic
)

func (k ValueKind) String() string {
	switch k {
	case ValueKind_Bool:
		return "Bool"
	case ValueKind_Unsigned:
		return "Unsigned"
	case ValueKind_Symbolic:
		return "Symbolic"
	}

	panic("unreachable")
}

// The declared type of a field value
type ValueType struct {
	// Type name as written in the declaration
	Name string
	Kind ValueKind
	// Bits of the type. Zero for symbolic types
	Bits int
}

var primitiveTypes = map[string]ValueType{
	"bool":   {Name: "bool", Kind: ValueKind_Bool, Bits: 1},
	"byte":   {Name: "byte", Kind: ValueKind_Unsigned, Bits: 8},
	"uint8":  {Name: "uint8", Kind: ValueKind_Unsigned, Bits: 8},
	"uint16": {Name: "uint16", Kind: ValueKind_Unsigned, Bits: 16},
	"uint32": {Name: "uint32", Kind: ValueKind_Unsigned, Bits: 32},
	"uint64": {Name: "uint64", Kind: ValueKind_Unsigned, Bits: 64},
	"uint":   {Name: "uint", Kind: ValueKind_Unsigned, Bits: 64},
}

// Returns the value type with the given name. Any name that is not a
// primitive type names a symbolic type.
func ParseValueType(name string) ValueType {
	if t, ok := primitiveTypes[name]; ok {
		return t
	}

	return ValueType{
		Name: name,
		Kind: ValueKind_Symbolic,
	}
}

// Returns the maximum field width the type can hold. The second result is
// false if the type does not constrain the width.
func (t ValueType) Capacity() (int, bool) {
	if t.Kind == ValueKind_Symbolic {
		return 0, false
	}

	return t.Bits, true
}

func (t ValueType) IsBool() bool {
	return t.Kind == ValueKind_Bool
}

func (t ValueType) IsUnsigned() bool {
	return t.Kind == ValueKind_Unsigned
}

func (t ValueType) IsSymbolic() bool {
	return t.Kind == ValueKind_Symbolic
}

func (t ValueType) String() string {
	if t.IsSymbolic() {
		return fmt.Sprintf("%v (symbolic)", t.Name)
	}

	return t.Name
}
