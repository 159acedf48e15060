// Package schema loads register and enumeration declarations from Go source
// or YAML files and compiles them into register layouts and accessor sets.
package schema

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/Manu343726/regc/pkg/hw/register/field"
	"github.com/Manu343726/regc/pkg/hw/register/fieldspec"
	"github.com/Manu343726/regc/pkg/utils"
)

var ErrUnsupportedShape = errors.New("unsupported declaration shape")
var ErrMalformedSchema = errors.New("malformed schema")
var ErrDuplicateRegister = errors.New("duplicate register")
var ErrDuplicateEnum = errors.New("duplicate enumeration")
var ErrEmptyEnum = errors.New("enumeration without variants")
var ErrEnumType = errors.New("unsupported enumeration type")
var ErrDuplicateType = errors.New("duplicate type name")

// A register declaration: the base storage type and the ordered fields
type Register struct {
	Name string
	// Base storage type name (uint8, uint16 or uint32)
	Base   string
	Doc    string
	Pos    string
	Fields []fieldspec.Declaration
}

// A variant of an enumeration, with the Go constant naming it
type Variant struct {
	Const string
	field.Assignment
}

// A closed set of named states stored in register fields
type Enum struct {
	Name string
	// Underlying Go type of the enumeration
	Underlying string
	Doc        string
	Pos        string
	Variants   []Variant
}

// Returns the minimum field width able to hold every code of the enumeration
func (e *Enum) Bits() int {
	return field.CodeBits(e.Assignments())
}

func (e *Enum) Assignments() []field.Assignment {
	assignments := make([]field.Assignment, len(e.Variants))
	for i, v := range e.Variants {
		assignments[i] = v.Assignment
	}

	return assignments
}

// Returns the variant with the given raw code. The first declared variant
// wins if several share the code.
func (e *Enum) Lookup(raw uint32) (Variant, bool) {
	for _, v := range e.Variants {
		if v.Code == raw {
			return v, true
		}
	}

	return Variant{}, false
}

// Returns the variant declared with the given name or Go constant
func (e *Enum) Variant(name string) (Variant, bool) {
	for _, v := range e.Variants {
		if v.Name == name || v.Const == name {
			return v, true
		}
	}

	return Variant{}, false
}

func newEnum(name string, underlying string, doc string, pos string, constants []string, declarations []field.Declaration) *Enum {
	e := &Enum{
		Name:       name,
		Underlying: underlying,
		Doc:        doc,
		Pos:        pos,
	}

	for i, assignment := range field.AssignCodes(declarations) {
		e.Variants = append(e.Variants, Variant{
			Const:      constants[i],
			Assignment: assignment,
		})
	}

	return e
}

// All the declarations of a schema file
type Unit struct {
	// Go package of the generated code
	Package string
	// Schema file the unit was loaded from
	Source string
	// Import paths by package name, for qualified field types and
	// conversion functions
	Imports   map[string]string
	Registers []*Register
	Enums     []*Enum
}

// Returns the enumeration with the given name
func (u *Unit) Enum(name string) (*Enum, bool) {
	for _, e := range u.Enums {
		if e.Name == name {
			return e, true
		}
	}

	return nil, false
}

// Returns the import path of a package name used in the unit. Packages
// not listed in the unit imports are resolved by name only.
func (u *Unit) ImportPath(pkg string) (string, bool) {
	importPath, ok := u.Imports[pkg]
	return importPath, ok
}

// Returns the package name of an import path
func PackageName(importPath string) string {
	return strings.ReplaceAll(path.Base(importPath), "-", "_")
}

// Context of an error found while compiling a register
type RegisterError struct {
	Register string
	Pos      string
	Err      error
}

func (e *RegisterError) Error() string {
	if len(e.Pos) > 0 {
		return fmt.Sprintf("register '%v' (%v): %v", e.Register, e.Pos, e.Err)
	}

	return fmt.Sprintf("register '%v': %v", e.Register, e.Err)
}

func (e *RegisterError) Unwrap() error {
	return e.Err
}

func (r *Register) error(err error) error {
	return &RegisterError{
		Register: r.Name,
		Pos:      r.Pos,
		Err:      err,
	}
}

func position(filename string, line int) string {
	return fmt.Sprintf("%v:%v", filename, line)
}

type enumConverter struct {
	enum *Enum
}

// Variants are encoded by name or Go constant
func (c enumConverter) IntoBits(name string) uint32 {
	v, ok := c.enum.Variant(name)
	if !ok {
		panic(utils.MakeError(field.ErrUndeclaredState, "'%v' is not a state of %v", name, c.enum.Name))
	}

	return v.Code
}

func (c enumConverter) FromBits(raw uint32) (string, error) {
	v, ok := c.enum.Lookup(raw)
	if !ok {
		return "", utils.MakeError(field.ErrInvalidCode, "%v (bin: %v) is not a code of %v", raw, utils.FormatUintBinary(uint64(raw), c.enum.Bits()), c.enum.Name)
	}

	return v.Name, nil
}

// Returns a converter between variant names and codes
func (e *Enum) Converter() field.Converter[string] {
	return enumConverter{enum: e}
}
