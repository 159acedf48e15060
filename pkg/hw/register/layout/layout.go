// Package layout assigns bit offsets and masks to the fields of a register
// and validates the register fits its storage.
//
// Fields are laid out in declaration order starting from bit 0. Reserved
// fields take space in the layout but expose no accessors.
package layout

import (
	"errors"
	"fmt"

	"github.com/Manu343726/regc/pkg/hw/register/fieldspec"
	"github.com/Manu343726/regc/pkg/utils"
)

var ErrFieldTypeOverflow = errors.New("overflowing field type")
var ErrRegisterOverflow = errors.New("overflowing register type")
var ErrDuplicateField = errors.New("duplicate field")
var ErrDuplicateAccessor = errors.New("duplicate accessor name")

// Names of the accessors to the whole register storage
const (
	RegisterGetName = "Get"
	RegisterSetName = "Set"
)

// A register with all its fields laid out
type RegisterDescriptor struct {
	Name   string
	Base   BaseType
	Fields []*fieldspec.FieldDescriptor
}

// Lays out the fields of a register in declaration order. Fields are
// modified in place with their offset and mask.
func Compute(name string, base BaseType, fields []*fieldspec.FieldDescriptor) (*RegisterDescriptor, error) {
	offset := 0

	for _, f := range fields {
		if capacity, constrained := f.Type.Capacity(); constrained && f.Bits > capacity {
			return nil, f.Error(utils.MakeError(ErrFieldTypeOverflow, "width %v exceeds capacity %v of declared type %v", f.Bits, capacity, f.Type.Name))
		}

		if offset+f.Bits > base.Bits() {
			return nil, f.Error(utils.MakeError(ErrRegisterOverflow, "register '%v' needs at least %v bits but its %v base type has only %v", name, offset+f.Bits, base, base.Bits()))
		}

		f.Offset = offset
		f.Mask = utils.Mask[uint32](offset, f.Bits)
		offset += f.Bits
	}

	r := &RegisterDescriptor{
		Name:   name,
		Base:   base,
		Fields: fields,
	}

	if err := r.checkNames(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *RegisterDescriptor) checkNames() error {
	fieldNames := map[string]*fieldspec.FieldDescriptor{}
	accessorNames := map[string]string{
		RegisterGetName: "the register",
		RegisterSetName: "the register",
	}

	for _, f := range r.AccessibleFields() {
		if previous, duplicated := fieldNames[f.Name]; duplicated {
			return f.Error(utils.MakeError(ErrDuplicateField, "'%v' already declared as field #%v", f.Name, previous.Index))
		}
		fieldNames[f.Name] = f

		for _, accessor := range Accessors(f) {
			if owner, duplicated := accessorNames[accessor]; duplicated {
				return f.Error(utils.MakeError(ErrDuplicateAccessor, "'%v' is already an accessor of %v", accessor, owner))
			}
			accessorNames[accessor] = fmt.Sprintf("field '%v'", f.Name)
		}
	}

	return nil
}

// Returns the names of the accessors a field exposes according to its access mode
func Accessors(f *fieldspec.FieldDescriptor) []string {
	var names []string

	if f.IsReserved() {
		return names
	}
	if f.Access.CanRead() {
		names = append(names, f.GetName())
	}
	if f.Access.CanWrite() {
		names = append(names, f.SetName())
	}
	if f.Access.CanClear() {
		names = append(names, f.ClearName())
	}

	return names
}

// Returns the fields that are not reserved, in declaration order
func (r *RegisterDescriptor) AccessibleFields() []*fieldspec.FieldDescriptor {
	fields := make([]*fieldspec.FieldDescriptor, 0, len(r.Fields))

	for _, f := range r.Fields {
		if !f.IsReserved() {
			fields = append(fields, f)
		}
	}

	return fields
}

// Returns the field with the given name
func (r *RegisterDescriptor) Field(name string) (*fieldspec.FieldDescriptor, bool) {
	for _, f := range r.AccessibleFields() {
		if f.Name == name {
			return f, true
		}
	}

	return nil, false
}

// Total bits taken by the fields, reserved fields included
func (r *RegisterDescriptor) UsedBits() int {
	return utils.Accumulate(r.Fields, func(f *fieldspec.FieldDescriptor) int { return f.Bits })
}

func (r *RegisterDescriptor) String() string {
	return fmt.Sprintf("%v (%v, %v/%v bits used)", r.Name, r.Base, r.UsedBits(), r.Base.Bits())
}
