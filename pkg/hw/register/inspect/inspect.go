// Package inspect decodes raw register values into field values and
// simulates field writes on them.
package inspect

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Manu343726/regc/pkg/hw/register/accessors"
	"github.com/Manu343726/regc/pkg/hw/register/fieldspec"
	"github.com/Manu343726/regc/pkg/hw/register/schema"
	"github.com/Manu343726/regc/pkg/utils"
)

var ErrUnknownField = errors.New("unknown field")
var ErrNotWritable = errors.New("field not writable")
var ErrInvalidValue = errors.New("invalid field value")

// A field of a decoded register value
type FieldValue struct {
	Field *fieldspec.FieldDescriptor
	// Field bits of the register value
	Raw uint32
	// Field value, as the accessors of the field see it
	Value string
	// Set if the raw bits do not decode to a value of the field type
	Err error
}

// Returns the field bits in binary
func (v FieldValue) Bits() string {
	return utils.FormatUintBinary(uint64(v.Raw), v.Field.Bits)
}

// Decodes every readable field of a register value. Fields of enumerations
// declared in the unit show the state name, other symbolic fields and fields
// with custom conversions show the raw code.
func Decode(c *schema.Compilation, r *schema.CompiledRegister, value uint32) []FieldValue {
	var values []FieldValue

	for _, f := range r.Layout.AccessibleFields() {
		if !f.Access.CanRead() {
			continue
		}

		v := FieldValue{
			Field: f,
			Raw:   f.Extract(value),
		}

		switch accessors.FromConversion(f) {
		case accessors.Conversion_Bool:
			v.Value = strconv.FormatBool(v.Raw != 0)
		case accessors.Conversion_Unsigned:
			v.Value = fmt.Sprintf("%v (%v)", v.Raw, utils.FormatUintHex(uint64(v.Raw), (f.Bits+3)/4))
		case accessors.Conversion_Codec:
			if e, ok := c.Unit.Enum(f.Type.Name); ok {
				v.Value, v.Err = e.Converter().FromBits(v.Raw)
				if v.Err != nil {
					v.Value = "<invalid>"
				}
				break
			}
			v.Value = strconv.FormatUint(uint64(v.Raw), 10)
		case accessors.Conversion_Custom:
			v.Value = fmt.Sprintf("%v (raw, converted by %v)", v.Raw, f.From)
		}

		values = append(values, v)
	}

	return values
}
