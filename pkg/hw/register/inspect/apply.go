package inspect

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/Manu343726/regc/pkg/hw/register/accessors"
	"github.com/Manu343726/regc/pkg/hw/register/cell"
	"github.com/Manu343726/regc/pkg/hw/register/layout"
	"github.com/Manu343726/regc/pkg/hw/register/schema"
	"github.com/Manu343726/regc/pkg/utils"
	"golang.org/x/exp/constraints"
)

// A simulated write to a register field
type Write struct {
	Field string
	// Value to write. Empty for flags
	Value string
	// Clears the field instead of writing it
	Clear bool
}

// Parses FIELD=VALUE writes. A field name alone sets a flag.
func ParseWrite(text string) (Write, error) {
	name, value, _ := strings.Cut(text, "=")
	name = strings.TrimSpace(name)

	if len(name) == 0 {
		return Write{}, utils.MakeError(ErrInvalidValue, "'%v' does not name a field", text)
	}

	return Write{
		Field: name,
		Value: strings.TrimSpace(value),
	}, nil
}

// Applies the writes in order to a register holding the given value, through
// the register accessors, and returns the resulting value. Every storage
// access is logged at debug level.
func Apply(c *schema.Compilation, r *schema.CompiledRegister, value uint32, writes []Write, logger *slog.Logger) (uint32, error) {
	switch r.Layout.Base {
	case layout.BaseType_Uint8:
		result, err := apply[uint8](c, r, cell.NewRegister8(uint8(value)), writes, logger)
		return uint32(result), err
	case layout.BaseType_Uint16:
		result, err := apply[uint16](c, r, cell.NewRegister16(uint16(value)), writes, logger)
		return uint32(result), err
	}

	return apply[uint32](c, r, cell.NewRegister32(value), writes, logger)
}

// Symbolic types without an enumeration in the unit and custom conversions
// are written as raw codes
type rawConverter struct{}

func (rawConverter) IntoBits(text string) uint32 {
	raw, _ := strconv.ParseUint(text, 0, 32)
	return uint32(raw)
}

func (rawConverter) FromBits(raw uint32) (string, error) {
	return rawCode(raw), nil
}

func rawCode(raw uint32) string {
	return strconv.FormatUint(uint64(raw), 10)
}

func bindings(c *schema.Compilation, r *schema.CompiledRegister) accessors.Bindings {
	b := accessors.Bindings{}

	for _, op := range r.Accessors.Operations {
		switch op.Conversion {
		case accessors.Conversion_Codec:
			if e, ok := c.Unit.Enum(op.Field.Type.Name); ok {
				b = accessors.WithConverter(b, e.Name, e.Converter())
			} else {
				b = accessors.WithConverter[string](b, op.Field.Type.Name, rawConverter{})
			}
		case accessors.Conversion_Custom:
			if op.Kind == accessors.OperationKind_Get {
				b = accessors.WithFunction(b, op.Field.From, rawCode)
			} else {
				b = accessors.WithFunction(b, op.Field.Into, rawConverter{}.IntoBits)
			}
		}
	}

	return b
}

func apply[T constraints.Unsigned](c *schema.Compilation, r *schema.CompiledRegister, storage cell.Cell[T], writes []Write, logger *slog.Logger) (T, error) {
	register, err := accessors.Bind[T](r.Accessors, cell.NewTraced(storage, r.Layout.Name, logger), bindings(c, r))
	if err != nil {
		return 0, err
	}

	for _, w := range writes {
		if err := write(c, register, w); err != nil {
			return 0, err
		}
	}

	return register.Get(), nil
}

func write[T constraints.Unsigned](c *schema.Compilation, r *accessors.Register[T], w Write) error {
	accessorSet := r.Accessors()

	f, ok := accessorSet.Register.Field(w.Field)
	if !ok {
		return utils.MakeError(ErrUnknownField, "register %v has no field %v", accessorSet.Register.Name, w.Field)
	}

	for _, op := range accessorSet.FieldOperations(w.Field) {
		switch {
		case w.Clear && op.Kind == accessors.OperationKind_Clear:
			clearField, err := accessors.Clearer(r, op.Name)
			if err != nil {
				return err
			}
			clearField()
			return nil
		case !w.Clear && op.Kind == accessors.OperationKind_SetFlag:
			if len(w.Value) > 0 {
				return f.Error(utils.MakeError(ErrInvalidValue, "%v is a flag and takes no value", f.Name))
			}
			setFlag, err := accessors.Flag(r, op.Name)
			if err != nil {
				return err
			}
			setFlag()
			return nil
		case !w.Clear && op.Kind == accessors.OperationKind_Set:
			return writeValue(c, r, op, w.Value)
		}
	}

	if w.Clear {
		return f.Error(utils.MakeError(ErrNotWritable, "%v (%v) cannot be cleared", f.Name, f.Access))
	}
	return f.Error(utils.MakeError(ErrNotWritable, "%v (%v) cannot be written", f.Name, f.Access))
}

func writeValue[T constraints.Unsigned](c *schema.Compilation, r *accessors.Register[T], op *accessors.Operation, text string) error {
	f := op.Field

	switch op.Conversion {
	case accessors.Conversion_Bool:
		value, err := strconv.ParseBool(text)
		if err != nil {
			return f.Error(utils.MakeError(ErrInvalidValue, "'%v' is not a bool", text))
		}
		return setValue(r, op.Name, value)
	case accessors.Conversion_Unsigned:
		switch f.Type.Name {
		case "uint8", "byte":
			return setUnsigned[uint8](r, op, text)
		case "uint16":
			return setUnsigned[uint16](r, op, text)
		case "uint32":
			return setUnsigned[uint32](r, op, text)
		case "uint64":
			return setUnsigned[uint64](r, op, text)
		case "uint":
			return setUnsigned[uint](r, op, text)
		}
	case accessors.Conversion_Codec:
		if e, ok := c.Unit.Enum(f.Type.Name); ok {
			v, ok := e.Variant(text)
			if !ok {
				return f.Error(utils.MakeError(ErrInvalidValue, "'%v' is not a state of %v", text, e.Name))
			}
			return setValue(r, op.Name, v.Name)
		}
	}

	if _, err := strconv.ParseUint(text, 0, 32); err != nil {
		return f.Error(utils.MakeError(ErrInvalidValue, "'%v' is not a raw field code", text))
	}
	return setValue(r, op.Name, text)
}

func setValue[V any, T constraints.Unsigned](r *accessors.Register[T], name string, value V) error {
	set, err := accessors.Setter[V](r, name)
	if err != nil {
		return err
	}

	set(value)
	return nil
}

func setUnsigned[V constraints.Unsigned, T constraints.Unsigned](r *accessors.Register[T], op *accessors.Operation, text string) error {
	value, err := strconv.ParseUint(text, 0, op.Field.Bits)
	if err != nil {
		return op.Field.Error(utils.MakeError(ErrInvalidValue, "'%v' does not fit in %v bits", text, op.Field.Bits))
	}

	return setValue(r, op.Name, V(value))
}
