package accessors

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/Manu343726/regc/pkg/hw/register/cell"
	"github.com/Manu343726/regc/pkg/hw/register/field"
	"github.com/Manu343726/regc/pkg/utils"
	"golang.org/x/exp/constraints"
)

var ErrUnknownAccessor = errors.New("unknown accessor")
var ErrWrongOperation = errors.New("wrong accessor operation")
var ErrMissingBinding = errors.New("missing conversion binding")
var ErrBindingType = errors.New("conversion binding type mismatch")
var ErrStorageMismatch = errors.New("register storage width mismatch")

// Conversions available to bound registers
type Bindings struct {
	// field.Converter[V] of each symbolic type, by type name
	Converters map[string]any
	// Custom conversion functions, by the path written in the from/into
	// attributes. From functions are func(uint32) V, into functions are
	// func(V) uint32.
	Functions map[string]any
}

// Registers the converter of a symbolic type
func WithConverter[V any](b Bindings, typeName string, converter field.Converter[V]) Bindings {
	if b.Converters == nil {
		b.Converters = map[string]any{}
	}

	b.Converters[typeName] = converter
	return b
}

// Registers a custom conversion function
func WithFunction(b Bindings, path string, function any) Bindings {
	if b.Functions == nil {
		b.Functions = map[string]any{}
	}

	b.Functions[path] = function
	return b
}

// An accessor set bound to register storage
type Register[T constraints.Unsigned] struct {
	set      *AccessorSet
	cell     cell.Cell[T]
	bindings Bindings
}

// Binds the accessor set to a storage cell. The cell width must match the
// register base type and every conversion the operations need must be
// present in the bindings.
func Bind[T constraints.Unsigned](set *AccessorSet, storage cell.Cell[T], bindings Bindings) (*Register[T], error) {
	if bits := utils.SizeofBits[T](); bits != set.Register.Base.Bits() {
		return nil, utils.MakeError(ErrStorageMismatch, "register %v is %v but the storage is %v bits wide", set.Register.Name, set.Register.Base, bits)
	}

	for _, op := range set.Operations {
		switch op.Conversion {
		case Conversion_Codec:
			if _, ok := bindings.Converters[op.Field.Type.Name]; !ok {
				return nil, op.Field.Error(utils.MakeError(ErrMissingBinding, "no converter for type %v", op.Field.Type.Name))
			}
		case Conversion_Custom:
			if _, ok := bindings.Functions[op.customFunction()]; !ok {
				return nil, op.Field.Error(utils.MakeError(ErrMissingBinding, "no conversion function %v", op.customFunction()))
			}
		}
	}

	return &Register[T]{
		set:      set,
		cell:     storage,
		bindings: bindings,
	}, nil
}

func (o *Operation) customFunction() string {
	if o.Kind == OperationKind_Get {
		return o.Field.From
	}

	return o.Field.Into
}

// Returns the accessor set of the register
func (r *Register[T]) Accessors() *AccessorSet {
	return r.set
}

// Reads the whole register
func (r *Register[T]) Get() T {
	return r.cell.Get()
}

// Writes the whole register
func (r *Register[T]) Set(raw T) {
	r.cell.Set(raw)
}

func (r *Register[T]) operation(name string, kind OperationKind) (*Operation, error) {
	op, ok := r.set.Operation(name)
	if !ok {
		return nil, utils.MakeError(ErrUnknownAccessor, "register %v has no accessor %v", r.set.Register.Name, name)
	}

	if op.Kind != kind {
		return nil, utils.MakeError(ErrWrongOperation, "%v of register %v is a %v operation, expected %v", name, r.set.Register.Name, op.Kind, kind)
	}

	return op, nil
}

// Returns the getter with the given name. V must be the declared field type
// (or the type produced by the custom from function).
func Getter[V any, T constraints.Unsigned](r *Register[T], name string) (func() V, error) {
	op, err := r.operation(name, OperationKind_Get)
	if err != nil {
		return nil, err
	}

	decode, err := decoder[V](op, r.bindings)
	if err != nil {
		return nil, op.Field.Error(err)
	}

	f := op.Field

	return func() V {
		value := r.cell.Get()
		return decode(uint32(utils.CreateBitView(&value).Read(f.Offset, f.Bits)))
	}, nil
}

// Returns the setter with the given name. V must be the declared field type
// (or the type taken by the custom into function).
func Setter[V any, T constraints.Unsigned](r *Register[T], name string) (func(V), error) {
	op, err := r.operation(name, OperationKind_Set)
	if err != nil {
		return nil, err
	}

	encode, err := encoder[V](op, r.bindings)
	if err != nil {
		return nil, op.Field.Error(err)
	}

	f := op.Field

	return func(value V) {
		bits := r.cell.Get()
		utils.CreateBitView(&bits).Write(T(encode(value)), f.Offset, f.Bits)
		r.cell.Set(bits)
	}, nil
}

// Returns the flag setter with the given name, setting all the field bits
func Flag[T constraints.Unsigned](r *Register[T], name string) (func(), error) {
	op, err := r.operation(name, OperationKind_SetFlag)
	if err != nil {
		return nil, err
	}

	f := op.Field

	return func() {
		bits := r.cell.Get()
		utils.CreateBitView(&bits).SetBits(f.Offset, f.Bits)
		r.cell.Set(bits)
	}, nil
}

// Returns the clear operation with the given name, zeroing all the field bits
func Clearer[T constraints.Unsigned](r *Register[T], name string) (func(), error) {
	op, err := r.operation(name, OperationKind_Clear)
	if err != nil {
		return nil, err
	}

	f := op.Field

	return func() {
		bits := r.cell.Get()
		utils.CreateBitView(&bits).ClearBits(f.Offset, f.Bits)
		r.cell.Set(bits)
	}, nil
}

func decoder[V any](op *Operation, bindings Bindings) (func(uint32) V, error) {
	switch op.Conversion {
	case Conversion_Custom:
		from, ok := bindings.Functions[op.Field.From].(func(uint32) V)
		if !ok {
			return nil, bindingTypeError[V](op.Field.From, bindings.Functions[op.Field.From])
		}
		return from, nil
	case Conversion_Bool:
		if err := checkValueType[V](op); err != nil {
			return nil, err
		}
		return func(raw uint32) V {
			return any(raw != 0).(V)
		}, nil
	case Conversion_Unsigned:
		if err := checkValueType[V](op); err != nil {
			return nil, err
		}
		return func(raw uint32) V {
			return reflect.ValueOf(raw).Convert(reflect.TypeOf((*V)(nil)).Elem()).Interface().(V)
		}, nil
	case Conversion_Codec:
		converter, ok := bindings.Converters[op.Field.Type.Name].(field.Converter[V])
		if !ok {
			return nil, bindingTypeError[V](op.Field.Type.Name, bindings.Converters[op.Field.Type.Name])
		}
		return func(raw uint32) V {
			value, err := converter.FromBits(raw)
			if err != nil {
				panic(op.Field.Error(err))
			}
			return value
		}, nil
	}

	panic("unreachable")
}

func encoder[V any](op *Operation, bindings Bindings) (func(V) uint32, error) {
	switch op.Conversion {
	case Conversion_Custom:
		into, ok := bindings.Functions[op.Field.Into].(func(V) uint32)
		if !ok {
			return nil, bindingTypeError[V](op.Field.Into, bindings.Functions[op.Field.Into])
		}
		return into, nil
	case Conversion_Bool:
		if err := checkValueType[V](op); err != nil {
			return nil, err
		}
		return func(value V) uint32 {
			if any(value).(bool) {
				return 1
			}
			return 0
		}, nil
	case Conversion_Unsigned:
		if err := checkValueType[V](op); err != nil {
			return nil, err
		}
		return func(value V) uint32 {
			return uint32(reflect.ValueOf(value).Uint())
		}, nil
	case Conversion_Codec:
		converter, ok := bindings.Converters[op.Field.Type.Name].(field.Converter[V])
		if !ok {
			return nil, bindingTypeError[V](op.Field.Type.Name, bindings.Converters[op.Field.Type.Name])
		}
		return converter.IntoBits, nil
	}

	panic("unreachable")
}

// byte is an alias of uint8 and is reported as such by reflection
var reflectedTypeNames = map[string]string{
	"byte": "uint8",
}

func checkValueType[V any](op *Operation) error {
	declared := op.Field.Type.Name
	if name, ok := reflectedTypeNames[declared]; ok {
		declared = name
	}

	if actual := reflect.TypeOf((*V)(nil)).Elem().String(); actual != declared {
		return utils.MakeError(ErrBindingType, "%v accesses a %v field, not %v", op.Name, op.Field.Type.Name, actual)
	}

	return nil
}

func bindingTypeError[V any](name string, binding any) error {
	return utils.MakeError(ErrBindingType, "binding %v (%v) does not convert %v", name, describe(binding), reflect.TypeOf((*V)(nil)).Elem())
}

func describe(binding any) string {
	if binding == nil {
		return "missing"
	}

	return fmt.Sprintf("%T", binding)
}
