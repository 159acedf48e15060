package schema

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Manu343726/regc/pkg/hw/register/accessors"
	"github.com/Manu343726/regc/pkg/hw/register/fieldspec"
	"github.com/Manu343726/regc/pkg/hw/register/layout"
	"github.com/Manu343726/regc/pkg/utils"
)

// A register with its layout and accessors computed
type CompiledRegister struct {
	Declaration *Register
	Layout      *layout.RegisterDescriptor
	Accessors   *accessors.AccessorSet
}

// Result of compiling a unit
type Compilation struct {
	Unit *Unit
	// Enumerations that passed validation, in declaration order
	Enums     []*Enum
	Registers []*CompiledRegister
}

// Returns the compiled register with the given name
func (c *Compilation) Register(name string) (*CompiledRegister, bool) {
	for _, r := range c.Registers {
		if r.Layout.Name == name {
			return r, true
		}
	}

	return nil, false
}

// Compiles a register declaration. Any malformed field fails the whole
// register.
func CompileRegister(r *Register) (*CompiledRegister, error) {
	base, err := layout.ParseBaseType(r.Base)
	if err != nil {
		return nil, r.error(err)
	}

	fields := make([]*fieldspec.FieldDescriptor, 0, len(r.Fields))

	for _, declaration := range r.Fields {
		f, err := fieldspec.Parse(declaration)
		if err != nil {
			return nil, r.error(err)
		}

		fields = append(fields, f)
	}

	descriptor, err := layout.Compute(r.Name, base, fields)
	if err != nil {
		return nil, r.error(err)
	}

	return &CompiledRegister{
		Declaration: r,
		Layout:      descriptor,
		Accessors:   accessors.Generate(descriptor),
	}, nil
}

// Compiles every register of the unit. Registers are compiled independently:
// the result has all the registers that compiled successfully and the error
// joins the errors of the ones that did not.
func Compile(unit *Unit, logger *slog.Logger) (*Compilation, error) {
	if logger == nil {
		logger = slog.Default()
	}

	compilation := &Compilation{
		Unit: unit,
	}

	enums, names, errs := checkEnums(unit)
	compilation.Enums = enums
	registers := map[string]*Register{}

	for _, r := range unit.Registers {
		if previous, duplicated := registers[r.Name]; duplicated {
			errs = append(errs, r.error(utils.MakeError(ErrDuplicateRegister, "already declared at %v", previous.Pos)))
			continue
		}
		registers[r.Name] = r

		if owner, taken := names[r.Name]; taken {
			errs = append(errs, r.error(utils.MakeError(ErrDuplicateType, "'%v' is already declared by %v", r.Name, owner)))
			continue
		}

		compiled, err := CompileRegister(r)
		if err != nil {
			logger.Debug("register compilation failed", slog.String("register", r.Name), slog.Any("error", err))
			errs = append(errs, err)
			continue
		}

		checkEnumWidths(unit, compiled, logger)
		logger.Debug("register compiled", slog.String("register", compiled.Layout.String()), slog.Int("operations", len(compiled.Accessors.Operations)))
		compilation.Registers = append(compilation.Registers, compiled)
	}

	return compilation, errors.Join(errs...)
}

// Underlying types an enumeration can be declared from
var enumUnderlyingTypes = map[string]bool{
	"uint8":  true,
	"uint16": true,
	"uint32": true,
	"uint64": true,
	"uint":   true,
	"byte":   true,
}

// Validates the enumerations of the unit. Returns the valid ones and the
// top level Go names their generated code declares, mapped to a description
// of the declaring enumeration.
func checkEnums(unit *Unit) ([]*Enum, map[string]string, []error) {
	var valid []*Enum
	var errs []error
	enums := map[string]*Enum{}
	names := map[string]string{}

	for _, e := range unit.Enums {
		if previous, duplicated := enums[e.Name]; duplicated {
			errs = append(errs, utils.MakeError(ErrDuplicateEnum, "enumeration '%v' (%v) already declared at %v", e.Name, e.Pos, previous.Pos))
			continue
		}
		enums[e.Name] = e

		if len(e.Variants) == 0 {
			errs = append(errs, utils.MakeError(ErrEmptyEnum, "enumeration '%v' (%v)", e.Name, e.Pos))
			continue
		}

		if !enumUnderlyingTypes[e.Underlying] {
			errs = append(errs, utils.MakeError(ErrEnumType, "enumeration '%v' (%v) is declared from %v, expected an unsigned integer type", e.Name, e.Pos, e.Underlying))
			continue
		}

		declared := append([]string{e.Name, e.Name + "FromBits"}, utils.Map(e.Variants, func(v Variant) string { return v.Const })...)
		if err := declareNames(names, declared, fmt.Sprintf("enumeration '%v' (%v)", e.Name, e.Pos)); err != nil {
			errs = append(errs, err)
			continue
		}

		valid = append(valid, e)
	}

	return valid, names, errs
}

func declareNames(names map[string]string, declared []string, owner string) error {
	seen := map[string]bool{}

	for _, name := range declared {
		if previous, taken := names[name]; taken {
			return utils.MakeError(ErrDuplicateType, "'%v' of %v is already declared by %v", name, owner, previous)
		}
		if seen[name] {
			return utils.MakeError(ErrDuplicateType, "'%v' is declared twice by %v", name, owner)
		}
		seen[name] = true
	}

	for _, name := range declared {
		names[name] = owner
	}

	return nil
}

// Fields narrower than the codes of their enumeration are legal, but some
// states will be truncated when written
func checkEnumWidths(unit *Unit, r *CompiledRegister, logger *slog.Logger) {
	for _, f := range r.Layout.AccessibleFields() {
		if !f.Type.IsSymbolic() || len(f.Into) > 0 {
			continue
		}

		e, ok := unit.Enum(f.Type.Name)
		if !ok || e.Bits() <= f.Bits {
			continue
		}

		logger.Warn("field narrower than its enumeration codes",
			slog.String("register", r.Layout.Name),
			slog.String("field", f.Name),
			slog.String("pos", f.Pos),
			slog.Int("bits", f.Bits),
			slog.Int("codeBits", e.Bits()))
	}
}
