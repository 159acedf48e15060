package schema

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	"github.com/Manu343726/regc/pkg/hw/register/field"
	"github.com/Manu343726/regc/pkg/hw/register/fieldspec"
	"github.com/Manu343726/regc/pkg/utils"
	"gopkg.in/yaml.v3"
)

type yamlVariant struct {
	Name string  `yaml:"name"`
	Code *uint32 `yaml:"code"`
}

type yamlEnum struct {
	Name     string        `yaml:"name"`
	Type     string        `yaml:"type"`
	Doc      string        `yaml:"doc"`
	Variants []yamlVariant `yaml:"variants"`
	Line     int           `yaml:"-"`
}

func (e *yamlEnum) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlEnum
	if err := node.Decode((*plain)(e)); err != nil {
		return err
	}

	e.Line = node.Line
	return nil
}

type yamlField struct {
	Name     string    `yaml:"name"`
	Type     string    `yaml:"type"`
	Bits     yaml.Node `yaml:"bits"`
	Reserved int       `yaml:"reserved"`
	Line     int       `yaml:"-"`
}

func (f *yamlField) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlField
	if err := node.Decode((*plain)(f)); err != nil {
		return err
	}

	f.Line = node.Line
	return nil
}

type yamlRegister struct {
	Name   string      `yaml:"name"`
	Base   string      `yaml:"base"`
	Doc    string      `yaml:"doc"`
	Fields []yamlField `yaml:"fields"`
	Line   int         `yaml:"-"`
}

func (r *yamlRegister) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlRegister
	if err := node.Decode((*plain)(r)); err != nil {
		return err
	}

	r.Line = node.Line
	return nil
}

type yamlUnit struct {
	Package   string            `yaml:"package"`
	Imports   map[string]string `yaml:"imports"`
	Enums     []yamlEnum        `yaml:"enums"`
	Registers []yamlRegister    `yaml:"registers"`
}

// Loads a YAML schema
//
//	package: rcc
//	enums:
//	  - name: State
//	    variants: [{name: "Off"}, {name: "On", code: 1}]
//	registers:
//	  - name: ClockControl
//	    base: uint32
//	    fields:
//	      - {name: HSION, type: State, bits: "1, rw, get=HSIState"}
//	      - {reserved: 1}
func LoadYAML(filename string, reader io.Reader) (*Unit, error) {
	var doc yamlUnit

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, utils.MakeError(ErrMalformedSchema, "%v: empty schema", filename)
		}
		return nil, utils.MakeError(ErrMalformedSchema, "%v: %v", filename, err)
	}

	if len(doc.Package) == 0 {
		return nil, utils.MakeError(ErrMalformedSchema, "%v: missing package name", filename)
	}

	unit := &Unit{
		Package: doc.Package,
		Source:  filename,
		Imports: doc.Imports,
	}

	for _, e := range doc.Enums {
		enum, err := e.load(filename)
		if err != nil {
			return nil, err
		}
		unit.Enums = append(unit.Enums, enum)
	}

	for _, r := range doc.Registers {
		register, err := r.load(filename)
		if err != nil {
			return nil, err
		}
		unit.Registers = append(unit.Registers, register)
	}

	return unit, nil
}

// Loads a YAML schema from memory
func ParseYAML(filename string, data []byte) (*Unit, error) {
	return LoadYAML(filename, bytes.NewReader(data))
}

func (e *yamlEnum) load(filename string) (*Enum, error) {
	pos := position(filename, e.Line)

	if len(e.Name) == 0 {
		return nil, utils.MakeError(ErrMalformedSchema, "%v: enumeration without name", pos)
	}

	underlying := e.Type
	if len(underlying) == 0 {
		underlying = "uint32"
	}

	constants := make([]string, len(e.Variants))
	declarations := make([]field.Declaration, len(e.Variants))

	for i, v := range e.Variants {
		if len(v.Name) == 0 {
			return nil, utils.MakeError(ErrMalformedSchema, "%v: variant #%v of enumeration '%v' has no name", pos, i, e.Name)
		}

		constants[i] = e.Name + "_" + v.Name
		if v.Code != nil {
			declarations[i] = field.Explicit(v.Name, *v.Code)
		} else {
			declarations[i] = field.Sequential(v.Name)
		}
	}

	return newEnum(e.Name, underlying, e.Doc, pos, constants, declarations), nil
}

func (r *yamlRegister) load(filename string) (*Register, error) {
	pos := position(filename, r.Line)

	if len(r.Name) == 0 {
		return nil, utils.MakeError(ErrMalformedSchema, "%v: register without name", pos)
	}

	register := &Register{
		Name: r.Name,
		Base: r.Base,
		Doc:  r.Doc,
		Pos:  pos,
	}

	for i, f := range r.Fields {
		declaration, err := f.load(filename, i, r.Base)
		if err != nil {
			return nil, register.error(err)
		}
		register.Fields = append(register.Fields, declaration)
	}

	return register, nil
}

func (f *yamlField) load(filename string, index int, base string) (fieldspec.Declaration, error) {
	declaration := fieldspec.Declaration{
		Name:  f.Name,
		Index: index,
		Type:  f.Type,
		Pos:   position(filename, f.Line),
	}

	if f.Bits.Kind != 0 && f.Bits.Kind != yaml.ScalarNode {
		return declaration, utils.MakeError(ErrMalformedSchema, "%v: bits of field #%v must be a scalar", declaration.Pos, index)
	}
	declaration.Payload = f.Bits.Value

	if f.Reserved > 0 {
		if len(f.Name) > 0 && !fieldspec.IsReservedName(f.Name) {
			return declaration, utils.MakeError(ErrMalformedSchema, "%v: field '%v' cannot be reserved", declaration.Pos, f.Name)
		}
		if len(declaration.Payload) > 0 {
			return declaration, utils.MakeError(ErrMalformedSchema, "%v: reserved field #%v declares both reserved and bits", declaration.Pos, index)
		}

		declaration.Name = fieldspec.ReservedNames[0]
		declaration.Payload = strconv.Itoa(f.Reserved)
	}

	if len(declaration.Name) == 0 {
		return declaration, utils.MakeError(ErrMalformedSchema, "%v: field #%v has no name", declaration.Pos, index)
	}

	if len(declaration.Type) == 0 {
		if !fieldspec.IsReservedName(declaration.Name) {
			return declaration, utils.MakeError(ErrMalformedSchema, "%v: field '%v' has no type", declaration.Pos, declaration.Name)
		}

		// Reserved fields are bounded by the register width only
		declaration.Type = base
	}

	return declaration, nil
}
