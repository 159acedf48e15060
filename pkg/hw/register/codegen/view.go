package codegen

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Manu343726/regc/pkg/hw/register/accessors"
	"github.com/Manu343726/regc/pkg/hw/register/schema"
	"github.com/Manu343726/regc/pkg/utils"
)

// Name of the storage field of the generated register types
const storageField = "reg"

type importView struct {
	Name  string
	Path  string
	Alias bool
}

type fileView struct {
	Source    string
	Package   string
	Imports   []importView
	Enums     []*enumView
	Registers []*registerView
}

type enumView struct {
	*schema.Enum
	// Variants decoded from each code, the first declared one for
	// duplicated codes
	Decodes []schema.Variant
}

type registerView struct {
	Name       string
	Doc        string
	Layout     string
	Storage    string
	Base       string
	Operations []*operationView
}

type operationView struct {
	Kind       string
	Name       string
	Field      string
	Type       string
	Base       string
	Mask       string
	Offset     int
	Conversion string
	// Decoding function for getters, encoding function for custom setters
	Function string
	Doc      string
}

func (g *Generator) file(compilation *schema.Compilation) (*fileView, error) {
	unit := compilation.Unit

	view := &fileView{
		Source:  filepath.Base(unit.Source),
		Package: g.options.Package,
	}
	if len(view.Package) == 0 {
		view.Package = unit.Package
	}

	imports := newImportSet(unit)
	if len(compilation.Registers) > 0 {
		imports.add(schema.PackageName(g.options.StorageImport), g.options.StorageImport)
	}
	if len(compilation.Enums) > 0 {
		imports.add("fmt", "fmt")
		imports.add(schema.PackageName(FieldImport), FieldImport)
	}

	for _, e := range compilation.Enums {
		view.Enums = append(view.Enums, enumOf(e))
	}

	for _, r := range compilation.Registers {
		register, err := g.register(r, imports)
		if err != nil {
			return nil, err
		}

		view.Registers = append(view.Registers, register)
	}

	view.Imports = imports.views()
	return view, nil
}

func enumOf(e *schema.Enum) *enumView {
	view := &enumView{
		Enum: e,
	}
	decoded := map[uint32]bool{}

	for _, v := range e.Variants {
		if !decoded[v.Code] {
			decoded[v.Code] = true
			view.Decodes = append(view.Decodes, v)
		}
	}

	return view
}

func (g *Generator) register(r *schema.CompiledRegister, imports *importSet) (*registerView, error) {
	descriptor := r.Layout

	layout, err := descriptor.Documentation(0)
	if err != nil {
		return nil, err
	}

	view := &registerView{
		Name:    descriptor.Name,
		Doc:     r.Declaration.Doc,
		Layout:  layout,
		Storage: fmt.Sprintf("%v.Register%v", schema.PackageName(g.options.StorageImport), descriptor.Base.Bits()),
		Base:    descriptor.Base.String(),
	}

	for _, op := range r.Accessors.Operations {
		if op.Name == storageField {
			return nil, op.Field.Error(utils.MakeError(ErrReservedName, "'%v' names the storage of the generated register", op.Name))
		}

		f := op.Field
		operation := &operationView{
			Kind:   strings.ToLower(op.Kind.String()),
			Name:   op.Name,
			Field:  f.Name,
			Type:   f.Type.Name,
			Base:   view.Base,
			Mask:   utils.FormatUintHex(uint64(f.Mask), descriptor.Base.Bits()/4),
			Offset: f.Offset,
			Doc:    fieldDoc(op),
		}

		switch op.Conversion {
		case accessors.Conversion_Bool:
			operation.Conversion = "bool"
		case accessors.Conversion_Unsigned:
			operation.Conversion = "unsigned"
		case accessors.Conversion_Custom:
			operation.Conversion = "custom"
			operation.Function = f.Into
			if op.Kind == accessors.OperationKind_Get {
				operation.Function = f.From
			}
			imports.use(operation.Function)
		case accessors.Conversion_Codec:
			operation.Conversion = "codec"
			operation.Function = f.Type.Name + "FromBits"
		}

		if f.Type.IsSymbolic() {
			imports.use(f.Type.Name)
		}

		view.Operations = append(view.Operations, operation)
	}

	return view, nil
}

func fieldDoc(op *accessors.Operation) string {
	f := op.Field
	bits := fmt.Sprintf("bits %v:%v", f.MostSignificantBit(), f.Offset)
	if f.Bits == 1 {
		bits = fmt.Sprintf("bit %v", f.Offset)
	}

	switch op.Kind {
	case accessors.OperationKind_Get:
		return fmt.Sprintf("%v reads the %v field (%v)", op.Name, f.Name, bits)
	case accessors.OperationKind_Set:
		return fmt.Sprintf("%v writes the %v field (%v)", op.Name, f.Name, bits)
	case accessors.OperationKind_SetFlag:
		return fmt.Sprintf("%v sets the %v flag (%v)", op.Name, f.Name, bits)
	case accessors.OperationKind_Clear:
		return fmt.Sprintf("%v clears the %v field (%v)", op.Name, f.Name, bits)
	}

	panic("unreachable")
}

type importSet struct {
	unit    *schema.Unit
	imports map[string]string
}

func newImportSet(unit *schema.Unit) *importSet {
	return &importSet{
		unit:    unit,
		imports: map[string]string{},
	}
}

func (s *importSet) add(name string, importPath string) {
	s.imports[name] = importPath
}

// Imports the package qualifying a type or function name, if any. Qualifiers
// that are not imports of the unit are local identifiers (method
// expressions, variables) and need no import.
func (s *importSet) use(qualified string) {
	qualifier, _, found := strings.Cut(qualified, ".")
	if !found {
		return
	}

	if importPath, ok := s.unit.ImportPath(qualifier); ok {
		s.add(qualifier, importPath)
	}
}

func (s *importSet) views() []importView {
	views := utils.Map(utils.Keys(s.imports), func(name string) importView {
		importPath := s.imports[name]
		return importView{
			Name:  name,
			Path:  importPath,
			Alias: schema.PackageName(importPath) != name,
		}
	})

	sort.Slice(views, func(i, j int) bool {
		return views[i].Path < views[j].Path
	})

	return views
}
