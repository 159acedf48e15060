package schema

import (
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"strings"

	"github.com/Manu343726/regc/pkg/hw/register/field"
	"github.com/Manu343726/regc/pkg/hw/register/fieldspec"
	"github.com/Manu343726/regc/pkg/utils"
)

const (
	directivePrefix   = "regc:"
	registerDirective = "register"
	enumDirective     = "enum"
	// Struct tag holding the field payload
	FieldTag = "bits"
)

type directive struct {
	name string
	args []string
}

func findDirective(doc *ast.CommentGroup) (directive, bool) {
	if doc == nil {
		return directive{}, false
	}

	for _, comment := range doc.List {
		text, ok := strings.CutPrefix(comment.Text, "//"+directivePrefix)
		if !ok {
			continue
		}

		parts := strings.Fields(text)
		if len(parts) == 0 {
			continue
		}

		return directive{name: parts[0], args: parts[1:]}, true
	}

	return directive{}, false
}

type goLoader struct {
	fset  *token.FileSet
	unit  *Unit
	enums map[string]*goEnum
	order []string
}

type goEnum struct {
	name         string
	underlying   string
	doc          string
	pos          string
	constants    []string
	declarations []field.Declaration
}

func (l *goLoader) pos(p token.Pos) string {
	position := l.fset.Position(p)
	return position.Filename + ":" + strconv.Itoa(position.Line)
}

// Loads register and enumeration declarations from Go source. src is passed
// to go/parser.ParseFile: if nil the file is read from filename.
//
// Registers are struct types with a //regc:register <base> directive whose
// fields carry their payload in a bits struct tag. Enumerations are types
// with a //regc:enum directive; their variants are the constants of the
// type, in declaration order. A constant initialized with an integer literal
// has an explicit code. Constants initialized with iota take the next code in
// sequence, so a constant following an explicit code k gets k+1 whatever its
// Go value is. Constants repeating a previous integer literal are rejected,
// since their Go value would differ from their code.
//
//	//regc:register uint32
//	type ClockControl struct {
//		HSION  State `bits:"1, rw, get=HSIState"`
//		HSIRDY bool  `bits:"1, r"`
//		_      uint8 `bits:"1"`
//	}
//
// Schema files declare the types the generated code will define, so they
// are usually excluded from the build with a //go:build ignore constraint.
func LoadGo(filename string, src any) (*Unit, error) {
	l := &goLoader{
		fset:  token.NewFileSet(),
		enums: map[string]*goEnum{},
	}

	file, err := parser.ParseFile(l.fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, utils.MakeError(ErrMalformedSchema, "%v", err)
	}

	l.unit = &Unit{
		Package: file.Name.Name,
		Source:  filename,
		Imports: map[string]string{},
	}

	for _, spec := range file.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			return nil, utils.MakeError(ErrMalformedSchema, "%v: %v", l.pos(spec.Pos()), err)
		}

		name := PackageName(importPath)
		if spec.Name != nil {
			name = spec.Name.Name
		}
		l.unit.Imports[name] = importPath
	}

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}

		for _, spec := range gen.Specs {
			if err := l.loadType(gen, spec.(*ast.TypeSpec)); err != nil {
				return nil, err
			}
		}
	}

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.CONST {
			continue
		}

		if err := l.loadConstants(gen); err != nil {
			return nil, err
		}
	}

	for _, name := range l.order {
		e := l.enums[name]
		l.unit.Enums = append(l.unit.Enums, newEnum(e.name, e.underlying, e.doc, e.pos, e.constants, e.declarations))
	}

	return l.unit, nil
}

func (l *goLoader) loadType(gen *ast.GenDecl, spec *ast.TypeSpec) error {
	doc := spec.Doc
	if doc == nil && len(gen.Specs) == 1 {
		doc = gen.Doc
	}

	d, ok := findDirective(doc)
	if !ok {
		return nil
	}

	switch d.name {
	case registerDirective:
		return l.loadRegister(spec, d, doc)
	case enumDirective:
		return l.loadEnum(spec, doc)
	}

	return utils.MakeError(ErrMalformedSchema, "%v: unknown directive %v%v", l.pos(doc.Pos()), directivePrefix, d.name)
}

func docString(doc *ast.CommentGroup) string {
	return strings.TrimSpace(doc.Text())
}

func (l *goLoader) loadRegister(spec *ast.TypeSpec, d directive, doc *ast.CommentGroup) error {
	pos := l.pos(spec.Pos())

	if len(d.args) != 1 {
		return utils.MakeError(ErrMalformedSchema, "%v: register directive of %v expects the base type, got %v", pos, spec.Name.Name, d.args)
	}

	structType, ok := spec.Type.(*ast.StructType)
	if !ok {
		return utils.MakeError(ErrUnsupportedShape, "%v: register %v must be a struct type", pos, spec.Name.Name)
	}

	if spec.TypeParams != nil {
		return utils.MakeError(ErrUnsupportedShape, "%v: register %v cannot have type parameters", pos, spec.Name.Name)
	}

	register := &Register{
		Name: spec.Name.Name,
		Base: d.args[0],
		Doc:  docString(doc),
		Pos:  pos,
	}

	for _, f := range structType.Fields.List {
		if len(f.Names) == 0 {
			return register.error(utils.MakeError(ErrUnsupportedShape, "%v: embedded fields are not supported", l.pos(f.Pos())))
		}

		typeName, err := l.typeName(f.Type)
		if err != nil {
			return register.error(err)
		}

		payload := ""
		if f.Tag != nil {
			tag, err := strconv.Unquote(f.Tag.Value)
			if err != nil {
				return register.error(utils.MakeError(ErrMalformedSchema, "%v: %v", l.pos(f.Tag.Pos()), err))
			}
			payload = reflect.StructTag(tag).Get(FieldTag)
		}

		for _, name := range f.Names {
			register.Fields = append(register.Fields, fieldspec.Declaration{
				Name:    name.Name,
				Index:   len(register.Fields),
				Type:    typeName,
				Payload: payload,
				Pos:     l.pos(name.Pos()),
			})
		}
	}

	l.unit.Registers = append(l.unit.Registers, register)
	return nil
}

func (l *goLoader) typeName(expr ast.Expr) (string, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name, nil
	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok {
			return pkg.Name + "." + t.Sel.Name, nil
		}
	}

	return "", utils.MakeError(ErrUnsupportedShape, "%v: field types must be named types", l.pos(expr.Pos()))
}

func (l *goLoader) loadEnum(spec *ast.TypeSpec, doc *ast.CommentGroup) error {
	pos := l.pos(spec.Pos())

	underlying, ok := spec.Type.(*ast.Ident)
	if !ok || spec.Assign.IsValid() {
		return utils.MakeError(ErrUnsupportedShape, "%v: enumeration %v must be defined from an integer type", pos, spec.Name.Name)
	}

	if _, declared := l.enums[spec.Name.Name]; declared {
		return utils.MakeError(ErrDuplicateEnum, "%v: enumeration %v declared twice", pos, spec.Name.Name)
	}

	l.enums[spec.Name.Name] = &goEnum{
		name:       spec.Name.Name,
		underlying: underlying.Name,
		doc:        docString(doc),
		pos:        pos,
	}
	l.order = append(l.order, spec.Name.Name)

	return nil
}

func (l *goLoader) loadConstants(gen *ast.GenDecl) error {
	// Constants without type repeat the type of the previous ValueSpec of the block
	var current *goEnum
	// Constants without values repeat the previous expression list
	var previous []ast.Expr

	for _, s := range gen.Specs {
		spec := s.(*ast.ValueSpec)
		implicit := len(spec.Values) == 0

		if !implicit {
			previous = spec.Values
		}

		if spec.Type != nil {
			current = nil
			if ident, ok := spec.Type.(*ast.Ident); ok {
				current = l.enums[ident.Name]
			}
		} else if !implicit {
			current = nil
		}

		if current == nil {
			continue
		}

		for i, name := range spec.Names {
			if name.Name == "_" {
				continue
			}

			var value ast.Expr
			if i < len(previous) {
				value = previous[i]
			}

			if _, literal := value.(*ast.BasicLit); literal && implicit {
				return utils.MakeError(ErrUnsupportedShape, "%v: %v repeats the value of a previous constant, give it an explicit code", l.pos(name.Pos()), name.Name)
			}

			declaration, err := l.variant(name.Name, value)
			if err != nil {
				return err
			}

			current.constants = append(current.constants, name.Name)
			current.declarations = append(current.declarations, declaration)
		}
	}

	return nil
}

func (l *goLoader) variant(name string, value ast.Expr) (field.Declaration, error) {
	switch v := value.(type) {
	case nil:
		return field.Sequential(name), nil
	case *ast.Ident:
		if v.Name == "iota" {
			return field.Sequential(name), nil
		}
	case *ast.BasicLit:
		if v.Kind == token.INT {
			code, err := strconv.ParseUint(v.Value, 0, 32)
			if err != nil {
				return field.Declaration{}, utils.MakeError(ErrMalformedSchema, "%v: code of %v: %v", l.pos(v.Pos()), name, err)
			}
			return field.Explicit(name, uint32(code)), nil
		}
	}

	return field.Declaration{}, utils.MakeError(ErrUnsupportedShape, "%v: %v must be initialized with iota or an integer literal", l.pos(value.Pos()), name)
}
