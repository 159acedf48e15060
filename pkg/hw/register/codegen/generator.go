// Package codegen renders compiled registers and enumerations as Go source.
package codegen

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"go/format"
	"io"
	"os"
	"reflect"
	"strings"
	"text/template"

	"github.com/Manu343726/regc/pkg/hw/register/schema"
	"github.com/Manu343726/regc/pkg/utils"
)

//go:embed templates
var Templates embed.FS

// Storage package used when none is configured
const DefaultStorageImport = "github.com/Manu343726/regc/pkg/hw/register/cell"

// Package of the field.Field interface generated enumerations implement
const FieldImport = "github.com/Manu343726/regc/pkg/hw/register/field"

var ErrMalformedOutput = errors.New("generated code is not valid Go")
var ErrReservedName = errors.New("reserved accessor name")

type Options struct {
	// Package of the generated file. Defaults to the package of the unit
	Package string
	// Import path of the package providing Register8, Register16 and
	// Register32 storage types with Get and Set methods, such as
	// runtime/volatile
	StorageImport string
}

type Generator struct {
	template *template.Template
	options  Options
}

func NewGenerator(options Options) (*Generator, error) {
	if len(options.StorageImport) == 0 {
		options.StorageImport = DefaultStorageImport
	}

	funcs := template.FuncMap{
		"Comment": comment,
		"CodeBlock": func(text string) string {
			return comment("\t" + strings.ReplaceAll(strings.TrimRight(text, "\n"), "\n", "\n\t"))
		},
		"Join": func(separator string, items []any) string {
			return utils.FormatSlice(items, separator)
		},
		"MapMember": func(member string, items any) ([]any, error) {
			v := reflect.ValueOf(items)
			if v.Kind() != reflect.Array && v.Kind() != reflect.Slice {
				return nil, fmt.Errorf("expected array, got %v", v.Kind())
			}

			arr := make([]any, v.Len())

			for i := 0; i < v.Len(); i++ {
				arr[i] = v.Index(i).Interface()
			}

			return utils.MapMember(member, arr)
		},
	}

	t, err := template.New("file.go.tmpl").Funcs(funcs).
		ParseFS(Templates, "templates/*.go.tmpl")

	if err != nil {
		return nil, err
	}

	return &Generator{
		template: t,
		options:  options,
	}, nil
}

func comment(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	for i, line := range lines {
		if len(strings.TrimSpace(line)) == 0 {
			lines[i] = "//"
		} else {
			lines[i] = "// " + line
		}
	}

	return strings.Join(lines, "\n")
}

// Renders the compilation as a formatted Go file
func (g *Generator) GenerateTo(writer io.Writer, compilation *schema.Compilation) error {
	view, err := g.file(compilation)
	if err != nil {
		return err
	}

	var buffer bytes.Buffer
	if err := g.template.Execute(&buffer, view); err != nil {
		return err
	}

	source, err := format.Source(buffer.Bytes())
	if err != nil {
		return utils.MakeError(ErrMalformedOutput, "%v\n%v", err, buffer.String())
	}

	_, err = writer.Write(source)
	return err
}

// Renders the compilation into the given file. Nothing is written if the
// generation fails.
func (g *Generator) Generate(outputFile string, compilation *schema.Compilation) error {
	var buffer bytes.Buffer

	if err := g.GenerateTo(&buffer, compilation); err != nil {
		return err
	}

	return os.WriteFile(outputFile, buffer.Bytes(), 0o644)
}
