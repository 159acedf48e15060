package schema

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Manu343726/regc/pkg/utils"
)

// Loads a schema file, choosing the front-end from the file extension
func Load(filename string) (*Unit, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".go":
		return LoadGo(filename, nil)
	case ".yaml", ".yml":
		file, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		return LoadYAML(filename, file)
	}

	return nil, utils.MakeError(ErrMalformedSchema, "%v: unknown schema format, expected a .go, .yaml or .yml file", filename)
}

// Loads and compiles a schema file. The compilation holds the registers that
// compiled successfully even if the error is not nil.
func CompileFile(filename string, logger *slog.Logger) (*Unit, *Compilation, error) {
	unit, err := Load(filename)
	if err != nil {
		return nil, nil, err
	}

	compilation, err := Compile(unit, logger)
	return unit, compilation, err
}
