package cmd

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/Manu343726/regc/pkg/hw/register/codegen"
	"github.com/Manu343726/regc/pkg/hw/register/schema"
	"github.com/Manu343726/regc/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var generateCmd = &cobra.Command{
	Use:   "generate <schema>",
	Short: "Generate Go register accessors",
	Long: `Compiles every register of a schema file and generates a Go file with an accessor
type per register and the conversion functions of the declared enumerations.

The schema is a Go source file (.go) or a YAML file (.yaml, .yml). If any register fails
to compile nothing is generated.

By default the generated registers store their value in the regc cell package. TinyGo
programs accessing memory mapped registers can use the runtime/volatile package instead:

  regc generate rcc.yaml -o rcc_regs.go --storage-import runtime/volatile`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the code is written to stdout.")
	generateCmd.Flags().StringP("package", "p", "", "Package of the generated code (default: the schema package)")
	generateCmd.Flags().String("storage-import", codegen.DefaultStorageImport, "Import path of the package providing the Register8/16/32 storage types")
	generateCmd.Flags().Bool("highlight", false, "Highlight the generated code if stdout is a terminal")
	cobra.CheckErr(viper.BindPFlag("generate.package", generateCmd.Flags().Lookup("package")))
	cobra.CheckErr(viper.BindPFlag("generate.storage-import", generateCmd.Flags().Lookup("storage-import")))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	_, compilation, err := schema.CompileFile(args[0], slog.Default())
	if err != nil {
		return err
	}

	generator, err := codegen.NewGenerator(codegen.Options{
		Package:       viper.GetString("generate.package"),
		StorageImport: viper.GetString("generate.storage-import"),
	})
	if err != nil {
		return err
	}

	outputFile, _ := cmd.Flags().GetString("output")
	if outputFile != "" {
		if err := generator.Generate(outputFile, compilation); err != nil {
			return err
		}

		slog.Info("register accessors generated",
			slog.String("schema", args[0]),
			slog.String("output", outputFile),
			slog.Int("registers", len(compilation.Registers)),
			slog.Int("enums", len(compilation.Enums)))
		return nil
	}

	var buffer bytes.Buffer
	if err := generator.GenerateTo(&buffer, compilation); err != nil {
		return err
	}

	code := buffer.String()
	if highlight, _ := cmd.Flags().GetBool("highlight"); highlight && utils.IsTerminal(cmd.OutOrStdout()) {
		code = utils.HighlightGoCode(code)
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), code)
	return err
}
