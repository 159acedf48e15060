package tools

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Manu343726/regc/pkg/hw/register/schema"
	"github.com/Manu343726/regc/pkg/utils"
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs <schema>",
	Short: "Show the layout of the registers of a schema",
	Long: `Dumps the documentation of the registers and enumerations of a schema file: a diagram
of the bit layout of each register and the list of its fields with their masks and accessors.
By default the tool dumps the documentation to stdout, but it can be redirected to a file using the --output flag.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, compilation, err := schema.CompileFile(args[0], slog.Default())
		if err != nil {
			return err
		}

		register, _ := cmd.Flags().GetString("register")
		docs, err := documentation(compilation, register)
		if err != nil {
			return err
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			file, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("error creating file: %w", err)
			}
			defer file.Close()
			_, err = fmt.Fprintln(file, docs)
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), docs)
		return err
	},
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the documentation is dumped to stdout.")
	docsCmd.Flags().StringP("register", "r", "", "Document only the given register")
}

func documentation(compilation *schema.Compilation, register string) (string, error) {
	var builder strings.Builder

	registers := compilation.Registers
	if register != "" {
		r, ok := compilation.Register(register)
		if !ok {
			return "", fmt.Errorf("register %v not found in %v", register, compilation.Unit.Source)
		}
		registers = []*schema.CompiledRegister{r}
	} else {
		for _, e := range compilation.Enums {
			writeEnum(&builder, e)
		}
	}

	for _, r := range registers {
		if len(r.Declaration.Doc) > 0 {
			builder.WriteString(r.Declaration.Doc)
			builder.WriteString("\n\n")
		}

		docs, err := r.Layout.Documentation(2)
		if err != nil {
			return "", err
		}

		builder.WriteString(docs)
		builder.WriteString("\n")
	}

	return strings.TrimRight(builder.String(), "\n"), nil
}

func writeEnum(w io.Writer, e *schema.Enum) {
	fmt.Fprintf(w, "enum %v (%v bits)\n\n", e.Name, e.Bits())

	for _, v := range e.Variants {
		explicit := ""
		if v.Explicit {
			explicit = " (explicit)"
		}
		fmt.Fprintf(w, "  %-16v %v%v\n", v.Name, utils.FormatUintBinary(uint64(v.Code), e.Bits()), explicit)
	}

	fmt.Fprintln(w)
}
