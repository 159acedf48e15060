package tools

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Manu343726/regc/pkg/hw/register/schema"
	"github.com/bradleyjkemp/memviz"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <schema>",
	Short: "Dump the compiled descriptors of a register as a Graphviz graph",
	Long: `Compiles a schema file and dumps the in-memory descriptors of one register (declaration,
field descriptors, layout and accessor operations) as a Graphviz dot graph. Useful to debug
the compiler pipeline:

  regc tools graph rcc.yaml -r ClockControl | dot -Tsvg > ClockControl.svg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, compilation, err := schema.CompileFile(args[0], slog.Default())
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("register")
		r, ok := compilation.Register(name)
		if !ok {
			return fmt.Errorf("register %v not found in %v", name, compilation.Unit.Source)
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			file, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("error creating file: %w", err)
			}
			defer file.Close()
			return graph(file, r)
		}

		return graph(cmd.OutOrStdout(), r)
	},
}

func init() {
	ToolsCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("register", "r", "", "Register to dump")
	graphCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the graph is dumped to stdout.")
	cobra.CheckErr(graphCmd.MarkFlagRequired("register"))
}

func graph(w io.Writer, r *schema.CompiledRegister) error {
	memviz.Map(w, r)
	return nil
}
