package cmd

import (
	"fmt"
	"log/slog"

	"github.com/Manu343726/regc/pkg/hw/register/layout"
	"github.com/Manu343726/regc/pkg/hw/register/schema"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	colorOk       = color.New(color.FgGreen, color.Bold)
	colorFailed   = color.New(color.FgRed, color.Bold)
	colorRegister = color.New(color.FgCyan)
	colorEnum     = color.New(color.FgMagenta)
	colorError    = color.New(color.FgRed)
	colorHiBlack  = color.New(color.FgHiBlack)
)

// Whole register accessors every generated register type has
var registerAccessors = []string{layout.RegisterGetName, layout.RegisterSetName}

var checkCmd = &cobra.Command{
	Use:   "check <schema>",
	Short: "Validate the registers of a schema",
	Long: `Compiles every register and enumeration of a schema file and reports the status
of each one. Exits with a non-zero status if any of them fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	unit, compilation, compileErr := schema.CompileFile(args[0], slog.Default())
	if unit == nil {
		return compileErr
	}

	out := cmd.OutOrStdout()

	for _, e := range compilation.Enums {
		fmt.Fprintf(out, "%v   enum %v %v\n", colorOk.Sprint("ok"), colorEnum.Sprint(e.Name),
			colorHiBlack.Sprintf("(%v variants, %v bits)", len(e.Variants), e.Bits()))
	}

	for _, r := range compilation.Registers {
		fmt.Fprintf(out, "%v   %v %v\n", colorOk.Sprint("ok"), colorRegister.Sprint(r.Layout),
			colorHiBlack.Sprintf("(%v accessors)", len(r.Accessors.Operations)+len(registerAccessors)))
	}

	if compileErr == nil {
		return nil
	}

	errs := []error{compileErr}
	if joined, ok := compileErr.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}

	for _, err := range errs {
		fmt.Fprintf(out, "%v %v\n", colorFailed.Sprint("FAIL"), colorError.Sprint(err))
	}

	return fmt.Errorf("%v: %v error(s)", args[0], len(errs))
}
