package tools

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Manu343726/regc/pkg/hw/register/inspect"
	"github.com/Manu343726/regc/pkg/hw/register/schema"
	"github.com/Manu343726/regc/pkg/utils"
	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
)

var (
	colorField   = color.New(color.FgGreen)
	colorBits    = color.New(color.FgMagenta)
	colorValue   = color.New(color.FgWhite, color.Bold)
	colorInvalid = color.New(color.FgRed, color.Bold)
	colorHeader  = color.New(color.FgWhite, color.Bold, color.Underline)
	colorHiBlack = color.New(color.FgHiBlack)
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <schema>",
	Short: "Decode a raw register value",
	Long: `Decodes a raw value of a register into the values of its readable fields, as the
generated accessors would read them. Fields of enumerations declared in the schema show
the state name.

Field writes can be simulated before decoding with --set FIELD=VALUE (FIELD alone sets a
flag) and --clear FIELD. Writes go through the register accessors in order.

Example:
  regc tools inspect rcc.yaml -r ClockControl -v 0x00020000 --set HSEON=On --set HSITRIM=11`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	ToolsCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("register", "r", "", "Register to decode")
	inspectCmd.Flags().StringP("value", "v", "0", "Raw register value (decimal, 0x, 0b or 0o literal)")
	inspectCmd.Flags().StringArray("set", nil, "Write a field before decoding (FIELD=VALUE, or FIELD for flags)")
	inspectCmd.Flags().StringArray("clear", nil, "Clear a field before decoding")
	inspectCmd.Flags().Bool("tui", false, "Show the fields in an interactive table if stdout is a terminal")
	cobra.CheckErr(inspectCmd.MarkFlagRequired("register"))
}

func runInspect(cmd *cobra.Command, args []string) error {
	_, compilation, err := schema.CompileFile(args[0], slog.Default())
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("register")
	r, ok := compilation.Register(name)
	if !ok {
		return fmt.Errorf("register %v not found in %v", name, args[0])
	}

	text, _ := cmd.Flags().GetString("value")
	value, err := strconv.ParseUint(strings.ReplaceAll(text, "_", ""), 0, r.Layout.Base.Bits())
	if err != nil {
		return fmt.Errorf("invalid %v value '%v': %w", r.Layout.Base, text, err)
	}

	writes, err := parseWrites(cmd)
	if err != nil {
		return err
	}

	initial := uint32(value)
	current := initial

	if len(writes) > 0 {
		current, err = inspect.Apply(compilation, r, initial, writes, slog.Default())
		if err != nil {
			return err
		}
	}

	values := inspect.Decode(compilation, r, current)

	if tui, _ := cmd.Flags().GetBool("tui"); tui && utils.IsTerminal(os.Stdout) {
		return runInspectTUI(r, initial, current, values)
	}

	printFields(cmd.OutOrStdout(), r, initial, current, values)
	return nil
}

func parseWrites(cmd *cobra.Command) ([]inspect.Write, error) {
	var writes []inspect.Write

	sets, _ := cmd.Flags().GetStringArray("set")
	for _, text := range sets {
		w, err := inspect.ParseWrite(text)
		if err != nil {
			return nil, err
		}
		writes = append(writes, w)
	}

	clears, _ := cmd.Flags().GetStringArray("clear")
	for _, field := range clears {
		writes = append(writes, inspect.Write{Field: strings.TrimSpace(field), Clear: true})
	}

	return writes, nil
}

func formatValue(r *schema.CompiledRegister, value uint32) string {
	return utils.FormatUintHex(uint64(value), r.Layout.Base.Bits()/4)
}

func printFields(w io.Writer, r *schema.CompiledRegister, initial uint32, current uint32, values []inspect.FieldValue) {
	fmt.Fprintf(w, "%v = %v", colorHeader.Sprint(r.Layout.Name), colorValue.Sprint(formatValue(r, current)))
	if initial != current {
		fmt.Fprint(w, colorHiBlack.Sprintf(" (was %v)", formatValue(r, initial)))
	}
	fmt.Fprintln(w)

	width, _ := utils.TerminalSize(w)
	fmt.Fprintln(w, colorHiBlack.Sprint(strings.Repeat("-", min(width, 60))))

	nameWidth := 0
	bitsWidth := 0
	for _, v := range values {
		nameWidth = max(nameWidth, len(v.Field.Name))
		bitsWidth = max(bitsWidth, len(v.Bits()))
	}

	for _, v := range values {
		position := fmt.Sprintf("[%v:%v]", v.Field.MostSignificantBit(), v.Field.Offset)

		value := colorValue.Sprint(v.Value)
		if v.Err != nil {
			value = colorInvalid.Sprint(v.Value) + " " + colorHiBlack.Sprint(v.Err)
		}

		fmt.Fprintf(w, "%v %-7v %v  %v\n",
			colorField.Sprintf("%-*v", nameWidth, v.Field.Name),
			position,
			colorBits.Sprintf("%*v", bitsWidth, v.Bits()),
			value)
	}
}

func runInspectTUI(r *schema.CompiledRegister, initial uint32, current uint32, values []inspect.FieldValue) error {
	app := tview.NewApplication()

	table := tview.NewTable().
		SetBorders(false).
		SetFixed(1, 0).
		SetSelectable(true, false)

	for column, header := range []string{"Field", "Bits", "Access", "Type", "Raw", "Value"} {
		table.SetCell(0, column, tview.NewTableCell(header).
			SetTextColor(tcell.ColorYellow).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))
	}

	for i, v := range values {
		row := i + 1
		valueColor := tcell.ColorWhite
		if v.Err != nil {
			valueColor = tcell.ColorRed
		}

		table.SetCell(row, 0, tview.NewTableCell(v.Field.Name).SetTextColor(tcell.ColorGreen))
		table.SetCell(row, 1, tview.NewTableCell(fmt.Sprintf("%v:%v", v.Field.MostSignificantBit(), v.Field.Offset)))
		table.SetCell(row, 2, tview.NewTableCell(v.Field.Access.String()))
		table.SetCell(row, 3, tview.NewTableCell(v.Field.Type.Name))
		table.SetCell(row, 4, tview.NewTableCell(v.Bits()).SetTextColor(tcell.ColorFuchsia))
		table.SetCell(row, 5, tview.NewTableCell(v.Value).SetTextColor(valueColor).SetExpansion(1))
	}

	details := tview.NewTextView().SetDynamicColors(true)
	showDetails := func(row int) {
		if row < 1 || row > len(values) {
			return
		}

		v := values[row-1]
		text := fmt.Sprintf("%v  mask=%v", v.Field, formatValue(r, v.Field.Mask))
		if v.Err != nil {
			text += fmt.Sprintf("  [red]%v[-]", tview.Escape(v.Err.Error()))
		}
		details.SetText(text)
	}
	table.SetSelectionChangedFunc(func(row, column int) {
		showDetails(row)
	})
	showDetails(1)

	title := fmt.Sprintf(" %v = %v ", r.Layout.Name, formatValue(r, current))
	if initial != current {
		title = fmt.Sprintf(" %v = %v (was %v) ", r.Layout.Name, formatValue(r, current), formatValue(r, initial))
	}
	table.SetBorder(true).SetTitle(title)

	table.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			app.Stop()
		}
	})
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return event
	})

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(table, 0, 1, true).
		AddItem(details, 1, 0, false).
		AddItem(tview.NewTextView().SetText("q/Esc: quit  ↑/↓: select field"), 1, 0, false)

	return app.SetRoot(layout, true).Run()
}
