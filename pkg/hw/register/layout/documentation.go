package layout

import (
	"fmt"
	"strings"

	"github.com/Manu343726/regc/pkg/hw/register/fieldspec"
	"github.com/Manu343726/regc/pkg/utils"
)

// Returns full documentation for the register: a diagram of its bit layout
// and the list of fields with their accessors
func (r *RegisterDescriptor) Documentation(leftpad int) (string, error) {
	var builder strings.Builder
	leftpad_str := strings.Repeat(" ", leftpad)

	builder.WriteString(leftpad_str)
	builder.WriteString(fmt.Sprintf("%v\n\n", r))

	leftpad_str += "  "

	builder.WriteString(leftpad_str)
	builder.WriteString("Layout:\n\n")

	frame, err := utils.AsciiFrame(utils.Map(r.Fields, func(f *fieldspec.FieldDescriptor) utils.AsciiFrameField {
		name := f.Name
		if f.IsReserved() {
			name = "(reserved)"
		}

		return utils.AsciiFrameField{
			Name:  name,
			Begin: f.Offset,
			Width: f.Bits,
		}
	}), r.Base.Bits(), "bits", utils.AsciiFrameUnitLayout_RightToLeft, leftpad+4)

	if err != nil {
		return "", fmt.Errorf("error generating documentation for register %v: %w", r.Name, err)
	}

	builder.WriteString(frame)
	builder.WriteString("\n")
	builder.WriteString(leftpad_str)
	builder.WriteString("Fields:\n\n")

	fields := r.AccessibleFields()

	if len(fields) == 0 {
		builder.WriteString(leftpad_str)
		builder.WriteString("  (none)\n")
	}

	for _, f := range fields {
		builder.WriteString(leftpad_str)
		builder.WriteString(fmt.Sprintf(" [%v] %v mask=%v accessors: %v\n", f.Index, f, utils.FormatUintHex(uint64(f.Mask), r.Base.Bits()/4), strings.Join(Accessors(f), ", ")))
	}

	return builder.String(), nil
}
