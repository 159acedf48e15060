package layout

import (
	"strconv"
	"testing"

	"github.com/Manu343726/regc/pkg/hw/register/fieldspec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type field struct {
	name    string
	typ     string
	payload string
}

func fields(t *testing.T, declarations ...field) []*fieldspec.FieldDescriptor {
	t.Helper()

	result := make([]*fieldspec.FieldDescriptor, len(declarations))

	for i, d := range declarations {
		f, err := fieldspec.Parse(fieldspec.Declaration{Name: d.name, Index: i, Type: d.typ, Payload: d.payload})
		require.NoError(t, err)
		result[i] = f
	}

	return result
}

func clockControl(t *testing.T) []*fieldspec.FieldDescriptor {
	return fields(t,
		field{"HSION", "State", "1, rw, get=HSIState, set=SetHSI"},
		field{"HSIRDY", "bool", "1, r, get=HSIIsReady"},
		field{"_", "uint8", "1"},
		field{"HSITRIM", "uint8", "5, rwc"},
		field{"HSICAL", "uint8", "8, r"},
	)
}

func TestCompute_OffsetsFollowDeclarationOrder(t *testing.T) {
	r, err := Compute("ClockControl", BaseType_Uint32, clockControl(t))
	require.NoError(t, err)

	expectedOffset := 0
	for _, f := range r.Fields {
		assert.Equal(t, expectedOffset, f.Offset, f.Name)
		expectedOffset += f.Bits
	}

	assert.Equal(t, 16, r.UsedBits())
}

func TestCompute_Masks(t *testing.T) {
	r, err := Compute("ClockControl", BaseType_Uint32, clockControl(t))
	require.NoError(t, err)

	masks := map[string]uint32{}
	for _, f := range r.AccessibleFields() {
		masks[f.Name] = f.Mask
	}

	assert.Equal(t, map[string]uint32{
		"HSION":   0x0001,
		"HSIRDY":  0x0002,
		"HSITRIM": 0x00f8,
		"HSICAL":  0xff00,
	}, masks)
}

func TestCompute_MasksDoNotOverlap(t *testing.T) {
	r, err := Compute("ClockControl", BaseType_Uint32, clockControl(t))
	require.NoError(t, err)

	fields := r.AccessibleFields()
	for i := range fields {
		for j := i + 1; j < len(fields); j++ {
			assert.Zero(t, fields[i].Mask&fields[j].Mask, "%v overlaps %v", fields[i].Name, fields[j].Name)
		}
	}
}

func TestCompute_ReservedFieldsTakeSpaceButNoAccessors(t *testing.T) {
	r, err := Compute("ClockControl", BaseType_Uint32, clockControl(t))
	require.NoError(t, err)

	assert.Len(t, r.Fields, 5)
	assert.Len(t, r.AccessibleFields(), 4)

	trim, found := r.Field("HSITRIM")
	require.True(t, found)
	assert.Equal(t, 3, trim.Offset)

	_, found = r.Field("_")
	assert.False(t, found)
	assert.Empty(t, Accessors(r.Fields[2]))
}

func TestCompute_FullWidthField(t *testing.T) {
	r, err := Compute("Data", BaseType_Uint32, fields(t, field{"DATA", "uint32", "32"}))
	require.NoError(t, err)

	assert.Equal(t, uint32(0xffffffff), r.Fields[0].Mask)
}

func TestCompute_RegisterOverflow(t *testing.T) {
	cases := []struct {
		base  BaseType
		total int
	}{
		{BaseType_Uint8, 9},
		{BaseType_Uint16, 17},
		{BaseType_Uint32, 33},
	}

	for _, c := range cases {
		declarations := []field{
			{"LOW", "uint32", "1"},
			{"HIGH", "uint32", strconv.Itoa(c.total - 1)},
		}

		_, err := Compute("Overflowing", c.base, fields(t, declarations...))

		assert.ErrorIs(t, err, ErrRegisterOverflow, "%v", c.base)
	}
}

func TestCompute_ExactFit(t *testing.T) {
	_, err := Compute("Status", BaseType_Uint8, fields(t,
		field{"A", "uint8", "4"},
		field{"_", "uint8", "3"},
		field{"B", "bool", ""},
	))

	assert.NoError(t, err)
}

func TestCompute_ReservedFieldsCountTowardsOverflow(t *testing.T) {
	_, err := Compute("Status", BaseType_Uint8, fields(t,
		field{"A", "uint8", "4"},
		field{"_", "uint8", "5"},
	))

	assert.ErrorIs(t, err, ErrRegisterOverflow)
}

func TestCompute_FieldTypeOverflow(t *testing.T) {
	_, err := Compute("Status", BaseType_Uint32, fields(t, field{"READY", "bool", "2"}))
	assert.ErrorIs(t, err, ErrFieldTypeOverflow)

	_, err = Compute("Status", BaseType_Uint32, fields(t, field{"COUNT", "uint8", "9"}))
	require.ErrorIs(t, err, ErrFieldTypeOverflow)
	assert.Contains(t, err.Error(), "width 9 exceeds capacity 8 of declared type uint8")

	var fieldError *fieldspec.FieldError
	require.ErrorAs(t, err, &fieldError)
	assert.Equal(t, "COUNT", fieldError.Field)
}

func TestCompute_SymbolicFieldsAreUnconstrained(t *testing.T) {
	_, err := Compute("Mode", BaseType_Uint32, fields(t, field{"MODE", "Mode", "12"}))

	assert.NoError(t, err)
}

func TestCompute_DuplicateFields(t *testing.T) {
	_, err := Compute("Status", BaseType_Uint8, fields(t,
		field{"A", "bool", ""},
		field{"A", "bool", ""},
	))

	assert.ErrorIs(t, err, ErrDuplicateField)
}

func TestCompute_MultipleReservedFieldsAreAllowed(t *testing.T) {
	_, err := Compute("Status", BaseType_Uint8, fields(t,
		field{"_", "uint8", "2"},
		field{"A", "bool", ""},
		field{"_", "uint8", "2"},
	))

	assert.NoError(t, err)
}

func TestCompute_DuplicateAccessors(t *testing.T) {
	_, err := Compute("Status", BaseType_Uint8, fields(t,
		field{"A", "bool", "r, get=Ready"},
		field{"B", "bool", "r, get=Ready"},
	))
	assert.ErrorIs(t, err, ErrDuplicateAccessor)

	_, err = Compute("Status", BaseType_Uint8, fields(t,
		field{"A", "uint8", "2, rw, set=Get"},
	))
	assert.ErrorIs(t, err, ErrDuplicateAccessor)
}

func TestParseBaseType(t *testing.T) {
	for name, expected := range map[string]BaseType{"uint8": BaseType_Uint8, "uint16": BaseType_Uint16, "uint32": BaseType_Uint32} {
		base, err := ParseBaseType(name)
		require.NoError(t, err)
		assert.Equal(t, expected, base)
		assert.Equal(t, name, base.String())
	}

	_, err := ParseBaseType("uint64")
	assert.ErrorIs(t, err, ErrUnsupportedBaseType)
}

func TestDocumentation(t *testing.T) {
	r, err := Compute("Status", BaseType_Uint8, fields(t,
		field{"EN", "bool", "rw"},
		field{"RDY", "bool", "r, get=IsReady"},
	))
	require.NoError(t, err)

	doc, err := r.Documentation(0)
	require.NoError(t, err)

	assert.Contains(t, doc, "Status (uint8, 2/8 bits used)")
	assert.Contains(t, doc, "|  (unused)  |    RDY     |     EN     |")
	assert.Contains(t, doc, "[0] EN[0:0] rw bool mask=0x01 accessors: GetEN, SetEN")
	assert.Contains(t, doc, "[1] RDY[1:1] r bool mask=0x02 accessors: IsReady")
}
