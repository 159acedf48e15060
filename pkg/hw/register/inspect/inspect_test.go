package inspect

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/Manu343726/regc/pkg/hw/register/field"
	"github.com/Manu343726/regc/pkg/hw/register/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const controlSchema = `
package: demo
enums:
  - name: State
    variants: [{name: "Off"}, {name: "On"}]
registers:
  - name: Control
    base: uint16
    fields:
      - {name: MODE, type: State, bits: "2, rw"}
      - {name: RDY, type: bool, bits: "r"}
      - {name: EN, type: bool, bits: "rwc"}
      - {reserved: 1}
      - {name: TRIM, type: uint8, bits: "5, rwc"}
      - {name: DIV, type: Divider, bits: "3, rw, from=div.Decode, into=div.Encode"}
      - {name: LEVEL, type: Level, bits: "2, w"}
      - {name: CMD, type: uint8, bits: "1, w"}
  - name: Status
    base: uint8
    fields:
      - {name: RDY, type: bool, bits: "r"}
      - {name: ERR, type: uint8, bits: "3, rc"}
`

func control(t *testing.T) (*schema.Compilation, *schema.CompiledRegister) {
	t.Helper()

	unit, err := schema.ParseYAML("demo.yaml", []byte(controlSchema))
	require.NoError(t, err)

	compilation, err := schema.Compile(unit, nil)
	require.NoError(t, err)

	r, ok := compilation.Register("Control")
	require.True(t, ok)

	return compilation, r
}

func applyWrites(t *testing.T, value uint32, writes ...Write) (uint32, error) {
	t.Helper()

	compilation, r := control(t)
	return Apply(compilation, r, value, writes, nil)
}

func TestDecode_ReadableFields(t *testing.T) {
	compilation, r := control(t)

	values := Decode(compilation, r, 0x1565)
	require.Len(t, values, 5)

	names := []string{}
	for _, v := range values {
		names = append(names, v.Field.Name)
		assert.NoError(t, v.Err)
	}
	assert.Equal(t, []string{"MODE", "RDY", "EN", "TRIM", "DIV"}, names)

	assert.Equal(t, "On", values[0].Value)
	assert.Equal(t, "01", values[0].Bits())
	assert.Equal(t, "true", values[1].Value)
	assert.Equal(t, "false", values[2].Value)
	assert.Equal(t, "11 (0x0b)", values[3].Value)
	assert.Equal(t, uint32(11), values[3].Raw)
	assert.Equal(t, "5 (raw, converted by div.Decode)", values[4].Value)
}

func TestDecode_InvalidEnumCode(t *testing.T) {
	compilation, r := control(t)

	values := Decode(compilation, r, 0b11)
	assert.ErrorIs(t, values[0].Err, field.ErrInvalidCode)
	assert.Equal(t, "<invalid>", values[0].Value)
	assert.Equal(t, uint32(3), values[0].Raw)
}

func TestApply_Writes(t *testing.T) {
	value, err := applyWrites(t, 0,
		Write{Field: "MODE", Value: "On"},
		Write{Field: "EN"},
		Write{Field: "TRIM", Value: "11"},
		Write{Field: "DIV", Value: "5"},
		Write{Field: "LEVEL", Value: "2"},
		Write{Field: "CMD", Value: "1"},
	)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xd569), value)
}

func TestApply_EnumConstantNames(t *testing.T) {
	value, err := applyWrites(t, 0x8000, Write{Field: "MODE", Value: "State_On"})
	require.NoError(t, err)
	assert.Equal(t, uint32(0x8001), value)
}

func TestApply_Clears(t *testing.T) {
	value, err := applyWrites(t, 0xffff,
		Write{Field: "TRIM", Clear: true},
		Write{Field: "EN", Clear: true},
	)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xfc17), value)
}

func TestApply_ByteRegister(t *testing.T) {
	compilation, _ := control(t)
	r, ok := compilation.Register("Status")
	require.True(t, ok)

	value, err := Apply(compilation, r, 0xff, []Write{{Field: "ERR", Clear: true}}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xf1), value)
}

func TestApply_Errors(t *testing.T) {
	cases := map[string]struct {
		write    Write
		expected error
	}{
		"unknown field":      {Write{Field: "NOPE", Value: "1"}, ErrUnknownField},
		"read only":          {Write{Field: "RDY", Value: "true"}, ErrNotWritable},
		"not clearable":      {Write{Field: "MODE", Clear: true}, ErrNotWritable},
		"unknown state":      {Write{Field: "MODE", Value: "Maybe"}, ErrInvalidValue},
		"overflowing value":  {Write{Field: "TRIM", Value: "40"}, ErrInvalidValue},
		"flag with value":    {Write{Field: "EN", Value: "1"}, ErrInvalidValue},
		"malformed raw code": {Write{Field: "DIV", Value: "abc"}, ErrInvalidValue},
		"malformed number":   {Write{Field: "CMD", Value: "yes"}, ErrInvalidValue},
	}

	for name, c := range cases {
		_, err := applyWrites(t, 0, c.write)
		assert.ErrorIs(t, err, c.expected, name)
	}
}

func TestApply_LogsStorageAccesses(t *testing.T) {
	compilation, r := control(t)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Apply(compilation, r, 0, []Write{{Field: "EN"}}, logger)
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "msg=read register=Control value=0x0000")
	assert.Contains(t, logs.String(), "msg=write register=Control value=0x0008\n")
}

func TestParseWrite(t *testing.T) {
	w, err := ParseWrite(" MODE = On ")
	require.NoError(t, err)
	assert.Equal(t, Write{Field: "MODE", Value: "On"}, w)

	w, err = ParseWrite("EN")
	require.NoError(t, err)
	assert.Equal(t, Write{Field: "EN"}, w)

	_, err = ParseWrite("=1")
	assert.ErrorIs(t, err, ErrInvalidValue)
}
