package example

import (
	"testing"

	"github.com/Manu343726/regc/pkg/hw/register/field"
	"github.com/stretchr/testify/assert"
)

func TestClockControl_WritesPreserveOtherBits(t *testing.T) {
	var r ClockControl
	r.Set(0b10)

	r.SetHSI(State_On)
	assert.Equal(t, uint32(0b11), r.Get())
	assert.True(t, r.HSIReady())

	r.SetHSITrimmingValue(11)
	assert.Equal(t, uint32(11<<3|0b11), r.Get())
	assert.Equal(t, State_On, r.HSIState())
	assert.True(t, r.HSIReady())
}

func TestClockControl_ExternalOscillator(t *testing.T) {
	var r ClockControl
	r.Set(0x00020000)

	assert.True(t, r.HSEReady())
	assert.Equal(t, State_Off, r.HSEState())

	r.SetHSE(State_On)
	r.SetHSITrimmingValue(11)

	assert.Equal(t, uint32(0x00030058), r.Get())
	assert.Equal(t, State_On, r.HSEState())
	assert.Equal(t, uint8(11), r.HSITrimmingValue())
	assert.True(t, r.HSEReady())
}

func TestClockControl_ReadAfterWrite(t *testing.T) {
	var r ClockControl
	r.Set(0xffffffff)

	for _, state := range []State{State_Off, State_On} {
		r.SetCSS(state)
		assert.Equal(t, state, r.CSSState())
		r.SetPLLI2S(state)
		assert.Equal(t, state, r.PLLI2SState())
	}

	for v := uint8(0); v < 32; v++ {
		r.SetHSITrimmingValue(v)
		assert.Equal(t, v, r.HSITrimmingValue())
		assert.Equal(t, uint8(0xff), r.HSICalibrationValue())
	}
}

func TestClockControl_SetterDiscardsExtraBits(t *testing.T) {
	var r ClockControl

	r.SetHSITrimmingValue(0xff)
	assert.Equal(t, uint8(0x1f), r.HSITrimmingValue())
	assert.Equal(t, uint32(0x000000f8), r.Get())
}

func TestClockControl_Clear(t *testing.T) {
	var r ClockControl
	r.Set(0xffffffff)

	r.ClearHSITrimmingValue()
	assert.Equal(t, uint32(0xffffff07), r.Get())
	assert.Zero(t, r.HSITrimmingValue())
}

func TestStatus_SetFlag(t *testing.T) {
	var r Status
	r.Set(0x71)

	r.SetEN()
	assert.Equal(t, uint8(0x73), r.Get())
	assert.True(t, r.GetEN())

	r.ClearEN()
	assert.Equal(t, uint8(0x71), r.Get())
	assert.True(t, r.IsReady())
	assert.Equal(t, uint8(7), r.Errors())

	r.ClearErrors()
	assert.Equal(t, uint8(0x01), r.Get())
}

func TestState_Codec(t *testing.T) {
	assert.Equal(t, uint32(0), State_Off.IntoBits())
	assert.Equal(t, uint32(1), State_On.IntoBits())
	assert.Equal(t, State_On, StateFromBits(1))
	assert.Equal(t, "On", State_On.String())
	assert.Equal(t, "State(7)", State(7).String())

	var converter field.Converter[State] = field.Functions(State.IntoBits, StateFromBits)
	state, err := converter.FromBits(0)
	assert.NoError(t, err)
	assert.Equal(t, State_Off, state)
}

func TestState_InvalidCodesPanic(t *testing.T) {
	assert.PanicsWithValue(t, "invalid State code 2", func() { StateFromBits(2) })
	assert.PanicsWithValue(t, "undeclared State state 5", func() { State(5).IntoBits() })
}
