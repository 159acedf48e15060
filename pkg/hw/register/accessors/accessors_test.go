package accessors

import (
	"testing"

	"github.com/Manu343726/regc/pkg/hw/register/cell"
	"github.com/Manu343726/regc/pkg/hw/register/field"
	"github.com/Manu343726/regc/pkg/hw/register/fieldspec"
	"github.com/Manu343726/regc/pkg/hw/register/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type State uint8

const (
	State_Off State = iota
	State_On
)

func (s State) String() string {
	switch s {
	case State_Off:
		return "Off"
	case State_On:
		return "On"
	}

	panic("unreachable")
}

var stateCodec = field.NewCodec("State", field.Of(State_Off), field.Of(State_On))

func stateBindings() Bindings {
	return WithConverter[State](Bindings{}, "State", stateCodec)
}

func decl(name string, typeName string, payload string) fieldspec.Declaration {
	return fieldspec.Declaration{Name: name, Type: typeName, Payload: payload}
}

func compile(t *testing.T, name string, base layout.BaseType, declarations ...fieldspec.Declaration) *AccessorSet {
	t.Helper()

	fields := make([]*fieldspec.FieldDescriptor, 0, len(declarations))
	for i, d := range declarations {
		d.Index = i
		f, err := fieldspec.Parse(d)
		require.NoError(t, err)
		fields = append(fields, f)
	}

	r, err := layout.Compute(name, base, fields)
	require.NoError(t, err)

	return Generate(r)
}

func scenario(t *testing.T) *AccessorSet {
	return compile(t, "Scenario", layout.BaseType_Uint32,
		decl("A", "State", "1, rw"),
		decl("B", "bool", "1, r"),
		decl("_", "uint8", "1"),
		decl("C", "uint8", "5, rwc"),
		decl("D", "uint8", "8, r"),
	)
}

func clockControl(t *testing.T) *AccessorSet {
	return compile(t, "ClockControl", layout.BaseType_Uint32,
		decl("HSION", "State", "1, rw, get=HSIState, set=SetHSI"),
		decl("HSIRDY", "bool", "1, r, get=HSIReady"),
		decl("__", "uint8", "1"),
		decl("HSITRIM", "uint8", "5, rwc, get=HSITrimmingValue, set=SetHSITrimmingValue, clear=ClearHSITrimmingValue"),
		decl("HSICAL", "uint8", "8, r, get=HSICalibrationValue"),
		decl("HSEON", "State", "1, rw, get=HSEState, set=SetHSE"),
		decl("HSERDY", "bool", "1, r, get=HSEReady"),
		decl("HSEBYP", "State", "1, rw, get=HSEBypassState, set=SetHSEBypass"),
		decl("CSSON", "State", "1, rw, get=CSSState, set=SetCSS"),
		decl("__", "uint8", "4"),
		decl("PLLON", "State", "1, rw, get=PLLState, set=SetPLL"),
		decl("PLLRDY", "bool", "1, r, get=PLLReady"),
		decl("PLLI2SON", "State", "1, rw, get=PLLI2SState, set=SetPLLI2S"),
		decl("PLLI2SRDY", "bool", "1, r, get=PLLI2SReady"),
		decl("PLLSAION", "State", "1, rw, get=PLLSAIState, set=SetPLLSAI"),
		decl("PLLSAIRDY", "bool", "1, r, get=PLLSAIReady"),
		decl("__", "uint8", "2"),
	)
}

func bind32(t *testing.T, set *AccessorSet, value uint32) (*Register[uint32], *cell.Register32) {
	t.Helper()

	storage := cell.NewRegister32(value)
	r, err := Bind[uint32](set, storage, stateBindings())
	require.NoError(t, err)

	return r, storage
}

func getter[V any](t *testing.T, r *Register[uint32], name string) func() V {
	t.Helper()

	get, err := Getter[V](r, name)
	require.NoError(t, err)
	return get
}

func setter[V any](t *testing.T, r *Register[uint32], name string) func(V) {
	t.Helper()

	set, err := Setter[V](r, name)
	require.NoError(t, err)
	return set
}

func TestGenerate_OperationsFollowAccessModes(t *testing.T) {
	set := scenario(t)

	names := make([]string, 0, len(set.Operations))
	for _, op := range set.Operations {
		names = append(names, op.Name)
	}

	assert.Equal(t, []string{"GetA", "SetA", "GetB", "GetC", "SetC", "ClearC", "GetD"}, names)
	assert.Empty(t, set.FieldOperations("_"))
	assert.Len(t, set.FieldOperations("C"), 3)
}

func TestGenerate_Conversions(t *testing.T) {
	set := scenario(t)

	getA, _ := set.Operation("GetA")
	getB, _ := set.Operation("GetB")
	setC, _ := set.Operation("SetC")
	clearC, _ := set.Operation("ClearC")

	assert.Equal(t, Conversion_Codec, getA.Conversion)
	assert.Equal(t, Conversion_Bool, getB.Conversion)
	assert.Equal(t, Conversion_Unsigned, setC.Conversion)
	assert.Equal(t, Conversion_None, clearC.Conversion)
	assert.Equal(t, []string{"State"}, set.CodecTypes())
}

func TestGenerate_BoolSetClearIsFlag(t *testing.T) {
	set := compile(t, "Status", layout.BaseType_Uint8,
		decl("EN", "bool", "1, wc"),
	)

	require.Len(t, set.Operations, 2)
	assert.Equal(t, OperationKind_SetFlag, set.Operations[0].Kind)
	assert.Equal(t, "SetEN()", set.Operations[0].Signature())
	assert.Equal(t, OperationKind_Clear, set.Operations[1].Kind)
}

func TestGenerate_CustomConversions(t *testing.T) {
	set := compile(t, "Trim", layout.BaseType_Uint8,
		decl("TRIM", "Trim", "4, rw, from=trim.Decode"),
	)

	get, _ := set.Operation("GetTRIM")
	put, _ := set.Operation("SetTRIM")
	assert.Equal(t, Conversion_Custom, get.Conversion)
	assert.Equal(t, Conversion_Codec, put.Conversion)
	assert.Equal(t, "GetTRIM() Trim", get.Signature())
	assert.Equal(t, "SetTRIM(val Trim)", put.Signature())
}

func TestBind_Scenario(t *testing.T) {
	r, storage := bind32(t, scenario(t), 0b10)

	getA := getter[State](t, r, "GetA")
	getB := getter[bool](t, r, "GetB")
	getC := getter[uint8](t, r, "GetC")
	setA := setter[State](t, r, "SetA")
	setC := setter[uint8](t, r, "SetC")

	assert.True(t, getB())
	assert.Equal(t, State_Off, getA())

	setA(State_On)
	assert.Equal(t, uint32(0b11), storage.Get())
	assert.Equal(t, State_On, getA())

	setC(11)
	assert.Equal(t, uint32(11<<3|0b11), storage.Get())
	assert.Equal(t, uint8(11), getC())
	assert.True(t, getB())
}

func TestBind_ScenarioPreservesUnrelatedBits(t *testing.T) {
	r, storage := bind32(t, scenario(t), 0x00020000)

	assert.False(t, getter[bool](t, r, "GetB")())
	assert.Equal(t, State_Off, getter[State](t, r, "GetA")())

	setter[State](t, r, "SetA")(State_On)
	assert.Equal(t, uint32(0x00020001), storage.Get())

	setter[uint8](t, r, "SetC")(11)
	assert.Equal(t, uint32(0x00020059), storage.Get())
}

func TestBind_ClockControl(t *testing.T) {
	r, storage := bind32(t, clockControl(t), 0b00000000_00000010_00000000_00000000)

	hseState := getter[State](t, r, "HSEState")
	assert.Equal(t, State_Off, hseState())
	assert.True(t, getter[bool](t, r, "HSEReady")())
	assert.False(t, getter[bool](t, r, "HSIReady")())

	setter[State](t, r, "SetHSE")(State_On)
	setter[uint8](t, r, "SetHSITrimmingValue")(11)

	assert.Equal(t, State_On, hseState())
	assert.Equal(t, uint8(11), getter[uint8](t, r, "HSITrimmingValue")())
	assert.Equal(t, uint32(0x00030058), storage.Get())
}

func TestBind_ReadAfterWrite(t *testing.T) {
	r, storage := bind32(t, scenario(t), 0xffffff00)

	getC := getter[uint8](t, r, "GetC")
	setC := setter[uint8](t, r, "SetC")

	for v := uint8(0); v < 32; v++ {
		setC(v)
		assert.Equal(t, v, getC())
		assert.Equal(t, uint32(0xffffff00), storage.Get()&^0xf8)
	}
}

func TestBind_SetterDiscardsBitsOutsideTheField(t *testing.T) {
	r, storage := bind32(t, scenario(t), 0)

	setter[uint8](t, r, "SetC")(0xff)
	assert.Equal(t, uint32(0xf8), storage.Get())
}

func TestBind_Clear(t *testing.T) {
	r, storage := bind32(t, scenario(t), 0xffffffff)

	clearC, err := Clearer(r, "ClearC")
	require.NoError(t, err)

	clearC()
	assert.Equal(t, uint8(0), getter[uint8](t, r, "GetC")())
	assert.Equal(t, uint32(0xffffff07), storage.Get())
}

func TestBind_SetFlag(t *testing.T) {
	set := compile(t, "Status", layout.BaseType_Uint8,
		decl("RDY", "bool", "1, r"),
		decl("EN", "bool", "1, rwc"),
	)
	storage := cell.NewRegister8(0b01)
	r, err := Bind[uint8](set, storage, Bindings{})
	require.NoError(t, err)

	setEN, err := Flag(r, "SetEN")
	require.NoError(t, err)
	clearEN, err := Clearer(r, "ClearEN")
	require.NoError(t, err)
	getEN, err := Getter[bool](r, "GetEN")
	require.NoError(t, err)

	setEN()
	assert.True(t, getEN())
	assert.Equal(t, uint8(0b11), storage.Get())

	clearEN()
	assert.False(t, getEN())
	assert.Equal(t, uint8(0b01), storage.Get())
}

func TestBind_InvalidCodePanics(t *testing.T) {
	set := compile(t, "Wide", layout.BaseType_Uint8,
		decl("A", "State", "2, rw"),
	)
	r, err := Bind[uint8](set, cell.NewRegister8(0b11), stateBindings())
	require.NoError(t, err)

	getA, err := Getter[State](r, "GetA")
	require.NoError(t, err)

	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, field.ErrInvalidCode)

		var fieldError *fieldspec.FieldError
		require.ErrorAs(t, err, &fieldError)
		assert.Equal(t, "A", fieldError.Field)
	}()

	getA()
	t.Fatal("decoding an invalid code must panic")
}

func TestBind_CustomFunctions(t *testing.T) {
	set := compile(t, "Divider", layout.BaseType_Uint16,
		decl("DIV", "uint16", "4, rw, from=div.Decode, into=div.Encode"),
	)

	bindings := WithFunction(Bindings{}, "div.Decode", func(raw uint32) uint16 { return uint16(1) << raw })
	bindings = WithFunction(bindings, "div.Encode", func(div uint16) uint32 {
		raw := uint32(0)
		for div > 1 {
			div >>= 1
			raw++
		}
		return raw
	})

	storage := cell.NewRegister16(0)
	r, err := Bind[uint16](set, storage, bindings)
	require.NoError(t, err)

	getDIV, err := Getter[uint16](r, "GetDIV")
	require.NoError(t, err)
	setDIV, err := Setter[uint16](r, "SetDIV")
	require.NoError(t, err)

	setDIV(8)
	assert.Equal(t, uint16(3), storage.Get())
	assert.Equal(t, uint16(8), getDIV())
}

func TestBind_StorageMismatch(t *testing.T) {
	_, err := Bind[uint8](scenario(t), cell.NewRegister8(0), stateBindings())
	assert.ErrorIs(t, err, ErrStorageMismatch)
}

func TestBind_MissingConverter(t *testing.T) {
	_, err := Bind[uint32](scenario(t), cell.NewRegister32(0), Bindings{})
	assert.ErrorIs(t, err, ErrMissingBinding)

	var fieldError *fieldspec.FieldError
	require.ErrorAs(t, err, &fieldError)
	assert.Equal(t, "A", fieldError.Field)
}

func TestBind_AccessorErrors(t *testing.T) {
	r, _ := bind32(t, scenario(t), 0)

	_, err := Getter[bool](r, "GetZ")
	assert.ErrorIs(t, err, ErrUnknownAccessor)

	_, err = Getter[uint8](r, "SetC")
	assert.ErrorIs(t, err, ErrWrongOperation)

	_, err = Getter[uint16](r, "GetC")
	assert.ErrorIs(t, err, ErrBindingType)

	_, err = Setter[uint8](r, "SetA")
	assert.ErrorIs(t, err, ErrBindingType)

	_, err = Flag(r, "ClearC")
	assert.ErrorIs(t, err, ErrWrongOperation)
}

func TestBind_TracedStorage(t *testing.T) {
	storage := cell.NewTraced[uint32](cell.NewRegister32(0), "Scenario", nil)
	r, err := Bind[uint32](scenario(t), storage, stateBindings())
	require.NoError(t, err)

	setA, err := Setter[State](r, "SetA")
	require.NoError(t, err)

	setA(State_On)
	assert.Equal(t, uint32(1), r.Get())
}
