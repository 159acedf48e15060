package cell

import (
	"bytes"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisters_ZeroValueHoldsZero(t *testing.T) {
	var r8 Register8
	var r16 Register16
	var r32 Register32

	assert.Equal(t, uint8(0), r8.Get())
	assert.Equal(t, uint16(0), r16.Get())
	assert.Equal(t, uint32(0), r32.Get())
}

func TestRegisters_GetReturnsLastSet(t *testing.T) {
	assert.Equal(t, uint8(0xa5), NewRegister8(0xa5).Get())
	assert.Equal(t, uint16(0xbeef), NewRegister16(0xbeef).Get())
	assert.Equal(t, uint32(0xdeadbeef), NewRegister32(0xdeadbeef).Get())
}

func TestRegisters_ImplementCell(t *testing.T) {
	var _ Cell[uint8] = &Register8{}
	var _ Cell[uint16] = &Register16{}
	var _ Cell[uint32] = &Register32{}
}

func TestRegister32_ConcurrentAccess(t *testing.T) {
	r := NewRegister32(0)
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(value uint32) {
			defer wg.Done()
			r.Set(value)
			_ = r.Get()
		}(uint32(i))
	}

	wg.Wait()
	assert.Less(t, r.Get(), uint32(8))
}

func TestTraced_LogsAccesses(t *testing.T) {
	var output bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&output, &slog.HandlerOptions{Level: slog.LevelDebug}))

	traced := NewTraced[uint16](NewRegister16(0x0001), "CR", logger)
	traced.Set(0x00f0)

	assert.Equal(t, uint16(0x00f0), traced.Get())
	assert.Contains(t, output.String(), "msg=write register=CR value=0x00f0\n")
	assert.Contains(t, output.String(), "msg=read register=CR value=0x00f0")
}

type countingCell struct {
	Register8
	reads, writes int
}

func (c *countingCell) Get() uint8 {
	c.reads++
	return c.Register8.Get()
}

func (c *countingCell) Set(value uint8) {
	c.writes++
	c.Register8.Set(value)
}

func TestTraced_AddsNoAccesses(t *testing.T) {
	storage := &countingCell{}
	traced := NewTraced[uint8](storage, "SR", slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})))

	traced.Set(0x80)
	assert.Equal(t, 0, storage.reads)
	assert.Equal(t, 1, storage.writes)

	assert.Equal(t, uint8(0x80), traced.Get())
	assert.Equal(t, 1, storage.reads)
	assert.Equal(t, 1, storage.writes)
}
