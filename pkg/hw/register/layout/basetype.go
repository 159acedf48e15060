package layout

import (
	"errors"

	"github.com/Manu343726/regc/pkg/utils"
)

// Unsigned integer type of the register storage
type BaseType uint

const (
	BaseType_Uint8 BaseType = iota
	BaseType_Uint16
	BaseType_Uint32
)

var ErrUnsupportedBaseType = errors.New("unsupported register base type")

// Size of the register storage in bits
func (b BaseType) Bits() int {
	switch b {
	case BaseType_Uint8:
		return 8
	case BaseType_Uint16:
		return 16
	case BaseType_Uint32:
		return 32
	}

	panic("unreachable")
}

// Returns the Go type name of the storage
func (b BaseType) String() string {
	switch b {
	case BaseType_Uint8:
		return "uint8"
	case BaseType_Uint16:
		return "uint16"
	case BaseType_Uint32:
		return "uint32"
	}

	panic("unreachable")
}

// Returns a mask with all the bits of the storage set
func (b BaseType) Mask() uint32 {
	return utils.AllOnes[uint32](b.Bits())
}

// Parses the name of a base type (uint8, uint16 or uint32)
func ParseBaseType(name string) (BaseType, error) {
	switch name {
	case "uint8", "byte":
		return BaseType_Uint8, nil
	case "uint16":
		return BaseType_Uint16, nil
	case "uint32":
		return BaseType_Uint32, nil
	}

	return 0, utils.MakeError(ErrUnsupportedBaseType, "'%v' (expected one of uint8, uint16, uint32)", name)
}
