package fieldspec

import (
	"errors"
	"strings"

	"github.com/Manu343726/regc/pkg/utils"
)

// Which operations (read, write, clear) a field exposes
type AccessMode uint

const (
	AccessMode_ReadOnly AccessMode = iota
	AccessMode_WriteOnly
	AccessMode_ReadWrite
	AccessMode_ReadWriteClear
	AccessMode_ReadClear
	AccessMode_WriteClear
)

var accessModeTokens = map[AccessMode]string{
	AccessMode_ReadOnly:       "r",
	AccessMode_WriteOnly:      "w",
	AccessMode_ReadWrite:      "rw",
	AccessMode_ReadWriteClear: "rwc",
	AccessMode_ReadClear:      "rc",
	AccessMode_WriteClear:     "wc",
}

var accessModesByToken = utils.InvertedMap(accessModeTokens)

var ErrUnknownAccessMode = errors.New("unknown access mode")

// Returns the textual token of the access mode (r, w, rw, rwc, rc or wc)
func (m AccessMode) String() string {
	if token, ok := accessModeTokens[m]; ok {
		return token
	}

	panic("unreachable")
}

func (m AccessMode) CanRead() bool {
	return strings.ContainsRune(m.String(), 'r')
}

func (m AccessMode) CanWrite() bool {
	return strings.ContainsRune(m.String(), 'w')
}

func (m AccessMode) CanClear() bool {
	return strings.ContainsRune(m.String(), 'c')
}

// Parses an access mode token
func ParseAccessMode(token string) (AccessMode, error) {
	if mode, ok := accessModesByToken[token]; ok {
		return mode, nil
	}

	return 0, utils.MakeError(ErrUnknownAccessMode, "'%v' (expected one of r, w, rw, rwc, rc, wc)", token)
}
