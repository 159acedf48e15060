package fieldspec

import (
	"errors"
	"go/token"
	"strconv"
	"strings"

	"github.com/Manu343726/regc/pkg/utils"
)

const (
	DefaultBits   = 1
	DefaultAccess = AccessMode_ReadWrite
)

var ErrMalformedWidth = errors.New("malformed field width")
var ErrZeroWidth = errors.New("field width cannot be 0")
var ErrUnknownAttribute = errors.New("unknown field attribute")
var ErrMalformedAttribute = errors.New("malformed field attribute")

type attributeKind uint

const (
	attributeKind_Identifier attributeKind = iota
	attributeKind_Path
)

type attributeSetter func(f *FieldDescriptor, value string)

var attributes = map[string]struct {
	kind attributeKind
	set  attributeSetter
}{
	"get":   {attributeKind_Identifier, func(f *FieldDescriptor, value string) { f.CustomGetName = value }},
	"set":   {attributeKind_Identifier, func(f *FieldDescriptor, value string) { f.CustomSetName = value }},
	"clear": {attributeKind_Identifier, func(f *FieldDescriptor, value string) { f.CustomClearName = value }},
	"from":  {attributeKind_Path, func(f *FieldDescriptor, value string) { f.From = value }},
	"into":  {attributeKind_Path, func(f *FieldDescriptor, value string) { f.Into = value }},
}

// Parses a field declaration into a field descriptor. Offset and mask are
// left for the layout to compute.
func Parse(declaration Declaration) (*FieldDescriptor, error) {
	f := &FieldDescriptor{
		Name:   declaration.Name,
		Index:  declaration.Index,
		Pos:    declaration.Pos,
		Type:   ParseValueType(declaration.Type),
		Bits:   DefaultBits,
		Access: DefaultAccess,
	}

	if err := parsePayload(f, declaration.Payload); err != nil {
		return nil, declaration.error(err)
	}

	return f, nil
}

func parsePayload(f *FieldDescriptor, payload string) error {
	if len(strings.TrimSpace(payload)) == 0 {
		return nil
	}

	seen := map[string]bool{}

	for i, part := range strings.Split(payload, ",") {
		part = strings.TrimSpace(part)

		if len(part) == 0 {
			return utils.MakeError(ErrMalformedAttribute, "empty attribute #%v in '%v'", i, payload)
		}

		if isWidth(part) {
			if i > 0 {
				return utils.MakeError(ErrMalformedAttribute, "width '%v' must be the first attribute", part)
			}

			bits, err := parseWidth(part)
			if err != nil {
				return err
			}

			f.Bits = bits
			continue
		}

		key, value, isKeyValue := strings.Cut(part, "=")
		key = strings.TrimSpace(key)

		if seen[key] {
			return utils.MakeError(ErrMalformedAttribute, "attribute '%v' given more than once", key)
		}

		if !isKeyValue {
			mode, err := ParseAccessMode(key)
			if err != nil {
				return err
			}

			if seen["access"] {
				return utils.MakeError(ErrMalformedAttribute, "access mode '%v' given after '%v'", key, f.Access)
			}

			f.Access = mode
			seen["access"] = true
			continue
		}

		attribute, known := attributes[key]
		if !known {
			return utils.MakeError(ErrUnknownAttribute, "'%v' (expected one of get, set, clear, from, into)", key)
		}

		value = strings.TrimSpace(value)
		if err := validateAttributeValue(key, value, attribute.kind); err != nil {
			return err
		}

		attribute.set(f, value)
		seen[key] = true
	}

	return nil
}

func isWidth(part string) bool {
	c := part[0]
	return (c >= '0' && c <= '9') || c == '-' || c == '+'
}

func parseWidth(part string) (int, error) {
	bits, err := strconv.ParseUint(part, 0, 32)
	if err != nil {
		return 0, utils.MakeError(ErrMalformedWidth, "'%v' is not an unsigned integer", part)
	}

	if bits == 0 {
		return 0, ErrZeroWidth
	}

	return int(bits), nil
}

func validateAttributeValue(key string, value string, kind attributeKind) error {
	if len(value) == 0 {
		return utils.MakeError(ErrMalformedAttribute, "'%v' has no value", key)
	}

	switch kind {
	case attributeKind_Identifier:
		if !token.IsIdentifier(value) {
			return utils.MakeError(ErrMalformedAttribute, "%v='%v' is not a valid identifier", key, value)
		}
	case attributeKind_Path:
		for _, segment := range strings.Split(value, ".") {
			if !token.IsIdentifier(segment) {
				return utils.MakeError(ErrMalformedAttribute, "%v='%v' is not a valid function path", key, value)
			}
		}
	}

	return nil
}
