package decode

import (
	"fmt"

	"schemaview/memory"
	"schemaview/schema"
)

// decodeEnum reads an integer of the enum's declared underlying width and
// maps it to a symbolic name. A raw value with no symbol is not an error;
// it renders as the bare integer.
func decodeEnum(v memory.View, addr uint64, e *schema.Enum) (Value, error) {
	raw, err := readEnumRaw(v, addr, e.Width())
	if err != nil {
		return nil, err
	}

	name, _ := e.Member(raw)
	return &EnumValue{name: name, raw: raw}, nil
}

func readEnumRaw(v memory.View, addr uint64, width int) (int64, error) {
	switch width {
	case 1:
		n, err := memory.ReadI8(v, addr)
		return int64(n), err
	case 2:
		n, err := memory.ReadI16(v, addr)
		return int64(n), err
	case 4:
		n, err := memory.ReadI32(v, addr)
		return int64(n), err
	case 8:
		return memory.ReadI64(v, addr)
	default:
		return 0, fmt.Errorf("decode: invalid enum width %d", width)
	}
}
