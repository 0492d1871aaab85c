package decode

import (
	"fmt"
	"strconv"

	"schemaview/memory"
)

// primitiveKind enumerates the closed set of terminal element kinds.
type primitiveKind uint8

const (
	primInt8 primitiveKind = iota
	primInt16
	primInt32
	primInt64
	primUint8
	primUint16
	primUint32
	primUint64
	primFloat32
	primBool
	primString    // inline NUL-terminated character buffer
	primVector3   // 3 x float32
	primColor     // 3 consecutive bytes, r g b
	primUtlString // pointer to NUL-terminated text ("small string")
	primUtlSymbol // pointer to interned NUL-terminated text ("symbol")
)

// primitiveKinds is the single string-to-kind mapping for terminal types.
// Extending the decoder means extending this table, not scattering string
// comparisons through the dispatcher.
var primitiveKinds = map[string]primitiveKind{
	"int8":            primInt8,
	"int16":           primInt16,
	"int32":           primInt32,
	"int64":           primInt64,
	"uint8":           primUint8,
	"uint16":          primUint16,
	"uint32":          primUint32,
	"uint64":          primUint64,
	"float32":         primFloat32,
	"bool":            primBool,
	"string":          primString,
	"Vector":          primVector3,
	"QAngle":          primVector3,
	"Color":           primColor,
	"CUtlString":      primUtlString,
	"CUtlSymbolLarge": primUtlSymbol,
}

// maxInlineString bounds the scan of inline character buffers.
const maxInlineString = 256

// stride returns the element width in bytes, used for array and collection
// element addressing. Inline strings have no meaningful stride and return 0.
func (k primitiveKind) stride() int64 {
	switch k {
	case primInt8, primUint8, primBool:
		return 1
	case primInt16, primUint16:
		return 2
	case primInt32, primUint32, primFloat32:
		return 4
	case primInt64, primUint64, primUtlString, primUtlSymbol:
		return 8
	case primVector3:
		return 12
	case primColor:
		return 3
	default:
		return 0
	}
}

// decodePrimitive reads one value of the given kind at addr and renders its
// canonical text form. Unreadable memory surfaces as an error for the caller
// to contain.
func decodePrimitive(v memory.View, addr uint64, kind primitiveKind) (Value, error) {
	switch kind {
	case primInt8:
		n, err := memory.ReadI8(v, addr)
		if err != nil {
			return nil, err
		}
		return &PrimitiveValue{text: strconv.FormatInt(int64(n), 10)}, nil

	case primInt16:
		n, err := memory.ReadI16(v, addr)
		if err != nil {
			return nil, err
		}
		return &PrimitiveValue{text: strconv.FormatInt(int64(n), 10)}, nil

	case primInt32:
		n, err := memory.ReadI32(v, addr)
		if err != nil {
			return nil, err
		}
		return &PrimitiveValue{text: strconv.FormatInt(int64(n), 10)}, nil

	case primInt64:
		n, err := memory.ReadI64(v, addr)
		if err != nil {
			return nil, err
		}
		return &PrimitiveValue{text: strconv.FormatInt(n, 10)}, nil

	case primUint8:
		n, err := memory.ReadU8(v, addr)
		if err != nil {
			return nil, err
		}
		return &PrimitiveValue{text: strconv.FormatUint(uint64(n), 10)}, nil

	case primUint16:
		n, err := memory.ReadU16(v, addr)
		if err != nil {
			return nil, err
		}
		return &PrimitiveValue{text: strconv.FormatUint(uint64(n), 10)}, nil

	case primUint32:
		n, err := memory.ReadU32(v, addr)
		if err != nil {
			return nil, err
		}
		return &PrimitiveValue{text: strconv.FormatUint(uint64(n), 10)}, nil

	case primUint64:
		n, err := memory.ReadU64(v, addr)
		if err != nil {
			return nil, err
		}
		return &PrimitiveValue{text: strconv.FormatUint(n, 10)}, nil

	case primFloat32:
		f, err := memory.ReadF32(v, addr)
		if err != nil {
			return nil, err
		}
		return &PrimitiveValue{text: formatFloat(f)}, nil

	case primBool:
		b, err := memory.ReadU8(v, addr)
		if err != nil {
			return nil, err
		}
		if b != 0 {
			return &PrimitiveValue{text: "True"}, nil
		}
		return &PrimitiveValue{text: "False"}, nil

	case primString:
		s, err := memory.ReadCString(v, addr, maxInlineString)
		if err != nil {
			return nil, err
		}
		return &PrimitiveValue{text: s}, nil

	case primVector3:
		x, err := memory.ReadF32(v, addr)
		if err != nil {
			return nil, err
		}
		y, err := memory.ReadF32(v, addr+4)
		if err != nil {
			return nil, err
		}
		z, err := memory.ReadF32(v, addr+8)
		if err != nil {
			return nil, err
		}
		return &PrimitiveValue{
			text: fmt.Sprintf("(%s, %s, %s)", formatFloat(x), formatFloat(y), formatFloat(z)),
		}, nil

	case primColor:
		var b [3]byte
		if err := v.ReadAt(b[:], addr); err != nil {
			return nil, err
		}
		return &PrimitiveValue{
			text: fmt.Sprintf("Color(%d, %d, %d)", b[0], b[1], b[2]),
		}, nil

	case primUtlString, primUtlSymbol:
		// Both representations store a pointer to their text; only the
		// materialized text is exposed.
		ptr, err := memory.ReadPointer(v, addr)
		if err != nil {
			return nil, err
		}
		if ptr == 0 {
			return &PrimitiveValue{text: ""}, nil
		}
		s, err := memory.ReadCString(v, ptr, maxInlineString)
		if err != nil {
			return nil, err
		}
		return &PrimitiveValue{text: s}, nil

	default:
		return nil, fmt.Errorf("decode: unhandled primitive kind %d", kind)
	}
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
