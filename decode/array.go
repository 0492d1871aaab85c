package decode

import (
	"schemaview/schema"
)

// decodeArray reads a statically sized, contiguous sequence of count
// elements of the named kind, starting at addr. Elements are decoded
// independently; an unreadable element becomes a placeholder and the rest of
// the array still decodes. An element kind outside the primitive and enum
// tables yields a single unsupported result for the whole array.
func (d *Decoder) decodeArray(addr uint64, elemName string, count int, origType string) Value {
	if kind, ok := primitiveKinds[elemName]; ok {
		stride := kind.stride()
		if stride <= 0 {
			return &UnsupportedValue{typ: origType}
		}
		return &ArrayValue{elems: d.decodeElements(addr, stride, count, func(a uint64) (Value, error) {
			return decodePrimitive(d.view, a, kind)
		})}
	}

	if e, ok := d.enums().Lookup(elemName); ok {
		return &ArrayValue{elems: d.decodeElements(addr, int64(e.Width()), count, func(a uint64) (Value, error) {
			return decodeEnum(d.view, a, e)
		})}
	}

	return &UnsupportedValue{typ: origType}
}

// decodeElements decodes count elements of the given stride, containing
// failures per element.
func (d *Decoder) decodeElements(addr uint64, stride int64, count int, decodeOne func(uint64) (Value, error)) []Value {
	elems := make([]Value, 0, count)
	for i := 0; i < count; i++ {
		v, err := decodeOne(addr + uint64(int64(i)*stride))
		if err != nil {
			v = &ErrorValue{err: err}
		}
		elems = append(elems, v)
	}
	return elems
}

func (d *Decoder) enums() *schema.EnumSet {
	return d.reg.Enums()
}
