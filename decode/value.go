// Package decode turns (class, field, base address) requests into
// structured, human-inspectable values, driven by schema metadata and read
// through a guarded memory view.
package decode

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind identifies the category of a decoded value.
type ValueKind uint8

const (
	KindPrimitive ValueKind = iota
	KindEnum
	KindArray
	KindVector
	KindHandle
	KindNested
	KindNull
	KindUnsupported
	KindError
)

func (k ValueKind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindEnum:
		return "enum"
	case KindArray:
		return "array"
	case KindVector:
		return "vector"
	case KindHandle:
		return "handle"
	case KindNested:
		return "nested"
	case KindNull:
		return "null"
	case KindUnsupported:
		return "unsupported"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Value is one decoded field or element. Values are created fresh per decode
// call and hold no reference to the memory they were read from.
type Value interface {
	// Kind returns the value category.
	Kind() ValueKind

	// String renders the canonical text form shown to the user.
	String() string
}

// PrimitiveValue is a terminal scalar rendered as text.
type PrimitiveValue struct {
	text string
}

func (v *PrimitiveValue) Kind() ValueKind { return KindPrimitive }
func (v *PrimitiveValue) String() string  { return v.text }

// EnumValue is a raw integer with an optional symbolic name.
type EnumValue struct {
	name string
	raw  int64
}

func (v *EnumValue) Kind() ValueKind { return KindEnum }

// Name returns the symbolic name, or "" when the raw value is unmapped.
func (v *EnumValue) Name() string { return v.name }

// Raw returns the raw integer value.
func (v *EnumValue) Raw() int64 { return v.raw }

func (v *EnumValue) String() string {
	if v.name == "" {
		return strconv.FormatInt(v.raw, 10)
	}
	return fmt.Sprintf("%s (%d)", v.name, v.raw)
}

// ArrayValue holds the elements of a fixed-size array in address order.
type ArrayValue struct {
	elems []Value
}

func (v *ArrayValue) Kind() ValueKind   { return KindArray }
func (v *ArrayValue) Len() int          { return len(v.elems) }
func (v *ArrayValue) Elements() []Value { return v.elems }
func (v *ArrayValue) String() string    { return renderElements(v.elems) }

// VectorValue holds the elements of a dynamically sized collection.
// An empty collection is a valid value, distinct from a decode failure.
type VectorValue struct {
	elems []Value
}

func (v *VectorValue) Kind() ValueKind   { return KindVector }
func (v *VectorValue) Len() int          { return len(v.elems) }
func (v *VectorValue) Elements() []Value { return v.elems }
func (v *VectorValue) String() string    { return renderElements(v.elems) }

func renderElements(elems []Value) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// HandleValue is an entity-handle cross-reference, resolved through the
// entity-lookup collaborator. A stale or invalid handle resolves to nothing;
// that is a distinguishable result, not an error.
type HandleValue struct {
	raw    uint32
	entity *EntityRef
}

func (v *HandleValue) Kind() ValueKind { return KindHandle }

// Raw returns the raw handle value.
func (v *HandleValue) Raw() uint32 { return v.raw }

// Entity returns the resolved entity, or nil when the handle is invalid.
func (v *HandleValue) Entity() *EntityRef { return v.entity }

func (v *HandleValue) String() string {
	if v.entity == nil {
		return fmt.Sprintf("invalid handle (%d)", v.raw)
	}
	if v.entity.Name != "" {
		return fmt.Sprintf("%s (0x%X)", v.entity.Name, v.entity.Address)
	}
	return fmt.Sprintf("entity 0x%X", v.entity.Address)
}

// NestedValue is the recursion point of the pipeline: a class instance at a
// known address, to be expanded by re-entering the decode pipeline. The
// dispatcher returns it instead of recursing eagerly, so that callers can
// bound traversal over self-referential class graphs.
type NestedValue struct {
	addr  uint64
	class string
}

func (v *NestedValue) Kind() ValueKind { return KindNested }

// Address returns the instance base address of the nested class.
func (v *NestedValue) Address() uint64 { return v.addr }

// ClassName returns the schema class to decode at Address.
func (v *NestedValue) ClassName() string { return v.class }

func (v *NestedValue) String() string {
	return fmt.Sprintf("%s @ 0x%X", v.class, v.addr)
}

// NullValue is a pointer field whose stored value is zero.
type NullValue struct{}

func (v *NullValue) Kind() ValueKind { return KindNull }
func (v *NullValue) String() string  { return "null" }

// UnsupportedValue is a recognized-but-unhandled type. The original
// descriptor text is preserved for display.
type UnsupportedValue struct {
	typ string
}

func (v *UnsupportedValue) Kind() ValueKind { return KindUnsupported }

// TypeName returns the original type-descriptor text.
func (v *UnsupportedValue) TypeName() string { return v.typ }

func (v *UnsupportedValue) String() string {
	return fmt.Sprintf("Unknown type: %s", v.typ)
}

// ErrorValue is the placeholder for a field or element whose memory could
// not be read. It keeps the failure contained to the smallest scope; the
// rest of the dump continues.
type ErrorValue struct {
	err error
}

func (v *ErrorValue) Kind() ValueKind { return KindError }

// Err returns the underlying failure.
func (v *ErrorValue) Err() error { return v.err }

func (v *ErrorValue) String() string { return "Error reading value" }
