package decode

import (
	"errors"
	"log/slog"
	"math"

	"schemaview/internal/typedesc"
	"schemaview/memory"
	"schemaview/schema"
)

// Errors returned by decode operations.
var (
	// ErrOffsetOverflow indicates field address arithmetic wrapped around.
	ErrOffsetOverflow = errors.New("decode: field address overflow")

	// ErrNegativeOffset indicates a negative accumulated field offset.
	ErrNegativeOffset = errors.New("decode: negative field offset")
)

// handleTypes names the descriptors decoded as entity-handle
// cross-references.
var handleTypes = map[string]bool{
	"CHandle":       true,
	"CBaseHandle":   true,
	"CEntityHandle": true,
}

// collectionTypes names the dynamic-vector templates.
var collectionTypes = map[string]bool{
	"CUtlVector":            true,
	"CNetworkUtlVectorBase": true,
}

// Decoder drives the decode pipeline: registry lookup, offset resolution,
// descriptor parsing, and classified dispatch to the leaf decoders.
//
// A Decoder is stateless across calls and safe for concurrent use as long as
// its view is. It never writes to or retains the memory it reads.
type Decoder struct {
	reg      *schema.Registry
	view     memory.View
	entities EntityResolver
	log      *slog.Logger
	maxDepth int
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithEntityResolver supplies the entity-lookup collaborator used for handle
// fields. Without one, every handle decodes as invalid.
func WithEntityResolver(r EntityResolver) Option {
	return func(d *Decoder) { d.entities = r }
}

// WithLogger supplies the logger used for per-element warnings.
func WithLogger(l *slog.Logger) Option {
	return func(d *Decoder) { d.log = l }
}

// WithMaxDepth bounds Walk's recursion over nested references.
// The schema graph is not guaranteed acyclic; the cap defaults to 8.
func WithMaxDepth(depth int) Option {
	return func(d *Decoder) {
		if depth > 0 {
			d.maxDepth = depth
		}
	}
}

// New returns a Decoder over the given registry and memory view.
func New(reg *schema.Registry, view memory.View, opts ...Option) *Decoder {
	d := &Decoder{
		reg:      reg,
		view:     view,
		entities: noEntities{},
		log:      slog.Default(),
		maxDepth: 8,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// fieldAddress computes base + chain + offset + extra, rejecting negative
// accumulated offsets and address wraparound. Purely arithmetic; no memory
// is touched.
func fieldAddress(base uint64, chain, offset, extra int64) (uint64, error) {
	sum := chain + offset
	if (chain > 0 && offset > 0 && sum < 0) || (chain < 0 && offset < 0 && sum > 0) {
		return 0, ErrOffsetOverflow
	}
	total := sum + extra
	if (sum > 0 && extra > 0 && total < 0) || (sum < 0 && extra < 0 && total > 0) {
		return 0, ErrOffsetOverflow
	}
	if total < 0 {
		return 0, ErrNegativeOffset
	}
	if base > math.MaxUint64-uint64(total) {
		return 0, ErrOffsetOverflow
	}
	return base + uint64(total), nil
}

// Field decodes one field of the class instance at base. extra is an
// additional byte displacement applied after the chain and field offsets.
//
// Registry lookups and address overflow are the only failures returned as
// errors; without an offset there is nothing to decode. Unreadable memory
// and unparseable descriptors degrade to placeholder values so that the
// enclosing dump continues.
func (d *Decoder) Field(base uint64, class, field string, extra int64) (Value, error) {
	rf, err := d.reg.Resolve(class, field)
	if err != nil {
		return nil, err
	}

	addr, err := fieldAddress(base, rf.ChainOffset, rf.Offset, extra)
	if err != nil {
		return nil, err
	}

	desc, perr := typedesc.Parse(rf.Type)
	if perr != nil {
		return &UnsupportedValue{typ: rf.Type}, nil
	}

	return d.decodeDescriptor(addr, desc, rf.Type)
}

// decodeDescriptor classifies a parsed descriptor and dispatches to the
// matching leaf decoder. Classification order is fixed: primitive and enum
// candidates first, then handle, pointer, fixed array, dynamic collection,
// with embedded struct as the unconditional fallback so that every type
// decodes to something.
func (d *Decoder) decodeDescriptor(addr uint64, desc typedesc.Descriptor, origType string) (Value, error) {
	scalar := !desc.Pointer && !desc.HasArray && desc.Generic == ""

	if scalar {
		if kind, ok := primitiveKinds[desc.Base]; ok {
			return d.contain(decodePrimitive(d.view, addr, kind))
		}
		if e, ok := d.enums().Lookup(desc.Base); ok {
			return d.contain(decodeEnum(d.view, addr, e))
		}
	}

	if handleTypes[desc.Base] && !desc.Pointer && !desc.HasArray {
		return d.contain(d.decodeHandle(addr))
	}

	if desc.Pointer {
		ptr, err := memory.ReadPointer(d.view, addr)
		if err != nil {
			return d.contain(nil, err)
		}
		if ptr == 0 {
			return &NullValue{}, nil
		}
		return &NestedValue{addr: ptr, class: desc.Base}, nil
	}

	if desc.HasArray {
		return d.decodeArray(addr, desc.Base, desc.ArraySize, origType), nil
	}

	if collectionTypes[desc.Base] {
		return d.contain(d.decodeCollection(addr, desc.Generic, origType))
	}

	// Embedded value type stored inline: same address, no indirection.
	return &NestedValue{addr: addr, class: desc.Base}, nil
}

// contain converts a memory access failure into a placeholder value, keeping
// the failure scoped to the single field.
func (d *Decoder) contain(v Value, err error) (Value, error) {
	if err != nil {
		return &ErrorValue{err: err}, nil
	}
	return v, nil
}

// FieldValue pairs a field's metadata with its decoded value.
// Err is set only for registry or address failures; all other failures are
// already folded into Value as placeholders.
type FieldValue struct {
	Name      string
	Type      string
	Networked bool
	Value     Value
	Err       error
}

func (fv FieldValue) String() string {
	if fv.Err != nil {
		return "Error reading value"
	}
	return fv.Value.String()
}

// Class decodes every field the class declares directly, in declaration
// order, against the instance at base. One failed field never prevents the
// remaining fields from decoding.
func (d *Decoder) Class(base uint64, class string) ([]FieldValue, error) {
	c, err := d.reg.Class(class)
	if err != nil {
		return nil, err
	}

	out := make([]FieldValue, 0, c.NumFields())
	for f := range c.Fields() {
		v, err := d.Field(base, class, f.Name, 0)
		out = append(out, FieldValue{
			Name:      f.Name,
			Type:      f.Type,
			Networked: f.Networked,
			Value:     v,
			Err:       err,
		})
	}
	return out, nil
}

// Expand re-enters the pipeline for a nested reference, decoding the target
// class at the target address. This is the caller-driven recursion point.
func (d *Decoder) Expand(n *NestedValue) ([]FieldValue, error) {
	return d.Class(n.Address(), n.ClassName())
}
