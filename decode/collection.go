package decode

import (
	"schemaview/internal/typedesc"
	"schemaview/memory"
)

// Dynamic collections are stored as a 32-bit element count followed by a
// 64-bit pointer to the element storage.
const (
	collectionCountOffset = 0
	collectionDataOffset  = 8

	// maxCollectionLen bounds element iteration. Live memory can hand back a
	// torn or garbage count; a clamp keeps one bad field from stalling the
	// whole dump.
	maxCollectionLen = 4096

	handleStride = 4
)

// decodeCollection reads a dynamically sized collection at addr whose
// elements are described by elemDesc. Three element categories are decoded:
// entity handles, 3-float vectors, and primitives. Anything else is reported
// as unsupported and the rest of the dump continues.
func (d *Decoder) decodeCollection(addr uint64, elemDesc, origType string) (Value, error) {
	count, err := memory.ReadU32(d.view, addr+collectionCountOffset)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return &VectorValue{}, nil
	}
	if count > maxCollectionLen {
		d.log.Warn("collection count clamped",
			"type", origType, "addr", addr, "count", count, "max", maxCollectionLen)
		count = maxCollectionLen
	}

	data, err := memory.ReadPointer(d.view, addr+collectionDataOffset)
	if err != nil {
		return nil, err
	}
	if data == 0 {
		return &VectorValue{}, nil
	}

	elem, err := typedesc.Parse(elemDesc)
	if err != nil {
		d.log.Warn("unsupported collection element", "type", origType, "element", elemDesc)
		return &UnsupportedValue{typ: origType}, nil
	}

	n := int(count)

	switch {
	case handleTypes[elem.Base]:
		return &VectorValue{elems: d.decodeElements(data, handleStride, n, func(a uint64) (Value, error) {
			return d.decodeHandle(a)
		})}, nil

	case elem.Base == "Vector" || elem.Base == "QAngle":
		return &VectorValue{elems: d.decodeElements(data, primVector3.stride(), n, func(a uint64) (Value, error) {
			return decodePrimitive(d.view, a, primVector3)
		})}, nil

	default:
		kind, ok := primitiveKinds[elem.Base]
		if !ok || kind.stride() <= 0 || elem.Pointer || elem.HasArray || elem.Generic != "" {
			d.log.Warn("unsupported collection element", "type", origType, "element", elemDesc)
			return &UnsupportedValue{typ: origType}, nil
		}
		return &VectorValue{elems: d.decodeElements(data, kind.stride(), n, func(a uint64) (Value, error) {
			return decodePrimitive(d.view, a, kind)
		})}, nil
	}
}

// decodeHandle reads a raw handle value and resolves it through the entity
// lookup collaborator.
func (d *Decoder) decodeHandle(addr uint64) (Value, error) {
	raw, err := memory.ReadU32(d.view, addr)
	if err != nil {
		return nil, err
	}

	if ref, ok := d.entities.Resolve(raw); ok {
		return &HandleValue{raw: raw, entity: &ref}, nil
	}
	return &HandleValue{raw: raw}, nil
}
