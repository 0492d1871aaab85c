package decode

import (
	"encoding/binary"
	"testing"
)

// collectionRegion builds the two-part memory for a dynamic collection: the
// {count, data pointer} header at base, and the element storage at elemAddr.
func collectionRegion(count uint32, elemAddr uint64, elems []byte) []byte {
	data := make([]byte, 16+len(elems))
	binary.LittleEndian.PutUint32(data[0:], count)
	binary.LittleEndian.PutUint64(data[8:], elemAddr)
	copy(data[16:], elems)
	return data
}

func TestDecodeEmptyCollection(t *testing.T) {
	// count == 0 decodes to an empty collection, distinct from a failure.
	data := collectionRegion(0, 0x1010, nil)
	v := decodeOne(t, "CUtlVector<int32>", data)

	c, ok := v.(*VectorValue)
	if !ok {
		t.Fatalf("value is %T, want *VectorValue", v)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestDecodePrimitiveCollection(t *testing.T) {
	elems := []byte{
		0x0A, 0x00, 0x00, 0x00,
		0x14, 0x00, 0x00, 0x00,
		0x1E, 0x00, 0x00, 0x00,
	}
	data := collectionRegion(3, 0x1010, elems)
	v := decodeOne(t, "CUtlVector<int32>", data)

	c, ok := v.(*VectorValue)
	if !ok {
		t.Fatalf("value is %T, want *VectorValue", v)
	}
	if c.String() != "[10, 20, 30]" {
		t.Errorf("collection = %q, want [10, 20, 30]", c.String())
	}
}

func TestDecodeVectorElementCollection(t *testing.T) {
	elems := []byte{
		0x00, 0x00, 0x80, 0x3F, 0x00, 0x00, 0x00, 0x40, 0x00, 0x00, 0x40, 0x40, // (1, 2, 3)
		0x00, 0x00, 0x80, 0xBF, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // (-1, 0, 0)
	}
	data := collectionRegion(2, 0x1010, elems)
	v := decodeOne(t, "CNetworkUtlVectorBase<Vector>", data)

	c, ok := v.(*VectorValue)
	if !ok {
		t.Fatalf("value is %T, want *VectorValue", v)
	}
	if c.String() != "[(1, 2, 3), (-1, 0, 0)]" {
		t.Errorf("collection = %q", c.String())
	}
}

func TestDecodeHandleCollection(t *testing.T) {
	resolver := testEntities{table: map[uint32]EntityRef{
		0x11: {Address: 0xA000, Name: "hostage_1"},
	}}

	elems := []byte{
		0x11, 0x00, 0x00, 0x00, // resolves
		0x77, 0x00, 0x00, 0x00, // stale
	}
	data := collectionRegion(2, 0x1010, elems)
	v := decodeOne(t, "CUtlVector<CHandle<IBaseEntity>>", data, WithEntityResolver(resolver))

	c, ok := v.(*VectorValue)
	if !ok {
		t.Fatalf("value is %T, want *VectorValue", v)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}

	first, ok := c.Elements()[0].(*HandleValue)
	if !ok || first.Entity() == nil || first.Entity().Name != "hostage_1" {
		t.Errorf("element 0 = %v, want resolved hostage_1", c.Elements()[0])
	}

	second, ok := c.Elements()[1].(*HandleValue)
	if !ok || second.Entity() != nil {
		t.Errorf("element 1 = %v, want unresolved handle", c.Elements()[1])
	}
}

func TestDecodeCollectionUnsupportedElement(t *testing.T) {
	data := collectionRegion(2, 0x1010, make([]byte, 32))
	v := decodeOne(t, "CUtlVector<CSomeStruct>", data)

	u, ok := v.(*UnsupportedValue)
	if !ok {
		t.Fatalf("value is %T, want *UnsupportedValue", v)
	}
	if u.TypeName() != "CUtlVector<CSomeStruct>" {
		t.Errorf("TypeName = %q", u.TypeName())
	}
}

func TestDecodeCollectionNullData(t *testing.T) {
	// Nonzero count but a null element pointer: treated as empty rather
	// than dereferencing address zero.
	data := collectionRegion(5, 0, nil)
	v := decodeOne(t, "CUtlVector<int32>", data)

	c, ok := v.(*VectorValue)
	if !ok {
		t.Fatalf("value is %T, want *VectorValue", v)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestDecodeCollectionElementFailureContained(t *testing.T) {
	// Three elements declared, storage for two: the overrunning element
	// becomes a placeholder, the rest decode.
	elems := []byte{
		0x01, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00,
	}
	data := collectionRegion(3, 0x1010, elems)
	v := decodeOne(t, "CUtlVector<int32>", data)

	c, ok := v.(*VectorValue)
	if !ok {
		t.Fatalf("value is %T, want *VectorValue", v)
	}
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	if c.Elements()[0].String() != "1" || c.Elements()[1].String() != "2" {
		t.Errorf("elements = %s", c.String())
	}
	if c.Elements()[2].Kind() != KindError {
		t.Errorf("element 2 kind = %s, want error placeholder", c.Elements()[2].Kind())
	}
}
