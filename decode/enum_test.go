package decode

import (
	"testing"

	"schemaview/schema"
)

func enumRegistry(t *testing.T, fieldType string, width int, members map[int64]string) *schema.Registry {
	t.Helper()
	b := schema.NewBuilder()
	if err := b.AddClass("C_Test", "", 0, []schema.Field{
		{Name: "m_value", Type: fieldType, Offset: 0},
	}); err != nil {
		t.Fatalf("AddClass failed: %v", err)
	}
	if err := b.AddEnum(fieldType, width, members); err != nil {
		t.Fatalf("AddEnum failed: %v", err)
	}
	return b.Build()
}

func TestDecodeEnumByte(t *testing.T) {
	reg := enumRegistry(t, "TestEnum_t", 1, map[int64]string{0: "A", 1: "B"})
	d := newTestDecoder(t, reg, snapshotAt(t, 0x1000, []byte{0x01}))

	v, err := d.Field(0x1000, "C_Test", "m_value", 0)
	if err != nil {
		t.Fatalf("Field failed: %v", err)
	}

	e, ok := v.(*EnumValue)
	if !ok {
		t.Fatalf("value is %T, want *EnumValue", v)
	}
	if e.String() != "B (1)" {
		t.Errorf("enum = %q, want B (1)", e.String())
	}
}

func TestDecodeEnumUnmappedValue(t *testing.T) {
	reg := enumRegistry(t, "TestEnum_t", 1, map[int64]string{0: "A", 1: "B"})
	d := newTestDecoder(t, reg, snapshotAt(t, 0x1000, []byte{0x05}))

	v, err := d.Field(0x1000, "C_Test", "m_value", 0)
	if err != nil {
		t.Fatalf("Field failed: %v", err)
	}

	// An unrecognized raw value is not an error; it renders as the raw
	// integer.
	e, ok := v.(*EnumValue)
	if !ok {
		t.Fatalf("value is %T, want *EnumValue", v)
	}
	if e.Name() != "" || e.Raw() != 5 {
		t.Errorf("enum = (%q, %d), want unmapped 5", e.Name(), e.Raw())
	}
	if e.String() != "5" {
		t.Errorf("fallback render = %q, want 5", e.String())
	}
}

func TestDecodeEnumWidths(t *testing.T) {
	tests := []struct {
		width int
		data  []byte
		want  string
	}{
		{1, []byte{0x02}, "TWO (2)"},
		{2, []byte{0x02, 0x00}, "TWO (2)"},
		{4, []byte{0x02, 0x00, 0x00, 0x00}, "TWO (2)"},
		{8, []byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, "TWO (2)"},
	}

	for _, tt := range tests {
		reg := enumRegistry(t, "TestEnum_t", tt.width, map[int64]string{2: "TWO"})
		d := newTestDecoder(t, reg, snapshotAt(t, 0x1000, tt.data))

		v, err := d.Field(0x1000, "C_Test", "m_value", 0)
		if err != nil {
			t.Fatalf("width %d: Field failed: %v", tt.width, err)
		}
		if v.String() != tt.want {
			t.Errorf("width %d: enum = %q, want %q", tt.width, v.String(), tt.want)
		}
	}
}

func TestDecodeEnumNegative(t *testing.T) {
	reg := enumRegistry(t, "TestEnum_t", 1, map[int64]string{-1: "INVALID"})
	d := newTestDecoder(t, reg, snapshotAt(t, 0x1000, []byte{0xFF}))

	v, err := d.Field(0x1000, "C_Test", "m_value", 0)
	if err != nil {
		t.Fatalf("Field failed: %v", err)
	}
	if v.String() != "INVALID (-1)" {
		t.Errorf("enum = %q, want INVALID (-1)", v.String())
	}
}
