package decode

import (
	"testing"
)

func TestDecodeIntegers(t *testing.T) {
	tests := []struct {
		typ  string
		data []byte
		want string
	}{
		{"int32", []byte{0x2A, 0x00, 0x00, 0x00}, "42"},
		{"int32", []byte{0xFF, 0xFF, 0xFF, 0xFF}, "-1"},
		{"int8", []byte{0x80}, "-128"},
		{"uint8", []byte{0xFF}, "255"},
		{"int16", []byte{0x00, 0x80}, "-32768"},
		{"uint16", []byte{0xFF, 0xFF}, "65535"},
		{"uint32", []byte{0xFF, 0xFF, 0xFF, 0xFF}, "4294967295"},
		{"int64", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, "-1"},
		{"uint64", []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80}, "9223372036854775808"},
	}

	for _, tt := range tests {
		t.Run(tt.typ+"_"+tt.want, func(t *testing.T) {
			v := decodeOne(t, tt.typ, tt.data)
			if v.Kind() != KindPrimitive {
				t.Fatalf("kind = %s, want primitive", v.Kind())
			}
			if v.String() != tt.want {
				t.Errorf("value = %s, want %s", v, tt.want)
			}
		})
	}
}

func TestDecodeBool(t *testing.T) {
	if v := decodeOne(t, "bool", []byte{0x01}); v.String() != "True" {
		t.Errorf("bool 0x01 = %s, want True", v)
	}
	if v := decodeOne(t, "bool", []byte{0x00}); v.String() != "False" {
		t.Errorf("bool 0x00 = %s, want False", v)
	}
	// Any nonzero byte is true.
	if v := decodeOne(t, "bool", []byte{0x7F}); v.String() != "True" {
		t.Errorf("bool 0x7F = %s, want True", v)
	}
}

func TestDecodeFloat(t *testing.T) {
	// 1.5f = 0x3FC00000
	v := decodeOne(t, "float32", []byte{0x00, 0x00, 0xC0, 0x3F})
	if v.String() != "1.5" {
		t.Errorf("float32 = %s, want 1.5", v)
	}
}

func TestDecodeVector3(t *testing.T) {
	data := []byte{
		0x00, 0x00, 0x80, 0x3F, // 1.0
		0x00, 0x00, 0x00, 0x40, // 2.0
		0x00, 0x00, 0x40, 0xC0, // -3.0
	}
	v := decodeOne(t, "Vector", data)
	if v.String() != "(1, 2, -3)" {
		t.Errorf("Vector = %s, want (1, 2, -3)", v)
	}

	// QAngle shares the 3-float layout.
	v = decodeOne(t, "QAngle", data)
	if v.String() != "(1, 2, -3)" {
		t.Errorf("QAngle = %s, want (1, 2, -3)", v)
	}
}

func TestDecodeColor(t *testing.T) {
	v := decodeOne(t, "Color", []byte{255, 128, 0})
	if v.String() != "Color(255, 128, 0)" {
		t.Errorf("Color = %s", v)
	}
}

func TestDecodeInlineString(t *testing.T) {
	// char buffers normalize to the string kind and read inline.
	v := decodeOne(t, "char[16]", []byte("hostage\x00garbage"))
	if v.String() != "hostage" {
		t.Errorf("char[16] = %q, want hostage", v.String())
	}
}

func TestDecodePointerStrings(t *testing.T) {
	// CUtlString and CUtlSymbolLarge both store a pointer to their text.
	data := make([]byte, 32)
	// pointer 0x1010 at offset 0
	data[0] = 0x10
	data[1] = 0x10
	copy(data[0x10:], "weapon_ak47\x00")

	for _, typ := range []string{"CUtlString", "CUtlSymbolLarge"} {
		v := decodeOne(t, typ, data)
		if v.String() != "weapon_ak47" {
			t.Errorf("%s = %q, want weapon_ak47", typ, v.String())
		}
	}
}

func TestDecodeNullPointerString(t *testing.T) {
	// A null text pointer is an empty string, not an error.
	v := decodeOne(t, "CUtlString", make([]byte, 8))
	if v.Kind() != KindPrimitive || v.String() != "" {
		t.Errorf("null CUtlString = (%s, %q), want empty primitive", v.Kind(), v.String())
	}
}

