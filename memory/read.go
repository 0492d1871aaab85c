package memory

import (
	"encoding/binary"
	"math"
)

// Typed read helpers over a View. All multi-byte values are read in
// little-endian order, matching the producing process.

// ReadU8 reads an unsigned 8-bit integer at addr.
func ReadU8(v View, addr uint64) (uint8, error) {
	var b [1]byte
	if err := v.ReadAt(b[:], addr); err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads an unsigned 16-bit integer at addr.
func ReadU16(v View, addr uint64) (uint16, error) {
	var b [2]byte
	if err := v.ReadAt(b[:], addr); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// ReadU32 reads an unsigned 32-bit integer at addr.
func ReadU32(v View, addr uint64) (uint32, error) {
	var b [4]byte
	if err := v.ReadAt(b[:], addr); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// ReadU64 reads an unsigned 64-bit integer at addr.
func ReadU64(v View, addr uint64) (uint64, error) {
	var b [8]byte
	if err := v.ReadAt(b[:], addr); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// ReadI8 reads a signed 8-bit integer at addr.
func ReadI8(v View, addr uint64) (int8, error) {
	u, err := ReadU8(v, addr)
	return int8(u), err
}

// ReadI16 reads a signed 16-bit integer at addr.
func ReadI16(v View, addr uint64) (int16, error) {
	u, err := ReadU16(v, addr)
	return int16(u), err
}

// ReadI32 reads a signed 32-bit integer at addr.
func ReadI32(v View, addr uint64) (int32, error) {
	u, err := ReadU32(v, addr)
	return int32(u), err
}

// ReadI64 reads a signed 64-bit integer at addr.
func ReadI64(v View, addr uint64) (int64, error) {
	u, err := ReadU64(v, addr)
	return int64(u), err
}

// ReadF32 reads a 32-bit IEEE float at addr.
func ReadF32(v View, addr uint64) (float32, error) {
	u, err := ReadU32(v, addr)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// ReadPointer reads a 64-bit pointer value at addr.
func ReadPointer(v View, addr uint64) (uint64, error) {
	return ReadU64(v, addr)
}

// ReadCString reads a NUL-terminated string starting at addr, scanning at
// most max bytes. The scan is byte-wise so that a string ending just before
// an unmapped page still reads successfully. A string that fills max bytes
// without a terminator is returned truncated.
func ReadCString(v View, addr uint64, max int) (string, error) {
	buf := make([]byte, 0, 32)
	for i := 0; i < max; i++ {
		b, err := ReadU8(v, addr+uint64(i))
		if err != nil {
			if i == 0 {
				return "", err
			}
			// Partial read up to the unreadable byte.
			return string(buf), nil
		}
		if b == 0 {
			return string(buf), nil
		}
		buf = append(buf, b)
	}
	return string(buf), nil
}
