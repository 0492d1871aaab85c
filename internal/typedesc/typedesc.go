// Package typedesc parses the textual type descriptors attached to schema
// fields, e.g. "int32", "uint8[16]", "CBaseEntity*",
// "CUtlVector<CHandle<IBaseEntity>>".
package typedesc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Errors returned by Parse.
var (
	ErrEmptyDescriptor  = errors.New("typedesc: empty descriptor")
	ErrMalformedBracket = errors.New("typedesc: malformed brackets")
	ErrBadArraySize     = errors.New("typedesc: invalid array size")
	ErrMultiArgTemplate = errors.New("typedesc: multi-argument template")
)

// ParseError reports a descriptor that could not be parsed.
// Callers render the field as unsupported rather than failing the dump.
type ParseError struct {
	Descriptor string // Original descriptor text
	Err        error  // Underlying cause
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("typedesc: cannot parse %q: %v", e.Descriptor, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Descriptor is the structured form of a type-descriptor string.
type Descriptor struct {
	// Base is the underlying type name with array brackets, pointer marker
	// and generic argument stripped.
	Base string

	// Pointer is set when the field stores the address of the value rather
	// than the value itself.
	Pointer bool

	// HasArray and ArraySize carry a fixed [N] suffix. A descriptor without
	// brackets is a scalar, not an array of one.
	HasArray  bool
	ArraySize int

	// Generic is the single template argument, unparsed. Nested generics are
	// kept intact (CUtlVector<CHandle<Foo>> yields "CHandle<Foo>").
	Generic string
}

// Parse turns a type-descriptor string into a Descriptor.
//
// Any descriptor containing "char" describes a character buffer and is
// exposed as "string". Malformed input returns a *ParseError; Parse never
// panics on producer-supplied strings.
func Parse(desc string) (Descriptor, error) {
	s := strings.TrimSpace(desc)
	if s == "" {
		return Descriptor{}, &ParseError{Descriptor: desc, Err: ErrEmptyDescriptor}
	}

	// Character buffers of any shape (char, char[32], char*) are exposed as
	// their materialized text.
	if strings.Contains(s, "char") {
		return Descriptor{Base: "string"}, nil
	}

	var d Descriptor

	// Fixed-array suffix: first '[' with its matching ']'.
	if open := strings.IndexByte(s, '['); open >= 0 {
		end := strings.IndexByte(s, ']')
		if end < open {
			return Descriptor{}, &ParseError{Descriptor: desc, Err: ErrMalformedBracket}
		}
		n, err := strconv.Atoi(s[open+1 : end])
		if err != nil || n < 0 {
			return Descriptor{}, &ParseError{Descriptor: desc, Err: ErrBadArraySize}
		}
		d.HasArray = true
		d.ArraySize = n
		s = s[:open] + s[end+1:]
	} else if strings.IndexByte(s, ']') >= 0 {
		return Descriptor{}, &ParseError{Descriptor: desc, Err: ErrMalformedBracket}
	}

	// Pointer marker, after bracket removal.
	if strings.HasSuffix(s, "*") {
		d.Pointer = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "*"))
	}

	// Generic argument: first '<' through the last '>', tolerating nesting.
	if open := strings.IndexByte(s, '<'); open >= 0 {
		end := strings.LastIndexByte(s, '>')
		if end < open {
			return Descriptor{}, &ParseError{Descriptor: desc, Err: ErrMalformedBracket}
		}
		arg := s[open+1 : end]
		if topLevelComma(arg) {
			return Descriptor{}, &ParseError{Descriptor: desc, Err: ErrMultiArgTemplate}
		}
		d.Generic = strings.TrimSpace(arg)
		s = s[:open] + s[end+1:]
	} else if strings.IndexByte(s, '>') >= 0 {
		return Descriptor{}, &ParseError{Descriptor: desc, Err: ErrMalformedBracket}
	}

	d.Base = strings.TrimSpace(s)
	if d.Base == "" {
		return Descriptor{}, &ParseError{Descriptor: desc, Err: ErrEmptyDescriptor}
	}
	return d, nil
}

// topLevelComma reports whether s contains a comma outside any <...> pair.
func topLevelComma(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}
