package schema

import (
	"fmt"
	"iter"
	"sort"
)

// Enum holds the metadata needed to decode one enum type: the width of its
// underlying integer and the raw-value to symbol mapping.
type Enum struct {
	name    string
	width   int // underlying integer width in bytes: 1, 2, 4 or 8
	members map[int64]string
}

// Name returns the enum type name.
func (e *Enum) Name() string { return e.name }

// Width returns the underlying integer width in bytes.
func (e *Enum) Width() int { return e.width }

// Member returns the symbolic name for a raw value.
// An unmapped raw value is not an error; callers fall back to the raw
// integer.
func (e *Enum) Member(raw int64) (string, bool) {
	name, ok := e.members[raw]
	return name, ok
}

// NumMembers returns the number of named values.
func (e *Enum) NumMembers() int { return len(e.members) }

// Members returns an iterator over (raw value, name) pairs in value order.
func (e *Enum) Members() iter.Seq2[int64, string] {
	return func(yield func(int64, string) bool) {
		values := make([]int64, 0, len(e.members))
		for v := range e.members {
			values = append(values, v)
		}
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

		for _, v := range values {
			if !yield(v, e.members[v]) {
				return
			}
		}
	}
}

// EnumSet maps enum type names to their metadata. Like the class registry it
// is immutable after construction. An unknown enum name is not an error;
// lookup simply reports absence and decoding falls back to a default path.
type EnumSet struct {
	enums map[string]*Enum
}

var emptyEnumSet = &EnumSet{enums: map[string]*Enum{}}

// Lookup returns the metadata for an enum type name.
func (s *EnumSet) Lookup(name string) (*Enum, bool) {
	e, ok := s.enums[name]
	return e, ok
}

// Contains reports whether the set has metadata for the given type name.
func (s *EnumSet) Contains(name string) bool {
	_, ok := s.enums[name]
	return ok
}

// Len returns the number of enum types in the set.
func (s *EnumSet) Len() int { return len(s.enums) }

// All returns an iterator over all enums in name order.
func (s *EnumSet) All() iter.Seq[*Enum] {
	return func(yield func(*Enum) bool) {
		names := make([]string, 0, len(s.enums))
		for name := range s.enums {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if !yield(s.enums[name]) {
				return
			}
		}
	}
}

// EnumSetBuilder assembles an immutable EnumSet.
type EnumSetBuilder struct {
	enums map[string]*Enum
}

// NewEnumSetBuilder returns an empty EnumSetBuilder.
func NewEnumSetBuilder() *EnumSetBuilder {
	return &EnumSetBuilder{enums: make(map[string]*Enum)}
}

// Add registers one enum type. Width must be 1, 2, 4 or 8 bytes.
// Registering the same name twice keeps the first registration, matching
// the merge behavior of the producing dumper.
func (b *EnumSetBuilder) Add(name string, width int, members map[int64]string) error {
	switch width {
	case 1, 2, 4, 8:
	default:
		return fmt.Errorf("schema: enum %s has invalid width %d", name, width)
	}

	if _, ok := b.enums[name]; ok {
		return nil
	}

	m := make(map[int64]string, len(members))
	for v, n := range members {
		m[v] = n
	}
	b.enums[name] = &Enum{name: name, width: width, members: m}
	return nil
}

// Build finalizes the set. The builder must not be used afterwards.
func (b *EnumSetBuilder) Build() *EnumSet {
	return &EnumSet{enums: b.enums}
}
