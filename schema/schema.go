package schema

import (
	"iter"
	"sort"

	"schemaview/internal/typedesc"
)

// Field is a named, typed slot within a class.
type Field struct {
	// Name of the field as declared by the producer.
	Name string

	// Type is the textual type descriptor, e.g. "int32" or
	// "CUtlVector<CHandle<IBaseEntity>>".
	Type string

	// Offset is the byte offset relative to the start of the declaring
	// class's own storage.
	Offset int64

	// Networked marks fields replicated over the network.
	Networked bool
}

// Class is a named record type with a known base-relative field layout.
// Classes are immutable once built and shared by all decode operations.
type Class struct {
	name        string
	parent      string
	chainOffset int64
	fields      map[string]Field
	order       []string // declaration order, for deterministic dumps
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Parent returns the base class name, or "" for a root class.
func (c *Class) Parent() string { return c.parent }

// ChainOffset returns the byte displacement accumulated from base-class
// storage, added before any field's own offset.
func (c *Class) ChainOffset() int64 { return c.chainOffset }

// Field returns the field declared directly on this class.
// Inherited fields are resolved through Registry.Field.
func (c *Class) Field(name string) (Field, bool) {
	f, ok := c.fields[name]
	return f, ok
}

// NumFields returns the number of fields declared directly on this class.
func (c *Class) NumFields() int { return len(c.order) }

// Fields returns an iterator over the class's own fields in declaration order.
func (c *Class) Fields() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		for _, name := range c.order {
			if !yield(c.fields[name]) {
				return
			}
		}
	}
}

// ResolvedField is the per-lookup view of a field, combining the declaring
// class's chain offset with the field's own offset.
type ResolvedField struct {
	Networked   bool
	ChainOffset int64
	Offset      int64

	// ArraySize is the fixed [N] suffix of the descriptor, or 1 for scalars.
	ArraySize int

	// Type is the field's type-descriptor string.
	Type string
}

// Registry maps class names to their field tables. It is populated once by a
// schema provider and read-only afterwards; lookups need no locking.
type Registry struct {
	classes map[string]*Class
	enums   *EnumSet
}

// Class looks up a class by name.
func (r *Registry) Class(name string) (*Class, error) {
	c, ok := r.classes[name]
	if !ok {
		return nil, ErrClassNotFound
	}
	return c, nil
}

// Field resolves a field by name, walking the parent chain when the class
// does not declare it directly. It returns the declaring class alongside the
// field, since the declaring class's chain offset governs the field's
// effective address.
func (r *Registry) Field(class, field string) (*Class, Field, error) {
	c, err := r.Class(class)
	if err != nil {
		return nil, Field{}, err
	}

	for c != nil {
		if f, ok := c.Field(field); ok {
			return c, f, nil
		}
		if c.parent == "" {
			break
		}
		parent, ok := r.classes[c.parent]
		if !ok {
			break
		}
		c = parent
	}
	return nil, Field{}, ErrFieldNotFound
}

// Resolve computes the ResolvedField for (class, field).
// The array size comes from the descriptor's [N] suffix and defaults to 1;
// a descriptor that fails to parse still resolves, with size 1, so that the
// decoder can report it as unsupported instead of losing the field.
func (r *Registry) Resolve(class, field string) (ResolvedField, error) {
	c, f, err := r.Field(class, field)
	if err != nil {
		return ResolvedField{}, err
	}

	size := 1
	if d, err := typedesc.Parse(f.Type); err == nil && d.HasArray {
		size = d.ArraySize
	}

	return ResolvedField{
		Networked:   f.Networked,
		ChainOffset: c.ChainOffset(),
		Offset:      f.Offset,
		ArraySize:   size,
		Type:        f.Type,
	}, nil
}

// Enums returns the enum metadata loaded with this registry.
// It is never nil; a registry without enum data returns an empty set.
func (r *Registry) Enums() *EnumSet {
	if r.enums == nil {
		return emptyEnumSet
	}
	return r.enums
}

// NumClasses returns the number of registered classes.
func (r *Registry) NumClasses() int { return len(r.classes) }

// Classes returns an iterator over all classes in name order.
func (r *Registry) Classes() iter.Seq[*Class] {
	return func(yield func(*Class) bool) {
		names := make([]string, 0, len(r.classes))
		for name := range r.classes {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if !yield(r.classes[name]) {
				return
			}
		}
	}
}

// Builder assembles an immutable Registry. It is not safe for concurrent
// use; build on one goroutine, then share the Registry freely.
type Builder struct {
	classes map[string]*Class
	enums   *EnumSetBuilder
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		classes: make(map[string]*Class),
		enums:   NewEnumSetBuilder(),
	}
}

// AddClass registers a class. The fields slice is copied; later mutation of
// the caller's slice does not affect the registry.
func (b *Builder) AddClass(name, parent string, chainOffset int64, fields []Field) error {
	if _, ok := b.classes[name]; ok {
		return ErrDuplicateClass
	}

	c := &Class{
		name:        name,
		parent:      parent,
		chainOffset: chainOffset,
		fields:      make(map[string]Field, len(fields)),
		order:       make([]string, 0, len(fields)),
	}
	for _, f := range fields {
		if _, ok := c.fields[f.Name]; ok {
			continue
		}
		c.fields[f.Name] = f
		c.order = append(c.order, f.Name)
	}

	b.classes[name] = c
	return nil
}

// AddEnum registers enum metadata; see EnumSetBuilder.Add.
func (b *Builder) AddEnum(name string, width int, members map[int64]string) error {
	return b.enums.Add(name, width, members)
}

// Build finalizes the registry. The Builder must not be used afterwards.
func (b *Builder) Build() *Registry {
	return &Registry{
		classes: b.classes,
		enums:   b.enums.Build(),
	}
}
