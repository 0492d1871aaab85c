package decode

// EntityRef identifies a live entity resolved from a raw handle value.
type EntityRef struct {
	// Address is the entity's instance base address.
	Address uint64

	// Name is a display name for the entity, if the resolver knows one.
	Name string
}

// EntityResolver is the external entity-lookup collaborator. Given a raw
// handle value it returns the live entity the handle identifies, or reports
// false when the handle is stale or invalid.
type EntityResolver interface {
	Resolve(handle uint32) (EntityRef, bool)
}

// noEntities is the default resolver; every handle is unresolved.
type noEntities struct{}

func (noEntities) Resolve(uint32) (EntityRef, bool) { return EntityRef{}, false }
