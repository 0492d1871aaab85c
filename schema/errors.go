// Package schema holds the class and enum metadata that drives decoding:
// per-class field tables with byte offsets and type-descriptor strings,
// chain offsets accumulated from base classes, and enum symbol tables.
package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry lookups.
var (
	// ErrClassNotFound indicates the class name is absent from the registry.
	ErrClassNotFound = errors.New("schema: class not found")

	// ErrFieldNotFound indicates the field name is absent from the class
	// and all of its ancestors.
	ErrFieldNotFound = errors.New("schema: field not found")

	// ErrDuplicateClass indicates the same class name was registered twice.
	ErrDuplicateClass = errors.New("schema: duplicate class")
)

// LoadError reports a failure while loading schema data.
type LoadError struct {
	Source  string // File or description of the input
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schema: failed to load %s: %s: %v", e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("schema: failed to load %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error { return e.Err }
