// Package memory provides guarded read access to externally-owned memory.
//
// The memory being decoded belongs to another process or component and may
// be concurrently mutated or unmapped at any time. Every read goes through a
// View, which validates reachability and reports an *AccessError instead of
// faulting. The package makes no atomicity guarantee across a multi-byte
// read; a torn value is an accepted limitation of reading live memory.
package memory

import (
	"errors"
	"fmt"
)

// Errors returned by views and read helpers.
var (
	// ErrUnmapped indicates the address range is not backed by any region.
	ErrUnmapped = errors.New("memory: address not mapped")

	// ErrAddressOverflow indicates address arithmetic wrapped around.
	ErrAddressOverflow = errors.New("memory: address overflow")
)

// AccessError describes a failed read of foreign memory.
type AccessError struct {
	Addr uint64 // Address the read started at
	Size int    // Number of bytes requested
	Err  error  // Underlying cause, if any
}

func (e *AccessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("memory: cannot read %d bytes at 0x%X: %v", e.Size, e.Addr, e.Err)
	}
	return fmt.Sprintf("memory: cannot read %d bytes at 0x%X", e.Size, e.Addr)
}

func (e *AccessError) Unwrap() error { return e.Err }

// View is a read-only window into foreign memory.
//
// ReadAt fills p with the bytes starting at addr, or returns an
// *AccessError if any part of the range is unreadable. Implementations must
// never fault on bad addresses; validation happens before dereference. The
// view does not retain p after the call returns.
type View interface {
	ReadAt(p []byte, addr uint64) error
}
