package memory

import (
	"fmt"
	"os"
	"sort"
)

// Region is a contiguous run of captured bytes at a known base address.
type Region struct {
	Base uint64
	Data []byte
}

// End returns one past the last mapped address of the region.
func (r Region) End() uint64 {
	return r.Base + uint64(len(r.Data))
}

// Snapshot is a View over one or more captured memory regions.
// It is immutable after construction and safe for concurrent reads.
type Snapshot struct {
	regions []Region // sorted by Base, non-overlapping
}

// NewSnapshot builds a Snapshot from the given regions.
// Regions are sorted by base address; overlapping regions are rejected.
func NewSnapshot(regions ...Region) (*Snapshot, error) {
	sorted := make([]Region, len(regions))
	copy(sorted, regions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Base < sorted[j].Base })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Base < sorted[i-1].End() {
			return nil, fmt.Errorf("memory: regions overlap at 0x%X", sorted[i].Base)
		}
	}

	return &Snapshot{regions: sorted}, nil
}

// OpenSnapshot reads a raw capture file and maps it at the given base address.
func OpenSnapshot(path string, base uint64) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("memory: failed to open snapshot: %w", err)
	}
	return NewSnapshot(Region{Base: base, Data: data})
}

// ReadAt implements View. The requested range must lie entirely inside a
// single region; straddling a region boundary is an unmapped read.
func (s *Snapshot) ReadAt(p []byte, addr uint64) error {
	if len(p) == 0 {
		return nil
	}

	end := addr + uint64(len(p))
	if end < addr {
		return &AccessError{Addr: addr, Size: len(p), Err: ErrAddressOverflow}
	}

	// Find the last region starting at or before addr.
	i := sort.Search(len(s.regions), func(i int) bool { return s.regions[i].Base > addr })
	if i == 0 {
		return &AccessError{Addr: addr, Size: len(p), Err: ErrUnmapped}
	}

	r := s.regions[i-1]
	if end > r.End() {
		return &AccessError{Addr: addr, Size: len(p), Err: ErrUnmapped}
	}

	copy(p, r.Data[addr-r.Base:end-r.Base])
	return nil
}

// Contains reports whether addr lies inside a mapped region.
func (s *Snapshot) Contains(addr uint64) bool {
	var b [1]byte
	return s.ReadAt(b[:], addr) == nil
}

// NumRegions returns the number of mapped regions.
func (s *Snapshot) NumRegions() int {
	return len(s.regions)
}
