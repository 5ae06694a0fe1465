package alloc

import "github.com/joshuapare/poolkit/internal/format"

// Stats is a point-in-time snapshot of pool usage.
type Stats struct {
	TotalSize     int
	UsedSize      int64
	PeakUsage     int64
	Allocations   int64
	Deallocations int64

	BlockCount       int
	FreeBlocks       int
	LargestFreeBlock int32

	// FragmentationRatio relates the current block count to the arena's
	// theoretical minimum block count, as a percentage.
	FragmentationRatio int

	Splits           int64
	CoalesceForward  int64
	CoalesceBackward int64
}

// Stats returns the current usage counters. The free-block figures require
// an Active pool; on a destroyed pool they are reported as zero.
func (a *Allocator) Stats() Stats {
	s := Stats{
		TotalSize:        a.p.TotalSize(),
		UsedSize:         a.usedSize,
		PeakUsage:        a.peakUsage,
		Allocations:      a.allocs,
		Deallocations:    a.frees,
		BlockCount:       a.blockCount,
		Splits:           a.splits,
		CoalesceForward:  a.coalesceFwd,
		CoalesceBackward: a.coalesceBack,
	}
	if a.p.TotalSize() > 0 {
		s.FragmentationRatio = a.blockCount * 100 / (a.p.TotalSize() / format.HeaderSize)
	}
	if a.p.Active() {
		s.FreeBlocks = a.dir.freeBlocks()
		s.LargestFreeBlock = a.dir.largest(a.p.Bytes())
	}
	return s
}
