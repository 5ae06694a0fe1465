package alloc

import "github.com/joshuapare/poolkit/internal/format"

// Free returns the payload at ref to the pool, merging it with any
// physically adjacent free neighbors before reinserting the result into the
// free-list directory.
//
// A reference whose header fails validation yields ErrCorrupt, a reference
// to a block already free yields ErrDoubleFree; in both cases no pool state
// changes, so a single bad call is locally contained.
func (a *Allocator) Free(ref Ref) error {
	if !a.p.Active() {
		return ErrPoolNotActive
	}

	data := a.p.Bytes()
	// A payload needs a header in front of it and at least one byte before
	// the arena end, so the arena-end offset itself is already out of range.
	if int64(ref) < format.HeaderSize || int64(ref) >= int64(len(data)) {
		return ErrBadRef
	}
	off := int32(ref) - format.HeaderSize

	if !format.ValidBlock(data, off) {
		a.log.Error("invalid block header on free",
			"pool", a.p.Name(), "offset", off)
		return ErrCorrupt
	}
	if format.BlockFree(data, off) {
		a.log.Error("double free detected",
			"pool", a.p.Name(), "offset", off)
		return ErrDoubleFree
	}

	format.SetBlockFree(data, off, true)
	a.usedSize -= int64(format.BlockSize(data, off))
	a.frees++

	off = a.coalesceForward(data, off)
	off = a.coalesceBackward(data, off)

	a.dir.insert(data, off)
	return nil
}

// coalesceForward merges every chain successor that is free, validates, and
// starts exactly where the current block ends. Returns the offset of the
// (possibly enlarged) block.
func (a *Allocator) coalesceForward(data []byte, off int32) int32 {
	for {
		next := format.BlockNext(data, off)
		if next == format.NoOffset || !format.ValidBlock(data, next) || !format.BlockFree(data, next) {
			return off
		}
		if off+format.HeaderSize+format.BlockSize(data, off) != next {
			return off
		}

		a.dir.remove(data, next)
		merged := format.BlockSize(data, off) + format.HeaderSize + format.BlockSize(data, next)
		nn := format.BlockNext(data, next)
		format.SetBlockNext(data, off, nn)
		if nn != format.NoOffset {
			format.SetBlockPrev(data, nn, off)
		}
		format.SetBlockSize(data, off, merged)
		format.ScrubBlockHeader(data, next)

		a.blockCount--
		a.coalesceFwd++
	}
}

// coalesceBackward symmetrically merges the current block into every free,
// valid, physically adjacent chain predecessor, continuing from the
// enlarged predecessor.
func (a *Allocator) coalesceBackward(data []byte, off int32) int32 {
	for {
		prev := format.BlockPrev(data, off)
		if prev == format.NoOffset || !format.ValidBlock(data, prev) || !format.BlockFree(data, prev) {
			return off
		}
		if prev+format.HeaderSize+format.BlockSize(data, prev) != off {
			return off
		}

		// The predecessor sits in a bucket keyed by its current size; it
		// must come out before the merge changes that size.
		a.dir.remove(data, prev)
		merged := format.BlockSize(data, prev) + format.HeaderSize + format.BlockSize(data, off)
		next := format.BlockNext(data, off)
		format.SetBlockNext(data, prev, next)
		if next != format.NoOffset {
			format.SetBlockPrev(data, next, prev)
		}
		format.SetBlockSize(data, prev, merged)
		format.ScrubBlockHeader(data, off)

		a.blockCount--
		a.coalesceBack++
		off = prev
	}
}
