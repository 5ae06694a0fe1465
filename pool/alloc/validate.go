package alloc

import (
	"fmt"

	"github.com/joshuapare/poolkit/internal/format"
)

// BlockInfo describes one block during a chain walk.
type BlockInfo struct {
	Offset int32
	Size   int32
	Free   bool
}

// Walk visits every block in chain order, head first, until fn returns
// false or the chain ends. The walk is bounded by the theoretical maximum
// block count and aborts with ErrCorrupt on an invalid header or a cycle.
func (a *Allocator) Walk(fn func(BlockInfo) bool) error {
	if !a.p.Active() {
		return ErrPoolNotActive
	}
	data := a.p.Bytes()
	maxSteps := a.maxChainSteps()
	steps := 0

	for off := int32(0); off != format.NoOffset; off = format.BlockNext(data, off) {
		steps++
		if steps > maxSteps {
			return fmt.Errorf("%w: block chain does not terminate", ErrCorrupt)
		}
		if !format.ValidBlock(data, off) {
			return fmt.Errorf("%w: offset %d", ErrCorrupt, off)
		}
		if !fn(BlockInfo{
			Offset: off,
			Size:   format.BlockSize(data, off),
			Free:   format.BlockFree(data, off),
		}) {
			return nil
		}
	}
	return nil
}

// Validate walks the whole block chain, checking every header's signatures
// and size, the gap-free arena coverage, chain link symmetry, and that the
// sizes of used blocks sum to the tracked usedSize. Corruption terminates
// the walk and is reported as an error; the pool itself is left untouched.
func (a *Allocator) Validate() error {
	if !a.p.Active() {
		return ErrPoolNotActive
	}
	data := a.p.Bytes()
	maxSteps := a.maxChainSteps()
	steps := 0

	var walkedUsed int64
	var coverage int64
	blocks := 0
	prev := format.NoOffset

	for off := int32(0); off != format.NoOffset; off = format.BlockNext(data, off) {
		steps++
		if steps > maxSteps {
			return fmt.Errorf("%w: block chain does not terminate", ErrCorrupt)
		}
		if !format.ValidBlock(data, off) {
			return fmt.Errorf("%w: offset %d", ErrCorrupt, off)
		}
		if format.BlockPrev(data, off) != prev {
			return fmt.Errorf("%w: chain back-link mismatch at offset %d", ErrCorrupt, off)
		}

		sz := format.BlockSize(data, off)
		coverage += format.HeaderSize + int64(sz)
		if !format.BlockFree(data, off) {
			walkedUsed += int64(sz)
		}
		blocks++

		next := format.BlockNext(data, off)
		if next != format.NoOffset && next != off+format.HeaderSize+sz {
			return fmt.Errorf("%w: gap or overlap between offsets %d and %d", ErrCorrupt, off, next)
		}
		prev = off
	}

	if coverage != int64(a.p.TotalSize()) {
		return fmt.Errorf("%w: arena coverage %d does not match total size %d",
			ErrCorrupt, coverage, a.p.TotalSize())
	}
	if walkedUsed != a.usedSize {
		return fmt.Errorf("%w: used size mismatch: walked %d, tracked %d",
			ErrCorrupt, walkedUsed, a.usedSize)
	}
	if blocks != a.blockCount {
		return fmt.Errorf("%w: block count mismatch: walked %d, tracked %d",
			ErrCorrupt, blocks, a.blockCount)
	}
	return nil
}
