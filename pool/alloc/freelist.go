package alloc

import "github.com/joshuapare/poolkit/internal/format"

// freeListDir is the size-class directory of free blocks. Each bucket is an
// intrusive doubly-linked list threaded through the freePrev/freeNext
// fields of the block headers themselves; only the list heads and counts
// live outside the arena.
//
// A block is in exactly one bucket while free and in none while used.
// Membership is keyed by recomputing bucketIndex from the block's current
// size, so callers must remove a block from its bucket before resizing it.
type freeListDir struct {
	heads  [format.NumBuckets]int32
	counts [format.NumBuckets]int
}

func newFreeListDir() *freeListDir {
	d := &freeListDir{}
	for i := range d.heads {
		d.heads[i] = format.NoOffset
	}
	return d
}

// insert pushes the free block at off onto the head of its bucket.
func (d *freeListDir) insert(data []byte, off int32) {
	b := bucketIndex(format.BlockSize(data, off))
	head := d.heads[b]

	format.SetBlockFreePrev(data, off, format.NoOffset)
	format.SetBlockFreeNext(data, off, head)
	if head != format.NoOffset {
		format.SetBlockFreePrev(data, head, off)
	}
	d.heads[b] = off
	d.counts[b]++
}

// remove unlinks the free block at off from its bucket and clears its
// bucket links.
func (d *freeListDir) remove(data []byte, off int32) {
	b := bucketIndex(format.BlockSize(data, off))
	prev := format.BlockFreePrev(data, off)
	next := format.BlockFreeNext(data, off)

	if prev != format.NoOffset {
		format.SetBlockFreeNext(data, prev, next)
	} else if d.heads[b] == off {
		d.heads[b] = next
	}
	if next != format.NoOffset {
		format.SetBlockFreePrev(data, next, prev)
	}

	format.SetBlockFreePrev(data, off, format.NoOffset)
	format.SetBlockFreeNext(data, off, format.NoOffset)
	d.counts[b]--
}

// freeBlocks returns the number of blocks across all buckets.
func (d *freeListDir) freeBlocks() int {
	n := 0
	for _, c := range d.counts {
		n += c
	}
	return n
}

// largest returns the size of the biggest free block, or 0 when no block is
// free. Blocks within a bucket are unordered, so every list is walked.
func (d *freeListDir) largest(data []byte) int32 {
	var best int32
	for b := format.NumBuckets - 1; b >= 0; b-- {
		for off := d.heads[b]; off != format.NoOffset; off = format.BlockFreeNext(data, off) {
			if sz := format.BlockSize(data, off); sz > best {
				best = sz
			}
		}
		if best > 0 {
			// Lower buckets cannot hold a bigger block than one already
			// found in a higher bucket.
			break
		}
	}
	return best
}
