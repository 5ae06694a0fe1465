// Package alloc implements block allocation and free-list management for
// fixed-size memory pools.
//
// # Overview
//
// The allocator partitions a pool's arena into a doubly-linked chain of
// header-prefixed blocks and tracks the free ones in a segregated free-list
// directory, giving near-constant-time lookup by size class. Blocks are
// addressed by byte offset into the arena; all header access goes through
// validated accessors so corruption is detected before any structural
// mutation.
//
// # Allocation
//
// Alloc rounds the request up to the pool alignment, then scans buckets
// from the matching size class upward, keeping the smallest free block that
// fits (an exact-size match short-circuits the scan). The chosen block is
// split when the remainder can hold a header plus the minimum block size;
// otherwise the caller receives the whole block.
//
// # Deallocation
//
// Free recovers the header behind the payload reference, validates it,
// rejects double frees, then merges the block with every physically
// adjacent free neighbor, forward and backward, before reinserting the
// result into the directory. After any Free, no two chain-adjacent blocks
// are both free.
//
// # Size Classes
//
// The directory has 32 buckets. The first nine cover sizes up to
// 16, 32, 64, 128, 256, 512, 1024, 2048, and 4096 bytes; past that the
// thresholds double per bucket, with everything beyond the last threshold
// capped into bucket 31.
//
// # Usage Example
//
//	p, err := pool.Create(1<<20, 8, "session")
//	if err != nil {
//	    return err
//	}
//	a, err := alloc.New(p, nil)
//	if err != nil {
//	    return err
//	}
//	defer a.Destroy()
//
//	ref, buf, err := a.Alloc(256)
//	if err != nil {
//	    return err
//	}
//	copy(buf, payload)
//
//	// Later, return the block to the pool.
//	err = a.Free(ref)
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must synchronize access
// externally; the core provides no reentrancy guarantee.
package alloc
