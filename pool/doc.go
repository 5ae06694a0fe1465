// Package pool provides the fixed-size memory arena backing the block
// allocator in pool/alloc.
//
// A pool is created once with a total size, a payload alignment, and a
// diagnostic name. The arena is carved into header-prefixed blocks managed
// entirely by the allocator; this package only owns the region's lifecycle:
//
//	Uninitialized → Active → Destroyed (terminal)
//
// Create is the only transition into Active, Close the only exit. The pool
// never grows; exhaustion is a normal allocation failure, not a trigger to
// request more backing memory.
package pool
