package alloc

import "errors"

var (
	// ErrNoSpace indicates that no free block large enough was found, or the
	// request exceeds the pool's remaining capacity.
	ErrNoSpace = errors.New("alloc: no free block large enough")

	// ErrInvalidSize indicates a non-positive allocation size.
	ErrInvalidSize = errors.New("alloc: size must be greater than zero")

	// ErrBadRef indicates an out-of-range payload reference.
	ErrBadRef = errors.New("alloc: bad payload reference")

	// ErrCorrupt indicates a block whose header signatures or size failed
	// validation. The operation that detected it was aborted without
	// mutating pool state.
	ErrCorrupt = errors.New("alloc: block header corrupted")

	// ErrDoubleFree indicates a Free call on a block already marked free.
	ErrDoubleFree = errors.New("alloc: block already free")

	// ErrPoolNotActive indicates an operation on a pool that was never
	// initialized or has been destroyed.
	ErrPoolNotActive = errors.New("alloc: pool is not active")
)
