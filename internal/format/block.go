package format

// Block header accessors. Every function takes the raw arena bytes and the
// absolute byte offset of the block header. Callers are expected to gate
// structural mutation behind ValidBlock so no code path operates on a header
// whose signatures cannot be verified.

// WriteBlockHeader initializes a complete block header at off. Chain and
// bucket links are cleared to NoOffset.
func WriteBlockHeader(b []byte, off int32, size int32, free bool) {
	o := int(off)
	PutU32(b, o+sigOffset, BlockSignature)
	PutI32(b, o+sizeOffset, size)
	var flags uint32
	if free {
		flags = flagFree
	}
	PutU32(b, o+flagsOffset, flags)
	PutI32(b, o+prevOffset, NoOffset)
	PutI32(b, o+nextOffset, NoOffset)
	PutI32(b, o+freePrevOffset, NoOffset)
	PutI32(b, o+freeNextOffset, NoOffset)
	PutU32(b, o+magicOffset, BlockSignature)
}

// ValidBlock reports whether the header at off carries both corruption
// signatures, a positive size, and fits inside the arena.
func ValidBlock(b []byte, off int32) bool {
	o := int(off)
	if off < 0 || o+HeaderSize > len(b) {
		return false
	}
	if ReadU32(b, o+sigOffset) != BlockSignature {
		return false
	}
	if ReadU32(b, o+magicOffset) != BlockSignature {
		return false
	}
	size := ReadI32(b, o+sizeOffset)
	if size <= 0 || o+HeaderSize+int(size) > len(b) {
		return false
	}
	return true
}

// BlockSize returns the payload capacity of the block at off.
func BlockSize(b []byte, off int32) int32 {
	return ReadI32(b, int(off)+sizeOffset)
}

// SetBlockSize updates the payload capacity of the block at off.
func SetBlockSize(b []byte, off int32, size int32) {
	PutI32(b, int(off)+sizeOffset, size)
}

// BlockFree reports whether the block at off is marked free.
func BlockFree(b []byte, off int32) bool {
	return ReadU32(b, int(off)+flagsOffset)&flagFree != 0
}

// SetBlockFree updates the free flag of the block at off.
func SetBlockFree(b []byte, off int32, free bool) {
	flags := ReadU32(b, int(off)+flagsOffset)
	if free {
		flags |= flagFree
	} else {
		flags &^= flagFree
	}
	PutU32(b, int(off)+flagsOffset, flags)
}

// BlockPrev returns the chain predecessor offset of the block at off.
func BlockPrev(b []byte, off int32) int32 {
	return ReadI32(b, int(off)+prevOffset)
}

// SetBlockPrev updates the chain predecessor link of the block at off.
func SetBlockPrev(b []byte, off int32, prev int32) {
	PutI32(b, int(off)+prevOffset, prev)
}

// BlockNext returns the chain successor offset of the block at off.
func BlockNext(b []byte, off int32) int32 {
	return ReadI32(b, int(off)+nextOffset)
}

// SetBlockNext updates the chain successor link of the block at off.
func SetBlockNext(b []byte, off int32, next int32) {
	PutI32(b, int(off)+nextOffset, next)
}

// BlockFreePrev returns the bucket-list predecessor offset of the block at off.
func BlockFreePrev(b []byte, off int32) int32 {
	return ReadI32(b, int(off)+freePrevOffset)
}

// SetBlockFreePrev updates the bucket-list predecessor link of the block at off.
func SetBlockFreePrev(b []byte, off int32, prev int32) {
	PutI32(b, int(off)+freePrevOffset, prev)
}

// BlockFreeNext returns the bucket-list successor offset of the block at off.
func BlockFreeNext(b []byte, off int32) int32 {
	return ReadI32(b, int(off)+freeNextOffset)
}

// SetBlockFreeNext updates the bucket-list successor link of the block at off.
func SetBlockFreeNext(b []byte, off int32, next int32) {
	PutI32(b, int(off)+freeNextOffset, next)
}

// ScrubBlockHeader clears both signatures of the header at off. Used when a
// block is absorbed during coalescing so a stale reference into the merged
// region fails validation instead of resurrecting the old block.
func ScrubBlockHeader(b []byte, off int32) {
	o := int(off)
	PutU32(b, o+sigOffset, 0)
	PutU32(b, o+magicOffset, 0)
}
