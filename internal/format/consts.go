// Package format houses the low-level byte layout of pool block headers.
// The goal is to keep header access focused and allocation-free so the
// allocator can orchestrate blocks without ever holding a partially-decoded
// view of arena memory.
package format

const (
	// BlockSignature is the magic value stored twice in every block header
	// (leading and trailing) for heap corruption detection.
	BlockSignature uint32 = 0xCAFEBABE

	// HeaderSize is the number of bytes used by the block header preceding
	// every payload (free or in-use) within the arena.
	//
	// Layout (little-endian):
	//   0x00  sig       uint32  leading corruption signature
	//   0x04  size      int32   payload capacity, header excluded
	//   0x08  flags     uint32  bit0 = free
	//   0x0C  prev      int32   chain predecessor offset, NoOffset = none
	//   0x10  next      int32   chain successor offset, NoOffset = none
	//   0x14  freePrev  int32   bucket-list predecessor, NoOffset = none
	//   0x18  freeNext  int32   bucket-list successor, NoOffset = none
	//   0x1C  magic     uint32  trailing corruption signature
	HeaderSize = 32

	// MinBlockSize is the smallest payload a block may carry. A free block
	// is only split when the remainder can hold a header plus this much.
	MinBlockSize = 16

	// DefaultAlignment is the payload alignment used when the caller does
	// not request one (platform word size on 64-bit systems).
	DefaultAlignment = 8

	// MaxAlignment is the largest supported payload alignment. Block
	// payloads start HeaderSize bytes after the block offset, so alignment
	// guarantees only hold for powers of two that divide HeaderSize.
	MaxAlignment = HeaderSize

	// MaxPoolSize is the maximum arena size. Blocks are addressed by int32
	// offsets, so the arena cannot exceed 2GB-1.
	MaxPoolSize = 0x7FFFFFFF

	// NoOffset marks an absent chain or bucket link.
	NoOffset int32 = -1

	// NumBuckets is the number of size-class buckets in the free-list
	// directory.
	NumBuckets = 32
)

// Header field offsets.
const (
	sigOffset      = 0x00
	sizeOffset     = 0x04
	flagsOffset    = 0x08
	prevOffset     = 0x0C
	nextOffset     = 0x10
	freePrevOffset = 0x14
	freeNextOffset = 0x18
	magicOffset    = 0x1C
)

// flagFree marks a block as free in the flags field.
const flagFree uint32 = 0x1
