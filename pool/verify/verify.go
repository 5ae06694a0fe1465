// Package verify provides structural validation for pool arenas. These
// helpers are used in tests and by the poolctl validate command to ensure
// whole-arena invariants are maintained.
package verify

import (
	"fmt"

	"github.com/joshuapare/poolkit/internal/format"
)

// ValidationError describes a single failed invariant.
type ValidationError struct {
	Type    string
	Message string
	Offset  int32
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset %d: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants validates every arena invariant in one call. Returns the
// first error encountered, or nil if all checks pass.
func AllInvariants(data []byte) error {
	if err := Coverage(data); err != nil {
		return err
	}
	if err := NoAdjacentFree(data); err != nil {
		return err
	}
	return FreeLinkSymmetry(data)
}

// maxSteps bounds chain walks so cyclic corruption is detected instead of
// looping forever.
func maxSteps(data []byte) int {
	return len(data)/(format.HeaderSize+format.MinBlockSize) + 1
}

// Coverage validates that the block chain partitions the arena without gaps
// or overlaps: every block's end is the next block's start, and the last
// block ends exactly at the arena end.
func Coverage(data []byte) error {
	if len(data) < format.HeaderSize {
		return &ValidationError{
			Type:    "Coverage",
			Message: fmt.Sprintf("arena too small: %d bytes (need %d)", len(data), format.HeaderSize),
			Offset:  -1,
		}
	}

	limit := maxSteps(data)
	steps := 0
	end := int64(0)

	for off := int32(0); off != format.NoOffset; off = format.BlockNext(data, off) {
		steps++
		if steps > limit {
			return &ValidationError{Type: "Coverage", Message: "block chain does not terminate", Offset: off}
		}
		if !format.ValidBlock(data, off) {
			return &ValidationError{Type: "Coverage", Message: "invalid block header", Offset: off}
		}
		if int64(off) != end {
			return &ValidationError{
				Type:    "Coverage",
				Message: fmt.Sprintf("block starts at %d, previous block ends at %d", off, end),
				Offset:  off,
			}
		}
		end = int64(off) + format.HeaderSize + int64(format.BlockSize(data, off))
	}

	if end != int64(len(data)) {
		return &ValidationError{
			Type:    "Coverage",
			Message: fmt.Sprintf("chain ends at %d, arena ends at %d", end, len(data)),
			Offset:  -1,
		}
	}
	return nil
}

// NoAdjacentFree validates the post-coalescing invariant: no two
// chain-adjacent blocks are both free.
func NoAdjacentFree(data []byte) error {
	limit := maxSteps(data)
	steps := 0

	for off := int32(0); off != format.NoOffset; off = format.BlockNext(data, off) {
		steps++
		if steps > limit {
			return &ValidationError{Type: "NoAdjacentFree", Message: "block chain does not terminate", Offset: off}
		}
		if !format.ValidBlock(data, off) {
			return &ValidationError{Type: "NoAdjacentFree", Message: "invalid block header", Offset: off}
		}
		next := format.BlockNext(data, off)
		if next == format.NoOffset {
			break
		}
		if !format.ValidBlock(data, next) {
			return &ValidationError{Type: "NoAdjacentFree", Message: "invalid block header", Offset: next}
		}
		if format.BlockFree(data, off) && format.BlockFree(data, next) {
			return &ValidationError{
				Type:    "NoAdjacentFree",
				Message: fmt.Sprintf("blocks %d and %d are both free", off, next),
				Offset:  off,
			}
		}
	}
	return nil
}

// FreeLinkSymmetry validates the bucket-list links threaded through the
// headers: a used block carries no bucket links, and a free block's
// neighbors point back at it.
func FreeLinkSymmetry(data []byte) error {
	limit := maxSteps(data)
	steps := 0

	for off := int32(0); off != format.NoOffset; off = format.BlockNext(data, off) {
		steps++
		if steps > limit {
			return &ValidationError{Type: "FreeLinkSymmetry", Message: "block chain does not terminate", Offset: off}
		}
		if !format.ValidBlock(data, off) {
			return &ValidationError{Type: "FreeLinkSymmetry", Message: "invalid block header", Offset: off}
		}

		fp := format.BlockFreePrev(data, off)
		fn := format.BlockFreeNext(data, off)

		if !format.BlockFree(data, off) {
			if fp != format.NoOffset || fn != format.NoOffset {
				return &ValidationError{
					Type:    "FreeLinkSymmetry",
					Message: "used block still carries bucket links",
					Offset:  off,
				}
			}
			continue
		}

		if fp != format.NoOffset {
			if !format.ValidBlock(data, fp) || format.BlockFreeNext(data, fp) != off {
				return &ValidationError{
					Type:    "FreeLinkSymmetry",
					Message: fmt.Sprintf("bucket predecessor %d does not link back", fp),
					Offset:  off,
				}
			}
		}
		if fn != format.NoOffset {
			if !format.ValidBlock(data, fn) || format.BlockFreePrev(data, fn) != off {
				return &ValidationError{
					Type:    "FreeLinkSymmetry",
					Message: fmt.Sprintf("bucket successor %d does not link back", fn),
					Offset:  off,
				}
			}
		}
	}
	return nil
}
