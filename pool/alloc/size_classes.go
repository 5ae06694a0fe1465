package alloc

import "github.com/joshuapare/poolkit/internal/format"

// Bucket thresholds for the first nine size classes. Beyond 4096 the
// thresholds double (8192, 16384, ...) with one bucket per doubling, capped
// at the last bucket. The mapping must stay byte-for-byte deterministic:
// free blocks are looked up by recomputing their bucket from their size.
var fixedThresholds = [...]int32{16, 32, 64, 128, 256, 512, 1024, 2048, 4096}

// bucketIndex returns the free-list bucket for a block of the given size.
//
//	size <=   16 → 0        size <=  512 → 5
//	size <=   32 → 1        size <= 1024 → 6
//	size <=   64 → 2        size <= 2048 → 7
//	size <=  128 → 3        size <= 4096 → 8
//	size <=  256 → 4        beyond: doubling thresholds, buckets 9..31
func bucketIndex(size int32) int {
	for i, limit := range fixedThresholds {
		if size <= limit {
			return i
		}
	}

	idx := len(fixedThresholds)
	// int64 so the doubling never wraps before the bucket cap is reached.
	threshold := int64(8192)
	for idx < format.NumBuckets-1 && int64(size) > threshold {
		threshold <<= 1
		idx++
	}
	return idx
}
