package alloc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketIndex(t *testing.T) {
	tests := []struct {
		size int32
		want int
	}{
		{1, 0},
		{8, 0},
		{16, 0},
		{17, 1},
		{32, 1},
		{33, 2},
		{64, 2},
		{65, 3},
		{128, 3},
		{129, 4},
		{256, 4},
		{257, 5},
		{512, 5},
		{513, 6},
		{1024, 6},
		{1025, 7},
		{2048, 7},
		{2049, 8},
		{4096, 8},
		{4097, 9},
		{8192, 9},
		{8193, 10},
		{16384, 10},
		{16385, 11},
		{1 << 20, 16},
		{1<<20 + 1, 17},
		{1 << 28, 24},
		{math.MaxInt32, 27},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, bucketIndex(tt.size), "size %d", tt.size)
	}
}

func TestBucketIndexMonotonic(t *testing.T) {
	prev := bucketIndex(1)
	for size := int32(2); size <= 1<<16; size++ {
		idx := bucketIndex(size)
		assert.GreaterOrEqual(t, idx, prev, "size %d", size)
		prev = idx
	}
}
