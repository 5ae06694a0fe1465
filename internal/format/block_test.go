package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBlockHeader_RoundTrip(t *testing.T) {
	buf := make([]byte, 4096)

	WriteBlockHeader(buf, 0, 256, true)

	require.True(t, ValidBlock(buf, 0))
	assert.Equal(t, int32(256), BlockSize(buf, 0))
	assert.True(t, BlockFree(buf, 0))
	assert.Equal(t, NoOffset, BlockPrev(buf, 0))
	assert.Equal(t, NoOffset, BlockNext(buf, 0))
	assert.Equal(t, NoOffset, BlockFreePrev(buf, 0))
	assert.Equal(t, NoOffset, BlockFreeNext(buf, 0))
}

func TestBlockLinks_SetAndGet(t *testing.T) {
	buf := make([]byte, 4096)
	WriteBlockHeader(buf, 0, 64, true)
	WriteBlockHeader(buf, 96, 128, false)

	SetBlockNext(buf, 0, 96)
	SetBlockPrev(buf, 96, 0)
	SetBlockFreeNext(buf, 0, 96)
	SetBlockFreePrev(buf, 96, 0)

	assert.Equal(t, int32(96), BlockNext(buf, 0))
	assert.Equal(t, int32(0), BlockPrev(buf, 96))
	assert.Equal(t, int32(96), BlockFreeNext(buf, 0))
	assert.Equal(t, int32(0), BlockFreePrev(buf, 96))
}

func TestSetBlockFree_Toggles(t *testing.T) {
	buf := make([]byte, 4096)
	WriteBlockHeader(buf, 0, 64, false)

	assert.False(t, BlockFree(buf, 0))
	SetBlockFree(buf, 0, true)
	assert.True(t, BlockFree(buf, 0))
	SetBlockFree(buf, 0, false)
	assert.False(t, BlockFree(buf, 0))
}

func TestValidBlock_RejectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(buf []byte)
		wantOff int32
	}{
		{
			name:   "leading signature overwritten",
			mutate: func(buf []byte) { PutU32(buf, 0, 0x41414141) },
		},
		{
			name:   "trailing magic overwritten",
			mutate: func(buf []byte) { PutU32(buf, magicOffset, 0) },
		},
		{
			name:   "zero size",
			mutate: func(buf []byte) { SetBlockSize(buf, 0, 0) },
		},
		{
			name:   "negative size",
			mutate: func(buf []byte) { SetBlockSize(buf, 0, -8) },
		},
		{
			name:   "size past arena end",
			mutate: func(buf []byte) { SetBlockSize(buf, 0, 1<<20) },
		},
		{
			name:   "scrubbed header",
			mutate: func(buf []byte) { ScrubBlockHeader(buf, 0) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 4096)
			WriteBlockHeader(buf, 0, 64, true)
			require.True(t, ValidBlock(buf, 0))

			tt.mutate(buf)
			assert.False(t, ValidBlock(buf, 0))
		})
	}
}

func TestValidBlock_RejectsOutOfBounds(t *testing.T) {
	buf := make([]byte, 64)
	WriteBlockHeader(buf, 0, 16, true)

	assert.False(t, ValidBlock(buf, -1))
	assert.False(t, ValidBlock(buf, 48), "header would run past arena end")
	assert.False(t, ValidBlock(buf, 1<<30))
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		n, align, want int
	}{
		{0, 8, 0},
		{1, 8, 8},
		{7, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{100, 8, 104},
		{1, 4096, 4096},
		{4096, 4096, 4096},
		{4097, 4096, 8192},
		{5, 1, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AlignUp(tt.n, tt.align), "AlignUp(%d, %d)", tt.n, tt.align)
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 16, 4096} {
		assert.True(t, IsPowerOfTwo(n), "%d", n)
	}
	for _, n := range []int{0, -1, -8, 3, 6, 12, 4095} {
		assert.False(t, IsPowerOfTwo(n), "%d", n)
	}
}
