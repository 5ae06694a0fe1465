package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/poolkit/internal/format"
)

func TestSplitAtExactThreshold(t *testing.T) {
	a, _ := newTestAllocator(t, 1<<20)

	// Leftover of header plus minimum payload: the smallest remainder
	// worth splitting off.
	carveFreeBlocks(t, a, []int32{256 + format.HeaderSize + format.MinBlockSize})

	splits := a.Stats().Splits
	_, buf, err := a.Alloc(256)
	require.NoError(t, err)
	assert.Len(t, buf, 256)
	assert.Equal(t, splits+1, a.Stats().Splits)
	assertInvariants(t, a)

	// The remainder is a minimum-size free block, immediately reusable.
	_, buf, err = a.Alloc(format.MinBlockSize)
	require.NoError(t, err)
	assert.Len(t, buf, format.MinBlockSize)
}

func TestSplitBelowThresholdAbsorbs(t *testing.T) {
	a, _ := newTestAllocator(t, 1<<20)

	// One alignment step short of the split threshold: the leftover
	// cannot hold a header and a minimum payload, so the whole block is
	// handed out.
	carveFreeBlocks(t, a, []int32{256 + format.HeaderSize + format.MinBlockSize - 8})

	splits := a.Stats().Splits
	_, buf, err := a.Alloc(256)
	require.NoError(t, err)
	assert.Len(t, buf, 256+format.HeaderSize+format.MinBlockSize-8)
	assert.Equal(t, splits, a.Stats().Splits)
	assertInvariants(t, a)
}

func TestSplitAccountsSlackInUsedSize(t *testing.T) {
	a, _ := newTestAllocator(t, 1<<20)

	carveFreeBlocks(t, a, []int32{256 + 40})

	used := a.Stats().UsedSize
	ref, _, err := a.Alloc(256)
	require.NoError(t, err)

	// The absorbed slack belongs to the block and is charged to the
	// caller until the block is freed again.
	assert.EqualValues(t, used+256+40, a.Stats().UsedSize)

	require.NoError(t, a.Free(ref))
	assert.EqualValues(t, used, a.Stats().UsedSize)
	assertInvariants(t, a)
}
