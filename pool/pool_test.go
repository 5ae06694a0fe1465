package pool

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/poolkit/internal/format"
)

func TestCreate_RoundsToPageSize(t *testing.T) {
	p, err := Create(1000, 8, "round")
	require.NoError(t, err)
	defer p.Close()

	page := os.Getpagesize()
	assert.Equal(t, format.AlignUp(1000, page), p.TotalSize())
	assert.Zero(t, p.TotalSize()%page)
	assert.Len(t, p.Bytes(), p.TotalSize())
}

func TestCreate_InitialFreeBlockCoversArena(t *testing.T) {
	p, err := Create(1<<20, 8, "initial")
	require.NoError(t, err)
	defer p.Close()

	data := p.Bytes()
	require.True(t, format.ValidBlock(data, 0))
	assert.True(t, format.BlockFree(data, 0))
	assert.Equal(t, int32(p.TotalSize()-format.HeaderSize), format.BlockSize(data, 0))
	assert.Equal(t, format.NoOffset, format.BlockPrev(data, 0))
	assert.Equal(t, format.NoOffset, format.BlockNext(data, 0))
}

func TestCreate_Defaults(t *testing.T) {
	p, err := Create(4096, 0, "")
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, format.DefaultAlignment, p.Alignment())
	assert.Equal(t, "unnamed", p.Name())
}

func TestCreate_RejectsZeroSize(t *testing.T) {
	_, err := Create(0, 8, "zero")
	assert.ErrorIs(t, err, ErrZeroSize)

	_, err = Create(-1, 8, "negative")
	assert.ErrorIs(t, err, ErrZeroSize)
}

func TestCreate_RejectsBadAlignment(t *testing.T) {
	for _, align := range []int{3, 6, 12, 100, format.MaxAlignment * 2} {
		_, err := Create(4096, align, "align")
		assert.ErrorIs(t, err, ErrBadAlignment, "alignment %d", align)
	}
}

func TestClose_IsTerminalAndIdempotent(t *testing.T) {
	p, err := Create(4096, 8, "close")
	require.NoError(t, err)

	assert.True(t, p.Active())
	require.NoError(t, p.Close())
	assert.False(t, p.Active())
	assert.Nil(t, p.Bytes())

	require.NoError(t, p.Close(), "second close must be a no-op")
}

func TestActive_NilPool(t *testing.T) {
	var p *Pool
	assert.False(t, p.Active())
}
