package alloc

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/poolkit/internal/format"
	"github.com/joshuapare/poolkit/pool"
)

func TestStatsFreshPool(t *testing.T) {
	a, p := newTestAllocator(t, 1<<16)

	st := a.Stats()
	assert.Equal(t, p.TotalSize(), st.TotalSize)
	assert.EqualValues(t, 0, st.UsedSize)
	assert.EqualValues(t, 0, st.PeakUsage)
	assert.EqualValues(t, 0, st.Allocations)
	assert.EqualValues(t, 0, st.Deallocations)
	assert.Equal(t, 1, st.BlockCount)
	assert.Equal(t, 1, st.FreeBlocks)
	assert.EqualValues(t, usableSize(p), st.LargestFreeBlock)
	assert.Zero(t, st.FragmentationRatio)
}

func TestStatsTracksPeak(t *testing.T) {
	a, _ := newTestAllocator(t, 1<<18)

	r1, _, err := a.Alloc(104)
	require.NoError(t, err)
	r2, _, err := a.Alloc(200)
	require.NoError(t, err)

	st := a.Stats()
	assert.EqualValues(t, 304, st.UsedSize)
	assert.EqualValues(t, 304, st.PeakUsage)

	// Peak is sticky across frees.
	require.NoError(t, a.Free(r1))
	st = a.Stats()
	assert.EqualValues(t, 200, st.UsedSize)
	assert.EqualValues(t, 304, st.PeakUsage)

	require.NoError(t, a.Free(r2))
	assert.EqualValues(t, 304, a.Stats().PeakUsage)
}

func TestStatsFragmentationGrowsWithBlocks(t *testing.T) {
	a, _ := newTestAllocator(t, 1<<16)

	before := a.Stats().FragmentationRatio
	for i := 0; i < 64; i++ {
		_, _, err := a.Alloc(format.MinBlockSize)
		require.NoError(t, err)
	}
	after := a.Stats().FragmentationRatio
	assert.Greater(t, after, before)
	assert.Equal(t, 65, a.Stats().BlockCount)
}

func TestDestroyLogsLeakDiagnostic(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	p, err := pool.Create(1<<16, 0, "leaky")
	require.NoError(t, err)
	a, err := New(p, &Config{Logger: logger})
	require.NoError(t, err)

	_, _, err = a.Alloc(64)
	require.NoError(t, err)
	_, _, err = a.Alloc(16)
	require.NoError(t, err)

	require.NoError(t, a.Destroy())
	out := buf.String()
	assert.Contains(t, out, "memory leak detected")
	assert.Contains(t, out, "pool=leaky")
	assert.Contains(t, out, "outstanding=2")
	assert.False(t, p.Active())
}

func TestDestroyBalancedIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	p, err := pool.Create(1<<16, 0, "balanced")
	require.NoError(t, err)
	a, err := New(p, &Config{Logger: logger})
	require.NoError(t, err)

	ref, _, err := a.Alloc(64)
	require.NoError(t, err)
	require.NoError(t, a.Free(ref))

	require.NoError(t, a.Destroy())
	assert.Empty(t, buf.String())
	assert.ErrorIs(t, a.Destroy(), ErrPoolNotActive)
}
