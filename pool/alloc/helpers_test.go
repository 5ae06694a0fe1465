package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/poolkit/internal/format"
	"github.com/joshuapare/poolkit/pool"
	"github.com/joshuapare/poolkit/pool/verify"
)

// newTestAllocator creates an active pool of at least size bytes with the
// default alignment and an allocator over it. The pool is closed during
// test cleanup.
func newTestAllocator(t testing.TB, size int) (*Allocator, *pool.Pool) {
	t.Helper()

	p, err := pool.Create(size, 0, "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	a, err := New(p, nil)
	require.NoError(t, err)
	return a, p
}

// usableSize returns the payload capacity of a fresh pool: the arena minus
// the head block's header.
func usableSize(p *pool.Pool) int {
	return p.TotalSize() - format.HeaderSize
}

// assertInvariants checks every whole-arena invariant after a mutation.
func assertInvariants(t testing.TB, a *Allocator) {
	t.Helper()

	require.NoError(t, a.Validate())
	require.NoError(t, verify.AllInvariants(a.p.Bytes()))
}

// carveFreeBlocks returns isolated free blocks of exactly the given payload
// sizes, in order, separated by small used guard blocks so they cannot
// coalesce with each other. Sizes must be multiples of the pool alignment.
func carveFreeBlocks(t testing.TB, a *Allocator, sizes []int32) []Ref {
	t.Helper()

	refs := make([]Ref, len(sizes))
	for i, sz := range sizes {
		ref, buf, err := a.Alloc(int(sz))
		require.NoError(t, err)
		require.Len(t, buf, int(sz))
		refs[i] = ref

		_, _, err = a.Alloc(format.MinBlockSize) // guard
		require.NoError(t, err)
	}
	for _, ref := range refs {
		require.NoError(t, a.Free(ref))
	}
	assertInvariants(t, a)
	return refs
}
