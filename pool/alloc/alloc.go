package alloc

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/poolkit/internal/format"
	"github.com/joshuapare/poolkit/pool"
)

// Config carries optional allocator settings. A nil Config selects the
// defaults.
type Config struct {
	// Logger receives corruption, double-free, and leak diagnostics.
	// Nil discards them.
	Logger *slog.Logger
}

// Allocator manages the blocks of a single pool: a segregated free-list
// directory for lookup by size class, best-fit-within-bucket search with
// block splitting, and coalescing deallocation.
//
// The allocator holds no internal locks. Concurrent use of the same pool
// requires external synchronization around every call.
type Allocator struct {
	p   *pool.Pool
	dir *freeListDir
	log *slog.Logger

	usedSize   int64
	peakUsage  int64
	allocs     int64
	frees      int64
	blockCount int

	splits       int64
	coalesceFwd  int64
	coalesceBack int64
}

// New builds an allocator for the given pool by walking its block chain and
// indexing every free block into the size-class directory. A chain that
// fails validation rejects construction.
func New(p *pool.Pool, config *Config) (*Allocator, error) {
	if !p.Active() {
		return nil, ErrPoolNotActive
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if config != nil && config.Logger != nil {
		log = config.Logger
	}

	a := &Allocator{
		p:   p,
		dir: newFreeListDir(),
		log: log,
	}
	if err := a.indexBlocks(); err != nil {
		return nil, err
	}
	return a, nil
}

// indexBlocks walks the chain from the head block, validating every header,
// counting blocks, reconstructing usedSize, and inserting free blocks into
// their buckets.
func (a *Allocator) indexBlocks() error {
	data := a.p.Bytes()
	maxSteps := a.maxChainSteps()
	steps := 0

	for off := int32(0); off != format.NoOffset; off = format.BlockNext(data, off) {
		steps++
		if steps > maxSteps {
			return fmt.Errorf("%w: block chain does not terminate", ErrCorrupt)
		}
		if !format.ValidBlock(data, off) {
			return fmt.Errorf("%w: offset %d", ErrCorrupt, off)
		}
		a.blockCount++
		if format.BlockFree(data, off) {
			a.dir.insert(data, off)
		} else {
			a.usedSize += int64(format.BlockSize(data, off))
		}
	}
	return nil
}

// maxChainSteps bounds chain walks at the theoretical maximum block count
// for the arena, turning a cyclic-corruption bug into a detected failure.
func (a *Allocator) maxChainSteps() int {
	return a.p.TotalSize()/(format.HeaderSize+format.MinBlockSize) + 1
}

// Alloc carves size bytes out of the pool and returns a reference to the
// payload together with the payload slice. The payload may be slightly
// larger than requested: sizes are rounded up to the pool alignment, and a
// block whose remainder is too small to split is handed out whole.
func (a *Allocator) Alloc(size int) (Ref, []byte, error) {
	if !a.p.Active() {
		return 0, nil, ErrPoolNotActive
	}
	if size <= 0 {
		return 0, nil, ErrInvalidSize
	}

	// Reject before rounding: a request beyond the whole usable arena can
	// never fit, and aligning a size near the integer maximum would wrap.
	if size > a.p.TotalSize()-format.HeaderSize {
		return 0, nil, ErrNoSpace
	}

	aligned := format.AlignUp(size, a.p.Alignment())

	// Capacity check before any scan: a request beyond what is left can
	// never succeed regardless of fragmentation.
	if int64(aligned)+format.HeaderSize > int64(a.p.TotalSize())-a.usedSize {
		return 0, nil, ErrNoSpace
	}
	need := int32(aligned)

	data := a.p.Bytes()
	best, bestSize, err := a.findBestFit(data, need)
	if err != nil {
		return 0, nil, err
	}
	if best == format.NoOffset {
		return 0, nil, ErrNoSpace
	}

	a.dir.remove(data, best)

	if bestSize-need >= format.HeaderSize+format.MinBlockSize {
		a.split(data, best, need)
		bestSize = need
	}

	format.SetBlockFree(data, best, false)
	a.usedSize += int64(bestSize)
	if a.usedSize > a.peakUsage {
		a.peakUsage = a.usedSize
	}
	a.allocs++

	payload := data[best+format.HeaderSize : best+format.HeaderSize+bestSize]
	return Ref(best + format.HeaderSize), payload, nil
}

// findBestFit scans buckets from the size class of need upward, keeping the
// smallest qualifying block seen so far. The first exact-size match
// short-circuits the scan. This hybrid best-fit is not globally optimal and
// is kept deliberately: the tie-break determines the pool's fragmentation
// behavior.
func (a *Allocator) findBestFit(data []byte, need int32) (int32, int32, error) {
	best := format.NoOffset
	var bestSize int32

	for b := bucketIndex(need); b < format.NumBuckets; b++ {
		for off := a.dir.heads[b]; off != format.NoOffset; off = format.BlockFreeNext(data, off) {
			if !format.ValidBlock(data, off) {
				a.log.Error("corrupted block in free list",
					"pool", a.p.Name(), "offset", off)
				return 0, 0, fmt.Errorf("%w: free block at offset %d", ErrCorrupt, off)
			}
			sz := format.BlockSize(data, off)
			if sz < need {
				continue
			}
			if best == format.NoOffset || sz < bestSize {
				best, bestSize = off, sz
				if sz == need {
					return best, bestSize, nil
				}
			}
		}
	}
	return best, bestSize, nil
}

// split shrinks the chosen block to need bytes and links a new free block
// covering the remainder immediately after it in the chain. The remainder
// goes into the bucket matching its own size.
func (a *Allocator) split(data []byte, off, need int32) {
	oldSize := format.BlockSize(data, off)
	remOff := off + format.HeaderSize + need
	remSize := oldSize - need - format.HeaderSize

	format.WriteBlockHeader(data, remOff, remSize, true)
	next := format.BlockNext(data, off)
	format.SetBlockPrev(data, remOff, off)
	format.SetBlockNext(data, remOff, next)
	if next != format.NoOffset {
		format.SetBlockPrev(data, next, remOff)
	}
	format.SetBlockNext(data, off, remOff)
	format.SetBlockSize(data, off, need)

	a.dir.insert(data, remOff)
	a.blockCount++
	a.splits++
}

// Destroy releases the pool's arena. If the allocation and deallocation
// counts disagree, a leak diagnostic is logged first; the leak is not
// repaired. Destroy is terminal and every later operation is rejected.
func (a *Allocator) Destroy() error {
	if !a.p.Active() {
		return ErrPoolNotActive
	}
	if a.allocs != a.frees {
		a.log.Warn("memory leak detected",
			"pool", a.p.Name(),
			"allocations", a.allocs,
			"deallocations", a.frees,
			"outstanding", a.allocs-a.frees)
	}
	return a.p.Close()
}
