package main

import (
	"fmt"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/poolkit/pool"
	"github.com/joshuapare/poolkit/pool/alloc"
)

// prt formats report numbers with thousands separators.
var prt = message.NewPrinter(language.English)

// openPool creates the pool and allocator described by the global flags.
func openPool() (*pool.Pool, *alloc.Allocator, error) {
	size, err := parseSize(poolSize)
	if err != nil {
		return nil, nil, err
	}

	p, err := pool.Create(size, alignment, poolName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create pool: %w", err)
	}

	a, err := alloc.New(p, &alloc.Config{Logger: newLogger()})
	if err != nil {
		p.Close()
		return nil, nil, err
	}

	printVerbose("Created pool %q: %s bytes, alignment %d\n",
		p.Name(), prt.Sprintf("%d", p.TotalSize()), p.Alignment())
	return p, a, nil
}

// printStats renders an allocator snapshot, honoring --json.
func printStats(a *alloc.Allocator) error {
	st := a.Stats()
	if jsonOut {
		return printJSON(st)
	}

	prt.Printf("Pool statistics:\n")
	prt.Printf("  Total size:        %d bytes\n", st.TotalSize)
	prt.Printf("  Used:              %d bytes\n", st.UsedSize)
	prt.Printf("  Peak usage:        %d bytes\n", st.PeakUsage)
	prt.Printf("  Allocations:       %d\n", st.Allocations)
	prt.Printf("  Deallocations:     %d\n", st.Deallocations)
	prt.Printf("  Blocks:            %d (%d free)\n", st.BlockCount, st.FreeBlocks)
	prt.Printf("  Largest free:      %d bytes\n", st.LargestFreeBlock)
	prt.Printf("  Fragmentation:     %d%%\n", st.FragmentationRatio)
	prt.Printf("  Splits:            %d\n", st.Splits)
	prt.Printf("  Coalesces:         %d forward, %d backward\n",
		st.CoalesceForward, st.CoalesceBackward)
	return nil
}

// printLayout renders the physical block chain, head to tail.
func printLayout(a *alloc.Allocator) error {
	fmt.Printf("%-10s %-12s %s\n", "OFFSET", "SIZE", "STATE")
	err := a.Walk(func(bi alloc.BlockInfo) bool {
		state := "used"
		if bi.Free {
			state = "free"
		}
		prt.Printf("%-10d %-12d %s\n", bi.Offset, bi.Size, state)
		return true
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "layout walk aborted: %v\n", err)
	}
	return err
}
